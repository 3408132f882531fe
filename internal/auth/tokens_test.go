package auth

import (
	"testing"
	"time"

	"campus/internal/shared/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T) *TokenCodec {
	t.Helper()
	return NewTokenCodec(config.JWTConfig{
		Secret:           "test-secret-at-least-32-bytes-long!",
		Issuer:           "campus-test",
		AccessExpiresIn:  15 * time.Minute,
		RefreshExpiresIn: 7 * 24 * time.Hour,
	})
}

func testPrincipal() Principal {
	return Principal{
		UserID: "5f1c8f3e-0000-4000-8000-000000000001",
		Email:  "student@campus.edu",
		Role:   "student",
	}
}

func TestTokenCodec_IssueAndVerify(t *testing.T) {
	codec := testCodec(t)
	p := testPrincipal()

	raw, err := codec.Issue(p, TokenKindAccess)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := codec.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, p.UserID, claims.UserID)
	require.Equal(t, p.Email, claims.Email)
	require.Equal(t, p.Role, claims.Role)
	require.Equal(t, string(TokenKindAccess), claims.Type)
	require.Equal(t, "campus-test", claims.Issuer)
	require.Equal(t, p.UserID, claims.Subject)
}

func TestTokenCodec_IssuePair(t *testing.T) {
	codec := testCodec(t)

	pair, err := codec.IssuePair(testPrincipal())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	require.Equal(t, int64((15 * time.Minute).Seconds()), pair.ExpiresIn)

	access, err := codec.VerifyKind(pair.AccessToken, TokenKindAccess)
	require.NoError(t, err)
	require.Equal(t, string(TokenKindAccess), access.Type)

	refresh, err := codec.VerifyKind(pair.RefreshToken, TokenKindRefresh)
	require.NoError(t, err)
	require.Equal(t, string(TokenKindRefresh), refresh.Type)
}

func TestTokenCodec_VerifyKind_RejectsWrongKind(t *testing.T) {
	codec := testCodec(t)

	pair, err := codec.IssuePair(testPrincipal())
	require.NoError(t, err)

	_, err = codec.VerifyKind(pair.RefreshToken, TokenKindAccess)
	require.ErrorIs(t, err, jwt.ErrTokenInvalidClaims)

	_, err = codec.VerifyKind(pair.AccessToken, TokenKindRefresh)
	require.ErrorIs(t, err, jwt.ErrTokenInvalidClaims)
}

func TestTokenCodec_Verify_Expired(t *testing.T) {
	codec := NewTokenCodec(config.JWTConfig{
		Secret:          "test-secret-at-least-32-bytes-long!",
		Issuer:          "campus-test",
		AccessExpiresIn: -1 * time.Minute,
	})

	raw, err := codec.Issue(testPrincipal(), TokenKindAccess)
	require.NoError(t, err)

	_, err = codec.Verify(raw)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
	require.True(t, IsTokenError(err))
}

func TestTokenCodec_Verify_WrongSecret(t *testing.T) {
	codec := testCodec(t)
	other := NewTokenCodec(config.JWTConfig{
		Secret:          "a-completely-different-signing-secret",
		AccessExpiresIn: 15 * time.Minute,
	})

	raw, err := other.Issue(testPrincipal(), TokenKindAccess)
	require.NoError(t, err)

	_, err = codec.Verify(raw)
	require.Error(t, err)
	require.True(t, IsTokenError(err))
}

func TestTokenCodec_Verify_Malformed(t *testing.T) {
	codec := testCodec(t)

	_, err := codec.Verify("not.a.jwt")
	require.ErrorIs(t, err, jwt.ErrTokenMalformed)

	_, err = codec.Verify("")
	require.Error(t, err)
}

func TestTokenCodec_VerifyAccessToken(t *testing.T) {
	codec := testCodec(t)
	p := testPrincipal()

	pair, err := codec.IssuePair(p)
	require.NoError(t, err)

	userID, email, role, err := codec.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, p.UserID, userID)
	require.Equal(t, p.Email, email)
	require.Equal(t, p.Role, role)

	// A refresh token must never pass the access guard.
	_, _, _, err = codec.VerifyAccessToken(pair.RefreshToken)
	require.Error(t, err)
}
