package auth

import (
	"errors"
	"time"

	"campus/internal/shared/config"

	"github.com/golang-jwt/jwt/v4"
)

// TokenKind selects the expiry policy for an issued token.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Principal is the identity embedded in every token payload.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// Claims is the JWT payload shape for both token kinds.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Type   string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies campus tokens. It is a pure function of
// the injected secret and TTL policy; it reads no ambient state.
type TokenCodec struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenCodec(cfg config.JWTConfig) *TokenCodec {
	return &TokenCodec{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessExpiresIn,
		refreshTTL: cfg.RefreshExpiresIn,
	}
}

// Issue signs a single token of the given kind for the principal.
func (tc *TokenCodec) Issue(p Principal, kind TokenKind) (string, error) {
	now := time.Now()

	ttl := tc.accessTTL
	if kind == TokenKindRefresh {
		ttl = tc.refreshTTL
	}

	claims := Claims{
		UserID: p.UserID,
		Email:  p.Email,
		Role:   p.Role,
		Type:   string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    tc.issuer,
			Subject:   p.UserID,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tc.secret)
}

// IssuePair mints a matching access+refresh pair. Both tokens carry the
// same principal as of issuance time.
func (tc *TokenCodec) IssuePair(p Principal) (*TokenPair, error) {
	access, err := tc.Issue(p, TokenKindAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := tc.Issue(p, TokenKindRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(tc.accessTTL.Seconds()),
	}, nil
}

// Verify parses and validates a token of either kind. The jwt sentinel
// errors (malformed, expired, bad signature) are preserved so callers can
// log the specific failure; the classifier collapses them all to 401.
func (tc *TokenCodec) Verify(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tc.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// VerifyKind verifies the token and additionally checks the type claim,
// so a refresh token can never pass as an access token or vice versa.
func (tc *TokenCodec) VerifyKind(raw string, kind TokenKind) (*Claims, error) {
	claims, err := tc.Verify(raw)
	if err != nil {
		return nil, err
	}
	if claims.Type != string(kind) {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// VerifyAccessToken adapts the codec to the access-guard middleware.
func (tc *TokenCodec) VerifyAccessToken(raw string) (userID, email, role string, err error) {
	claims, err := tc.VerifyKind(raw, TokenKindAccess)
	if err != nil {
		return "", "", "", err
	}
	return claims.UserID, claims.Email, claims.Role, nil
}

// IsTokenError reports whether err came from token parsing/validation as
// opposed to an infrastructure failure.
func IsTokenError(err error) bool {
	return errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenExpired) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) ||
		errors.Is(err, jwt.ErrTokenInvalidClaims)
}
