package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestVerificationTokenGenerator_Generate(t *testing.T) {
	gen := NewVerificationTokenGenerator(24 * time.Hour)

	tok, err := gen.Generate()
	require.NoError(t, err)

	// 32 bytes hex encoded
	require.Len(t, tok.Raw, 64)
	require.Len(t, tok.Hash, 64)
	require.NotEqual(t, tok.Raw, tok.Hash)
	require.Equal(t, HashVerificationToken(tok.Raw), tok.Hash)

	require.WithinDuration(t, time.Now().Add(24*time.Hour), tok.ExpiresAt, time.Minute)
}

func TestVerificationTokenGenerator_Uniqueness(t *testing.T) {
	gen := NewVerificationTokenGenerator(time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := gen.Generate()
		require.NoError(t, err)
		require.False(t, seen[tok.Raw], "duplicate token generated")
		seen[tok.Raw] = true
	}
}

func TestHashVerificationToken_Deterministic(t *testing.T) {
	require.Equal(t, HashVerificationToken("abc"), HashVerificationToken("abc"))
	require.NotEqual(t, HashVerificationToken("abc"), HashVerificationToken("abd"))
}

func TestVerificationExpired(t *testing.T) {
	now := time.Now()

	future := now.Add(time.Hour)
	require.False(t, VerificationExpired(&future, now))

	past := now.Add(-time.Second)
	require.True(t, VerificationExpired(&past, now))

	// No recorded horizon counts as expired.
	require.True(t, VerificationExpired(nil, now))
}
