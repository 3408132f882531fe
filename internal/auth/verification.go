package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// VerificationToken is a single-use credential for email verification or
// password reset. Raw is mailed to the user and never stored; Hash is what
// persistence keeps, and redemption compares hashes.
type VerificationToken struct {
	Raw       string
	Hash      string
	ExpiresAt time.Time
}

// VerificationTokenGenerator produces high-entropy single-use tokens with
// a fixed time-to-live.
type VerificationTokenGenerator struct {
	ttl time.Duration
}

func NewVerificationTokenGenerator(ttl time.Duration) *VerificationTokenGenerator {
	return &VerificationTokenGenerator{ttl: ttl}
}

// Generate returns a fresh token. 32 random bytes, hex encoded.
func (g *VerificationTokenGenerator) Generate() (*VerificationToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	raw := hex.EncodeToString(buf)
	return &VerificationToken{
		Raw:       raw,
		Hash:      HashVerificationToken(raw),
		ExpiresAt: time.Now().Add(g.ttl),
	}, nil
}

// TTL exposes the configured horizon for callers that compute expiry
// from a stored issuance timestamp.
func (g *VerificationTokenGenerator) TTL() time.Duration {
	return g.ttl
}

// HashVerificationToken maps a raw token to its storage form.
func HashVerificationToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// VerificationExpired reports whether a token is past its horizon. A token
// whose hash matches is still rejected once expiresAt has passed.
func VerificationExpired(expiresAt *time.Time, now time.Time) bool {
	return expiresAt == nil || now.After(*expiresAt)
}
