package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, cfg *Config) *RateLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRateLimiter(client, cfg)
}

func limiterConfig() *Config {
	return &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 100,
		PublicRequests:  200,
		AuthRequests:    5,
		AdminRequests:   50,
		UploadRequests:  10,
		HealthRequests:  1000,
	}
}

func TestIsAllowed_UnderLimit(t *testing.T) {
	limiter := newTestLimiter(t, limiterConfig())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeAuth)
		require.NoError(t, err)
		require.True(t, result.Allowed, "request %d should be within budget", i+1)
		require.Equal(t, 5, result.Limit)
		require.Equal(t, 5-i-1, result.Remaining)
	}
}

func TestIsAllowed_RejectsOverLimit(t *testing.T) {
	limiter := newTestLimiter(t, limiterConfig())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeAuth)
		require.NoError(t, err)
		require.True(t, result.Allowed)
	}

	// The window is full; subsequent requests are rejected, not just
	// reported at zero remaining.
	for i := 0; i < 3; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeAuth)
		require.NoError(t, err)
		require.False(t, result.Allowed, "request %d over budget should be rejected", 6+i)
		require.Equal(t, 0, result.Remaining)
	}
}

func TestIsAllowed_ClientsAreIndependent(t *testing.T) {
	limiter := newTestLimiter(t, limiterConfig())
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeAuth)
		require.NoError(t, err)
	}

	result, err := limiter.IsAllowed(ctx, "10.0.0.2", RateLimitTypeAuth)
	require.NoError(t, err)
	require.True(t, result.Allowed, "another client keeps its own budget")
}

func TestIsAllowed_LimitTypesAreIndependent(t *testing.T) {
	limiter := newTestLimiter(t, limiterConfig())
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeAuth)
		require.NoError(t, err)
	}

	result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeUpload)
	require.NoError(t, err)
	require.True(t, result.Allowed)
	require.Equal(t, 10, result.Limit)
}

func TestIsAllowed_Disabled(t *testing.T) {
	cfg := limiterConfig()
	cfg.Enabled = false
	limiter := newTestLimiter(t, cfg)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeAuth)
		require.NoError(t, err)
		require.True(t, result.Allowed)
		require.Equal(t, 5, result.Remaining)
	}
}

func TestIsAllowed_WhitelistedIP(t *testing.T) {
	cfg := limiterConfig()
	cfg.WhitelistedIPs = []string{"192.168.1.10"}
	limiter := newTestLimiter(t, cfg)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		result, err := limiter.IsAllowed(ctx, "192.168.1.10", RateLimitTypeAuth)
		require.NoError(t, err)
		require.True(t, result.Allowed)
	}
}
