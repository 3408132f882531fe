package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"campus/internal/shared/utils/response"
	"campus/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Middleware enforces per-IP limits before handlers run.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := getRateLimitType(c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			// Redis being down should not take the API down with it.
			logger.GetDefault().Warn("rate limit check failed", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			logger.GetDefault().LogRateLimitExceeded(c.Request.Context(), clientIP, c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorBody{
				Success:    false,
				Error:      "too many requests, please try again later",
				StatusCode: http.StatusTooManyRequests,
			})
			return
		}

		c.Next()
	}
}

// getRateLimitType maps a route to its limit class.
func getRateLimitType(path string) RateLimitType {
	switch {
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"):
		return RateLimitTypeHealth

	// Credential endpoints get the tightest window.
	case strings.Contains(path, "/auth/"):
		return RateLimitTypeAuth

	case strings.Contains(path, "/profile-image"):
		return RateLimitTypeUpload

	case strings.Contains(path, "/departments"):
		return RateLimitTypePublic

	case strings.Contains(path, "/users"),
		strings.Contains(path, "/students"),
		strings.Contains(path, "/faculty"):
		return RateLimitTypeAdmin

	default:
		return RateLimitTypeDefault
	}
}

// getClientIP extracts the real client IP
func getClientIP(c *gin.Context) string {
	xForwardedFor := c.GetHeader("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	xRealIP := c.GetHeader("X-Real-IP")
	if xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}

	return ip
}
