package middleware

import (
	"context"
	"errors"
	"strings"

	"campus/internal/shared/apierr"
	"campus/internal/shared/utils/response"
	"campus/internal/users"
	"campus/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TokenVerifier validates an access token and returns the embedded
// principal. The auth token codec satisfies it.
type TokenVerifier interface {
	VerifyAccessToken(raw string) (userID, email, role string, err error)
}

// AccountResolver loads the account a verified token points at. The users
// repository satisfies it.
type AccountResolver interface {
	GetByID(ctx context.Context, id string) (*users.User, error)
}

// JWTAuth is the access guard: it extracts the bearer token, verifies it,
// confirms the owning account still exists and attaches the identity to
// the request context. The specific verification failure is logged but
// never exposed; the client only learns it is unauthenticated.
func JWTAuth(verifier TokenVerifier, accounts AccountResolver) gin.HandlerFunc {
	log := logger.GetDefault()

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortError(c, apierr.MissingCredential())
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.AbortError(c, apierr.MissingCredential())
			return
		}

		userID, email, role, err := verifier.VerifyAccessToken(parts[1])
		if err != nil {
			log.LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			response.AbortError(c, apierr.Unauthenticated(err))
			return
		}

		account, err := accounts.GetByID(c.Request.Context(), userID)
		if err != nil {
			// Account deleted after issuance, or the lookup itself failed;
			// either way the caller is unauthenticated, no retry here.
			var typed *apierr.Error
			if errors.As(err, &typed) && typed.Kind == apierr.KindNotFound {
				response.AbortError(c, apierr.StaleCredential())
				return
			}
			log.LogAuthFailure(c.Request.Context(), "account lookup failed", c.ClientIP())
			response.AbortError(c, apierr.Unauthenticated(err))
			return
		}

		c.Set("user", account)
		c.Set("user_id", userID)
		c.Set("user_email", email)
		c.Set("user_role", role)
		c.Next()
	}
}

// RequireRoles permits the request only when the guard-resolved role is
// in the given set. Must run after JWTAuth. Reusable across routes with
// different role sets.
func RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			response.AbortError(c, apierr.MissingCredential())
			return
		}

		for _, role := range requiredRoles {
			if userRole.(string) == role {
				c.Next()
				return
			}
		}

		response.AbortError(c, apierr.Forbidden(requiredRoles...))
	}
}

// RequireAdmin restricts a route to admin accounts.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(string(users.RoleAdmin))
}

// RequireStaff restricts a route to admin or faculty accounts.
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(string(users.RoleAdmin), string(users.RoleFaculty))
}

// CurrentUser returns the account attached by JWTAuth.
func CurrentUser(c *gin.Context) (*users.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := v.(*users.User)
	return user, ok
}
