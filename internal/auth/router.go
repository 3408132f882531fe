package auth

import (
	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	authn      gin.HandlerFunc
}

// NewRouter creates a new auth router. authn is the access-guard
// middleware applied to the protected subset.
func NewRouter(controller *Controller, authn gin.HandlerFunc) *Router {
	return &Router{
		controller: controller,
		authn:      authn,
	}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register", authRouter.controller.Register)
		auth.GET("/verify-email", authRouter.controller.VerifyEmail)
		auth.POST("/verify-email", authRouter.controller.VerifyEmail)
		auth.POST("/resend-verification", authRouter.controller.ResendVerification)
		auth.POST("/login", authRouter.controller.Login)
		auth.POST("/refresh", authRouter.controller.RefreshToken)
		auth.POST("/logout", authRouter.controller.Logout)
		auth.POST("/forgot-password", authRouter.controller.ForgotPassword)
		auth.POST("/reset-password", authRouter.controller.ResetPassword)

		// Protected routes (authentication required)
		protected := auth.Group("")
		protected.Use(authRouter.authn)
		{
			protected.PUT("/change-password", authRouter.controller.ChangePassword)
		}
	}
}
