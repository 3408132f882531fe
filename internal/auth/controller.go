package auth

import (
	"net/http"

	"campus/internal/shared/apierr"
	"campus/internal/shared/utils/response"
	"campus/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	logger  *logger.Logger
}

func NewController(service Service) *Controller {
	return &Controller{
		service: service,
		logger:  logger.GetDefault(),
	}
}

func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, apierr.Validation("request body must be valid JSON"))
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	c.logger.LogRegistration(ctx.Request.Context(), resp.User.ID, resp.User.Role)
	response.Success(ctx, http.StatusCreated, resp.Message, resp.User)
}

func (c *Controller) VerifyEmail(ctx *gin.Context) {
	token := ctx.Query("token")
	if token == "" {
		var req VerifyEmailRequest
		if err := ctx.ShouldBindJSON(&req); err != nil || req.Token == "" {
			response.Error(ctx, apierr.Validation("token is required"))
			return
		}
		token = req.Token
	}

	if err := c.service.VerifyEmail(ctx.Request.Context(), token); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "Email verified successfully, you can now log in", nil)
}

func (c *Controller) ResendVerification(ctx *gin.Context) {
	var req EmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Email == "" {
		response.Error(ctx, apierr.Validation("email is required"))
		return
	}

	if err := c.service.ResendVerification(ctx.Request.Context(), req.Email); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "If the address exists, a new verification email has been sent", nil)
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, apierr.Validation("request body must be valid JSON"))
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.LogAuthFailure(ctx.Request.Context(), "login rejected", ctx.ClientIP())
		response.Error(ctx, err)
		return
	}

	c.logger.LogAuthSuccess(ctx.Request.Context(), resp.User.ID, "password")
	response.Success(ctx, http.StatusOK, "Login successful", resp)
}

func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		response.Error(ctx, apierr.Validation("refresh_token is required"))
		return
	}

	pair, err := c.service.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "Token refreshed successfully", pair)
}

// Logout is stateless: tokens are not revocable, the client discards them.
func (c *Controller) Logout(ctx *gin.Context) {
	var req LogoutRequest
	_ = ctx.ShouldBindJSON(&req) // optional body

	response.Success(ctx, http.StatusOK, "Logged out successfully", nil)
}

func (c *Controller) ChangePassword(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.Error(ctx, apierr.MissingCredential())
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		response.Error(ctx, apierr.Validation("current_password and new_password are required"))
		return
	}

	if err := c.service.ChangePassword(ctx.Request.Context(), userID.(string), &req); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "Password changed successfully", nil)
}

func (c *Controller) ForgotPassword(ctx *gin.Context) {
	var req EmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Email == "" {
		response.Error(ctx, apierr.Validation("email is required"))
		return
	}

	if err := c.service.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "If the address exists, a password reset email has been sent", nil)
}

func (c *Controller) ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Token == "" || req.NewPassword == "" {
		response.Error(ctx, apierr.Validation("token and new_password are required"))
		return
	}

	if err := c.service.ResetPassword(ctx.Request.Context(), &req); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "Password reset successfully, you can now log in", nil)
}
