package users

import (
	"net/http"

	"campus/internal/shared/apierr"
	"campus/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) GetMe(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.Error(ctx, apierr.MissingCredential())
		return
	}

	profile, err := c.service.GetProfile(ctx.Request.Context(), userID.(string))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "", profile)
}

func (c *Controller) UpdateMe(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.Error(ctx, apierr.MissingCredential())
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, apierr.Validation("request body must be valid JSON"))
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, err)
		return
	}

	profile, err := c.service.UpdateProfile(ctx.Request.Context(), userID.(string), &req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "Profile updated successfully", profile)
}

func (c *Controller) UploadProfileImage(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.Error(ctx, apierr.MissingCredential())
		return
	}

	file, err := ctx.FormFile("profile_image")
	if err != nil {
		response.Error(ctx, apierr.Upload("unexpected file field, please use the \"profile_image\" field"))
		return
	}

	path, err := c.service.SaveProfileImage(ctx.Request.Context(), userID.(string), file)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "Profile image uploaded successfully", gin.H{"profile_image": path})
}

// ListUsers is admin-only, wired behind the role gate.
func (c *Controller) ListUsers(ctx *gin.Context) {
	list, err := c.service.ListUsers(ctx.Request.Context(), ctx.Query("role"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.List(ctx, http.StatusOK, len(list), list)
}
