package students

import (
	"net/http"
	"strconv"

	"campus/internal/shared/apierr"
	"campus/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetMe returns the calling student's own academic record.
func (c *Controller) GetMe(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.Error(ctx, apierr.MissingCredential())
		return
	}

	student, err := c.service.GetOwnRecord(ctx.Request.Context(), userID.(string))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "", student)
}

func (c *Controller) Get(ctx *gin.Context) {
	student, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "", student)
}

func (c *Controller) List(ctx *gin.Context) {
	var departmentID uint
	if raw := ctx.Query("department_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.Error(ctx, apierr.InvalidID())
			return
		}
		departmentID = uint(parsed)
	}

	list, err := c.service.List(ctx.Request.Context(), departmentID)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.List(ctx, http.StatusOK, len(list), list)
}

func (c *Controller) UpdateAcademic(ctx *gin.Context) {
	var req UpdateAcademicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, apierr.Validation("request body must be valid JSON"))
		return
	}

	student, err := c.service.UpdateAcademic(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "Academic record updated successfully", student)
}
