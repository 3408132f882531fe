package faculty

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

// GetMe returns the faculty record of the authenticated user.
func (ctrl *Controller) GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	member, err := ctrl.service.GetOwnRecord(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "faculty record retrieved successfully", member)
}

func (ctrl *Controller) Get(c *gin.Context) {
	member, err := ctrl.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "faculty record retrieved successfully", member)
}

func (ctrl *Controller) List(c *gin.Context) {
	var departmentID uint
	if raw := c.Query("department_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.Error(c, apierr.InvalidID())
			return
		}
		departmentID = uint(parsed)
	}

	members, err := ctrl.service.List(c.Request.Context(), departmentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, http.StatusOK, len(members), members)
}

// UpdateMe lets a faculty member update their own office details.
func (ctrl *Controller) UpdateMe(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.BadRequest("invalid request body"))
		return
	}

	member, err := ctrl.service.UpdateOwnRecord(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "faculty record updated successfully", member)
}

// SetStatus is an admin operation for leave and retirement transitions.
func (ctrl *Controller) SetStatus(c *gin.Context) {
	var req struct {
		Status Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.BadRequest("invalid request body"))
		return
	}

	member, err := ctrl.service.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "faculty status updated successfully", member)
}
