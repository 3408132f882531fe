package departments

import (
	"net/http"
	"strconv"

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

func (c *Controller) List(ctx *gin.Context) {
	list, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.List(ctx, http.StatusOK, len(list), list)
}

func (c *Controller) Get(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	dept, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "", dept)
}

func (c *Controller) Create(ctx *gin.Context) {
	var req CreateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, apierr.Validation("request body must be valid JSON"))
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, err)
		return
	}

	dept, err := c.service.Create(ctx.Request.Context(), &req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusCreated, "Department created successfully", dept)
}

func (c *Controller) Update(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	var req UpdateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, apierr.Validation("request body must be valid JSON"))
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, err)
		return
	}

	dept, err := c.service.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "Department updated successfully", dept)
}

func (c *Controller) Delete(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), id); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "Department deleted successfully", nil)
}

func (c *Controller) Stats(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	stats, err := c.service.Stats(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, "", stats)
}

func parseID(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return 0, apierr.InvalidID()
	}
	return uint(id), nil
}
