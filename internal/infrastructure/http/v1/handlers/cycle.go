package handlers

import (
	"github.com/gin-gonic/gin"

	"agroplan/internal/core/apperror"
	"agroplan/internal/core/id"
	"agroplan/internal/domain/cycle"
	"agroplan/internal/infrastructure/http/v1/dto"
)

// CycleHandler handles HTTP requests for production cycles.
type CycleHandler struct {
	*BaseHandler
	service *cycle.Service
}

// NewCycleHandler creates a new cycle handler.
func NewCycleHandler(base *BaseHandler, service *cycle.Service) *CycleHandler {
	return &CycleHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /cycles
func (h *CycleHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CycleListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	companyID, err := h.CompanyID(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	var cycles []cycle.Cycle
	if req.Active != nil && *req.Active {
		cycles, err = h.service.ListActive(ctx, companyID)
	} else {
		cycles, err = h.service.List(ctx, companyID)
	}
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCycles(cycles))
}

// Get handles GET /cycles/:id
func (h *CycleHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	cycleID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid cycle id, expected UUID"))
		return
	}

	companyID, err := h.CompanyID(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.Get(ctx, companyID, cycleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCycle(*result))
}

// RegisterRoutes registers cycle routes.
func (h *CycleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}
