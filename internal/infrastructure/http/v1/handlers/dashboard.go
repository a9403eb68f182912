package handlers

import (
	"github.com/gin-gonic/gin"

	"agroplan/internal/core/apperror"
	"agroplan/internal/core/id"
	"agroplan/internal/domain/dashboard"
	"agroplan/internal/infrastructure/http/v1/dto"
)

// DashboardHandler handles HTTP requests for the operational dashboard.
type DashboardHandler struct {
	*BaseHandler
	service *dashboard.Service
	config  dashboard.Config
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(base *BaseHandler, service *dashboard.Service, config dashboard.Config) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: base,
		service:     service,
		config:      config,
	}
}

// Get handles GET /dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.DashboardRequest
	if !h.BindQuery(c, &req) {
		return
	}

	companyID, err := h.CompanyID(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	var cycleID *id.ID
	if req.CycleID != nil && *req.CycleID != "" {
		parsed, err := id.Parse(*req.CycleID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid cycleId, expected UUID"))
			return
		}
		cycleID = &parsed
	}

	report, err := h.service.BuildReport(ctx, companyID, cycleID, h.config)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// RegisterRoutes registers dashboard routes.
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Get)
}
