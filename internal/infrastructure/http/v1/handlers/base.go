package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agroplan/internal/core/apperror"
	appctx "agroplan/internal/core/context"
	"agroplan/internal/core/id"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// CompanyID extracts the caller's company ID from request context.
// Auth middleware guarantees it is present and well formed for
// protected routes; an error here means a broken token slipped through.
func (h *BaseHandler) CompanyID(c *gin.Context) (id.ID, error) {
	raw := appctx.GetCompanyID(c.Request.Context())
	companyID, err := id.Parse(raw)
	if err != nil {
		return id.Nil(), apperror.NewUnauthorized("invalid company identity")
	}
	return companyID, nil
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
