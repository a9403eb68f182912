package dto

import (
	"time"

	"agroplan/internal/domain/cycle"
)

// CycleResponse contains production cycle fields.
type CycleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Product   string    `json:"product"`
	Active    bool      `json:"active"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	PlotIDs   []string  `json:"plotIds"`
}

// FromCycle creates CycleResponse from cycle.Cycle.
func FromCycle(c cycle.Cycle) CycleResponse {
	plotIDs := make([]string, 0, len(c.PlotIDs))
	for _, pid := range c.PlotIDs {
		plotIDs = append(plotIDs, pid.String())
	}
	return CycleResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Product:   c.Product,
		Active:    c.Active,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		PlotIDs:   plotIDs,
	}
}

// CycleListRequest contains query parameters for listing cycles.
type CycleListRequest struct {
	// Active filters by cycle state; when omitted all cycles are returned.
	Active *bool `form:"active"`
}

// CycleListResponse wraps a cycle listing.
type CycleListResponse struct {
	Data []CycleResponse `json:"data"`
}

// FromCycles creates CycleListResponse from a slice of cycles.
func FromCycles(cycles []cycle.Cycle) CycleListResponse {
	data := make([]CycleResponse, 0, len(cycles))
	for _, c := range cycles {
		data = append(data, FromCycle(c))
	}
	return CycleListResponse{Data: data}
}
