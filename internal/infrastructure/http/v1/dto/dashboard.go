package dto

// DashboardRequest contains query parameters for the dashboard report.
type DashboardRequest struct {
	// CycleID narrows the report to one production cycle.
	// When omitted the report covers all active cycles.
	CycleID *string `form:"cycleId"`
}
