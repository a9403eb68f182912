// Package cycle provides the production-cycle read model.
// A cycle is a bounded production campaign (start/end date, product)
// that scopes most operational records.
package cycle

import (
	"time"

	"agroplan/internal/core/id"
)

// Cycle represents a production campaign for one company.
type Cycle struct {
	ID        id.ID     `json:"id" db:"id"`
	CompanyID id.ID     `json:"companyId" db:"company_id"`
	Name      string    `json:"name" db:"name"`
	Product   string    `json:"product" db:"product"`
	Active    bool      `json:"active" db:"active"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`

	// Plots planted under this cycle.
	PlotIDs []id.ID `json:"plotIds" db:"-"`
}
