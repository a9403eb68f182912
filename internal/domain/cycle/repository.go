package cycle

import (
	"context"

	"agroplan/internal/core/id"
)

// Repository defines read access to production cycles.
// Every query is scoped to one company.
type Repository interface {
	// GetByID returns the cycle with the given id, or (nil, nil) when it
	// does not exist or belongs to another company.
	GetByID(ctx context.Context, companyID, cycleID id.ID) (*Cycle, error)

	// ListActive returns all currently-active cycles for the company.
	ListActive(ctx context.Context, companyID id.ID) ([]Cycle, error)

	// List returns all cycles for the company, newest first.
	List(ctx context.Context, companyID id.ID) ([]Cycle, error)
}
