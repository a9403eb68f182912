package dashboard

import (
	"context"
	"fmt"

	"agroplan/internal/core/apperror"
	"agroplan/internal/core/id"
	"agroplan/internal/domain/cycle"
)

// Scope is the resolved cycle selection every downstream fetch filters by.
type Scope struct {
	CompanyID id.ID
	Cycles    []cycle.Cycle
	CycleIDs  []id.ID

	// Period is derived from the cycle's start/end dates and set only
	// when exactly one cycle resolves. Date-only collections (refuels,
	// maintenance, fuel purchases, rainfall, expenses) are filtered by
	// it; with zero or many cycles in scope they stay company-wide.
	Period *Period
}

// HasSingleCycle reports whether exactly one cycle resolved.
func (s *Scope) HasSingleCycle() bool {
	return len(s.Cycles) == 1
}

// resolveScope turns (company, optional cycle id) into a concrete scope.
// An explicit cycle id that does not exist for the company fails with a
// not-found error before any data is fetched.
func (s *Service) resolveScope(ctx context.Context, companyID id.ID, cycleID *id.ID) (*Scope, error) {
	var cycles []cycle.Cycle

	if cycleID != nil {
		c, err := s.cycles.GetByID(ctx, companyID, *cycleID)
		if err != nil {
			return nil, fmt.Errorf("resolve cycle: %w", err)
		}
		if c == nil {
			return nil, apperror.NewNotFound("cycle", *cycleID)
		}
		cycles = []cycle.Cycle{*c}
	} else {
		active, err := s.cycles.ListActive(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("list active cycles: %w", err)
		}
		cycles = active
	}

	scope := &Scope{
		CompanyID: companyID,
		Cycles:    cycles,
		CycleIDs:  make([]id.ID, 0, len(cycles)),
	}
	for _, c := range cycles {
		scope.CycleIDs = append(scope.CycleIDs, c.ID)
	}
	if scope.HasSingleCycle() {
		scope.Period = &Period{Start: cycles[0].StartDate, End: cycles[0].EndDate}
	}
	return scope, nil
}
