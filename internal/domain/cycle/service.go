package cycle

import (
	"context"
	"fmt"

	"agroplan/internal/core/apperror"
	"agroplan/internal/core/id"
)

// Service provides production-cycle read operations.
type Service struct {
	repo Repository
}

// NewService creates a new cycle service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns one cycle scoped to the company.
func (s *Service) Get(ctx context.Context, companyID, cycleID id.ID) (*Cycle, error) {
	c, err := s.repo.GetByID(ctx, companyID, cycleID)
	if err != nil {
		return nil, fmt.Errorf("get cycle: %w", err)
	}
	if c == nil {
		return nil, apperror.NewNotFound("cycle", cycleID)
	}
	return c, nil
}

// List returns all cycles for the company.
func (s *Service) List(ctx context.Context, companyID id.ID) ([]Cycle, error) {
	cycles, err := s.repo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	return cycles, nil
}

// ListActive returns currently-active cycles for the company.
func (s *Service) ListActive(ctx context.Context, companyID id.ID) ([]Cycle, error) {
	cycles, err := s.repo.ListActive(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list active cycles: %w", err)
	}
	return cycles, nil
}
