// Package cycle_repo provides the PostgreSQL implementation of the
// production-cycle read model.
package cycle_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"agroplan/internal/core/id"
	"agroplan/internal/domain/cycle"
)

// CycleRepo implements cycle.Repository.
type CycleRepo struct {
	pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewCycleRepo creates a new cycle repository.
func NewCycleRepo(pool *pgxpool.Pool) *CycleRepo {
	return &CycleRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const cycleColumns = "id, company_id, name, product, active, start_date, end_date"

// GetByID returns the cycle or (nil, nil) when absent or cross-company.
func (r *CycleRepo) GetByID(ctx context.Context, companyID, cycleID id.ID) (*cycle.Cycle, error) {
	query, args, err := r.builder.
		Select(cycleColumns).
		From("cycles").
		Where(squirrel.Eq{"id": cycleID, "company_id": companyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cycle query: %w", err)
	}

	var cycles []cycle.Cycle
	if err := pgxscan.Select(ctx, r.pool, &cycles, query, args...); err != nil {
		return nil, fmt.Errorf("get cycle: %w", err)
	}
	if len(cycles) == 0 {
		return nil, nil
	}

	c := cycles[0]
	if err := r.loadPlotIDs(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListActive returns all active cycles for the company.
func (r *CycleRepo) ListActive(ctx context.Context, companyID id.ID) ([]cycle.Cycle, error) {
	return r.list(ctx, squirrel.Eq{"company_id": companyID, "active": true})
}

// List returns all cycles for the company, newest first.
func (r *CycleRepo) List(ctx context.Context, companyID id.ID) ([]cycle.Cycle, error) {
	return r.list(ctx, squirrel.Eq{"company_id": companyID})
}

func (r *CycleRepo) list(ctx context.Context, where squirrel.Eq) ([]cycle.Cycle, error) {
	query, args, err := r.builder.
		Select(cycleColumns).
		From("cycles").
		Where(where).
		OrderBy("start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cycles query: %w", err)
	}

	var cycles []cycle.Cycle
	if err := pgxscan.Select(ctx, r.pool, &cycles, query, args...); err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	for i := range cycles {
		if err := r.loadPlotIDs(ctx, &cycles[i]); err != nil {
			return nil, err
		}
	}
	return cycles, nil
}

func (r *CycleRepo) loadPlotIDs(ctx context.Context, c *cycle.Cycle) error {
	query, args, err := r.builder.
		Select("plot_id").
		From("cycle_plots").
		Where(squirrel.Eq{"cycle_id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build cycle plots query: %w", err)
	}

	var plotIDs []id.ID
	if err := pgxscan.Select(ctx, r.pool, &plotIDs, query, args...); err != nil {
		return fmt.Errorf("load cycle plots: %w", err)
	}
	c.PlotIDs = plotIDs
	return nil
}
