package dashboard_repo

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"agroplan/internal/core/id"
	"agroplan/internal/domain/dashboard"
)

// GrainStocks returns all grain inventory positions for the company.
func (r *DashboardRepo) GrainStocks(ctx context.Context, companyID id.ID) ([]dashboard.GrainStock, error) {
	ctx, span := r.startSpan(ctx, "dashboard.GrainStocks", companyID)
	defer span.End()

	query, args, err := r.builder.
		Select("s.product", "s.farm_id", "f.name AS farm_name", "s.quantity", "s.unit").
		From("grain_stocks s").
		Join("farms f ON s.farm_id = f.id").
		Where(squirrel.Eq{"s.company_id": companyID}).
		OrderBy("s.product", "f.name").
		ToSql()
	if err != nil {
		return nil, recordErr(span, "grain stocks", err)
	}

	var rows []dashboard.GrainStock
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, recordErr(span, "grain stocks", err)
	}
	return rows, nil
}

// SeedStocks returns all seed inventory positions, one per variety.
func (r *DashboardRepo) SeedStocks(ctx context.Context, companyID id.ID) ([]dashboard.VarietyStock, error) {
	ctx, span := r.startSpan(ctx, "dashboard.SeedStocks", companyID)
	defer span.End()

	query, args, err := r.builder.
		Select("s.variety_id", "v.name AS variety_name", "v.product", "s.quantity", "s.unit", "s.updated_at").
		From("seed_stocks s").
		Join("varieties v ON s.variety_id = v.id").
		Where(squirrel.Eq{"s.company_id": companyID}).
		OrderBy("v.product", "v.name").
		ToSql()
	if err != nil {
		return nil, recordErr(span, "seed stocks", err)
	}

	var rows []dashboard.VarietyStock
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, recordErr(span, "seed stocks", err)
	}
	return rows, nil
}

// InputStocks returns all input (seeds, fertilizer, defensives...) positions.
func (r *DashboardRepo) InputStocks(ctx context.Context, companyID id.ID) ([]dashboard.InputStock, error) {
	ctx, span := r.startSpan(ctx, "dashboard.InputStocks", companyID)
	defer span.End()

	query, args, err := r.builder.
		Select("id AS input_id", "name", "category", "quantity", "unit", "updated_at").
		From("input_stocks").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("category", "name").
		ToSql()
	if err != nil {
		return nil, recordErr(span, "input stocks", err)
	}

	var rows []dashboard.InputStock
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, recordErr(span, "input stocks", err)
	}
	return rows, nil
}

// FuelTanks returns all fuel tank snapshots.
func (r *DashboardRepo) FuelTanks(ctx context.Context, companyID id.ID) ([]dashboard.FuelTank, error) {
	ctx, span := r.startSpan(ctx, "dashboard.FuelTanks", companyID)
	defer span.End()

	query, args, err := r.builder.
		Select("id AS tank_id", "name", "capacity_liters", "current_liters", "updated_at").
		From("fuel_tanks").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, recordErr(span, "fuel tanks", err)
	}

	var rows []dashboard.FuelTank
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, recordErr(span, "fuel tanks", err)
	}
	return rows, nil
}
