package dashboard_repo

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"agroplan/internal/core/id"
	"agroplan/internal/domain/dashboard"
)

// PlotProduction returns per-plot grain production joined with plot area
// and farm. When a cycle filter is active, only plots planted under the
// in-scope cycles are listed; unharvested plots show a NULL quantity.
func (r *DashboardRepo) PlotProduction(ctx context.Context, companyID id.ID, cycleIDs []id.ID) ([]dashboard.PlotProduction, error) {
	ctx, span := r.startSpan(ctx, "dashboard.PlotProduction", companyID)
	defer span.End()

	query := `
		SELECT
			p.id AS plot_id,
			p.name AS plot_name,
			f.id AS farm_id,
			f.name AS farm_name,
			p.hectares,
			SUM(h.quantity) AS quantity
		FROM plots p
		JOIN farms f ON p.farm_id = f.id
		LEFT JOIN grain_harvests h ON h.plot_id = p.id
	`
	args := []any{companyID}
	if len(cycleIDs) > 0 {
		query += ` AND h.cycle_id = ANY($2)
		WHERE p.company_id = $1
		  AND p.id IN (SELECT plot_id FROM cycle_plots WHERE cycle_id = ANY($2))`
		args = append(args, cycleIDs)
	} else {
		query += `
		WHERE p.company_id = $1`
	}
	query += `
		GROUP BY p.id, p.name, f.id, f.name, p.hectares
		ORDER BY p.name
	`

	var rows []dashboard.PlotProduction
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, recordErr(span, "plot production", err)
	}
	return rows, nil
}

// GrainHarvestByProduct returns the grain pipeline's harvested totals
// grouped by product.
func (r *DashboardRepo) GrainHarvestByProduct(ctx context.Context, companyID id.ID, cycleIDs []id.ID) ([]dashboard.ProductAmount, error) {
	ctx, span := r.startSpan(ctx, "dashboard.GrainHarvestByProduct", companyID)
	defer span.End()

	rows, err := r.productSums(ctx, "grain_harvests", companyID, cycleIDs)
	if err != nil {
		return nil, recordErr(span, "grain harvest by product", err)
	}
	return rows, nil
}

// SeedHarvestByProduct returns the seed pipeline's harvested totals
// grouped by product.
func (r *DashboardRepo) SeedHarvestByProduct(ctx context.Context, companyID id.ID, cycleIDs []id.ID) ([]dashboard.ProductAmount, error) {
	ctx, span := r.startSpan(ctx, "dashboard.SeedHarvestByProduct", companyID)
	defer span.End()

	rows, err := r.productSums(ctx, "seed_harvests", companyID, cycleIDs)
	if err != nil {
		return nil, recordErr(span, "seed harvest by product", err)
	}
	return rows, nil
}

// ProcessedByProduct returns beneficiated quantities grouped by product.
func (r *DashboardRepo) ProcessedByProduct(ctx context.Context, companyID id.ID, cycleIDs []id.ID) ([]dashboard.ProductAmount, error) {
	ctx, span := r.startSpan(ctx, "dashboard.ProcessedByProduct", companyID)
	defer span.End()

	rows, err := r.productSums(ctx, "beneficiations", companyID, cycleIDs)
	if err != nil {
		return nil, recordErr(span, "processed by product", err)
	}
	return rows, nil
}

// productSums is the shared grouped-sum query over a product-keyed table.
func (r *DashboardRepo) productSums(ctx context.Context, table string, companyID id.ID, cycleIDs []id.ID) ([]dashboard.ProductAmount, error) {
	q := r.builder.
		Select("product", "SUM(quantity) AS quantity").
		From(table).
		Where(squirrel.Eq{"company_id": companyID}).
		GroupBy("product").
		OrderBy("product")
	q = cycleScoped(q, cycleIDs)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []dashboard.ProductAmount
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}
