// Package dashboard_repo provides the PostgreSQL implementation of the
// dashboard raw data fetchers. Every query is read-only and scoped by
// company id; cycle-linked tables additionally filter by cycle id set,
// date-only tables by the optional period.
package dashboard_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"agroplan/internal/core/id"
	"agroplan/internal/domain/dashboard"
)

var tracer = otel.Tracer("agroplan/dashboard_repo")

// Compile-time check that DashboardRepo implements dashboard.Repository.
var _ dashboard.Repository = (*DashboardRepo)(nil)

// DashboardRepo implements dashboard.Repository.
type DashboardRepo struct {
	pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewDashboardRepo creates a new dashboard repository.
func NewDashboardRepo(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// startSpan opens a span per fetch so slow report queries show up in traces.
func (r *DashboardRepo) startSpan(ctx context.Context, name string, companyID id.ID) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("company.id", companyID.String()),
		),
	)
}

// recordErr marks the span failed and wraps the error with the operation.
func recordErr(span trace.Span, op string, err error) error {
	span.RecordError(err)
	return fmt.Errorf("%s: %w", op, err)
}

// cycleScoped adds the cycle filter when a cycle id set is given.
func cycleScoped(q squirrel.SelectBuilder, cycleIDs []id.ID) squirrel.SelectBuilder {
	if len(cycleIDs) > 0 {
		q = q.Where(squirrel.Eq{"cycle_id": cycleIDs})
	}
	return q
}

// dateScoped adds the inclusive date-range filter when a period is given.
// A nil period means company-wide totals; this is the single-cycle
// asymmetry the scope resolver encodes.
func dateScoped(q squirrel.SelectBuilder, column string, p *dashboard.Period) squirrel.SelectBuilder {
	if p == nil {
		return q
	}
	return q.Where(squirrel.GtOrEq{column: p.Start}).Where(squirrel.LtOrEq{column: p.End})
}

// EntityCounts returns the entity counts for the counts section.
func (r *DashboardRepo) EntityCounts(ctx context.Context, companyID id.ID) (dashboard.EntityCounts, error) {
	ctx, span := r.startSpan(ctx, "dashboard.EntityCounts", companyID)
	defer span.End()

	const query = `
		SELECT
			(SELECT COUNT(*) FROM plots WHERE company_id = $1) AS plots,
			(SELECT COUNT(*) FROM machines WHERE company_id = $1) AS machines,
			(SELECT COUNT(*) FROM varieties WHERE company_id = $1) AS varieties
	`
	var counts dashboard.EntityCounts
	if err := r.pool.QueryRow(ctx, query, companyID).Scan(&counts.Plots, &counts.Machines, &counts.Varieties); err != nil {
		return dashboard.EntityCounts{}, recordErr(span, "entity counts", err)
	}
	return counts, nil
}
