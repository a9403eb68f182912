package dashboard_repo

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"agroplan/internal/core/id"
	"agroplan/internal/domain/dashboard"
)

// GrainSales returns the grain channel's summed quantity and amount.
func (r *DashboardRepo) GrainSales(ctx context.Context, companyID id.ID, cycleIDs []id.ID) (dashboard.ChannelTotal, error) {
	ctx, span := r.startSpan(ctx, "dashboard.GrainSales", companyID)
	defer span.End()

	total, err := r.channelTotal(ctx, "grain_sales", companyID, cycleIDs)
	if err != nil {
		return dashboard.ChannelTotal{}, recordErr(span, "grain sales", err)
	}
	return total, nil
}

// SeedSales returns the seed channel's summed quantity and amount.
func (r *DashboardRepo) SeedSales(ctx context.Context, companyID id.ID, cycleIDs []id.ID) (dashboard.ChannelTotal, error) {
	ctx, span := r.startSpan(ctx, "dashboard.SeedSales", companyID)
	defer span.End()

	total, err := r.channelTotal(ctx, "seed_sales", companyID, cycleIDs)
	if err != nil {
		return dashboard.ChannelTotal{}, recordErr(span, "seed sales", err)
	}
	return total, nil
}

func (r *DashboardRepo) channelTotal(ctx context.Context, table string, companyID id.ID, cycleIDs []id.ID) (dashboard.ChannelTotal, error) {
	q := r.builder.
		Select("SUM(quantity) AS quantity", "SUM(amount) AS amount").
		From(table).
		Where(squirrel.Eq{"company_id": companyID})
	q = cycleScoped(q, cycleIDs)

	query, args, err := q.ToSql()
	if err != nil {
		return dashboard.ChannelTotal{}, err
	}

	var total dashboard.ChannelTotal
	if err := pgxscan.Get(ctx, r.pool, &total, query, args...); err != nil {
		return dashboard.ChannelTotal{}, err
	}
	return total, nil
}

// InputPurchaseSpend returns total input purchase spend, date-filtered
// only when a period is given.
func (r *DashboardRepo) InputPurchaseSpend(ctx context.Context, companyID id.ID, period *dashboard.Period) (*float64, error) {
	ctx, span := r.startSpan(ctx, "dashboard.InputPurchaseSpend", companyID)
	defer span.End()

	spend, err := r.sumAmount(ctx, "input_purchases", "purchase_date", companyID, period)
	if err != nil {
		return nil, recordErr(span, "input purchase spend", err)
	}
	return spend, nil
}

// GeneralExpenseSpend returns total general expense spend, date-filtered
// only when a period is given.
func (r *DashboardRepo) GeneralExpenseSpend(ctx context.Context, companyID id.ID, period *dashboard.Period) (*float64, error) {
	ctx, span := r.startSpan(ctx, "dashboard.GeneralExpenseSpend", companyID)
	defer span.End()

	spend, err := r.sumAmount(ctx, "general_expenses", "expense_date", companyID, period)
	if err != nil {
		return nil, recordErr(span, "general expense spend", err)
	}
	return spend, nil
}

func (r *DashboardRepo) sumAmount(ctx context.Context, table, dateColumn string, companyID id.ID, period *dashboard.Period) (*float64, error) {
	q := r.builder.
		Select("SUM(amount)").
		From(table).
		Where(squirrel.Eq{"company_id": companyID})
	q = dateScoped(q, dateColumn, period)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var total *float64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return nil, err
	}
	return total, nil
}

// AccountTotals returns summed amounts grouped by account kind and status.
func (r *DashboardRepo) AccountTotals(ctx context.Context, companyID id.ID) ([]dashboard.AccountTotal, error) {
	ctx, span := r.startSpan(ctx, "dashboard.AccountTotals", companyID)
	defer span.End()

	query, args, err := r.builder.
		Select("kind", "status", "SUM(amount) AS total").
		From("accounts").
		Where(squirrel.Eq{"company_id": companyID}).
		GroupBy("kind", "status").
		OrderBy("kind", "status").
		ToSql()
	if err != nil {
		return nil, recordErr(span, "account totals", err)
	}

	var rows []dashboard.AccountTotal
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, recordErr(span, "account totals", err)
	}
	return rows, nil
}

// AccountsDueBetween returns pending accounts due inside [from, to],
// soonest first.
func (r *DashboardRepo) AccountsDueBetween(ctx context.Context, companyID id.ID, from, to time.Time) ([]dashboard.AccountDue, error) {
	ctx, span := r.startSpan(ctx, "dashboard.AccountsDueBetween", companyID)
	defer span.End()

	query, args, err := r.builder.
		Select("id AS account_id", "kind", "counterparty", "amount", "due_date", "status").
		From("accounts").
		Where(squirrel.Eq{"company_id": companyID, "status": dashboard.AccountPending}).
		Where(squirrel.GtOrEq{"due_date": from}).
		Where(squirrel.LtOrEq{"due_date": to}).
		OrderBy("due_date").
		ToSql()
	if err != nil {
		return nil, recordErr(span, "accounts due", err)
	}

	var rows []dashboard.AccountDue
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, recordErr(span, "accounts due", err)
	}
	return rows, nil
}

// OverdueAccountCount counts pending-or-overdue accounts whose due date
// has passed.
func (r *DashboardRepo) OverdueAccountCount(ctx context.Context, companyID id.ID, asOf time.Time) (int, error) {
	ctx, span := r.startSpan(ctx, "dashboard.OverdueAccountCount", companyID)
	defer span.End()

	query, args, err := r.builder.
		Select("COUNT(*)").
		From("accounts").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"status": []string{dashboard.AccountPending, dashboard.AccountOverdue}}).
		Where(squirrel.Lt{"due_date": asOf}).
		ToSql()
	if err != nil {
		return 0, recordErr(span, "overdue count", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, recordErr(span, "overdue count", err)
	}
	return count, nil
}
