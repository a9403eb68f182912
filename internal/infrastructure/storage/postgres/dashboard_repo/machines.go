package dashboard_repo

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"agroplan/internal/core/id"
	"agroplan/internal/domain/dashboard"
)

// FuelVolumeByMachine returns refueled liters grouped by machine.
func (r *DashboardRepo) FuelVolumeByMachine(ctx context.Context, companyID id.ID, period *dashboard.Period) ([]dashboard.MachineAmount, error) {
	ctx, span := r.startSpan(ctx, "dashboard.FuelVolumeByMachine", companyID)
	defer span.End()

	rows, err := r.machineSums(ctx, "refuels", "volume_liters", "refuel_date", companyID, period)
	if err != nil {
		return nil, recordErr(span, "fuel volume by machine", err)
	}
	return rows, nil
}

// MaintenanceByMachine returns maintenance spend grouped by machine.
func (r *DashboardRepo) MaintenanceByMachine(ctx context.Context, companyID id.ID, period *dashboard.Period) ([]dashboard.MachineAmount, error) {
	ctx, span := r.startSpan(ctx, "dashboard.MaintenanceByMachine", companyID)
	defer span.End()

	rows, err := r.machineSums(ctx, "maintenances", "cost", "maintenance_date", companyID, period)
	if err != nil {
		return nil, recordErr(span, "maintenance by machine", err)
	}
	return rows, nil
}

func (r *DashboardRepo) machineSums(ctx context.Context, table, valueColumn, dateColumn string, companyID id.ID, period *dashboard.Period) ([]dashboard.MachineAmount, error) {
	q := r.builder.
		Select("machine_id", "SUM("+valueColumn+") AS amount").
		From(table).
		Where(squirrel.Eq{"company_id": companyID}).
		GroupBy("machine_id")
	q = dateScoped(q, dateColumn, period)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []dashboard.MachineAmount
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// FuelPurchases returns the company-wide fuel purchase aggregate used to
// derive the average price per liter.
func (r *DashboardRepo) FuelPurchases(ctx context.Context, companyID id.ID, period *dashboard.Period) (dashboard.FuelTotals, error) {
	ctx, span := r.startSpan(ctx, "dashboard.FuelPurchases", companyID)
	defer span.End()

	q := r.builder.
		Select("SUM(volume_liters) AS volume_liters", "SUM(amount) AS spend").
		From("fuel_purchases").
		Where(squirrel.Eq{"company_id": companyID})
	q = dateScoped(q, "purchase_date", period)

	query, args, err := q.ToSql()
	if err != nil {
		return dashboard.FuelTotals{}, recordErr(span, "fuel purchases", err)
	}

	var totals dashboard.FuelTotals
	if err := pgxscan.Get(ctx, r.pool, &totals, query, args...); err != nil {
		return dashboard.FuelTotals{}, recordErr(span, "fuel purchases", err)
	}
	return totals, nil
}

// MachineNames resolves machine ids to display names.
func (r *DashboardRepo) MachineNames(ctx context.Context, companyID id.ID, machineIDs []id.ID) (map[id.ID]string, error) {
	ctx, span := r.startSpan(ctx, "dashboard.MachineNames", companyID)
	defer span.End()

	if len(machineIDs) == 0 {
		return map[id.ID]string{}, nil
	}

	query, args, err := r.builder.
		Select("id", "name").
		From("machines").
		Where(squirrel.Eq{"company_id": companyID, "id": machineIDs}).
		ToSql()
	if err != nil {
		return nil, recordErr(span, "machine names", err)
	}

	type machineName struct {
		ID   id.ID  `db:"id"`
		Name string `db:"name"`
	}
	var rows []machineName
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, recordErr(span, "machine names", err)
	}

	names := make(map[id.ID]string, len(rows))
	for _, m := range rows {
		names[m.ID] = m.Name
	}
	return names, nil
}

// RainfallStats returns summed rainfall and reading count for the scope.
func (r *DashboardRepo) RainfallStats(ctx context.Context, companyID id.ID, period *dashboard.Period) (dashboard.RainfallStats, error) {
	ctx, span := r.startSpan(ctx, "dashboard.RainfallStats", companyID)
	defer span.End()

	q := r.builder.
		Select("SUM(millimeters) AS total_millimeters", "COUNT(*) AS readings").
		From("rainfalls").
		Where(squirrel.Eq{"company_id": companyID})
	q = dateScoped(q, "reading_date", period)

	query, args, err := q.ToSql()
	if err != nil {
		return dashboard.RainfallStats{}, recordErr(span, "rainfall stats", err)
	}

	var stats dashboard.RainfallStats
	if err := pgxscan.Get(ctx, r.pool, &stats, query, args...); err != nil {
		return dashboard.RainfallStats{}, recordErr(span, "rainfall stats", err)
	}
	return stats, nil
}
