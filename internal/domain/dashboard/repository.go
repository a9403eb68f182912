package dashboard

import (
	"context"
	"time"

	"agroplan/internal/core/id"
)

// Repository is the raw data fetcher surface the engine reads from.
//
// Cycle-linked collections take a cycle id set; an empty set means no
// cycle filter. Date-only collections (refuels, maintenance, fuel
// purchases, rainfall, expenses) take an optional period; a nil period
// means company-wide totals. The engine never issues writes.
type Repository interface {
	// Counts
	EntityCounts(ctx context.Context, companyID id.ID) (EntityCounts, error)

	// Production (cycle-linked)
	PlotProduction(ctx context.Context, companyID id.ID, cycleIDs []id.ID) ([]PlotProduction, error)
	GrainHarvestByProduct(ctx context.Context, companyID id.ID, cycleIDs []id.ID) ([]ProductAmount, error)
	SeedHarvestByProduct(ctx context.Context, companyID id.ID, cycleIDs []id.ID) ([]ProductAmount, error)
	ProcessedByProduct(ctx context.Context, companyID id.ID, cycleIDs []id.ID) ([]ProductAmount, error)

	// Stock snapshots (always company-wide)
	GrainStocks(ctx context.Context, companyID id.ID) ([]GrainStock, error)
	SeedStocks(ctx context.Context, companyID id.ID) ([]VarietyStock, error)
	InputStocks(ctx context.Context, companyID id.ID) ([]InputStock, error)
	FuelTanks(ctx context.Context, companyID id.ID) ([]FuelTank, error)

	// Commercial (sales are cycle-linked, spend is date-only)
	GrainSales(ctx context.Context, companyID id.ID, cycleIDs []id.ID) (ChannelTotal, error)
	SeedSales(ctx context.Context, companyID id.ID, cycleIDs []id.ID) (ChannelTotal, error)
	InputPurchaseSpend(ctx context.Context, companyID id.ID, period *Period) (*float64, error)
	GeneralExpenseSpend(ctx context.Context, companyID id.ID, period *Period) (*float64, error)

	// Machines and fuel (date-only)
	FuelVolumeByMachine(ctx context.Context, companyID id.ID, period *Period) ([]MachineAmount, error)
	MaintenanceByMachine(ctx context.Context, companyID id.ID, period *Period) ([]MachineAmount, error)
	FuelPurchases(ctx context.Context, companyID id.ID, period *Period) (FuelTotals, error)

	// Second fetch round: resolve machine ids discovered in the first
	// round to display names.
	MachineNames(ctx context.Context, companyID id.ID, machineIDs []id.ID) (map[id.ID]string, error)

	// Accounts (company-wide)
	AccountTotals(ctx context.Context, companyID id.ID) ([]AccountTotal, error)
	AccountsDueBetween(ctx context.Context, companyID id.ID, from, to time.Time) ([]AccountDue, error)
	OverdueAccountCount(ctx context.Context, companyID id.ID, asOf time.Time) (int, error)

	// Rainfall (date-only)
	RainfallStats(ctx context.Context, companyID id.ID, period *Period) (RainfallStats, error)
}
