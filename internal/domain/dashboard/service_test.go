package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"agroplan/internal/core/apperror"
	"agroplan/internal/core/id"
	"agroplan/internal/domain/cycle"
)

// --- Mocks ---

type mockCycleRepo struct {
	cycles []cycle.Cycle
	err    error
}

func (m *mockCycleRepo) GetByID(ctx context.Context, companyID, cycleID id.ID) (*cycle.Cycle, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.cycles {
		if c.ID == cycleID && c.CompanyID == companyID {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (m *mockCycleRepo) ListActive(ctx context.Context, companyID id.ID) ([]cycle.Cycle, error) {
	if m.err != nil {
		return nil, m.err
	}
	active := make([]cycle.Cycle, 0)
	for _, c := range m.cycles {
		if c.CompanyID == companyID && c.Active {
			active = append(active, c)
		}
	}
	return active, nil
}

func (m *mockCycleRepo) List(ctx context.Context, companyID id.ID) ([]cycle.Cycle, error) {
	return m.cycles, m.err
}

// mockDataRepo records the scope arguments each fetcher saw and serves
// canned data.
type mockDataRepo struct {
	grainHarvest []ProductAmount
	seedHarvest  []ProductAmount
	plots        []PlotProduction
	seedStocks   []VarietyStock
	inputStocks  []InputStock
	fuelTanks    []FuelTank
	grainSales   ChannelTotal
	seedSales    ChannelTotal
	fuelByMach   []MachineAmount
	maintByMach  []MachineAmount
	fuelTotals   FuelTotals
	accounts     []AccountTotal
	machineNames map[id.ID]string

	failOn string // fetcher name that returns an error

	seenCycleIDs map[string][]id.ID
	seenPeriods  map[string]*Period
}

func newMockDataRepo() *mockDataRepo {
	return &mockDataRepo{
		machineNames: map[id.ID]string{},
		seenCycleIDs: map[string][]id.ID{},
		seenPeriods:  map[string]*Period{},
	}
}

var errFetch = errors.New("fetch failed")

func (m *mockDataRepo) fail(name string) error {
	if m.failOn == name {
		return errFetch
	}
	return nil
}

func (m *mockDataRepo) EntityCounts(ctx context.Context, companyID id.ID) (EntityCounts, error) {
	return EntityCounts{Plots: 3, Machines: 2, Varieties: 1}, m.fail("EntityCounts")
}

func (m *mockDataRepo) PlotProduction(ctx context.Context, companyID id.ID, cycleIDs []id.ID) ([]PlotProduction, error) {
	m.seenCycleIDs["PlotProduction"] = cycleIDs
	return m.plots, m.fail("PlotProduction")
}

func (m *mockDataRepo) GrainHarvestByProduct(ctx context.Context, companyID id.ID, cycleIDs []id.ID) ([]ProductAmount, error) {
	m.seenCycleIDs["GrainHarvestByProduct"] = cycleIDs
	return m.grainHarvest, m.fail("GrainHarvestByProduct")
}

func (m *mockDataRepo) SeedHarvestByProduct(ctx context.Context, companyID id.ID, cycleIDs []id.ID) ([]ProductAmount, error) {
	m.seenCycleIDs["SeedHarvestByProduct"] = cycleIDs
	return m.seedHarvest, m.fail("SeedHarvestByProduct")
}

func (m *mockDataRepo) ProcessedByProduct(ctx context.Context, companyID id.ID, cycleIDs []id.ID) ([]ProductAmount, error) {
	m.seenCycleIDs["ProcessedByProduct"] = cycleIDs
	return nil, m.fail("ProcessedByProduct")
}

func (m *mockDataRepo) GrainStocks(ctx context.Context, companyID id.ID) ([]GrainStock, error) {
	return nil, m.fail("GrainStocks")
}

func (m *mockDataRepo) SeedStocks(ctx context.Context, companyID id.ID) ([]VarietyStock, error) {
	return m.seedStocks, m.fail("SeedStocks")
}

func (m *mockDataRepo) InputStocks(ctx context.Context, companyID id.ID) ([]InputStock, error) {
	return m.inputStocks, m.fail("InputStocks")
}

func (m *mockDataRepo) FuelTanks(ctx context.Context, companyID id.ID) ([]FuelTank, error) {
	return m.fuelTanks, m.fail("FuelTanks")
}

func (m *mockDataRepo) GrainSales(ctx context.Context, companyID id.ID, cycleIDs []id.ID) (ChannelTotal, error) {
	m.seenCycleIDs["GrainSales"] = cycleIDs
	return m.grainSales, m.fail("GrainSales")
}

func (m *mockDataRepo) SeedSales(ctx context.Context, companyID id.ID, cycleIDs []id.ID) (ChannelTotal, error) {
	m.seenCycleIDs["SeedSales"] = cycleIDs
	return m.seedSales, m.fail("SeedSales")
}

func (m *mockDataRepo) InputPurchaseSpend(ctx context.Context, companyID id.ID, period *Period) (*float64, error) {
	m.seenPeriods["InputPurchaseSpend"] = period
	return nil, m.fail("InputPurchaseSpend")
}

func (m *mockDataRepo) GeneralExpenseSpend(ctx context.Context, companyID id.ID, period *Period) (*float64, error) {
	m.seenPeriods["GeneralExpenseSpend"] = period
	return nil, m.fail("GeneralExpenseSpend")
}

func (m *mockDataRepo) FuelVolumeByMachine(ctx context.Context, companyID id.ID, period *Period) ([]MachineAmount, error) {
	m.seenPeriods["FuelVolumeByMachine"] = period
	return m.fuelByMach, m.fail("FuelVolumeByMachine")
}

func (m *mockDataRepo) MaintenanceByMachine(ctx context.Context, companyID id.ID, period *Period) ([]MachineAmount, error) {
	m.seenPeriods["MaintenanceByMachine"] = period
	return m.maintByMach, m.fail("MaintenanceByMachine")
}

func (m *mockDataRepo) FuelPurchases(ctx context.Context, companyID id.ID, period *Period) (FuelTotals, error) {
	m.seenPeriods["FuelPurchases"] = period
	return m.fuelTotals, m.fail("FuelPurchases")
}

func (m *mockDataRepo) MachineNames(ctx context.Context, companyID id.ID, machineIDs []id.ID) (map[id.ID]string, error) {
	return m.machineNames, m.fail("MachineNames")
}

func (m *mockDataRepo) AccountTotals(ctx context.Context, companyID id.ID) ([]AccountTotal, error) {
	return m.accounts, m.fail("AccountTotals")
}

func (m *mockDataRepo) AccountsDueBetween(ctx context.Context, companyID id.ID, from, to time.Time) ([]AccountDue, error) {
	return nil, m.fail("AccountsDueBetween")
}

func (m *mockDataRepo) OverdueAccountCount(ctx context.Context, companyID id.ID, asOf time.Time) (int, error) {
	return 0, m.fail("OverdueAccountCount")
}

func (m *mockDataRepo) RainfallStats(ctx context.Context, companyID id.ID, period *Period) (RainfallStats, error) {
	m.seenPeriods["RainfallStats"] = period
	return RainfallStats{}, m.fail("RainfallStats")
}

// --- Tests ---

func testCycle(companyID id.ID, active bool) cycle.Cycle {
	return cycle.Cycle{
		ID:        id.New(),
		CompanyID: companyID,
		Name:      "Safra",
		Product:   "soybean",
		Active:    active,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildReport_UnknownCycleIsNotFound(t *testing.T) {
	companyID := id.New()
	svc := NewService(&mockCycleRepo{}, newMockDataRepo())

	missing := id.New()
	report, err := svc.BuildReport(context.Background(), companyID, &missing, DefaultConfig())

	if report != nil {
		t.Fatal("no report must be returned on scope failure")
	}
	if !apperror.IsNotFound(err) {
		t.Fatalf("want NOT_FOUND, got %v", err)
	}
}

func TestBuildReport_CrossCompanyCycleIsNotFound(t *testing.T) {
	companyID := id.New()
	other := testCycle(id.New(), true) // belongs to a different company
	svc := NewService(&mockCycleRepo{cycles: []cycle.Cycle{other}}, newMockDataRepo())

	report, err := svc.BuildReport(context.Background(), companyID, &other.ID, DefaultConfig())

	if report != nil {
		t.Fatal("cross-company cycle must not produce a report")
	}
	if !apperror.IsNotFound(err) {
		t.Fatalf("want NOT_FOUND, got %v", err)
	}
}

func TestBuildReport_ScopeResolutionFailureIsInternal(t *testing.T) {
	svc := NewService(&mockCycleRepo{err: errors.New("db down")}, newMockDataRepo())

	_, err := svc.BuildReport(context.Background(), id.New(), nil, DefaultConfig())

	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInternal {
		t.Fatalf("want INTERNAL_ERROR, got %v", err)
	}
}

func TestBuildReport_SingleCycleDerivesPeriod(t *testing.T) {
	companyID := id.New()
	c := testCycle(companyID, true)
	data := newMockDataRepo()
	svc := NewService(&mockCycleRepo{cycles: []cycle.Cycle{c}}, data)

	report, err := svc.BuildReport(context.Background(), companyID, &c.ID, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.Scope.HasSingleCycle {
		t.Error("single explicit cycle must mark the scope")
	}
	if report.Scope.Period == nil {
		t.Fatal("single-cycle scope must derive a period")
	}
	if !report.Scope.Period.Start.Equal(c.StartDate) || !report.Scope.Period.End.Equal(c.EndDate) {
		t.Errorf("period must mirror the cycle dates, got %+v", report.Scope.Period)
	}

	// Cycle-linked fetchers receive the id set.
	for _, name := range []string{"PlotProduction", "GrainHarvestByProduct", "SeedHarvestByProduct", "ProcessedByProduct", "GrainSales", "SeedSales"} {
		ids := data.seenCycleIDs[name]
		if len(ids) != 1 || ids[0] != c.ID {
			t.Errorf("%s: want cycle id filter, got %v", name, ids)
		}
	}

	// Date-only fetchers receive the derived period.
	for _, name := range []string{"InputPurchaseSpend", "GeneralExpenseSpend", "FuelVolumeByMachine", "MaintenanceByMachine", "FuelPurchases", "RainfallStats"} {
		p := data.seenPeriods[name]
		if p == nil {
			t.Errorf("%s: want the derived period, got nil", name)
			continue
		}
		if !p.Start.Equal(c.StartDate) || !p.End.Equal(c.EndDate) {
			t.Errorf("%s: period mismatch: %+v", name, p)
		}
	}
}

func TestBuildReport_MultipleActiveCyclesNoPeriod(t *testing.T) {
	companyID := id.New()
	c1 := testCycle(companyID, true)
	c2 := testCycle(companyID, true)
	inactive := testCycle(companyID, false)
	data := newMockDataRepo()
	svc := NewService(&mockCycleRepo{cycles: []cycle.Cycle{c1, c2, inactive}}, data)

	report, err := svc.BuildReport(context.Background(), companyID, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Scope.HasSingleCycle {
		t.Error("two active cycles must not mark a single-cycle scope")
	}
	if report.Scope.Period != nil {
		t.Error("date-only collections must stay company-wide with many cycles in scope")
	}
	if report.Counts.ActiveCycles != 2 {
		t.Errorf("inactive cycles must not count, got %d", report.Counts.ActiveCycles)
	}
	if ids := data.seenCycleIDs["GrainHarvestByProduct"]; len(ids) != 2 {
		t.Errorf("cycle-linked fetchers still filter by the active set, got %v", ids)
	}
	if p := data.seenPeriods["RainfallStats"]; p != nil {
		t.Errorf("want nil period, got %+v", p)
	}
}

func TestBuildReport_NoActiveCyclesCompanyWide(t *testing.T) {
	companyID := id.New()
	data := newMockDataRepo()
	svc := NewService(&mockCycleRepo{}, data)

	report, err := svc.BuildReport(context.Background(), companyID, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Scope.Period != nil {
		t.Error("no cycles in scope must leave the period nil")
	}
	if ids := data.seenCycleIDs["GrainSales"]; len(ids) != 0 {
		t.Errorf("no cycle filter expected, got %v", ids)
	}
}

func TestBuildReport_FetchFailureAbortsWholeReport(t *testing.T) {
	companyID := id.New()
	data := newMockDataRepo()
	data.failOn = "SeedStocks"
	svc := NewService(&mockCycleRepo{}, data)

	report, err := svc.BuildReport(context.Background(), companyID, nil, DefaultConfig())

	if report != nil {
		t.Fatal("a failed fetch must never yield a partial report")
	}
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInternal {
		t.Fatalf("want INTERNAL_ERROR, got %v", err)
	}
	if !errors.Is(err, errFetch) {
		t.Error("the cause must stay wrapped for logging")
	}
}

func TestBuildReport_MergesHarvestPipelines(t *testing.T) {
	companyID := id.New()
	data := newMockDataRepo()
	data.grainHarvest = []ProductAmount{{Product: "soybean", Quantity: fptr(100)}}
	data.seedHarvest = []ProductAmount{
		{Product: "soybean", Quantity: fptr(50)},
		{Product: "wheat", Quantity: fptr(30)},
	}
	svc := NewService(&mockCycleRepo{}, data)

	report, err := svc.BuildReport(context.Background(), companyID, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Production.ByProduct) != 2 {
		t.Fatalf("want 2 products, got %d", len(report.Production.ByProduct))
	}
	soy := report.Production.ByProduct[0]
	if soy.Product != "soybean" || soy.Total != 150 {
		t.Errorf("merged soybean total: want 150, got %+v", soy)
	}
	// The per-pipeline figures survive the merge.
	if len(soy.Sources) != 2 {
		t.Fatalf("want grain+seed sources, got %+v", soy.Sources)
	}
	if soy.Sources[0].Source != SourceGrain || soy.Sources[0].Amount != 100 {
		t.Errorf("grain source: got %+v", soy.Sources[0])
	}
	if soy.Sources[1].Source != SourceSeed || soy.Sources[1].Amount != 50 {
		t.Errorf("seed source: got %+v", soy.Sources[1])
	}
	if report.Production.GrainTotal != 100 || report.Production.SeedTotal != 80 {
		t.Errorf("pipeline totals: got grain=%v seed=%v", report.Production.GrainTotal, report.Production.SeedTotal)
	}
	if report.Production.Total != 180 {
		t.Errorf("grand total: want 180, got %v", report.Production.Total)
	}
}

func TestBuildReport_MachineNamesResolved(t *testing.T) {
	companyID := id.New()
	machineID := id.New()
	data := newMockDataRepo()
	data.fuelByMach = []MachineAmount{{MachineID: machineID, Amount: fptr(100)}}
	data.fuelTotals = FuelTotals{VolumeLiters: fptr(1000), Spend: fptr(6000)}
	data.machineNames = map[id.ID]string{machineID: "Trator 6110J"}
	svc := NewService(&mockCycleRepo{}, data)

	report, err := svc.BuildReport(context.Background(), companyID, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Operations.Machines) != 1 {
		t.Fatalf("want 1 machine, got %d", len(report.Operations.Machines))
	}
	m := report.Operations.Machines[0]
	if m.Name != "Trator 6110J" {
		t.Errorf("name must be resolved in the second round, got %q", m.Name)
	}
	// 100 liters at the 6.0 average price.
	if m.FuelCost != 600 {
		t.Errorf("fuel cost: want 600, got %v", m.FuelCost)
	}
}

func TestBuildReport_FinancialOpenTotals(t *testing.T) {
	companyID := id.New()
	data := newMockDataRepo()
	data.accounts = []AccountTotal{
		{Kind: "payable", Status: AccountPending, Total: fptr(100)},
		{Kind: "payable", Status: AccountOverdue, Total: fptr(50)},
		{Kind: "payable", Status: AccountPaid, Total: fptr(999)},
		{Kind: "receivable", Status: AccountPending, Total: fptr(80)},
	}
	svc := NewService(&mockCycleRepo{}, data)

	report, err := svc.BuildReport(context.Background(), companyID, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Financial.PayableOpen != 150 {
		t.Errorf("payable open = pending + overdue: want 150, got %v", report.Financial.PayableOpen)
	}
	if report.Financial.ReceivableOpen != 80 {
		t.Errorf("receivable open: want 80, got %v", report.Financial.ReceivableOpen)
	}
	if len(report.Financial.ByStatus) != 4 {
		t.Errorf("want 4 status rows, got %d", len(report.Financial.ByStatus))
	}
}

func TestBuildReport_ZeroRevenueMarginUndefined(t *testing.T) {
	companyID := id.New()
	data := newMockDataRepo()
	svc := NewService(&mockCycleRepo{}, data)

	report, err := svc.BuildReport(context.Background(), companyID, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Commercial.MarginPercent.Valid {
		t.Error("zero revenue must keep the margin undefined, never zero")
	}
}

func TestBuildReport_RoundsToTwoDecimals(t *testing.T) {
	companyID := id.New()
	data := newMockDataRepo()
	data.grainSales = ChannelTotal{Quantity: fptr(10), Amount: fptr(100)}
	data.seedSales = ChannelTotal{Quantity: fptr(0), Amount: fptr(0)}
	data.grainHarvest = []ProductAmount{{Product: "soybean", Quantity: fptr(33.3333333)}}
	svc := NewService(&mockCycleRepo{}, data)

	report, err := svc.BuildReport(context.Background(), companyID, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := report.Production.GrainTotal; got != 33.33 {
		t.Errorf("grain total must round to 2 decimals: got %v", got)
	}
	// margin = (100 - 0) / 100 = 100% exactly after scaling.
	if got := report.Commercial.MarginPercent; !got.Valid || got.Value != 100 {
		t.Errorf("margin percent: want 100, got %+v", got)
	}
}

func TestBuildReport_StockAlertsApplied(t *testing.T) {
	companyID := id.New()
	data := newMockDataRepo()
	data.seedStocks = []VarietyStock{
		{VarietyName: "low", Quantity: fptr(80)},
		{VarietyName: "fine", Quantity: fptr(400)},
	}
	data.inputStocks = []InputStock{
		{Name: "empty", Quantity: fptr(0)},
		{Name: "low", Quantity: fptr(10)},
	}
	data.fuelTanks = []FuelTank{
		{Name: "critical", CapacityLiters: 10000, CurrentLiters: 500},
	}
	svc := NewService(&mockCycleRepo{}, data)

	report, err := svc.BuildReport(context.Background(), companyID, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alerts := report.Stocks.Alerts
	if len(alerts.LowSeedStock) != 1 || alerts.LowSeedStock[0].Variety != "low" {
		t.Errorf("low seed stock: got %+v", alerts.LowSeedStock)
	}
	if len(alerts.OutOfStockInputs) != 1 || alerts.OutOfStockInputs[0].Name != "empty" {
		t.Errorf("out of stock: got %+v", alerts.OutOfStockInputs)
	}
	if len(alerts.LowInputStock) != 1 || alerts.LowInputStock[0].Name != "low" {
		t.Errorf("low input stock: got %+v", alerts.LowInputStock)
	}
	if len(alerts.LowFuelTanks) != 1 || alerts.LowFuelTanks[0].Name != "critical" {
		t.Errorf("low fuel: got %+v", alerts.LowFuelTanks)
	}
	if !alerts.LowFuelTanks[0].FillPercent.Valid || alerts.LowFuelTanks[0].FillPercent.Value != 5 {
		t.Errorf("fill percent: want 5, got %+v", alerts.LowFuelTanks[0].FillPercent)
	}
}
