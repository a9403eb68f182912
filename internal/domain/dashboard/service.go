package dashboard

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"agroplan/internal/core/apperror"
	"agroplan/internal/core/id"
	"agroplan/internal/domain/cycle"
	"agroplan/pkg/logger"
)

// Service builds the operational dashboard report.
type Service struct {
	cycles cycle.Repository
	data   Repository
}

// NewService creates a new dashboard service.
func NewService(cycles cycle.Repository, data Repository) *Service {
	return &Service{cycles: cycles, data: data}
}

// fetchResult collects the first fan-out round. Each field is written by
// exactly one goroutine, so no locking is needed.
type fetchResult struct {
	counts         EntityCounts
	plots          []PlotProduction
	grainHarvest   []ProductAmount
	seedHarvest    []ProductAmount
	processed      []ProductAmount
	grainStocks    []GrainStock
	seedStocks     []VarietyStock
	inputStocks    []InputStock
	fuelTanks      []FuelTank
	grainSales     ChannelTotal
	seedSales      ChannelTotal
	inputSpend     *float64
	generalSpend   *float64
	fuelByMachine  []MachineAmount
	maintByMachine []MachineAmount
	fuelPurchases  FuelTotals
	accountTotals  []AccountTotal
	dueSoon        []AccountDue
	overdueCount   int
	rainfall       RainfallStats
}

// BuildReport computes the full dashboard for one company. A nil
// cycleID scopes the report to all active cycles. A fetch failure
// aborts the whole report; no partial result is ever returned.
func (s *Service) BuildReport(ctx context.Context, companyID id.ID, cycleID *id.ID, cfg Config) (*Report, error) {
	scope, err := s.resolveScope(ctx, companyID, cycleID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		logger.Error(ctx, "dashboard scope resolution failed",
			"company_id", companyID, "cycle_id", cycleID, "error", err)
		return nil, apperror.NewInternal(err)
	}

	now := time.Now()

	res, err := s.fetchAll(ctx, scope, cfg, now)
	if err != nil {
		logger.Error(ctx, "dashboard fetch failed",
			"company_id", companyID, "cycle_ids", scope.CycleIDs, "error", err)
		return nil, apperror.NewInternal(err)
	}

	c := s.compute(scope, cfg, res)

	// Second, smaller fan-out round: machine ids discovered in the usage
	// aggregates are resolved to names before the ranking is final.
	if err := s.resolveMachineNames(ctx, scope.CompanyID, c.machines); err != nil {
		logger.Error(ctx, "dashboard machine name resolution failed",
			"company_id", companyID, "cycle_ids", scope.CycleIDs, "error", err)
		return nil, apperror.NewInternal(err)
	}

	return assembleReport(scope, res, c), nil
}

// fetchAll issues every independent read concurrently and waits for all
// of them. The first error cancels the rest.
func (s *Service) fetchAll(ctx context.Context, scope *Scope, cfg Config, now time.Time) (*fetchResult, error) {
	res := &fetchResult{}
	companyID := scope.CompanyID
	cycleIDs := scope.CycleIDs
	period := scope.Period

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		res.counts, err = s.data.EntityCounts(gctx, companyID)
		return err
	})
	g.Go(func() (err error) {
		res.plots, err = s.data.PlotProduction(gctx, companyID, cycleIDs)
		return err
	})
	g.Go(func() (err error) {
		res.grainHarvest, err = s.data.GrainHarvestByProduct(gctx, companyID, cycleIDs)
		return err
	})
	g.Go(func() (err error) {
		res.seedHarvest, err = s.data.SeedHarvestByProduct(gctx, companyID, cycleIDs)
		return err
	})
	g.Go(func() (err error) {
		res.processed, err = s.data.ProcessedByProduct(gctx, companyID, cycleIDs)
		return err
	})
	g.Go(func() (err error) {
		res.grainStocks, err = s.data.GrainStocks(gctx, companyID)
		return err
	})
	g.Go(func() (err error) {
		res.seedStocks, err = s.data.SeedStocks(gctx, companyID)
		return err
	})
	g.Go(func() (err error) {
		res.inputStocks, err = s.data.InputStocks(gctx, companyID)
		return err
	})
	g.Go(func() (err error) {
		res.fuelTanks, err = s.data.FuelTanks(gctx, companyID)
		return err
	})
	g.Go(func() (err error) {
		res.grainSales, err = s.data.GrainSales(gctx, companyID, cycleIDs)
		return err
	})
	g.Go(func() (err error) {
		res.seedSales, err = s.data.SeedSales(gctx, companyID, cycleIDs)
		return err
	})
	g.Go(func() (err error) {
		res.inputSpend, err = s.data.InputPurchaseSpend(gctx, companyID, period)
		return err
	})
	g.Go(func() (err error) {
		res.generalSpend, err = s.data.GeneralExpenseSpend(gctx, companyID, period)
		return err
	})
	g.Go(func() (err error) {
		res.fuelByMachine, err = s.data.FuelVolumeByMachine(gctx, companyID, period)
		return err
	})
	g.Go(func() (err error) {
		res.maintByMachine, err = s.data.MaintenanceByMachine(gctx, companyID, period)
		return err
	})
	g.Go(func() (err error) {
		res.fuelPurchases, err = s.data.FuelPurchases(gctx, companyID, period)
		return err
	})
	g.Go(func() (err error) {
		res.accountTotals, err = s.data.AccountTotals(gctx, companyID)
		return err
	})
	g.Go(func() (err error) {
		res.dueSoon, err = s.data.AccountsDueBetween(gctx, companyID, now, now.Add(cfg.DueSoonWindow))
		return err
	})
	g.Go(func() (err error) {
		res.overdueCount, err = s.data.OverdueAccountCount(gctx, companyID, now)
		return err
	})
	g.Go(func() (err error) {
		res.rainfall, err = s.data.RainfallStats(gctx, companyID, period)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// computed holds every derived figure, still unrounded.
type computed struct {
	production    map[string]float64 // combined harvest by product
	grainTotals   map[string]float64
	seedTotals    map[string]float64
	processed     map[string]float64
	grainSum      float64
	seedSum       float64
	totalArea     float64
	plotYields    []PlotYieldFigure
	farmYields    []FarmYieldFigure
	tanks         []FuelTankFigure
	machines      []MachineCostFigure
	benefFigures  []BeneficiationFigure
	rainAvg       Ratio
	avgFuelPrice  Ratio
	fuelVolume    float64
	fuelSpend     float64
	maintSpend    float64
	revenue       float64
	expenses      float64
	margin        Ratio
	benefRate     Ratio

	accountTotals  map[string]map[string]float64 // kind -> status -> total
	payableOpen    float64
	receivableOpen float64

	lowSeedStock  []VarietyStock
	outOfStock    []InputStock
	lowInputStock []InputStock
	lowFuelTanks  []FuelTankFigure
	topPlots      []PlotYieldFigure
	bottomPlots   []PlotYieldFigure
	topFarms      []FarmYieldFigure
}

// compute runs the grouping, derived-metric and alerting layers over the
// fetched data.
func (s *Service) compute(scope *Scope, cfg Config, res *fetchResult) *computed {
	c := &computed{}

	// Two independently tracked pipelines merged into one total per
	// product: the primitive applied twice against the same accumulator.
	c.grainTotals = sumProductAmounts(nil, res.grainHarvest)
	c.seedTotals = sumProductAmounts(nil, res.seedHarvest)
	c.production = sumProductAmounts(nil, res.grainHarvest)
	c.production = sumProductAmounts(c.production, res.seedHarvest)
	c.processed = sumProductAmounts(nil, res.processed)

	for _, q := range c.grainTotals {
		c.grainSum += q
	}
	for _, q := range c.seedTotals {
		c.seedSum += q
	}

	c.plotYields = PlotYields(res.plots)
	c.farmYields = FarmYields(res.plots)
	for _, f := range c.farmYields {
		c.totalArea += f.Hectares
	}

	c.tanks = TankFill(res.fuelTanks)

	c.fuelVolume = orZero(res.fuelPurchases.VolumeLiters)
	c.fuelSpend = orZero(res.fuelPurchases.Spend)
	c.avgFuelPrice = SafeDiv(c.fuelSpend, c.fuelVolume)
	c.machines = MachineCosts(res.fuelByMachine, res.maintByMachine, c.avgFuelPrice)
	for _, m := range c.machines {
		c.maintSpend += m.MaintenanceCost
	}

	c.revenue = orZero(res.grainSales.Amount) + orZero(res.seedSales.Amount)
	c.expenses = orZero(res.inputSpend) + c.fuelSpend + c.maintSpend + orZero(res.generalSpend)
	c.margin = OperatingMargin(c.revenue, c.expenses)

	// Beneficiation rate is raw-pipeline only: processed over grain harvest.
	var harvested, processed float64
	for _, q := range c.grainTotals {
		harvested += q
	}
	for _, q := range c.processed {
		processed += q
	}
	c.benefRate = SafeDiv(processed, harvested)
	benefProducts := make([]string, 0, len(c.processed))
	for product := range c.processed {
		benefProducts = append(benefProducts, product)
	}
	sort.Strings(benefProducts)
	for _, product := range benefProducts {
		c.benefFigures = append(c.benefFigures, BeneficiationFigure{
			Product:   product,
			Harvested: c.grainTotals[product],
			Processed: c.processed[product],
			Rate:      SafeDiv(c.processed[product], c.grainTotals[product]),
		})
	}

	c.rainAvg = SafeDiv(orZero(res.rainfall.TotalMillimeters), float64(res.rainfall.Readings))

	c.accountTotals = make(map[string]map[string]float64)
	byKindStatus := SumByKey(nil, res.accountTotals,
		func(t AccountTotal) [2]string { return [2]string{t.Kind, t.Status} },
		func(t AccountTotal) *float64 { return t.Total },
	)
	for key, total := range byKindStatus {
		if c.accountTotals[key[0]] == nil {
			c.accountTotals[key[0]] = make(map[string]float64)
		}
		c.accountTotals[key[0]][key[1]] = total
		// "Open" covers everything still owed: pending plus overdue.
		if key[1] == AccountPending || key[1] == AccountOverdue {
			switch key[0] {
			case "payable":
				c.payableOpen += total
			case "receivable":
				c.receivableOpen += total
			}
		}
	}

	c.lowSeedStock = LowSeedStock(res.seedStocks, cfg.LowSeedStockThreshold, cfg.TopN)
	c.outOfStock = OutOfStockInputs(res.inputStocks, cfg.TopN)
	c.lowInputStock = LowInputStock(res.inputStocks, cfg.LowInputStockThreshold, cfg.TopN)
	c.lowFuelTanks = LowFuelTanks(c.tanks, cfg.LowFuelFillPercent)
	c.topPlots = TopPlotsByYield(c.plotYields, cfg.TopN)
	c.bottomPlots = BottomPlotsByYield(c.plotYields, cfg.TopN)
	c.topFarms = TopFarmsByYield(c.farmYields, cfg.TopN)

	return c
}

// resolveMachineNames fills in display names for the cost ranking.
func (s *Service) resolveMachineNames(ctx context.Context, companyID id.ID, machines []MachineCostFigure) error {
	if len(machines) == 0 {
		return nil
	}
	ids := make([]id.ID, 0, len(machines))
	for _, m := range machines {
		ids = append(ids, m.MachineID)
	}
	names, err := s.data.MachineNames(ctx, companyID, ids)
	if err != nil {
		return err
	}
	for i := range machines {
		machines[i].Name = names[machines[i].MachineID]
	}
	return nil
}
