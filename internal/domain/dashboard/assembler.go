package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"
)

// round2 rounds to two decimals. This is the only place the engine
// rounds; everything upstream works with unrounded values.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// round2Ratio rounds a defined ratio, passing the sentinel through.
func round2Ratio(r Ratio) Ratio {
	if !r.Valid {
		return r
	}
	return Ratio{Valid: true, Value: round2(r.Value)}
}

// assembleReport composes the final nested report from the resolved
// scope, the fetched snapshots and the computed figures. It formats and
// places values; it never recomputes them.
func assembleReport(scope *Scope, res *fetchResult, c *computed) *Report {
	r := &Report{}

	// Scope
	r.Scope.Cycles = make([]CycleInfo, 0, len(scope.Cycles))
	for _, cy := range scope.Cycles {
		r.Scope.Cycles = append(r.Scope.Cycles, CycleInfo{
			ID:        cy.ID,
			Name:      cy.Name,
			Product:   cy.Product,
			Active:    cy.Active,
			StartDate: cy.StartDate,
			EndDate:   cy.EndDate,
		})
	}
	r.Scope.HasSingleCycle = scope.HasSingleCycle()
	r.Scope.Period = scope.Period

	// Counts
	r.Counts = CountsSection{
		ActiveCycles: len(scope.Cycles),
		Plots:        res.counts.Plots,
		Machines:     res.counts.Machines,
		Varieties:    res.counts.Varieties,
	}

	// Areas
	for _, f := range c.farmYields {
		r.Areas.ByFarm = append(r.Areas.ByFarm, FarmArea{
			FarmID:   f.FarmID,
			FarmName: f.FarmName,
			Hectares: round2(f.Hectares),
		})
	}
	r.Areas.TotalHectares = round2(c.totalArea)

	// Production
	products := make([]string, 0, len(c.production))
	for product := range c.production {
		products = append(products, product)
	}
	sort.Strings(products)
	for _, product := range products {
		entry := ProductProduction{Product: product, Total: round2(c.production[product])}
		if q, ok := c.grainTotals[product]; ok {
			entry.Sources = append(entry.Sources, SourceAmount{Source: SourceGrain, Amount: round2(q)})
		}
		if q, ok := c.seedTotals[product]; ok {
			entry.Sources = append(entry.Sources, SourceAmount{Source: SourceSeed, Amount: round2(q)})
		}
		r.Production.ByProduct = append(r.Production.ByProduct, entry)
	}
	r.Production.GrainTotal = round2(c.grainSum)
	r.Production.SeedTotal = round2(c.seedSum)
	r.Production.Total = round2(c.grainSum + c.seedSum)
	for _, b := range c.benefFigures {
		r.Production.Beneficiation = append(r.Production.Beneficiation, BeneficiationFigure{
			Product:   b.Product,
			Harvested: round2(b.Harvested),
			Processed: round2(b.Processed),
			Rate:      round2Ratio(b.Rate),
		})
	}

	// Stocks
	for _, s := range res.grainStocks {
		r.Stocks.Grain = append(r.Stocks.Grain, GrainStockEntry{
			Product:  s.Product,
			FarmName: s.FarmName,
			Quantity: round2(orZero(s.Quantity)),
			Unit:     s.Unit,
		})
	}
	r.Stocks.SeedByVariety = varietyEntries(res.seedStocks)
	r.Stocks.Inputs = inputEntries(res.inputStocks)
	r.Stocks.FuelTanks = tankEntries(c.tanks)
	r.Stocks.Alerts = StockAlerts{
		LowSeedStock:     varietyEntries(c.lowSeedStock),
		OutOfStockInputs: inputEntries(c.outOfStock),
		LowInputStock:    inputEntries(c.lowInputStock),
		LowFuelTanks:     tankEntries(c.lowFuelTanks),
	}

	// Operations
	for _, m := range c.machines {
		r.Operations.Machines = append(r.Operations.Machines, MachineCostEntry{
			MachineID:       m.MachineID,
			Name:            m.Name,
			FuelLiters:      round2(m.FuelLiters),
			FuelCost:        round2(m.FuelCost),
			MaintenanceCost: round2(m.MaintenanceCost),
			TotalCost:       round2(m.TotalCost),
		})
	}
	r.Operations.AverageFuelPricePerLiter = round2Ratio(c.avgFuelPrice)
	r.Operations.FuelVolumeLiters = round2(c.fuelVolume)
	r.Operations.FuelSpend = round2(c.fuelSpend)
	r.Operations.MaintenanceSpend = round2(c.maintSpend)
	r.Operations.Rainfall = RainfallInfo{
		TotalMillimeters:  round2(orZero(res.rainfall.TotalMillimeters)),
		Readings:          res.rainfall.Readings,
		AveragePerReading: round2Ratio(c.rainAvg),
	}

	// Commercial
	r.Commercial.Revenue = RevenueBreakdown{
		Grain: ChannelFigure{
			Quantity: round2(orZero(res.grainSales.Quantity)),
			Amount:   round2(orZero(res.grainSales.Amount)),
		},
		Seed: ChannelFigure{
			Quantity: round2(orZero(res.seedSales.Quantity)),
			Amount:   round2(orZero(res.seedSales.Amount)),
		},
		Total: round2(c.revenue),
	}
	r.Commercial.Expenses = ExpenseBreakdown{
		Inputs:      round2(orZero(res.inputSpend)),
		Fuel:        round2(c.fuelSpend),
		Maintenance: round2(c.maintSpend),
		General:     round2(orZero(res.generalSpend)),
		Total:       round2(c.expenses),
	}
	r.Commercial.Result = round2(c.revenue - c.expenses)
	r.Commercial.MarginPercent = round2Ratio(c.margin.Scale(100))

	// KPIs
	r.KPIs.TopPlots = plotYieldEntries(c.topPlots)
	r.KPIs.BottomPlots = plotYieldEntries(c.bottomPlots)
	for _, f := range c.topFarms {
		r.KPIs.TopFarms = append(r.KPIs.TopFarms, FarmYieldEntry{
			FarmID:          f.FarmID,
			FarmName:        f.FarmName,
			Hectares:        round2(f.Hectares),
			Production:      round2(f.Production),
			YieldPerHectare: round2(f.Yield.Or(0)),
		})
	}
	r.KPIs.BeneficiationRate = round2Ratio(c.benefRate)

	// Financial
	kinds := make([]string, 0, len(c.accountTotals))
	for kind := range c.accountTotals {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		statuses := make([]string, 0, len(c.accountTotals[kind]))
		for status := range c.accountTotals[kind] {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)
		for _, status := range statuses {
			r.Financial.ByStatus = append(r.Financial.ByStatus, AccountStatusTotal{
				Kind:   kind,
				Status: status,
				Total:  round2(c.accountTotals[kind][status]),
			})
		}
	}
	r.Financial.PayableOpen = round2(c.payableOpen)
	r.Financial.ReceivableOpen = round2(c.receivableOpen)
	for _, a := range res.dueSoon {
		r.Financial.DueSoon = append(r.Financial.DueSoon, AccountDueEntry{
			AccountID:    a.AccountID,
			Kind:         a.Kind,
			Counterparty: a.Counterparty,
			Amount:       round2(a.Amount),
			DueDate:      a.DueDate,
			Status:       a.Status,
		})
	}
	r.Financial.OverdueCount = res.overdueCount

	return r
}

func varietyEntries(stocks []VarietyStock) []VarietyStockEntry {
	entries := make([]VarietyStockEntry, 0, len(stocks))
	for _, s := range stocks {
		entries = append(entries, VarietyStockEntry{
			VarietyID: s.VarietyID,
			Variety:   s.VarietyName,
			Product:   s.Product,
			Quantity:  round2(orZero(s.Quantity)),
			Unit:      s.Unit,
		})
	}
	return entries
}

func inputEntries(stocks []InputStock) []InputStockEntry {
	entries := make([]InputStockEntry, 0, len(stocks))
	for _, s := range stocks {
		entries = append(entries, InputStockEntry{
			InputID:   s.InputID,
			Name:      s.Name,
			Category:  s.Category,
			Quantity:  round2(orZero(s.Quantity)),
			Unit:      s.Unit,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return entries
}

func tankEntries(tanks []FuelTankFigure) []FuelTankEntry {
	entries := make([]FuelTankEntry, 0, len(tanks))
	for _, t := range tanks {
		entries = append(entries, FuelTankEntry{
			TankID:         t.TankID,
			Name:           t.Name,
			CapacityLiters: round2(t.CapacityLiters),
			CurrentLiters:  round2(t.CurrentLiters),
			FillPercent:    round2Ratio(t.FillPercent),
		})
	}
	return entries
}

func plotYieldEntries(figures []PlotYieldFigure) []PlotYieldEntry {
	entries := make([]PlotYieldEntry, 0, len(figures))
	for _, f := range figures {
		entries = append(entries, PlotYieldEntry{
			PlotID:          f.PlotID,
			PlotName:        f.PlotName,
			FarmName:        f.FarmName,
			Hectares:        round2(f.Hectares),
			Production:      round2(f.Production),
			YieldPerHectare: round2(f.Yield),
		})
	}
	return entries
}
