package dashboard

import (
	"encoding/json"
	"sort"

	"agroplan/internal/core/id"
)

// Ratio is a division result that may be undefined. An undefined ratio
// (zero or missing denominator) marshals to JSON null, never to 0.
type Ratio struct {
	Valid bool
	Value float64
}

// MarshalJSON renders undefined ratios as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// SafeDiv divides num by den, returning the undefined sentinel when the
// denominator is zero.
func SafeDiv(num, den float64) Ratio {
	if den == 0 {
		return Ratio{}
	}
	return Ratio{Valid: true, Value: num / den}
}

// Scale multiplies a defined ratio by f; undefined stays undefined.
func (r Ratio) Scale(f float64) Ratio {
	if !r.Valid {
		return r
	}
	return Ratio{Valid: true, Value: r.Value * f}
}

// Or returns the ratio's value, or def when undefined.
func (r Ratio) Or(def float64) float64 {
	if !r.Valid {
		return def
	}
	return r.Value
}

// --- Yield ---

// PlotYieldFigure is one plot's productivity. Only plots with a positive
// area carry a figure; zero-area plots are excluded from ranking but
// their production still counts toward totals.
type PlotYieldFigure struct {
	PlotID     id.ID
	PlotName   string
	FarmName   string
	Hectares   float64
	Production float64
	Yield      float64 // production per hectare
}

// PlotYields computes per-plot yield, skipping zero-area plots.
func PlotYields(plots []PlotProduction) []PlotYieldFigure {
	figures := make([]PlotYieldFigure, 0, len(plots))
	for _, p := range plots {
		production := orZero(p.Quantity)
		y := SafeDiv(production, p.Hectares)
		if !y.Valid {
			continue
		}
		figures = append(figures, PlotYieldFigure{
			PlotID:     p.PlotID,
			PlotName:   p.PlotName,
			FarmName:   p.FarmName,
			Hectares:   p.Hectares,
			Production: production,
			Yield:      y.Value,
		})
	}
	return figures
}

// FarmYieldFigure is one farm's rolled-up productivity.
type FarmYieldFigure struct {
	FarmID     id.ID
	FarmName   string
	Hectares   float64
	Production float64
	Yield      Ratio
}

// FarmYields rolls plots up to farms. Farm yield is computed from the
// summed area and production, not averaged from plot yields, so unequal
// plot areas weigh in correctly.
func FarmYields(plots []PlotProduction) []FarmYieldFigure {
	area := SumByKey(nil, plots,
		func(p PlotProduction) id.ID { return p.FarmID },
		func(p PlotProduction) *float64 { h := p.Hectares; return &h },
	)
	production := SumByKey(nil, plots,
		func(p PlotProduction) id.ID { return p.FarmID },
		func(p PlotProduction) *float64 { return p.Quantity },
	)

	names := make(map[id.ID]string, len(plots))
	order := make([]id.ID, 0, len(area))
	for _, p := range plots {
		if _, seen := names[p.FarmID]; !seen {
			names[p.FarmID] = p.FarmName
			order = append(order, p.FarmID)
		}
	}

	figures := make([]FarmYieldFigure, 0, len(order))
	for _, farmID := range order {
		figures = append(figures, FarmYieldFigure{
			FarmID:     farmID,
			FarmName:   names[farmID],
			Hectares:   area[farmID],
			Production: production[farmID],
			Yield:      SafeDiv(production[farmID], area[farmID]),
		})
	}
	return figures
}

// --- Machines ---

// MachineCostFigure is one machine's operating cost. Fuel is costed at
// the company-wide average price per liter, a deliberate approximation
// rather than a transactional trace.
type MachineCostFigure struct {
	MachineID       id.ID
	Name            string
	FuelLiters      float64
	FuelCost        float64
	MaintenanceCost float64
	TotalCost       float64
}

// MachineCosts merges per-machine fuel volume and maintenance spend and
// prices the fuel at avgPrice. When no fuel was purchased company-wide
// the average is undefined and the fuel component is zero.
func MachineCosts(fuel, maintenance []MachineAmount, avgPrice Ratio) []MachineCostFigure {
	liters := sumMachineAmounts(nil, fuel)
	spend := sumMachineAmounts(nil, maintenance)

	ids := make([]id.ID, 0, len(liters)+len(spend))
	seen := make(map[id.ID]bool, len(liters)+len(spend))
	for _, rows := range [][]MachineAmount{fuel, maintenance} {
		for _, r := range rows {
			if !seen[r.MachineID] {
				seen[r.MachineID] = true
				ids = append(ids, r.MachineID)
			}
		}
	}

	figures := make([]MachineCostFigure, 0, len(ids))
	for _, machineID := range ids {
		l := liters[machineID]
		fuelCost := l * avgPrice.Or(0)
		figures = append(figures, MachineCostFigure{
			MachineID:       machineID,
			FuelLiters:      l,
			FuelCost:        fuelCost,
			MaintenanceCost: spend[machineID],
			TotalCost:       fuelCost + spend[machineID],
		})
	}
	sort.Slice(figures, func(i, j int) bool { return figures[i].TotalCost > figures[j].TotalCost })
	return figures
}

// --- Fuel tanks ---

// FuelTankFigure is a tank snapshot with its fill percentage. Tanks with
// zero capacity carry the undefined sentinel and never enter the
// low-fuel ranking.
type FuelTankFigure struct {
	TankID         id.ID
	Name           string
	CapacityLiters float64
	CurrentLiters  float64
	FillPercent    Ratio
}

// TankFill computes fill percentages for all tanks.
func TankFill(tanks []FuelTank) []FuelTankFigure {
	figures := make([]FuelTankFigure, 0, len(tanks))
	for _, t := range tanks {
		figures = append(figures, FuelTankFigure{
			TankID:         t.TankID,
			Name:           t.Name,
			CapacityLiters: t.CapacityLiters,
			CurrentLiters:  t.CurrentLiters,
			FillPercent:    SafeDiv(t.CurrentLiters, t.CapacityLiters).Scale(100),
		})
	}
	return figures
}

// --- Commercial ---

// OperatingMargin computes (revenue - expense) / revenue; undefined when
// revenue is zero.
func OperatingMargin(revenue, expense float64) Ratio {
	return SafeDiv(revenue-expense, revenue)
}
