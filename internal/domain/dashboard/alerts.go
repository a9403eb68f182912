package dashboard

import (
	"sort"
)

// capN bounds a ranked list without copying beyond the cap.
func capN[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// LowSeedStock returns varieties with 0 < stock <= threshold, lowest
// first, capped at n. Zero and negative stocks are the out-of-stock
// case and stay out of this list.
func LowSeedStock(stocks []VarietyStock, threshold float64, n int) []VarietyStock {
	low := make([]VarietyStock, 0)
	for _, s := range stocks {
		q := orZero(s.Quantity)
		if q > 0 && q <= threshold {
			low = append(low, s)
		}
	}
	sort.Slice(low, func(i, j int) bool { return orZero(low[i].Quantity) < orZero(low[j].Quantity) })
	return capN(low, n)
}

// OutOfStockInputs returns inputs with stock <= 0, most recently updated
// first, capped at n.
func OutOfStockInputs(inputs []InputStock, n int) []InputStock {
	out := make([]InputStock, 0)
	for _, s := range inputs {
		if orZero(s.Quantity) <= 0 {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return capN(out, n)
}

// LowInputStock returns inputs with 0 < stock <= threshold, lowest
// first, capped at n. Distinct from the out-of-stock alert.
func LowInputStock(inputs []InputStock, threshold float64, n int) []InputStock {
	low := make([]InputStock, 0)
	for _, s := range inputs {
		q := orZero(s.Quantity)
		if q > 0 && q <= threshold {
			low = append(low, s)
		}
	}
	sort.Slice(low, func(i, j int) bool { return orZero(low[i].Quantity) < orZero(low[j].Quantity) })
	return capN(low, n)
}

// LowFuelTanks returns tanks whose fill percentage is defined and at or
// below maxFillPercent, emptiest first. Zero-capacity tanks never rank.
func LowFuelTanks(tanks []FuelTankFigure, maxFillPercent float64) []FuelTankFigure {
	low := make([]FuelTankFigure, 0)
	for _, t := range tanks {
		if t.FillPercent.Valid && t.FillPercent.Value <= maxFillPercent {
			low = append(low, t)
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].FillPercent.Value < low[j].FillPercent.Value })
	return low
}

// TopPlotsByYield returns the n best plots, highest yield first.
func TopPlotsByYield(figures []PlotYieldFigure, n int) []PlotYieldFigure {
	ranked := make([]PlotYieldFigure, len(figures))
	copy(ranked, figures)
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Yield > ranked[j].Yield })
	return capN(ranked, n)
}

// BottomPlotsByYield returns the n worst plots, worst performer first.
func BottomPlotsByYield(figures []PlotYieldFigure, n int) []PlotYieldFigure {
	ranked := make([]PlotYieldFigure, len(figures))
	copy(ranked, figures)
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Yield < ranked[j].Yield })
	return capN(ranked, n)
}

// TopFarmsByYield returns the n best farms by rolled-up yield. Farms
// with undefined yield (zero total area) are excluded.
func TopFarmsByYield(figures []FarmYieldFigure, n int) []FarmYieldFigure {
	ranked := make([]FarmYieldFigure, 0, len(figures))
	for _, f := range figures {
		if f.Yield.Valid {
			ranked = append(ranked, f)
		}
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Yield.Value > ranked[j].Yield.Value })
	return capN(ranked, n)
}
