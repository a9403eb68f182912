package dashboard

import (
	"testing"
	"time"
)

func TestLowSeedStock_Boundaries(t *testing.T) {
	stocks := []VarietyStock{
		{VarietyName: "at threshold", Quantity: fptr(100)},
		{VarietyName: "above threshold", Quantity: fptr(101)},
		{VarietyName: "out of stock", Quantity: fptr(0)},
		{VarietyName: "nearly out", Quantity: fptr(1)},
		{VarietyName: "missing", Quantity: nil},
	}

	low := LowSeedStock(stocks, 100, 5)

	if len(low) != 2 {
		t.Fatalf("want 2 alerts, got %d", len(low))
	}
	// Lowest first.
	if low[0].VarietyName != "nearly out" || low[1].VarietyName != "at threshold" {
		t.Errorf("wrong order: %s, %s", low[0].VarietyName, low[1].VarietyName)
	}
}

func TestLowSeedStock_Capped(t *testing.T) {
	stocks := make([]VarietyStock, 10)
	for i := range stocks {
		stocks[i] = VarietyStock{Quantity: fptr(float64(i + 1))}
	}

	low := LowSeedStock(stocks, 100, 3)
	if len(low) != 3 {
		t.Fatalf("want cap of 3, got %d", len(low))
	}
	if q := orZero(low[0].Quantity); q != 1 {
		t.Errorf("lowest must survive the cap, got %v", q)
	}
}

func TestOutOfStockInputs_RecencyOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	inputs := []InputStock{
		{Name: "old", Quantity: fptr(0), UpdatedAt: base},
		{Name: "stocked", Quantity: fptr(30)},
		{Name: "recent", Quantity: fptr(-2), UpdatedAt: base.AddDate(0, 1, 0)},
	}

	out := OutOfStockInputs(inputs, 5)

	if len(out) != 2 {
		t.Fatalf("want 2 alerts, got %d", len(out))
	}
	if out[0].Name != "recent" || out[1].Name != "old" {
		t.Errorf("most recently updated first: got %s, %s", out[0].Name, out[1].Name)
	}
}

func TestLowInputStock_DistinctFromOutOfStock(t *testing.T) {
	inputs := []InputStock{
		{Name: "empty", Quantity: fptr(0)},
		{Name: "low", Quantity: fptr(20)},
		{Name: "full", Quantity: fptr(500)},
	}

	low := LowInputStock(inputs, 50, 5)

	if len(low) != 1 || low[0].Name != "low" {
		t.Fatalf("want only the low item, got %+v", low)
	}
}

func TestLowFuelTanks_SkipsUndefinedFill(t *testing.T) {
	tanks := TankFill([]FuelTank{
		{Name: "empty-ish", CapacityLiters: 1000, CurrentLiters: 50},
		{Name: "zero capacity", CapacityLiters: 0, CurrentLiters: 0},
		{Name: "healthy", CapacityLiters: 1000, CurrentLiters: 800},
		{Name: "critical", CapacityLiters: 1000, CurrentLiters: 10},
	})

	low := LowFuelTanks(tanks, 10)

	if len(low) != 2 {
		t.Fatalf("want 2 tanks, got %d", len(low))
	}
	if low[0].Name != "critical" || low[1].Name != "empty-ish" {
		t.Errorf("emptiest first: got %s, %s", low[0].Name, low[1].Name)
	}
}

func TestPlotRankings(t *testing.T) {
	figures := []PlotYieldFigure{
		{PlotName: "mid", Yield: 20},
		{PlotName: "best", Yield: 35},
		{PlotName: "worst", Yield: 5},
	}

	top := TopPlotsByYield(figures, 2)
	if top[0].PlotName != "best" || top[1].PlotName != "mid" {
		t.Errorf("top ranking wrong: %s, %s", top[0].PlotName, top[1].PlotName)
	}

	bottom := BottomPlotsByYield(figures, 2)
	if bottom[0].PlotName != "worst" || bottom[1].PlotName != "mid" {
		t.Errorf("bottom ranking must lead with the worst: %s, %s", bottom[0].PlotName, bottom[1].PlotName)
	}

	// Ranking must not reorder the source slice.
	if figures[0].PlotName != "mid" {
		t.Error("ranking mutated its input")
	}
}

func TestTopFarmsByYield_ExcludesUndefined(t *testing.T) {
	figures := []FarmYieldFigure{
		{FarmName: "good", Yield: Ratio{Valid: true, Value: 30}},
		{FarmName: "no area", Yield: Ratio{}},
	}

	top := TopFarmsByYield(figures, 5)
	if len(top) != 1 || top[0].FarmName != "good" {
		t.Fatalf("undefined-yield farms must not rank, got %+v", top)
	}
}
