package dashboard

import "time"

// Config holds the alerting thresholds and ranking bounds. It is passed
// into the engine per call so tests can exercise boundary values without
// global state.
type Config struct {
	// LowSeedStockThreshold flags varieties with 0 < stock <= threshold (kg).
	LowSeedStockThreshold float64

	// LowInputStockThreshold flags inputs with 0 < stock <= threshold.
	LowInputStockThreshold float64

	// LowFuelFillPercent flags tanks at or below this fill percentage.
	LowFuelFillPercent float64

	// DueSoonWindow is the forward-looking window for pending accounts.
	DueSoonWindow time.Duration

	// TopN bounds every ranked list (top and bottom).
	TopN int
}

// DefaultConfig returns the documented default thresholds.
func DefaultConfig() Config {
	return Config{
		LowSeedStockThreshold:  100,
		LowInputStockThreshold: 50,
		LowFuelFillPercent:     10,
		DueSoonWindow:          15 * 24 * time.Hour,
		TopN:                   5,
	}
}
