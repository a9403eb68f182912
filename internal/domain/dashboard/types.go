// Package dashboard implements the operational analytics engine: one
// read-only query that aggregates every domain collection into a nested
// KPI report scoped to a company and, optionally, one production cycle.
//
// The engine never writes. Every value is computed fresh per request;
// intermediate figures stay unrounded until the assembler formats them.
package dashboard

import (
	"time"

	"agroplan/internal/core/id"
)

// Period is an inclusive date range derived from a single resolved cycle.
// Repositories translate it into >= / <= predicates on each date column.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// --- Read models supplied by the raw data fetchers ---
//
// Quantity fields coming out of SQL SUM() are nullable: an empty group
// yields NULL, which the engine must treat as zero.

// ProductAmount is a grouped-sum row keyed by normalized product name.
type ProductAmount struct {
	Product  string   `db:"product"`
	Quantity *float64 `db:"quantity"`
}

// PlotProduction carries per-plot harvested quantity joined with the
// plot's area and farm.
type PlotProduction struct {
	PlotID   id.ID    `db:"plot_id"`
	PlotName string   `db:"plot_name"`
	FarmID   id.ID    `db:"farm_id"`
	FarmName string   `db:"farm_name"`
	Hectares float64  `db:"hectares"`
	Quantity *float64 `db:"quantity"`
}

// GrainStock is one grain inventory position.
type GrainStock struct {
	Product  string   `db:"product"`
	FarmID   id.ID    `db:"farm_id"`
	FarmName string   `db:"farm_name"`
	Quantity *float64 `db:"quantity"`
	Unit     string   `db:"unit"`
}

// VarietyStock is one seed inventory position, tracked per variety.
type VarietyStock struct {
	VarietyID   id.ID     `db:"variety_id"`
	VarietyName string    `db:"variety_name"`
	Product     string    `db:"product"`
	Quantity    *float64  `db:"quantity"`
	Unit        string    `db:"unit"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// InputStock is one input (seeds, fertilizer, defensives...) position.
type InputStock struct {
	InputID   id.ID     `db:"input_id"`
	Name      string    `db:"name"`
	Category  string    `db:"category"`
	Quantity  *float64  `db:"quantity"`
	Unit      string    `db:"unit"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FuelTank is one fuel tank snapshot.
type FuelTank struct {
	TankID         id.ID     `db:"tank_id"`
	Name           string    `db:"name"`
	CapacityLiters float64   `db:"capacity_liters"`
	CurrentLiters  float64   `db:"current_liters"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ChannelTotal is the grouped sum of one sales channel.
type ChannelTotal struct {
	Quantity *float64 `db:"quantity"`
	Amount   *float64 `db:"amount"`
}

// FuelTotals is the company-wide fuel purchase aggregate.
type FuelTotals struct {
	VolumeLiters *float64 `db:"volume_liters"`
	Spend        *float64 `db:"spend"`
}

// MachineAmount is a grouped-sum row keyed by machine.
type MachineAmount struct {
	MachineID id.ID    `db:"machine_id"`
	Amount    *float64 `db:"amount"`
}

// AccountTotal is the grouped sum of accounts by kind and status.
type AccountTotal struct {
	Kind   string   `db:"kind"`   // payable | receivable
	Status string   `db:"status"` // pending | paid | overdue
	Total  *float64 `db:"total"`
}

// AccountDue is one account surfaced by the due-soon alert.
type AccountDue struct {
	AccountID    id.ID     `db:"account_id"`
	Kind         string    `db:"kind"`
	Counterparty string    `db:"counterparty"`
	Amount       float64   `db:"amount"`
	DueDate      time.Time `db:"due_date"`
	Status       string    `db:"status"`
}

// RainfallStats is the rainfall aggregate for the scope.
type RainfallStats struct {
	TotalMillimeters *float64 `db:"total_millimeters"`
	Readings         int      `db:"readings"`
}

// EntityCounts carries the grouped-count figures for the counts section.
type EntityCounts struct {
	Plots     int `db:"plots"`
	Machines  int `db:"machines"`
	Varieties int `db:"varieties"`
}

// Harvest pipeline tags. The grain and seed pipelines track the same
// commodity family independently and are merged at report time.
const (
	SourceGrain = "grain"
	SourceSeed  = "seed"
)

// Account status values shared with the store.
const (
	AccountPending = "pending"
	AccountPaid    = "paid"
	AccountOverdue = "overdue"
)
