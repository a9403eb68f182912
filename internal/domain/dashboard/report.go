package dashboard

import (
	"time"

	"agroplan/internal/core/id"
)

// Report is the assembled dashboard. Every numeric leaf is rounded to
// two decimals exactly once, by the assembler.
type Report struct {
	Scope      ScopeSection      `json:"scope"`
	Counts     CountsSection     `json:"counts"`
	Areas      AreasSection      `json:"areas"`
	Production ProductionSection `json:"production"`
	Stocks     StocksSection     `json:"stocks"`
	Operations OperationsSection `json:"operations"`
	Commercial CommercialSection `json:"commercial"`
	KPIs       KPISection        `json:"kpis"`
	Financial  FinancialSection  `json:"financial"`
}

// ScopeSection describes which cycles the report covers.
type ScopeSection struct {
	Cycles         []CycleInfo `json:"cycles"`
	HasSingleCycle bool        `json:"hasSingleCycle"`
	Period         *Period     `json:"period,omitempty"`
}

// CycleInfo is one in-scope production cycle.
type CycleInfo struct {
	ID        id.ID     `json:"id"`
	Name      string    `json:"name"`
	Product   string    `json:"product"`
	Active    bool      `json:"active"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// CountsSection carries entity counts for the scope.
type CountsSection struct {
	ActiveCycles int `json:"activeCycles"`
	Plots        int `json:"plots"`
	Machines     int `json:"machines"`
	Varieties    int `json:"varieties"`
}

// AreasSection carries planted area figures.
type AreasSection struct {
	TotalHectares float64    `json:"totalHectares"`
	ByFarm        []FarmArea `json:"byFarm"`
}

// FarmArea is one farm's planted area.
type FarmArea struct {
	FarmID   id.ID   `json:"farmId"`
	FarmName string  `json:"farmName"`
	Hectares float64 `json:"hectares"`
}

// ProductionSection carries harvested quantities per product with both
// pipelines exposed individually and merged.
type ProductionSection struct {
	ByProduct     []ProductProduction   `json:"byProduct"`
	GrainTotal    float64               `json:"grainTotal"`
	SeedTotal     float64               `json:"seedTotal"`
	Total         float64               `json:"total"`
	Beneficiation []BeneficiationFigure `json:"beneficiation"`
}

// ProductProduction is one product's combined total with its tagged
// per-pipeline breakdown.
type ProductProduction struct {
	Product string         `json:"product"`
	Sources []SourceAmount `json:"sources"`
	Total   float64        `json:"total"`
}

// SourceAmount tags an amount with the pipeline that produced it.
type SourceAmount struct {
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
}

// BeneficiationFigure carries the processing rate of the grain pipeline
// for one product.
type BeneficiationFigure struct {
	Product   string  `json:"product"`
	Harvested float64 `json:"harvested"`
	Processed float64 `json:"processed"`
	Rate      Ratio   `json:"rate"`
}

// StocksSection carries the four inventories and their alerts.
type StocksSection struct {
	Grain         []GrainStockEntry   `json:"grain"`
	SeedByVariety []VarietyStockEntry `json:"seedByVariety"`
	Inputs        []InputStockEntry   `json:"inputs"`
	FuelTanks     []FuelTankEntry     `json:"fuelTanks"`
	Alerts        StockAlerts         `json:"alerts"`
}

// GrainStockEntry is one grain position in the report.
type GrainStockEntry struct {
	Product  string  `json:"product"`
	FarmName string  `json:"farmName"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// VarietyStockEntry is one seed position in the report.
type VarietyStockEntry struct {
	VarietyID id.ID   `json:"varietyId"`
	Variety   string  `json:"variety"`
	Product   string  `json:"product"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
}

// InputStockEntry is one input position in the report.
type InputStockEntry struct {
	InputID   id.ID     `json:"inputId"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FuelTankEntry is one tank snapshot in the report. FillPercent is null
// for zero-capacity tanks.
type FuelTankEntry struct {
	TankID         id.ID   `json:"tankId"`
	Name           string  `json:"name"`
	CapacityLiters float64 `json:"capacityLiters"`
	CurrentLiters  float64 `json:"currentLiters"`
	FillPercent    Ratio   `json:"fillPercent"`
}

// StockAlerts groups the bounded stock alert lists.
type StockAlerts struct {
	LowSeedStock     []VarietyStockEntry `json:"lowSeedStock"`
	OutOfStockInputs []InputStockEntry   `json:"outOfStockInputs"`
	LowInputStock    []InputStockEntry   `json:"lowInputStock"`
	LowFuelTanks     []FuelTankEntry     `json:"lowFuelTanks"`
}

// OperationsSection carries machine costs, fuel and rainfall figures.
type OperationsSection struct {
	Machines                 []MachineCostEntry `json:"machines"`
	AverageFuelPricePerLiter Ratio              `json:"averageFuelPricePerLiter"`
	FuelVolumeLiters         float64            `json:"fuelVolumeLiters"`
	FuelSpend                float64            `json:"fuelSpend"`
	MaintenanceSpend         float64            `json:"maintenanceSpend"`
	Rainfall                 RainfallInfo       `json:"rainfall"`
}

// MachineCostEntry is one machine's operating cost in the report.
type MachineCostEntry struct {
	MachineID       id.ID   `json:"machineId"`
	Name            string  `json:"name"`
	FuelLiters      float64 `json:"fuelLiters"`
	FuelCost        float64 `json:"fuelCost"`
	MaintenanceCost float64 `json:"maintenanceCost"`
	TotalCost       float64 `json:"totalCost"`
}

// RainfallInfo carries rainfall figures for the scope.
type RainfallInfo struct {
	TotalMillimeters  float64 `json:"totalMillimeters"`
	Readings          int     `json:"readings"`
	AveragePerReading Ratio   `json:"averagePerReading"`
}

// CommercialSection carries revenue, expenses and the operating margin.
// Every sub-category total is individually recoverable.
type CommercialSection struct {
	Revenue       RevenueBreakdown `json:"revenue"`
	Expenses      ExpenseBreakdown `json:"expenses"`
	Result        float64          `json:"result"`
	MarginPercent Ratio            `json:"marginPercent"`
}

// RevenueBreakdown splits revenue across the two sales channels.
type RevenueBreakdown struct {
	Grain ChannelFigure `json:"grain"`
	Seed  ChannelFigure `json:"seed"`
	Total float64       `json:"total"`
}

// ChannelFigure is one sales channel's quantity and amount.
type ChannelFigure struct {
	Quantity float64 `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// ExpenseBreakdown splits spend across the four expense categories.
type ExpenseBreakdown struct {
	Inputs      float64 `json:"inputs"`
	Fuel        float64 `json:"fuel"`
	Maintenance float64 `json:"maintenance"`
	General     float64 `json:"general"`
	Total       float64 `json:"total"`
}

// KPISection carries the productivity rankings.
type KPISection struct {
	TopPlots          []PlotYieldEntry `json:"topPlots"`
	BottomPlots       []PlotYieldEntry `json:"bottomPlots"`
	TopFarms          []FarmYieldEntry `json:"topFarms"`
	BeneficiationRate Ratio            `json:"beneficiationRate"`
}

// PlotYieldEntry is one ranked plot.
type PlotYieldEntry struct {
	PlotID          id.ID   `json:"plotId"`
	PlotName        string  `json:"plotName"`
	FarmName        string  `json:"farmName"`
	Hectares        float64 `json:"hectares"`
	Production      float64 `json:"production"`
	YieldPerHectare float64 `json:"yieldPerHectare"`
}

// FarmYieldEntry is one ranked farm.
type FarmYieldEntry struct {
	FarmID          id.ID   `json:"farmId"`
	FarmName        string  `json:"farmName"`
	Hectares        float64 `json:"hectares"`
	Production      float64 `json:"production"`
	YieldPerHectare float64 `json:"yieldPerHectare"`
}

// FinancialSection carries account totals and payment alerts.
type FinancialSection struct {
	PayableOpen    float64              `json:"payableOpen"`
	ReceivableOpen float64              `json:"receivableOpen"`
	ByStatus       []AccountStatusTotal `json:"byStatus"`
	DueSoon        []AccountDueEntry    `json:"dueSoon"`
	OverdueCount   int                  `json:"overdueCount"`
}

// AccountStatusTotal is the summed amount for one kind/status pair.
type AccountStatusTotal struct {
	Kind   string  `json:"kind"`
	Status string  `json:"status"`
	Total  float64 `json:"total"`
}

// AccountDueEntry is one account inside the due-soon window.
type AccountDueEntry struct {
	AccountID    id.ID     `json:"accountId"`
	Kind         string    `json:"kind"`
	Counterparty string    `json:"counterparty"`
	Amount       float64   `json:"amount"`
	DueDate      time.Time `json:"dueDate"`
	Status       string    `json:"status"`
}
