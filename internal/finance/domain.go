// Package finance turns raw sales, expense and material snapshots into
// operating-cost breakdowns, a profitability statement, a per-product
// ranking and a qualitative health verdict. The computation layer is pure:
// every function here is total over well-typed numeric input, with all
// divisions guarded against zero denominators.
package finance

import (
	"github.com/google/uuid"

	"github.com/Jkennedy2004/StokyGesti-n/internal/expenses"
)

// Sale is the slice of a sale record the analytics engine needs. UnitCost is
// the production-cost snapshot taken when the sale was written; it never
// tracks later material price changes. Cancelled sales are excluded from
// every aggregate.
type Sale struct {
	ID        uuid.UUID
	ProductID *uuid.UUID
	Quantity  float64
	Total     float64
	UnitCost  float64
	Cancelled bool
}

// Expense is an expense snapshot, classified by its category.
type Expense struct {
	Category expenses.Category
	Amount   float64
}

// Material carries the current valuation inputs of one material.
type Material struct {
	UnitPrice float64
	Stock     float64
}

// ProductRef identifies a product for the profitability ranking.
type ProductRef struct {
	ID       uuid.UUID
	Name     string
	Category string
}

// OperatingCosts partitions expenses into the five categories and into
// fixed (servicios) versus variable (everything else) totals. Expenses whose
// category is not one of the known five are bucketed under otros, keeping
// the partition exact.
type OperatingCosts struct {
	ByCategory    map[expenses.Category]float64 `json:"by_category"`
	FixedTotal    float64                       `json:"fixed_total"`
	VariableTotal float64                       `json:"variable_total"`
	GrandTotal    float64                       `json:"grand_total"`
}

// Statement is the full financial analysis. MaterialsCost is a point-in-time
// valuation of current stock, not a historical cost of goods sold; the
// original system computes it that way and this engine preserves that
// behaviour. BreakEvenSales counts sales, not units, and 0 means
// "undefined/unreachable", never "zero sales needed".
type Statement struct {
	TotalRevenue          float64 `json:"total_revenue"`
	MaterialsCost         float64 `json:"materials_cost"`
	OperatingExpenses     float64 `json:"operating_expenses"`
	TotalCost             float64 `json:"total_cost"`
	ProductionCostOfSales float64 `json:"production_cost_of_sales"`
	GrossProfit           float64 `json:"gross_profit"`
	NetProfit             float64 `json:"net_profit"`
	GrossMarginPercent    float64 `json:"gross_margin_percent"`
	NetMarginPercent      float64 `json:"net_margin_percent"`
	ROIPercent            float64 `json:"roi_percent"`
	BreakEvenSales        float64 `json:"break_even_sales"`
	FixedExpenses         float64 `json:"fixed_expenses"`
	VariableExpenses      float64 `json:"variable_expenses"`
}

// ProductProfitability accumulates the sales of one product.
type ProductProfitability struct {
	ProductID          uuid.UUID `json:"producto_id"`
	Name               string    `json:"nombre"`
	Category           string    `json:"categoria"`
	UnitsSold          float64   `json:"units_sold"`
	Revenue            float64   `json:"revenue"`
	ProductionCost     float64   `json:"production_cost"`
	ContributionMargin float64   `json:"contribution_margin"`
	Profit             float64   `json:"profit"`
	MarginPercent      float64   `json:"margin_percent"`
}

// HealthLevel is the qualitative verdict tier.
type HealthLevel string

const (
	HealthExcelente HealthLevel = "excelente"
	HealthBueno     HealthLevel = "bueno"
	HealthRegular   HealthLevel = "regular"
	HealthMalo      HealthLevel = "malo"
	HealthCritico   HealthLevel = "critico"
)

// HealthReport is the verdict plus its fixed recommendation set.
type HealthReport struct {
	Level           HealthLevel `json:"nivel"`
	Message         string      `json:"mensaje"`
	Recommendations []string    `json:"recomendaciones"`
}

// DashboardSummary backs the dashboard landing stats.
type DashboardSummary struct {
	TotalInvested     float64 `json:"total_invertido"`
	TotalSales        float64 `json:"total_ventas"`
	NetProfit         float64 `json:"ganancia_neta"`
	NetMarginPercent  float64 `json:"margen_ganancia"`
	ActiveProducts    int     `json:"productos_activos"`
	LowStockMaterials int     `json:"materiales_stock_bajo"`
}
