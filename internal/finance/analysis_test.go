package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Jkennedy2004/StokyGesti-n/internal/expenses"
)

func TestAnalyzeWorkedExample(t *testing.T) {
	productID := uuid.New()
	sales := []Sale{
		{ID: uuid.New(), ProductID: &productID, Quantity: 2, Total: 200, UnitCost: 50},
	}
	expenseItems := []Expense{
		{Category: expenses.CategoryServicios, Amount: 20},
		{Category: expenses.CategoryOtros, Amount: 10},
	}
	materials := []Material{
		{UnitPrice: 5, Stock: 4},
	}

	st := Analyze(sales, expenseItems, materials)

	require.InDelta(t, 200.0, st.TotalRevenue, 0.0001)
	require.InDelta(t, 20.0, st.MaterialsCost, 0.0001)
	require.InDelta(t, 100.0, st.ProductionCostOfSales, 0.0001)
	require.InDelta(t, 100.0, st.GrossProfit, 0.0001)
	require.InDelta(t, 30.0, st.OperatingExpenses, 0.0001)
	require.InDelta(t, 70.0, st.NetProfit, 0.0001)
	require.InDelta(t, 50.0, st.GrossMarginPercent, 0.0001)
	require.InDelta(t, 35.0, st.NetMarginPercent, 0.0001)
	require.InDelta(t, 20.0, st.FixedExpenses, 0.0001)
	require.InDelta(t, 10.0, st.VariableExpenses, 0.0001)

	report := Health(st)
	require.Equal(t, HealthExcelente, report.Level)
}

func TestAnalyzeExcludesCancelledSales(t *testing.T) {
	sales := []Sale{
		{ID: uuid.New(), Quantity: 1, Total: 100, UnitCost: 10},
		{ID: uuid.New(), Quantity: 1, Total: 500, UnitCost: 10, Cancelled: true},
	}
	st := Analyze(sales, nil, nil)
	require.InDelta(t, 100.0, st.TotalRevenue, 0.0001)
	require.InDelta(t, 10.0, st.ProductionCostOfSales, 0.0001)
}

func TestAnalyzeZeroRevenueGuards(t *testing.T) {
	st := Analyze(nil, []Expense{{Category: expenses.CategoryEnvio, Amount: 50}}, nil)
	require.Zero(t, st.TotalRevenue)
	require.Zero(t, st.GrossMarginPercent)
	require.Zero(t, st.NetMarginPercent)
	require.InDelta(t, -50.0, st.NetProfit, 0.0001)
}

func TestAnalyzeBreakEvenSentinel(t *testing.T) {
	productID := uuid.New()
	// average sale price 10, average variable cost 4, fixed expenses 30:
	// break-even = 30 / (10 - 4) = 5 sales
	sales := []Sale{
		{ID: uuid.New(), ProductID: &productID, Quantity: 1, Total: 10, UnitCost: 4},
	}
	st := Analyze(sales, []Expense{{Category: expenses.CategoryServicios, Amount: 30}}, nil)
	require.InDelta(t, 5.0, st.BreakEvenSales, 0.0001)
	contribution := 10.0 - 4.0
	require.InDelta(t, st.FixedExpenses, st.BreakEvenSales*contribution, 0.0001)

	// contribution margin at or below zero yields the 0 sentinel
	losing := []Sale{
		{ID: uuid.New(), ProductID: &productID, Quantity: 2, Total: 10, UnitCost: 8},
	}
	st = Analyze(losing, []Expense{{Category: expenses.CategoryServicios, Amount: 30}}, nil)
	require.Zero(t, st.BreakEvenSales)
}

func TestOperatingCostsPartition(t *testing.T) {
	items := []Expense{
		{Category: expenses.CategoryServicios, Amount: 40},
		{Category: expenses.CategoryEnvio, Amount: 10},
		{Category: expenses.CategoryPublicidad, Amount: 15},
		{Category: "desconocida", Amount: 5},
	}
	costs := ComputeOperatingCosts(items)

	require.InDelta(t, 40.0, costs.FixedTotal, 0.0001)
	require.InDelta(t, 30.0, costs.VariableTotal, 0.0001)
	require.InDelta(t, 70.0, costs.GrandTotal, 0.0001)
	require.InDelta(t, costs.GrandTotal, costs.FixedTotal+costs.VariableTotal, 0.0001)
	// unknown categories land in otros
	require.InDelta(t, 5.0, costs.ByCategory[expenses.CategoryOtros], 0.0001)
	require.Len(t, costs.ByCategory, 5)
}

func TestHealthTiers(t *testing.T) {
	cases := []struct {
		margin float64
		level  HealthLevel
	}{
		{35, HealthExcelente},
		{30, HealthExcelente},
		{25, HealthBueno},
		{20, HealthBueno},
		{15, HealthRegular},
		{10, HealthRegular},
		{5, HealthMalo},
		{0, HealthMalo},
		{-5, HealthCritico},
	}
	for _, tc := range cases {
		report := Health(Statement{NetMarginPercent: tc.margin, ROIPercent: 50})
		require.Equalf(t, tc.level, report.Level, "margin %.1f", tc.margin)
	}
}

func TestHealthROIRecommendations(t *testing.T) {
	report := Health(Statement{NetMarginPercent: 35, ROIPercent: -5})
	require.Equal(t, HealthExcelente, report.Level)
	var found bool
	for _, rec := range report.Recommendations {
		if rec == "ROI negativo: estás perdiendo dinero en tu inversión" {
			found = true
		}
	}
	require.True(t, found)

	report = Health(Statement{NetMarginPercent: 35, ROIPercent: 10})
	found = false
	for _, rec := range report.Recommendations {
		if rec == "ROI bajo: busca formas de mejorar el retorno de inversión" {
			found = true
		}
	}
	require.True(t, found)
}

func TestProfitabilityRanking(t *testing.T) {
	winner := uuid.New()
	loser := uuid.New()
	orphan := uuid.New()
	products := []ProductRef{
		{ID: winner, Name: "Pulsera", Category: "joyeria"},
		{ID: loser, Name: "Anillo", Category: "joyeria"},
	}
	sales := []Sale{
		{ID: uuid.New(), ProductID: &winner, Quantity: 2, Total: 100, UnitCost: 10},
		{ID: uuid.New(), ProductID: &winner, Quantity: 1, Total: 50, UnitCost: 10},
		{ID: uuid.New(), ProductID: &loser, Quantity: 1, Total: 20, UnitCost: 15},
		{ID: uuid.New(), ProductID: &loser, Quantity: 5, Total: 400, UnitCost: 15, Cancelled: true},
		{ID: uuid.New(), ProductID: &orphan, Quantity: 1, Total: 99, UnitCost: 1},
		{ID: uuid.New(), Quantity: 1, Total: 42, UnitCost: 1},
	}

	ranking := ProfitabilityByProduct(sales, products)
	require.Len(t, ranking, 2)
	require.Equal(t, "Pulsera", ranking[0].Name)
	require.InDelta(t, 150.0, ranking[0].Revenue, 0.0001)
	require.InDelta(t, 3.0, ranking[0].UnitsSold, 0.0001)
	require.InDelta(t, 120.0, ranking[0].Profit, 0.0001)
	require.Equal(t, "Anillo", ranking[1].Name)
	require.InDelta(t, 20.0, ranking[1].Revenue, 0.0001)
}

func TestCustomerMetrics(t *testing.T) {
	require.InDelta(t, 25.0, CustomerAcquisitionCost(100, 4), 0.0001)
	require.Zero(t, CustomerAcquisitionCost(100, 0))
	require.InDelta(t, 240.0, CustomerLifetimeValue(10, 2, 12), 0.0001)
}
