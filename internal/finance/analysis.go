package finance

import (
	"sort"

	"github.com/google/uuid"

	"github.com/Jkennedy2004/StokyGesti-n/internal/expenses"
)

// ComputeOperatingCosts partitions expenses by category. Unknown categories
// fall into otros so the fixed+variable split always sums to the grand total.
func ComputeOperatingCosts(items []Expense) OperatingCosts {
	costs := OperatingCosts{ByCategory: make(map[expenses.Category]float64, len(expenses.Categories))}
	for _, c := range expenses.Categories {
		costs.ByCategory[c] = 0
	}
	for _, e := range items {
		cat := e.Category
		if !cat.Valid() {
			cat = expenses.CategoryOtros
		}
		costs.ByCategory[cat] += e.Amount
		if cat.Fixed() {
			costs.FixedTotal += e.Amount
		} else {
			costs.VariableTotal += e.Amount
		}
	}
	costs.GrandTotal = costs.FixedTotal + costs.VariableTotal
	return costs
}

// Analyze builds the full statement from in-memory snapshots.
func Analyze(sales []Sale, expenseItems []Expense, materials []Material) Statement {
	var st Statement

	var saleCount float64
	for _, s := range sales {
		if s.Cancelled {
			continue
		}
		saleCount++
		st.TotalRevenue += s.Total
		st.ProductionCostOfSales += s.UnitCost * s.Quantity
	}

	for _, m := range materials {
		st.MaterialsCost += m.UnitPrice * m.Stock
	}

	costs := ComputeOperatingCosts(expenseItems)
	st.OperatingExpenses = costs.GrandTotal
	st.FixedExpenses = costs.FixedTotal
	st.VariableExpenses = costs.VariableTotal

	st.TotalCost = st.MaterialsCost + st.OperatingExpenses
	st.GrossProfit = st.TotalRevenue - st.ProductionCostOfSales
	st.NetProfit = st.TotalRevenue - st.ProductionCostOfSales - st.OperatingExpenses

	if st.TotalRevenue > 0 {
		st.GrossMarginPercent = st.GrossProfit / st.TotalRevenue * 100
		st.NetMarginPercent = st.NetProfit / st.TotalRevenue * 100
	}

	investment := st.MaterialsCost + st.OperatingExpenses
	if investment > 0 {
		st.ROIPercent = st.NetProfit / investment * 100
	}

	// Break-even in sales: fixed expenses over the average contribution
	// margin per sale. Zero is the sentinel for an unreachable break-even.
	var avgPrice, avgVariableCost float64
	if saleCount > 0 {
		avgPrice = st.TotalRevenue / saleCount
		avgVariableCost = (st.ProductionCostOfSales + costs.VariableTotal) / saleCount
	}
	contribution := avgPrice - avgVariableCost
	if contribution > 0 {
		st.BreakEvenSales = costs.FixedTotal / contribution
	}

	return st
}

// ProfitabilityByProduct groups non-cancelled, product-linked sales by
// product and ranks them by profit, highest first. Sales whose product no
// longer resolves are excluded.
func ProfitabilityByProduct(sales []Sale, products []ProductRef) []ProductProfitability {
	refs := make(map[uuid.UUID]ProductRef, len(products))
	for _, p := range products {
		refs[p.ID] = p
	}

	acc := make(map[uuid.UUID]*ProductProfitability)
	for _, s := range sales {
		if s.Cancelled || s.ProductID == nil {
			continue
		}
		ref, ok := refs[*s.ProductID]
		if !ok {
			continue
		}
		entry, ok := acc[ref.ID]
		if !ok {
			entry = &ProductProfitability{ProductID: ref.ID, Name: ref.Name, Category: ref.Category}
			acc[ref.ID] = entry
		}
		cost := s.UnitCost * s.Quantity
		entry.UnitsSold += s.Quantity
		entry.Revenue += s.Total
		entry.ProductionCost += cost
		entry.ContributionMargin += s.Total - cost
		entry.Profit = entry.Revenue - entry.ProductionCost
		if entry.Revenue > 0 {
			entry.MarginPercent = entry.Profit / entry.Revenue * 100
		} else {
			entry.MarginPercent = 0
		}
	}

	ranking := make([]ProductProfitability, 0, len(acc))
	for _, entry := range acc {
		ranking = append(ranking, *entry)
	}
	sort.Slice(ranking, func(i, j int) bool { return ranking[i].Profit > ranking[j].Profit })
	return ranking
}

// CustomerAcquisitionCost averages marketing spend over new customers.
func CustomerAcquisitionCost(marketingSpend float64, newCustomers int) float64 {
	if newCustomers <= 0 {
		return 0
	}
	return marketingSpend / float64(newCustomers)
}

// CustomerLifetimeValue multiplies average purchase, purchase frequency and
// expected customer lifetime.
func CustomerLifetimeValue(avgPurchase, purchaseFrequency, customerLifetime float64) float64 {
	return avgPurchase * purchaseFrequency * customerLifetime
}
