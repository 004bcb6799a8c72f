// Package costing derives production cost and profitability for a product
// from its current material composition. All functions are pure and total:
// they never fail on well-typed numeric input.
package costing

import "github.com/google/uuid"

// MaterialLink is one line of a product's bill of materials, priced at the
// current material unit price. Resolved is false when the referenced material
// no longer exists; such links contribute nothing to the cost.
type MaterialLink struct {
	MaterialID uuid.UUID
	Quantity   float64
	UnitPrice  float64
	Resolved   bool
}

// Breakdown reports the rolled-up production cost together with how many
// links were skipped because their material could not be resolved.
type Breakdown struct {
	Cost         float64
	SkippedLinks int
}

// ProductionCost sums unit price times quantity over the resolved links.
// A product with no links costs 0.
func ProductionCost(links []MaterialLink) float64 {
	return ProductionCostDetail(links).Cost
}

// ProductionCostDetail is ProductionCost plus the skipped-link count, so
// callers can surface dangling material references without treating them
// as fatal.
func ProductionCostDetail(links []MaterialLink) Breakdown {
	var b Breakdown
	for _, link := range links {
		if !link.Resolved {
			b.SkippedLinks++
			continue
		}
		b.Cost += link.UnitPrice * link.Quantity
	}
	return b
}

// Profit is the per-unit gain at the given sale price.
func Profit(salePrice, productionCost float64) float64 {
	return salePrice - productionCost
}

// MarginPercent is the profit share of the sale price, in percent.
// A zero sale price yields 0 rather than a division by zero.
func MarginPercent(salePrice, productionCost float64) float64 {
	if salePrice == 0 {
		return 0
	}
	return (salePrice - productionCost) / salePrice * 100
}
