package costing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func link(price, qty float64) MaterialLink {
	return MaterialLink{MaterialID: uuid.New(), Quantity: qty, UnitPrice: price, Resolved: true}
}

func TestProductionCost(t *testing.T) {
	links := []MaterialLink{link(10, 1), link(5, 2)}
	require.InDelta(t, 20.0, ProductionCost(links), 0.0001)
}

func TestProductionCostNoLinks(t *testing.T) {
	require.InDelta(t, 0.0, ProductionCost(nil), 0.0001)
	require.InDelta(t, 100.0, MarginPercent(50, ProductionCost(nil)), 0.0001)
}

func TestProductionCostSkipsUnresolved(t *testing.T) {
	links := []MaterialLink{
		link(10, 1),
		{MaterialID: uuid.New(), Quantity: 3, UnitPrice: 99, Resolved: false},
	}
	detail := ProductionCostDetail(links)
	require.InDelta(t, 10.0, detail.Cost, 0.0001)
	require.Equal(t, 1, detail.SkippedLinks)
}

func TestMarginPercent(t *testing.T) {
	require.InDelta(t, 60.0, MarginPercent(50, 20), 0.0001)
	require.InDelta(t, 0.0, MarginPercent(0, 20), 0.0001)
	require.InDelta(t, -50.0, MarginPercent(20, 30), 0.0001)
}

func TestProfit(t *testing.T) {
	require.InDelta(t, 30.0, Profit(50, 20), 0.0001)
}
