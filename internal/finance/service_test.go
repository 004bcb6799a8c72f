package finance

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Jkennedy2004/StokyGesti-n/internal/expenses"
)

type stubRepo struct {
	sales     []Sale
	expenses  []Expense
	materials []Material
	products  []ProductRef

	salesLoads int
}

func (r *stubRepo) SalesSnapshot(ctx context.Context) ([]Sale, error) {
	r.salesLoads++
	return r.sales, nil
}

func (r *stubRepo) ExpensesSnapshot(ctx context.Context) ([]Expense, error) {
	return r.expenses, nil
}

func (r *stubRepo) MaterialsSnapshot(ctx context.Context) ([]Material, error) {
	return r.materials, nil
}

func (r *stubRepo) ProductsSnapshot(ctx context.Context) ([]ProductRef, error) {
	return r.products, nil
}

func (r *stubRepo) CountActiveProducts(ctx context.Context) (int, error) {
	return len(r.products), nil
}

func (r *stubRepo) CountLowStockMaterials(ctx context.Context, threshold float64) (int, error) {
	var n int
	for _, m := range r.materials {
		if m.Stock < threshold {
			n++
		}
	}
	return n, nil
}

func newTestService(t *testing.T, repo *stubRepo) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, NewCache(client, time.Minute), 5)
}

func TestStatementServedFromCache(t *testing.T) {
	productID := uuid.New()
	repo := &stubRepo{
		sales: []Sale{
			{ID: uuid.New(), ProductID: &productID, Quantity: 1, Total: 100, UnitCost: 40},
		},
		expenses: []Expense{{Category: expenses.CategoryServicios, Amount: 10}},
	}
	svc := newTestService(t, repo)
	ctx := context.Background()

	first, err := svc.Statement(ctx)
	require.NoError(t, err)
	require.InDelta(t, 100.0, first.TotalRevenue, 0.0001)
	require.Equal(t, 1, repo.salesLoads)

	// second read hits the cached payload, not the repository
	second, err := svc.Statement(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, repo.salesLoads)
}

func TestInvalidateForcesRebuild(t *testing.T) {
	productID := uuid.New()
	repo := &stubRepo{
		sales: []Sale{
			{ID: uuid.New(), ProductID: &productID, Quantity: 1, Total: 100, UnitCost: 40},
		},
	}
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Statement(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, repo.salesLoads)

	repo.sales = append(repo.sales, Sale{ID: uuid.New(), ProductID: &productID, Quantity: 1, Total: 50, UnitCost: 20})
	require.NoError(t, svc.Invalidate(ctx))

	st, err := svc.Statement(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, repo.salesLoads)
	require.InDelta(t, 150.0, st.TotalRevenue, 0.0001)
}

func TestDashboardCounts(t *testing.T) {
	productID := uuid.New()
	repo := &stubRepo{
		sales: []Sale{
			{ID: uuid.New(), ProductID: &productID, Quantity: 2, Total: 80, UnitCost: 10},
		},
		materials: []Material{
			{UnitPrice: 2, Stock: 3},
			{UnitPrice: 1, Stock: 50},
		},
		products: []ProductRef{{ID: productID, Name: "Pulsera", Category: "joyeria"}},
	}
	svc := newTestService(t, repo)

	summary, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 56.0, summary.TotalInvested, 0.0001)
	require.InDelta(t, 80.0, summary.TotalSales, 0.0001)
	require.Equal(t, 1, summary.ActiveProducts)
	require.Equal(t, 1, summary.LowStockMaterials)
}

func TestProfitabilityCached(t *testing.T) {
	productID := uuid.New()
	repo := &stubRepo{
		sales: []Sale{
			{ID: uuid.New(), ProductID: &productID, Quantity: 1, Total: 60, UnitCost: 25},
		},
		products: []ProductRef{{ID: productID, Name: "Anillo", Category: "joyeria"}},
	}
	svc := newTestService(t, repo)
	ctx := context.Background()

	ranking, err := svc.Profitability(ctx)
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	require.InDelta(t, 35.0, ranking[0].Profit, 0.0001)
	loads := repo.salesLoads

	ranking, err = svc.Profitability(ctx)
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	require.Equal(t, loads, repo.salesLoads)
}
