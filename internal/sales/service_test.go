package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Jkennedy2004/StokyGesti-n/internal/shared"
)

type memoryRepo struct {
	byID map[uuid.UUID]Venta
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: make(map[uuid.UUID]Venta)}
}

func (r *memoryRepo) List(ctx context.Context, filters ListFilters) ([]Venta, int, error) {
	var out []Venta
	for _, v := range r.byID {
		out = append(out, v)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, id uuid.UUID) (Venta, error) {
	v, ok := r.byID[id]
	if !ok {
		return Venta{}, shared.ErrNotFound
	}
	return v, nil
}

func (r *memoryRepo) Create(ctx context.Context, v Venta) (Venta, error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.byID[v.ID] = v
	return v, nil
}

func (r *memoryRepo) Update(ctx context.Context, id uuid.UUID, v Venta) error {
	if _, ok := r.byID[id]; !ok {
		return shared.ErrNotFound
	}
	v.ID = id
	r.byID[id] = v
	return nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	v, ok := r.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	v.Status = status
	r.byID[id] = v
	return nil
}

func (r *memoryRepo) Summary(ctx context.Context, from, to time.Time) (Summary, error) {
	var s Summary
	for _, v := range r.byID {
		if v.Status == StatusCancelado {
			continue
		}
		s.Count++
		s.Units += v.Quantity
		s.Total += v.Total
		s.Profit += v.Profit * v.Quantity
	}
	return s, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type staticCosts struct {
	cost float64
}

func (c staticCosts) ProductionCost(ctx context.Context, productID uuid.UUID) (float64, error) {
	return c.cost, nil
}

func TestCreateComputesTotalAndSnapshots(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, staticCosts{cost: 20}, nil, nil)
	productID := uuid.New()

	v, err := svc.Create(context.Background(), CreateSaleRequest{
		ProductID:     &productID,
		Quantity:      2,
		UnitPrice:     50,
		PaymentMethod: "efectivo",
	})
	require.NoError(t, err)
	require.InDelta(t, 100.0, v.Total, 0.0001)
	require.InDelta(t, 20.0, v.ProductionCost, 0.0001)
	require.InDelta(t, 30.0, v.Profit, 0.0001)
	require.Equal(t, StatusCompletado, v.Status)
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc := NewService(newMemoryRepo(), staticCosts{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateSaleRequest{Quantity: 0, PaymentMethod: "efectivo"})
	require.ErrorIs(t, err, ErrInvalidSale)

	_, err = svc.Create(context.Background(), CreateSaleRequest{Quantity: 1, PaymentMethod: "cheque"})
	require.ErrorIs(t, err, ErrInvalidSale)

	_, err = svc.Create(context.Background(), CreateSaleRequest{Quantity: 1, PaymentMethod: "efectivo", Status: "enviado"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateRecomputesTotalKeepsSnapshot(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, staticCosts{cost: 20}, nil, nil)
	productID := uuid.New()

	created, err := svc.Create(context.Background(), CreateSaleRequest{
		ProductID:     &productID,
		Quantity:      2,
		UnitPrice:     50,
		PaymentMethod: "efectivo",
	})
	require.NoError(t, err)

	qty := 3.0
	updated, err := svc.Update(context.Background(), created.ID, UpdateSaleRequest{Quantity: &qty})
	require.NoError(t, err)
	require.InDelta(t, 150.0, updated.Total, 0.0001)
	require.InDelta(t, 20.0, updated.ProductionCost, 0.0001)
}

func TestSummaryExcludesCancelledAndScalesProfit(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, staticCosts{cost: 4}, nil, nil)
	productID := uuid.New()

	// 2 units at 10, unit cost 4: profit 6 per unit, 12 for the sale.
	_, err := svc.Create(context.Background(), CreateSaleRequest{
		ProductID:     &productID,
		Quantity:      2,
		UnitPrice:     10,
		PaymentMethod: "efectivo",
	})
	require.NoError(t, err)

	cancelled, err := svc.Create(context.Background(), CreateSaleRequest{Quantity: 5, UnitPrice: 100, PaymentMethod: "efectivo"})
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(context.Background(), cancelled.ID))

	summary, err := svc.Summary(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Count)
	require.InDelta(t, 2.0, summary.Units, 0.0001)
	require.InDelta(t, 20.0, summary.Total, 0.0001)
	require.InDelta(t, 12.0, summary.Profit, 0.0001)
}

func TestCancelMarksCancelado(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, staticCosts{}, nil, nil)

	created, err := svc.Create(context.Background(), CreateSaleRequest{Quantity: 1, UnitPrice: 10, PaymentMethod: "efectivo"})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), created.ID))
	v, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, StatusCancelado, v.Status)
}
