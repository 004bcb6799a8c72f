package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Jkennedy2004/StokyGesti-n/internal/inventory"
	"github.com/Jkennedy2004/StokyGesti-n/internal/sales"
	"github.com/Jkennedy2004/StokyGesti-n/internal/shared"
)

type memoryRepo struct {
	byID map[uuid.UUID]Order
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: make(map[uuid.UUID]Order)}
}

func (r *memoryRepo) List(ctx context.Context, filters ListFilters) ([]Order, int, error) {
	var out []Order
	for _, o := range r.byID {
		out = append(out, o)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, id uuid.UUID) (Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return Order{}, shared.ErrNotFound
	}
	return o, nil
}

func (r *memoryRepo) Create(ctx context.Context, o Order) (Order, error) {
	o.ID = uuid.New()
	r.byID[o.ID] = o
	return o, nil
}

func (r *memoryRepo) Update(ctx context.Context, id uuid.UUID, o Order) error {
	existing, ok := r.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	o.ID = id
	o.Status = existing.Status
	r.byID[id] = o
	return nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	o, ok := r.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	o.Status = status
	r.byID[id] = o
	return nil
}

func (r *memoryRepo) UpdateDeposit(ctx context.Context, id uuid.UUID, deposit float64) error {
	o, ok := r.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	o.Deposit = deposit
	r.byID[id] = o
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeSales struct {
	created []sales.Venta
}

func (f *fakeSales) CreateDelivered(ctx context.Context, v sales.Venta) (sales.Venta, error) {
	v.ID = uuid.New()
	f.created = append(f.created, v)
	return v, nil
}

type staticCosts struct {
	cost float64
}

func (c staticCosts) ProductionCost(ctx context.Context, productID uuid.UUID) (float64, error) {
	return c.cost, nil
}

type staticRecipe struct {
	items []RecipeItem
}

func (r staticRecipe) Recipe(ctx context.Context, productID uuid.UUID) ([]RecipeItem, error) {
	return r.items, nil
}

type fakeDrainer struct {
	applied []inventory.MovementInput
	failFor uuid.UUID
}

func (d *fakeDrainer) Apply(ctx context.Context, input inventory.MovementInput) (inventory.Movement, error) {
	if input.MaterialID == d.failFor {
		return inventory.Movement{}, inventory.ErrInsufficientStock
	}
	d.applied = append(d.applied, input)
	return inventory.Movement{MaterialID: input.MaterialID, Quantity: input.Quantity}, nil
}

func TestTransitionForwardOnly(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, &fakeSales{}, staticCosts{}, nil, nil, nil)
	ctx := context.Background()

	o, err := svc.Create(ctx, Order{Quantity: 1, AgreedPrice: 10})
	require.NoError(t, err)
	require.Equal(t, StatusPendiente, o.Status)

	result, err := svc.Transition(ctx, o.ID, StatusEnProceso)
	require.NoError(t, err)
	require.Equal(t, StatusEnProceso, result.Order.Status)
	require.Nil(t, result.Sale)

	_, err = svc.Transition(ctx, o.ID, StatusPendiente)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Transition(ctx, o.ID, StatusEnProceso)
	require.ErrorIs(t, err, ErrInvalidTransition)

	result, err = svc.Transition(ctx, o.ID, StatusCompletado)
	require.NoError(t, err)
	require.Equal(t, StatusCompletado, result.Order.Status)
}

func TestDeliverCreatesSaleAndDrainsMaterials(t *testing.T) {
	repo := newMemoryRepo()
	saleSink := &fakeSales{}
	matA := uuid.New()
	matB := uuid.New()
	recipe := staticRecipe{items: []RecipeItem{
		{MaterialID: matA, Quantity: 1},
		{MaterialID: matB, Quantity: 2},
	}}
	drainer := &fakeDrainer{}

	svc := NewService(repo, saleSink, staticCosts{cost: 20}, recipe, drainer, nil)
	ctx := context.Background()

	productID := uuid.New()
	o, err := svc.Create(ctx, Order{ProductID: &productID, Quantity: 2, AgreedPrice: 100})
	require.NoError(t, err)

	result, err := svc.Transition(ctx, o.ID, StatusEntregado)
	require.NoError(t, err)
	require.Equal(t, StatusEntregado, result.Order.Status)

	require.NotNil(t, result.Sale)
	sale := *result.Sale
	require.Equal(t, sales.StatusEntregado, sale.Status)
	require.Equal(t, sales.PaymentEfectivo, sale.PaymentMethod)
	require.InDelta(t, 100.0, sale.Total, 0.0001)
	require.InDelta(t, 50.0, sale.UnitPrice, 0.0001)
	require.InDelta(t, 20.0, sale.ProductionCost, 0.0001)
	require.InDelta(t, 30.0, sale.Profit, 0.0001)
	require.Contains(t, sale.Notes, "Venta generada desde orden #")

	require.Len(t, drainer.applied, 2)
	byMaterial := map[uuid.UUID]inventory.MovementInput{}
	for _, input := range drainer.applied {
		byMaterial[input.MaterialID] = input
		require.Equal(t, inventory.MovementSalida, input.Type)
		require.NotNil(t, input.ReferenceID)
		require.Equal(t, sale.ID, *input.ReferenceID)
	}
	require.InDelta(t, 2.0, byMaterial[matA].Quantity, 0.0001)
	require.InDelta(t, 4.0, byMaterial[matB].Quantity, 0.0001)

	stored, err := svc.Get(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, StatusEntregado, stored.Status)
}

func TestDeliverDrainFailureDoesNotBlockSale(t *testing.T) {
	repo := newMemoryRepo()
	saleSink := &fakeSales{}
	matA := uuid.New()
	matB := uuid.New()
	recipe := staticRecipe{items: []RecipeItem{
		{MaterialID: matA, Quantity: 1},
		{MaterialID: matB, Quantity: 1},
	}}
	drainer := &fakeDrainer{failFor: matB}

	svc := NewService(repo, saleSink, staticCosts{cost: 5}, recipe, drainer, nil)
	ctx := context.Background()

	productID := uuid.New()
	o, err := svc.Create(ctx, Order{ProductID: &productID, Quantity: 1, AgreedPrice: 30})
	require.NoError(t, err)

	result, err := svc.Transition(ctx, o.ID, StatusEntregado)
	require.NoError(t, err)
	require.NotNil(t, result.Sale)
	require.Len(t, saleSink.created, 1)
	require.Equal(t, StatusEntregado, result.Order.Status)

	require.Len(t, result.Drains, 2)
	var failed int
	for _, d := range result.Drains {
		if d.Err != "" {
			failed++
			require.Equal(t, matB, d.MaterialID)
		}
	}
	require.Equal(t, 1, failed)
}

func TestDeliverRequiresProduct(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, &fakeSales{}, staticCosts{}, nil, nil, nil)
	ctx := context.Background()

	o, err := svc.Create(ctx, Order{Quantity: 1, AgreedPrice: 10})
	require.NoError(t, err)

	_, err = svc.Transition(ctx, o.ID, StatusEntregado)
	require.ErrorIs(t, err, ErrMissingProduct)

	stored, err := svc.Get(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPendiente, stored.Status)
}

func TestDeliveredOrderIsFrozen(t *testing.T) {
	repo := newMemoryRepo()
	productID := uuid.New()
	svc := NewService(repo, &fakeSales{}, staticCosts{}, staticRecipe{}, &fakeDrainer{}, nil)
	ctx := context.Background()

	o, err := svc.Create(ctx, Order{ProductID: &productID, Quantity: 1, AgreedPrice: 10})
	require.NoError(t, err)

	_, err = svc.Transition(ctx, o.ID, StatusEntregado)
	require.NoError(t, err)

	_, err = svc.Transition(ctx, o.ID, StatusEntregado)
	require.ErrorIs(t, err, ErrAlreadyDelivered)

	err = svc.Update(ctx, o.ID, Order{ProductID: &productID, Quantity: 2, AgreedPrice: 20})
	require.ErrorIs(t, err, ErrAlreadyDelivered)
}

func TestRegisterFullPayment(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, &fakeSales{}, staticCosts{}, nil, nil, nil)
	ctx := context.Background()

	o, err := svc.Create(ctx, Order{Quantity: 1, AgreedPrice: 100, Deposit: 40})
	require.NoError(t, err)
	require.InDelta(t, 60.0, o.Balance(), 0.0001)

	paid, err := svc.RegisterFullPayment(ctx, o.ID)
	require.NoError(t, err)
	require.InDelta(t, 100.0, paid.Deposit, 0.0001)
	require.Zero(t, paid.Balance())

	_, err = svc.RegisterFullPayment(ctx, o.ID)
	require.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestCreateValidatesDeposit(t *testing.T) {
	svc := NewService(newMemoryRepo(), &fakeSales{}, staticCosts{}, nil, nil, nil)
	_, err := svc.Create(context.Background(), Order{Quantity: 1, AgreedPrice: 50, Deposit: 60})
	require.ErrorIs(t, err, ErrInvalidOrder)
	require.True(t, errors.Is(err, ErrInvalidOrder))
}
