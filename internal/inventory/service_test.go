package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memoryRepo serializes WithTx with a mutex, which mirrors the row lock
// the real repository takes on the material.
type memoryRepo struct {
	mu        sync.Mutex
	stocks    map[uuid.UUID]float64
	movements []Movement
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{stocks: make(map[uuid.UUID]float64)}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	staged := &memoryTx{repo: r}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	for id, stock := range staged.stocks {
		r.stocks[id] = stock
	}
	r.movements = append(r.movements, staged.movements...)
	return nil
}

func (r *memoryRepo) ListMovements(ctx context.Context, filter MovementFilter) ([]Movement, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Movement, len(r.movements))
	copy(out, r.movements)
	return out, len(out), nil
}

type memoryTx struct {
	repo      *memoryRepo
	stocks    map[uuid.UUID]float64
	movements []Movement
}

func (t *memoryTx) GetStockForUpdate(ctx context.Context, materialID uuid.UUID) (float64, error) {
	if stock, ok := t.stocks[materialID]; ok {
		return stock, nil
	}
	stock, ok := t.repo.stocks[materialID]
	if !ok {
		return 0, ErrMaterialNotFound
	}
	return stock, nil
}

func (t *memoryTx) SetStock(ctx context.Context, materialID uuid.UUID, stock float64) error {
	if t.stocks == nil {
		t.stocks = make(map[uuid.UUID]float64)
	}
	t.stocks[materialID] = stock
	return nil
}

func (t *memoryTx) InsertMovement(ctx context.Context, m Movement) error {
	t.movements = append(t.movements, m)
	return nil
}

func TestApplyChainsMovements(t *testing.T) {
	repo := newMemoryRepo()
	materialID := uuid.New()
	repo.stocks[materialID] = 10

	svc := NewService(repo, nil, nil, nil, nil)
	ctx := context.Background()

	m, err := svc.Apply(ctx, MovementInput{MaterialID: materialID, Type: MovementEntrada, Quantity: 5})
	require.NoError(t, err)
	require.InDelta(t, 10.0, m.StockBefore, 0.0001)
	require.InDelta(t, 15.0, m.StockAfter, 0.0001)

	m, err = svc.Apply(ctx, MovementInput{MaterialID: materialID, Type: MovementSalida, Quantity: 3})
	require.NoError(t, err)
	require.InDelta(t, 15.0, m.StockBefore, 0.0001)
	require.InDelta(t, 12.0, m.StockAfter, 0.0001)

	m, err = svc.Apply(ctx, MovementInput{MaterialID: materialID, Type: MovementAjuste, Quantity: 7})
	require.NoError(t, err)
	require.InDelta(t, 12.0, m.StockBefore, 0.0001)
	require.InDelta(t, 7.0, m.StockAfter, 0.0001)

	require.InDelta(t, 7.0, repo.stocks[materialID], 0.0001)

	history, total, err := svc.History(ctx, MovementFilter{})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, history, 3)
}

func TestApplyRejectsNegativeStock(t *testing.T) {
	repo := newMemoryRepo()
	materialID := uuid.New()
	repo.stocks[materialID] = 4

	svc := NewService(repo, nil, nil, nil, nil)
	_, err := svc.Apply(context.Background(), MovementInput{MaterialID: materialID, Type: MovementSalida, Quantity: 5})
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.InDelta(t, 4.0, repo.stocks[materialID], 0.0001)
	require.Empty(t, repo.movements)
}

func TestApplyConcurrentSalidas(t *testing.T) {
	repo := newMemoryRepo()
	materialID := uuid.New()
	repo.stocks[materialID] = 10

	svc := NewService(repo, nil, nil, nil, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Apply(context.Background(), MovementInput{MaterialID: materialID, Type: MovementSalida, Quantity: 6})
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, ErrInsufficientStock)
			failures++
		}
	}
	require.Equal(t, 1, failures)
	require.InDelta(t, 4.0, repo.stocks[materialID], 0.0001)
}

func TestApplyValidation(t *testing.T) {
	repo := newMemoryRepo()
	materialID := uuid.New()
	repo.stocks[materialID] = 10
	svc := NewService(repo, nil, nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Apply(ctx, MovementInput{MaterialID: materialID, Type: "traspaso", Quantity: 1})
	require.ErrorIs(t, err, ErrInvalidMovementType)

	_, err = svc.Apply(ctx, MovementInput{MaterialID: materialID, Type: MovementEntrada, Quantity: 0})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Apply(ctx, MovementInput{MaterialID: materialID, Type: MovementSalida, Quantity: -2})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Apply(ctx, MovementInput{MaterialID: materialID, Type: MovementAjuste, Quantity: -1})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	// ajuste to zero is allowed
	m, err := svc.Apply(ctx, MovementInput{MaterialID: materialID, Type: MovementAjuste, Quantity: 0})
	require.NoError(t, err)
	require.Zero(t, m.StockAfter)

	_, err = svc.Apply(ctx, MovementInput{MaterialID: uuid.New(), Type: MovementEntrada, Quantity: 1})
	require.ErrorIs(t, err, ErrMaterialNotFound)
}
