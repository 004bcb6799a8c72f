package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Jkennedy2004/StokyGesti-n/internal/shared"
)

type memoryRepo struct {
	products map[uuid.UUID]Product
	links    map[uuid.UUID][]Link
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{products: make(map[uuid.UUID]Product), links: make(map[uuid.UUID][]Link)}
}

func (r *memoryRepo) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	var out []Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	p, ok := r.products[id]
	if !ok {
		return Product{}, shared.ErrNotFound
	}
	return p, nil
}

func (r *memoryRepo) GetLinks(ctx context.Context, productID uuid.UUID) ([]Link, error) {
	return r.links[productID], nil
}

func (r *memoryRepo) Create(ctx context.Context, p Product, links []LinkRequest) (Product, error) {
	p.ID = uuid.New()
	r.products[p.ID] = p
	for _, l := range links {
		r.links[p.ID] = append(r.links[p.ID], Link{ID: uuid.New(), MaterialID: l.MaterialID, Quantity: l.Quantity})
	}
	return p, nil
}

func (r *memoryRepo) Update(ctx context.Context, id uuid.UUID, p Product, links []LinkRequest) error {
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	p.ID = id
	r.products[id] = p
	r.links[id] = nil
	for _, l := range links {
		r.links[id] = append(r.links[id], Link{ID: uuid.New(), MaterialID: l.MaterialID, Quantity: l.Quantity})
	}
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	delete(r.links, id)
	return nil
}

func (r *memoryRepo) setLinks(productID uuid.UUID, links []Link) {
	r.links[productID] = links
}

func TestDetailComputesCosting(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)

	created, err := svc.Create(context.Background(), ProductRequest{Name: "Pulsera", Category: "joyeria", SalePrice: 50})
	require.NoError(t, err)

	repo.setLinks(created.ID, []Link{
		{MaterialID: uuid.New(), Quantity: 2, MaterialUnitPrice: 5, Resolved: true},
		{MaterialID: uuid.New(), Quantity: 1, MaterialUnitPrice: 10, Resolved: true},
	})

	d, err := svc.Detail(context.Background(), created.ID)
	require.NoError(t, err)
	require.InDelta(t, 20.0, d.ProductionCost, 0.0001)
	require.InDelta(t, 30.0, d.Profit, 0.0001)
	require.InDelta(t, 60.0, d.MarginPercent, 0.0001)
	require.Zero(t, d.SkippedLinks)
}

func TestDetailSkipsUnresolvedLinks(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)

	created, err := svc.Create(context.Background(), ProductRequest{Name: "Collar", Category: "joyeria", SalePrice: 40})
	require.NoError(t, err)

	repo.setLinks(created.ID, []Link{
		{MaterialID: uuid.New(), Quantity: 1, MaterialUnitPrice: 8, Resolved: true},
		{MaterialID: uuid.New(), Quantity: 3, Resolved: false},
	})

	d, err := svc.Detail(context.Background(), created.ID)
	require.NoError(t, err)
	require.InDelta(t, 8.0, d.ProductionCost, 0.0001)
	require.Equal(t, 1, d.SkippedLinks)
}

func TestProductionCostMissingProduct(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	_, err := svc.ProductionCost(context.Background(), uuid.New())
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateRejectsDuplicateLinks(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	materialID := uuid.New()
	_, err := svc.Create(context.Background(), ProductRequest{
		Name:      "Anillo",
		Category:  "joyeria",
		SalePrice: 25,
		Links: []LinkRequest{
			{MaterialID: materialID, Quantity: 1},
			{MaterialID: materialID, Quantity: 2},
		},
	})
	require.ErrorIs(t, err, ErrDuplicateLink)
}
