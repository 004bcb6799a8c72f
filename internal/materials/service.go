package materials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

var ErrInvalidMaterial = errors.New("materials: invalid material")

type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo        Repository
	invalidator CacheInvalidator
	logger      *slog.Logger
}

func NewService(repo Repository, invalidator CacheInvalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, invalidator: invalidator, logger: logger}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Material, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) ListLowStock(ctx context.Context, threshold float64) ([]Material, error) {
	return s.repo.ListLowStock(ctx, threshold)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Material, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, m Material) (Material, error) {
	if err := validate(m); err != nil {
		return Material{}, err
	}
	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return Material{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

// Update replaces the material fields. Stock edits leave an inventory
// trail, so the current stock is read first to compute the delta.
func (s *Service) Update(ctx context.Context, id uuid.UUID, m Material) error {
	if err := validate(m); err != nil {
		return err
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	var change *StockChange
	if existing.Stock != m.Stock {
		change = &StockChange{Before: existing.Stock, After: m.Stock}
	}
	if err := s.repo.Update(ctx, id, m, change); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) PurchaseHistory(ctx context.Context, materialID uuid.UUID) ([]Purchase, error) {
	if _, err := s.repo.Get(ctx, materialID); err != nil {
		return nil, err
	}
	return s.repo.ListPurchases(ctx, materialID)
}

func validate(m Material) error {
	switch {
	case m.Name == "":
		return fmt.Errorf("%w: nombre is required", ErrInvalidMaterial)
	case m.Unit == "":
		return fmt.Errorf("%w: unidad_medida is required", ErrInvalidMaterial)
	case m.UnitPrice < 0:
		return fmt.Errorf("%w: precio_unitario must not be negative", ErrInvalidMaterial)
	case m.Stock < 0:
		return fmt.Errorf("%w: stock_disponible must not be negative", ErrInvalidMaterial)
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil && s.logger != nil {
		s.logger.Warn("invalidate finance cache", slog.Any("error", err))
	}
}
