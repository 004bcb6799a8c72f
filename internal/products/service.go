package products

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Jkennedy2004/StokyGesti-n/internal/costing"
)

var ErrInvalidProduct = errors.New("products: invalid product")

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

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	return s.repo.Get(ctx, id)
}

// Detail returns the product with its recipe and costing figures derived
// from the current material prices.
func (s *Service) Detail(ctx context.Context, id uuid.UUID) (Detail, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	links, err := s.repo.GetLinks(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	breakdown := costing.ProductionCostDetail(costingLinks(links))
	return Detail{
		Product:        p,
		Links:          links,
		ProductionCost: breakdown.Cost,
		Profit:         costing.Profit(p.SalePrice, breakdown.Cost),
		MarginPercent:  costing.MarginPercent(p.SalePrice, breakdown.Cost),
		SkippedLinks:   breakdown.SkippedLinks,
	}, nil
}

// Recipe lists the raw material links of the product.
func (s *Service) Recipe(ctx context.Context, productID uuid.UUID) ([]Link, error) {
	return s.repo.GetLinks(ctx, productID)
}

// ProductionCost reports the unit cost of the product recipe. Sales and
// order fulfillment use this as their costing snapshot source.
func (s *Service) ProductionCost(ctx context.Context, productID uuid.UUID) (float64, error) {
	if _, err := s.repo.Get(ctx, productID); err != nil {
		return 0, err
	}
	links, err := s.repo.GetLinks(ctx, productID)
	if err != nil {
		return 0, err
	}
	return costing.ProductionCost(costingLinks(links)), nil
}

func (s *Service) Create(ctx context.Context, req ProductRequest) (Product, error) {
	p, err := fromRequest(req)
	if err != nil {
		return Product{}, err
	}
	created, err := s.repo.Create(ctx, p, req.Links)
	if err != nil {
		return Product{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req ProductRequest) error {
	p, err := fromRequest(req)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, p, req.Links); err != nil {
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

func fromRequest(req ProductRequest) (Product, error) {
	switch {
	case req.Name == "":
		return Product{}, fmt.Errorf("%w: nombre is required", ErrInvalidProduct)
	case req.Category == "":
		return Product{}, fmt.Errorf("%w: categoria is required", ErrInvalidProduct)
	case req.SalePrice < 0:
		return Product{}, fmt.Errorf("%w: precio_venta must not be negative", ErrInvalidProduct)
	}
	seen := make(map[uuid.UUID]struct{}, len(req.Links))
	for _, l := range req.Links {
		if l.Quantity <= 0 {
			return Product{}, fmt.Errorf("%w: cantidad must be positive", ErrInvalidProduct)
		}
		if _, ok := seen[l.MaterialID]; ok {
			return Product{}, ErrDuplicateLink
		}
		seen[l.MaterialID] = struct{}{}
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		SalePrice:   req.SalePrice,
		PrepMinutes: req.PrepMinutes,
		PhotoURL:    req.PhotoURL,
		Active:      active,
	}, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil && s.logger != nil {
		s.logger.Warn("invalidate finance cache", slog.Any("error", err))
	}
}
