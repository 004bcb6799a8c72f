package sales

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Jkennedy2004/StokyGesti-n/internal/costing"
)

var (
	ErrInvalidSale   = errors.New("sales: invalid sale")
	ErrInvalidStatus = errors.New("sales: invalid status")
)

// CostProvider resolves the current production cost of a product. The value
// is snapshotted onto the sale at write time and never recomputed for
// existing records.
type CostProvider interface {
	ProductionCost(ctx context.Context, productID uuid.UUID) (float64, error)
}

// CacheInvalidator is notified after every write so stale financial
// statements age out immediately.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo        Repository
	costs       CostProvider
	invalidator CacheInvalidator
	logger      *slog.Logger
}

func NewService(repo Repository, costs CostProvider, invalidator CacheInvalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, costs: costs, invalidator: invalidator, logger: logger}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Venta, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Venta, error) {
	return s.repo.Get(ctx, id)
}

// Summary totals non-cancelled sales for the dashboard, optionally bounded
// by sale date.
func (s *Service) Summary(ctx context.Context, from, to time.Time) (Summary, error) {
	return s.repo.Summary(ctx, from, to)
}

// Create builds a sale from the request. The total is always computed
// server-side from unit price and quantity, and the production cost and
// per-unit profit are snapshotted from the product's current composition.
func (s *Service) Create(ctx context.Context, req CreateSaleRequest) (Venta, error) {
	if req.Quantity <= 0 {
		return Venta{}, ErrInvalidSale
	}
	method := PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return Venta{}, fmt.Errorf("%w: unknown payment method %q", ErrInvalidSale, req.PaymentMethod)
	}
	status := Status(req.Status)
	if req.Status == "" {
		status = StatusCompletado
	}
	if !status.Valid() {
		return Venta{}, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	var productionCost float64
	if req.ProductID != nil && s.costs != nil {
		cost, err := s.costs.ProductionCost(ctx, *req.ProductID)
		if err != nil {
			return Venta{}, fmt.Errorf("sales: production cost: %w", err)
		}
		productionCost = cost
	}

	saleDate := req.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now().UTC()
	}

	v := Venta{
		ProductID:      req.ProductID,
		CustomerID:     req.CustomerID,
		Quantity:       req.Quantity,
		UnitPrice:      req.UnitPrice,
		Total:          req.UnitPrice * req.Quantity,
		ProductionCost: productionCost,
		Profit:         costing.Profit(req.UnitPrice, productionCost),
		SaleDate:       saleDate,
		PaymentMethod:  method,
		Status:         status,
		Notes:          req.Notes,
	}

	created, err := s.repo.Create(ctx, v)
	if err != nil {
		return Venta{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

// CreateDelivered persists an already-assembled sale record. Used by order
// fulfillment, which owns the cost snapshot and the total.
func (s *Service) CreateDelivered(ctx context.Context, v Venta) (Venta, error) {
	if v.Quantity <= 0 {
		return Venta{}, ErrInvalidSale
	}
	if !v.Status.Valid() || !v.PaymentMethod.Valid() {
		return Venta{}, ErrInvalidSale
	}
	created, err := s.repo.Create(ctx, v)
	if err != nil {
		return Venta{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

// Update edits mutable fields. Cost/profit snapshots are kept as written;
// the total is recomputed when quantity or unit price change.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateSaleRequest) (Venta, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Venta{}, err
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return Venta{}, ErrInvalidSale
		}
		existing.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return Venta{}, ErrInvalidSale
		}
		existing.UnitPrice = *req.UnitPrice
	}
	if req.PaymentMethod != nil {
		method := PaymentMethod(*req.PaymentMethod)
		if !method.Valid() {
			return Venta{}, ErrInvalidSale
		}
		existing.PaymentMethod = method
	}
	if req.Status != nil {
		status := Status(*req.Status)
		if !status.Valid() {
			return Venta{}, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		existing.Status = status
	}
	if req.Notes != nil {
		existing.Notes = *req.Notes
	}
	existing.Total = existing.UnitPrice * existing.Quantity

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Venta{}, err
	}
	s.invalidate(ctx)
	return existing, nil
}

// Cancel marks the sale cancelado, removing it from every aggregate.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.UpdateStatus(ctx, id, StatusCancelado); err != nil {
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

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil && s.logger != nil {
		s.logger.Warn("invalidate finance cache", slog.Any("error", err))
	}
}
