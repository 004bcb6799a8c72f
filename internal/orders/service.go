package orders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Jkennedy2004/StokyGesti-n/internal/inventory"
	"github.com/Jkennedy2004/StokyGesti-n/internal/sales"
)

// SaleRecorder persists the sale generated by a delivery.
type SaleRecorder interface {
	CreateDelivered(ctx context.Context, v sales.Venta) (sales.Venta, error)
}

// CostProvider supplies the unit production cost snapshot.
type CostProvider interface {
	ProductionCost(ctx context.Context, productID uuid.UUID) (float64, error)
}

// RecipeItem is one material requirement of the delivered product.
type RecipeItem struct {
	MaterialID uuid.UUID
	Quantity   float64
}

// RecipeProvider lists the materials a product consumes per unit.
type RecipeProvider interface {
	Recipe(ctx context.Context, productID uuid.UUID) ([]RecipeItem, error)
}

// StockDrainer posts salida movements against the inventory ledger.
type StockDrainer interface {
	Apply(ctx context.Context, input inventory.MovementInput) (inventory.Movement, error)
}

type Service struct {
	repo    Repository
	sales   SaleRecorder
	costs   CostProvider
	recipes RecipeProvider
	drainer StockDrainer
	logger  *slog.Logger
}

func NewService(repo Repository, saleRecorder SaleRecorder, costs CostProvider, recipes RecipeProvider, drainer StockDrainer, logger *slog.Logger) *Service {
	return &Service{repo: repo, sales: saleRecorder, costs: costs, recipes: recipes, drainer: drainer, logger: logger}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Order, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, o Order) (Order, error) {
	if o.Status == "" {
		o.Status = StatusPendiente
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now().UTC()
	}
	if err := validate(o); err != nil {
		return Order{}, err
	}
	return s.repo.Create(ctx, o)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, o Order) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status == StatusEntregado {
		return ErrAlreadyDelivered
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = existing.OrderDate
	}
	o.Status = existing.Status
	if err := validate(o); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, o)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// RegisterFullPayment settles the remaining balance by raising the
// deposit to the agreed price.
func (s *Service) RegisterFullPayment(ctx context.Context, id uuid.UUID) (Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if o.Balance() <= 0 {
		return Order{}, ErrAlreadyPaid
	}
	if err := s.repo.UpdateDeposit(ctx, id, o.AgreedPrice); err != nil {
		return Order{}, err
	}
	o.Deposit = o.AgreedPrice
	return o, nil
}

// Transition moves the order forward through its lifecycle. Moving to
// entregado runs the delivery flow: sale registration, material drain,
// then the status write.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, next Status) (DeliveryResult, error) {
	if !next.Valid() {
		return DeliveryResult{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return DeliveryResult{}, err
	}
	if o.Status == StatusEntregado {
		return DeliveryResult{}, ErrAlreadyDelivered
	}
	if !o.Status.CanAdvanceTo(next) {
		return DeliveryResult{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, next)
	}

	if next != StatusEntregado {
		if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
			return DeliveryResult{}, err
		}
		o.Status = next
		return DeliveryResult{Order: o}, nil
	}

	return s.deliver(ctx, o)
}

// deliver turns the order into a sale. The cost snapshot is taken at
// delivery time; material drains are best effort and never roll the
// sale back.
func (s *Service) deliver(ctx context.Context, o Order) (DeliveryResult, error) {
	if o.ProductID == nil {
		return DeliveryResult{}, ErrMissingProduct
	}

	unitCost, err := s.costs.ProductionCost(ctx, *o.ProductID)
	if err != nil {
		return DeliveryResult{}, fmt.Errorf("orders: production cost: %w", err)
	}
	unitPrice := 0.0
	if o.Quantity > 0 {
		unitPrice = o.AgreedPrice / o.Quantity
	}

	notes := fmt.Sprintf("Venta generada desde orden #%s.", o.ID.String()[:8])
	if o.Notes != "" {
		notes += " " + o.Notes
	}
	sale, err := s.sales.CreateDelivered(ctx, sales.Venta{
		ProductID:      o.ProductID,
		CustomerID:     o.CustomerID,
		Quantity:       o.Quantity,
		UnitPrice:      unitPrice,
		Total:          o.AgreedPrice,
		ProductionCost: unitCost,
		Profit:         unitPrice - unitCost,
		SaleDate:       time.Now().UTC(),
		PaymentMethod:  sales.PaymentEfectivo,
		Status:         sales.StatusEntregado,
		Notes:          notes,
	})
	if err != nil {
		return DeliveryResult{}, fmt.Errorf("orders: register sale: %w", err)
	}

	drains := s.drainMaterials(ctx, o, sale.ID)

	if err := s.repo.UpdateStatus(ctx, o.ID, StatusEntregado); err != nil {
		return DeliveryResult{}, err
	}
	o.Status = StatusEntregado
	return DeliveryResult{Order: o, Sale: &sale, Drains: drains}, nil
}

func (s *Service) drainMaterials(ctx context.Context, o Order, saleID uuid.UUID) []MaterialDrainResult {
	if s.recipes == nil || s.drainer == nil {
		return nil
	}
	items, err := s.recipes.Recipe(ctx, *o.ProductID)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("load recipe for drain", slog.Any("error", err), slog.String("order_id", o.ID.String()))
		}
		return nil
	}
	if len(items) == 0 {
		if s.logger != nil {
			s.logger.Warn("product has no linked materials", slog.String("order_id", o.ID.String()))
		}
		return nil
	}

	reason := fmt.Sprintf("Orden entregada - Venta de producto (%g unidades)", o.Quantity)
	results := make([]MaterialDrainResult, 0, len(items))
	for _, item := range items {
		qty := item.Quantity * o.Quantity
		result := MaterialDrainResult{MaterialID: item.MaterialID, Quantity: qty}
		_, err := s.drainer.Apply(ctx, inventory.MovementInput{
			MaterialID:  item.MaterialID,
			Type:        inventory.MovementSalida,
			Quantity:    qty,
			Reason:      reason,
			ReferenceID: &saleID,
		})
		if err != nil {
			result.Err = err.Error()
			if s.logger != nil {
				s.logger.Error("drain material stock",
					slog.Any("error", err),
					slog.String("material_id", item.MaterialID.String()),
					slog.String("order_id", o.ID.String()))
			}
		}
		results = append(results, result)
	}
	return results
}

func validate(o Order) error {
	switch {
	case o.Quantity <= 0:
		return fmt.Errorf("%w: cantidad must be positive", ErrInvalidOrder)
	case o.AgreedPrice < 0:
		return fmt.Errorf("%w: precio_acordado must not be negative", ErrInvalidOrder)
	case o.Deposit < 0:
		return fmt.Errorf("%w: anticipo must not be negative", ErrInvalidOrder)
	case o.Deposit > o.AgreedPrice:
		return fmt.Errorf("%w: anticipo exceeds precio_acordado", ErrInvalidOrder)
	case !o.Status.Valid():
		return fmt.Errorf("%w: unknown estado %q", ErrInvalidOrder, o.Status)
	}
	return nil
}
