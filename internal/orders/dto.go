package orders

import (
	"github.com/google/uuid"

	"github.com/Jkennedy2004/StokyGesti-n/internal/sales"
)

type OrderRequest struct {
	ProductID         *uuid.UUID `json:"producto_id"`
	CustomerID        *uuid.UUID `json:"cliente_id"`
	Quantity          float64    `json:"cantidad" validate:"gt=0"`
	OrderDate         string     `json:"fecha_pedido"`
	EstimatedDelivery string     `json:"fecha_entrega_estimada"`
	AgreedPrice       float64    `json:"precio_acordado" validate:"gte=0"`
	Deposit           float64    `json:"anticipo" validate:"gte=0"`
	Notes             string     `json:"notas"`
}

type ListFilters struct {
	Status     *Status
	CustomerID *uuid.UUID
	Page       int
	Limit      int
}

// MaterialDrainResult reports the outcome of one material deduction
// during delivery. A failed drain never rolls the sale back.
type MaterialDrainResult struct {
	MaterialID uuid.UUID `json:"material_id"`
	Quantity   float64   `json:"cantidad"`
	Err        string    `json:"error,omitempty"`
}

// DeliveryResult is what a transition to entregado produces.
type DeliveryResult struct {
	Order  Order                 `json:"orden"`
	Sale   *sales.Venta          `json:"venta,omitempty"`
	Drains []MaterialDrainResult `json:"materiales,omitempty"`
}
