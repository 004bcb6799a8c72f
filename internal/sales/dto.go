package sales

import (
	"time"

	"github.com/google/uuid"
)

type CreateSaleRequest struct {
	ProductID     *uuid.UUID `json:"producto_id,omitempty"`
	CustomerID    *uuid.UUID `json:"cliente_id,omitempty"`
	Quantity      float64    `json:"cantidad" validate:"required,gt=0"`
	UnitPrice     float64    `json:"precio_unitario" validate:"gte=0"`
	SaleDate      time.Time  `json:"fecha_venta"`
	PaymentMethod string     `json:"metodo_pago" validate:"required"`
	Status        string     `json:"estado"`
	Notes         string     `json:"notas"`
}

type UpdateSaleRequest struct {
	Quantity      *float64 `json:"cantidad,omitempty" validate:"omitempty,gt=0"`
	UnitPrice     *float64 `json:"precio_unitario,omitempty" validate:"omitempty,gte=0"`
	PaymentMethod *string  `json:"metodo_pago,omitempty"`
	Status        *string  `json:"estado,omitempty"`
	Notes         *string  `json:"notas,omitempty"`
}

// Summary aggregates non-cancelled sales for the dashboard cards.
type Summary struct {
	Count  int     `json:"total_ventas"`
	Units  float64 `json:"unidades"`
	Total  float64 `json:"ingresos"`
	Profit float64 `json:"ganancia"`
}

type ListFilters struct {
	Status     *Status
	ProductID  *uuid.UUID
	CustomerID *uuid.UUID
	From       time.Time
	To         time.Time
	Page       int
	Limit      int
}
