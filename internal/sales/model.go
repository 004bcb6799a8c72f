package sales

import (
	"time"

	"github.com/google/uuid"
)

// Status of a sale. Cancelled sales stay on record but are excluded from
// every financial aggregate.
type Status string

const (
	StatusPendiente  Status = "pendiente"
	StatusCompletado Status = "completado"
	StatusEntregado  Status = "entregado"
	StatusCancelado  Status = "cancelado"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPendiente, StatusCompletado, StatusEntregado, StatusCancelado:
		return true
	}
	return false
}

// PaymentMethod of a sale.
type PaymentMethod string

const (
	PaymentEfectivo      PaymentMethod = "efectivo"
	PaymentTransferencia PaymentMethod = "transferencia"
	PaymentTarjeta       PaymentMethod = "tarjeta"
	PaymentOtro          PaymentMethod = "otro"
)

// Valid reports whether the payment method is a known value.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentEfectivo, PaymentTransferencia, PaymentTarjeta, PaymentOtro:
		return true
	}
	return false
}

// Venta is a sale record. ProductionCost and Profit are per-unit snapshots
// taken at creation time; later material price changes never touch them.
// Total is always UnitPrice times Quantity, enforced at write time.
type Venta struct {
	ID             uuid.UUID     `json:"id"`
	ProductID      *uuid.UUID    `json:"producto_id"`
	CustomerID     *uuid.UUID    `json:"cliente_id"`
	Quantity       float64       `json:"cantidad"`
	UnitPrice      float64       `json:"precio_unitario"`
	Total          float64       `json:"precio_total"`
	ProductionCost float64       `json:"costo_produccion"`
	Profit         float64       `json:"ganancia"`
	SaleDate       time.Time     `json:"fecha_venta"`
	PaymentMethod  PaymentMethod `json:"metodo_pago"`
	Status         Status        `json:"estado"`
	Notes          string        `json:"notas"`
	CreatedAt      time.Time     `json:"created_at"`
}
