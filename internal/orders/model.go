package orders

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status of a pending order. The lifecycle moves forward only:
// pendiente, en_proceso, completado, entregado. Delivery is terminal.
type Status string

const (
	StatusPendiente  Status = "pendiente"
	StatusEnProceso  Status = "en_proceso"
	StatusCompletado Status = "completado"
	StatusEntregado  Status = "entregado"
)

var statusRank = map[Status]int{
	StatusPendiente:  0,
	StatusEnProceso:  1,
	StatusCompletado: 2,
	StatusEntregado:  3,
}

func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvanceTo reports whether the order may move from s to next.
// Forward jumps are allowed (an order can go straight to entregado),
// backward moves are not.
func (s Status) CanAdvanceTo(next Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

var (
	ErrInvalidOrder      = errors.New("orders: invalid order")
	ErrInvalidTransition = errors.New("orders: invalid status transition")
	ErrAlreadyDelivered  = errors.New("orders: order already delivered")
	ErrMissingProduct    = errors.New("orders: order has no product")
	ErrAlreadyPaid       = errors.New("orders: order fully paid")
)

// Order is a customer commitment awaiting fulfillment.
type Order struct {
	ID                uuid.UUID  `json:"id"`
	ProductID         *uuid.UUID `json:"producto_id"`
	CustomerID        *uuid.UUID `json:"cliente_id"`
	Quantity          float64    `json:"cantidad"`
	OrderDate         time.Time  `json:"fecha_pedido"`
	EstimatedDelivery *time.Time `json:"fecha_entrega_estimada,omitempty"`
	Status            Status     `json:"estado"`
	AgreedPrice       float64    `json:"precio_acordado"`
	Deposit           float64    `json:"anticipo"`
	Notes             string     `json:"notas,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Balance is the unpaid remainder of the agreed price.
func (o Order) Balance() float64 {
	return o.AgreedPrice - o.Deposit
}
