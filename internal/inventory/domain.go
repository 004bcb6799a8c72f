package inventory

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MovementType classifies a stock mutation.
type MovementType string

const (
	// MovementEntrada adds stock (purchases, restocks).
	MovementEntrada MovementType = "entrada"
	// MovementSalida removes stock (consumption, sales).
	MovementSalida MovementType = "salida"
	// MovementAjuste sets stock to an absolute value.
	MovementAjuste MovementType = "ajuste"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementEntrada, MovementSalida, MovementAjuste:
		return true
	}
	return false
}

var (
	ErrInvalidMovementType = errors.New("inventory: invalid movement type")
	ErrInvalidQuantity     = errors.New("inventory: invalid quantity")
	ErrInsufficientStock   = errors.New("inventory: insufficient stock")
	ErrMaterialNotFound    = errors.New("inventory: material not found")
)

// Movement is one entry of the append-only stock ledger.
type Movement struct {
	ID          uuid.UUID    `json:"id"`
	MaterialID  uuid.UUID    `json:"material_id"`
	Type        MovementType `json:"tipo"`
	Quantity    float64      `json:"cantidad"`
	StockBefore float64      `json:"stock_anterior"`
	StockAfter  float64      `json:"stock_nuevo"`
	Reason      string       `json:"motivo,omitempty"`
	ReferenceID *uuid.UUID   `json:"referencia_id,omitempty"`
	Date        time.Time    `json:"fecha"`
	CreatedAt   time.Time    `json:"created_at"`
}

// MovementInput is a request to mutate stock through the ledger.
type MovementInput struct {
	MaterialID  uuid.UUID
	Type        MovementType
	Quantity    float64
	Reason      string
	ReferenceID *uuid.UUID
}

// MovementFilter narrows ledger listings.
type MovementFilter struct {
	MaterialID *uuid.UUID
	Type       *MovementType
	From       time.Time
	To         time.Time
	Page       int
	Limit      int
}
