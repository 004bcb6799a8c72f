package materials

import (
	"time"

	"github.com/google/uuid"
)

// Material is a raw input tracked by unit price and available stock.
// Stock mutations outside plain edits go through the inventory ledger.
type Material struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"nombre"`
	UnitPrice    float64    `json:"precio_unitario"`
	Unit         string     `json:"unidad_medida"`
	Stock        float64    `json:"stock_disponible"`
	Supplier     string     `json:"proveedor,omitempty"`
	PurchaseDate *time.Time `json:"fecha_compra,omitempty"`
	Notes        string     `json:"notas,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Purchase is a historical restock entry for a material.
type Purchase struct {
	ID           uuid.UUID `json:"id"`
	MaterialID   uuid.UUID `json:"material_id"`
	Quantity     float64   `json:"cantidad"`
	UnitPrice    float64   `json:"precio_unitario"`
	Total        float64   `json:"total"`
	Supplier     string    `json:"proveedor,omitempty"`
	PurchaseDate time.Time `json:"fecha_compra"`
	Notes        string    `json:"notas,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
