package products

import "github.com/google/uuid"

type LinkRequest struct {
	MaterialID uuid.UUID `json:"material_id" validate:"required"`
	Quantity   float64   `json:"cantidad" validate:"gt=0"`
}

type ProductRequest struct {
	Name        string        `json:"nombre" validate:"required"`
	Category    string        `json:"categoria" validate:"required"`
	Description string        `json:"descripcion"`
	SalePrice   float64       `json:"precio_venta" validate:"gte=0"`
	PrepMinutes *int          `json:"tiempo_elaboracion" validate:"omitempty,gte=0"`
	PhotoURL    string        `json:"foto_url"`
	Active      *bool         `json:"activo"`
	Links       []LinkRequest `json:"materiales" validate:"dive"`
}

type ListFilters struct {
	Category string
	Active   *bool
	Search   string
	Page     int
	Limit    int
}
