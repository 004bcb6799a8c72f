package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/Jkennedy2004/StokyGesti-n/internal/costing"
)

// Product is a sellable item assembled from materials.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"nombre"`
	Category    string    `json:"categoria"`
	Description string    `json:"descripcion,omitempty"`
	SalePrice   float64   `json:"precio_venta"`
	PrepMinutes *int      `json:"tiempo_elaboracion,omitempty"`
	PhotoURL    string    `json:"foto_url,omitempty"`
	Active      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Link ties a product to one material of its recipe. MaterialName and
// MaterialUnitPrice come from a join; Resolved is false when the
// material row no longer exists.
type Link struct {
	ID                uuid.UUID `json:"id"`
	MaterialID        uuid.UUID `json:"material_id"`
	MaterialName      string    `json:"material_nombre,omitempty"`
	MaterialUnit      string    `json:"material_unidad,omitempty"`
	MaterialUnitPrice float64   `json:"material_precio_unitario"`
	Quantity          float64   `json:"cantidad"`
	Resolved          bool      `json:"resuelto"`
}

// Detail is a product with its recipe and derived costing figures.
type Detail struct {
	Product
	Links          []Link  `json:"materiales"`
	ProductionCost float64 `json:"costo_produccion"`
	Profit         float64 `json:"ganancia"`
	MarginPercent  float64 `json:"margen_porcentaje"`
	SkippedLinks   int     `json:"materiales_sin_resolver,omitempty"`
}

func costingLinks(links []Link) []costing.MaterialLink {
	out := make([]costing.MaterialLink, 0, len(links))
	for _, l := range links {
		out = append(out, costing.MaterialLink{
			MaterialID: l.MaterialID,
			Quantity:   l.Quantity,
			UnitPrice:  l.MaterialUnitPrice,
			Resolved:   l.Resolved,
		})
	}
	return out
}
