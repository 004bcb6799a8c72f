package expenses

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies an expense. Servicios is the only fixed-cost category;
// every other category is variable.
type Category string

const (
	CategoryEnvio        Category = "envio"
	CategoryPublicidad   Category = "publicidad"
	CategoryServicios    Category = "servicios"
	CategoryHerramientas Category = "herramientas"
	CategoryOtros        Category = "otros"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryEnvio, CategoryPublicidad, CategoryServicios, CategoryHerramientas, CategoryOtros}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryEnvio, CategoryPublicidad, CategoryServicios, CategoryHerramientas, CategoryOtros:
		return true
	}
	return false
}

// Fixed reports whether the category counts as a fixed operating cost.
func (c Category) Fixed() bool {
	return c == CategoryServicios
}

type Expense struct {
	ID          uuid.UUID `json:"id"`
	Category    Category  `json:"categoria"`
	Amount      float64   `json:"monto"`
	Date        time.Time `json:"fecha"`
	Description string    `json:"descripcion"`
	CreatedAt   time.Time `json:"created_at"`
}
