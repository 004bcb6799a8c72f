package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Jkennedy2004/StokyGesti-n/internal/auth"
	"github.com/Jkennedy2004/StokyGesti-n/internal/customers"
	"github.com/Jkennedy2004/StokyGesti-n/internal/expenses"
	financehttp "github.com/Jkennedy2004/StokyGesti-n/internal/finance/http"
	"github.com/Jkennedy2004/StokyGesti-n/internal/inventory"
	"github.com/Jkennedy2004/StokyGesti-n/internal/materials"
	"github.com/Jkennedy2004/StokyGesti-n/internal/notes"
	"github.com/Jkennedy2004/StokyGesti-n/internal/observability"
	"github.com/Jkennedy2004/StokyGesti-n/internal/orders"
	"github.com/Jkennedy2004/StokyGesti-n/internal/products"
	"github.com/Jkennedy2004/StokyGesti-n/internal/sales"
	"github.com/Jkennedy2004/StokyGesti-n/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics

	AuthService *auth.Service

	AuthHandler      *auth.Handler
	MaterialsHandler *materials.Handler
	ProductsHandler  *products.Handler
	CustomersHandler *customers.Handler
	SalesHandler     *sales.Handler
	ExpensesHandler  *expenses.Handler
	OrdersHandler    *orders.Handler
	InventoryHandler *inventory.Handler
	NotesHandler     *notes.Handler
	FinanceHandler   *financehttp.Handler
	JobsHandler      *jobs.Handler
}

// NewRouter constructs the chi.Router for the dashboard API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		if params.AuthService != nil {
			r.Use(params.AuthService.RequireAuth)
		}
		r.Route("/materiales", params.MaterialsHandler.MountRoutes)
		r.Route("/productos", params.ProductsHandler.MountRoutes)
		r.Route("/clientes", params.CustomersHandler.MountRoutes)
		r.Route("/ventas", params.SalesHandler.MountRoutes)
		r.Route("/gastos", params.ExpensesHandler.MountRoutes)
		r.Route("/ordenes", params.OrdersHandler.MountRoutes)
		r.Route("/inventario", params.InventoryHandler.MountRoutes)
		r.Route("/notas", params.NotesHandler.MountRoutes)
		r.Route("/finanzas", params.FinanceHandler.MountRoutes)
		if params.JobsHandler != nil {
			r.Route("/jobs", params.JobsHandler.MountRoutes)
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
