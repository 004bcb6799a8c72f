package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/Jkennedy2004/StokyGesti-n/internal/app"
	"github.com/Jkennedy2004/StokyGesti-n/internal/auth"
	"github.com/Jkennedy2004/StokyGesti-n/internal/customers"
	"github.com/Jkennedy2004/StokyGesti-n/internal/expenses"
	"github.com/Jkennedy2004/StokyGesti-n/internal/finance"
	financehttp "github.com/Jkennedy2004/StokyGesti-n/internal/finance/http"
	"github.com/Jkennedy2004/StokyGesti-n/internal/inventory"
	"github.com/Jkennedy2004/StokyGesti-n/internal/materials"
	"github.com/Jkennedy2004/StokyGesti-n/internal/notes"
	"github.com/Jkennedy2004/StokyGesti-n/internal/observability"
	"github.com/Jkennedy2004/StokyGesti-n/internal/orders"
	"github.com/Jkennedy2004/StokyGesti-n/internal/platform/cache"
	"github.com/Jkennedy2004/StokyGesti-n/internal/platform/db"
	"github.com/Jkennedy2004/StokyGesti-n/internal/products"
	"github.com/Jkennedy2004/StokyGesti-n/internal/sales"
	"github.com/Jkennedy2004/StokyGesti-n/internal/shared"
	"github.com/Jkennedy2004/StokyGesti-n/jobs"
)

// recipeAdapter exposes product recipes in the shape the order fulfilment
// flow consumes.
type recipeAdapter struct {
	products *products.Service
}

func (a recipeAdapter) Recipe(ctx context.Context, productID uuid.UUID) ([]orders.RecipeItem, error) {
	links, err := a.products.Recipe(ctx, productID)
	if err != nil {
		return nil, err
	}
	items := make([]orders.RecipeItem, 0, len(links))
	for _, link := range links {
		items = append(items, orders.RecipeItem{MaterialID: link.MaterialID, Quantity: link.Quantity})
	}
	return items, nil
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	auditLogger := shared.NewAuditLogger(pool)

	authRepo := auth.NewRepository(pool)
	tokenManager := auth.NewTokenManager(redisClient, cfg.TokenTTL)
	authService := auth.NewService(authRepo, tokenManager, logger)
	authHandler := auth.NewHandler(logger, authService)

	financeRepo := finance.NewRepository(pool)
	financeCache := finance.NewCache(redisClient, cfg.CacheTTL)
	financeService := finance.NewService(financeRepo, financeCache, cfg.LowStockThreshold)
	financeHandler := financehttp.NewHandler(logger, financeService)

	materialsRepo := materials.NewRepository(pool)
	materialsService := materials.NewService(materialsRepo, financeService, logger)
	materialsHandler := materials.NewHandler(logger, materialsService, cfg.LowStockThreshold)

	productsRepo := products.NewRepository(pool)
	productsService := products.NewService(productsRepo, financeService, logger)
	productsHandler := products.NewHandler(logger, productsService)

	customersRepo := customers.NewRepository(pool)
	customersService := customers.NewService(customersRepo)
	customersHandler := customers.NewHandler(logger, customersService)

	salesRepo := sales.NewRepository(pool)
	salesService := sales.NewService(salesRepo, productsService, financeService, logger)
	salesHandler := sales.NewHandler(logger, salesService)

	expensesRepo := expenses.NewRepository(pool)
	expensesService := expenses.NewService(expensesRepo, financeService, logger)
	expensesHandler := expenses.NewHandler(logger, expensesService)

	inventoryRepo := inventory.NewRepository(pool)
	inventoryService := inventory.NewService(inventoryRepo, auditLogger, financeService, metrics, logger)
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	ordersRepo := orders.NewRepository(pool)
	ordersService := orders.NewService(ordersRepo, salesService, productsService, recipeAdapter{products: productsService}, inventoryService, logger)
	ordersHandler := orders.NewHandler(logger, ordersService)

	notesRepo := notes.NewRepository(pool)
	notesService := notes.NewService(notesRepo)
	notesHandler := notes.NewHandler(logger, notesService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, jobsClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Metrics:          metrics,
		AuthService:      authService,
		AuthHandler:      authHandler,
		MaterialsHandler: materialsHandler,
		ProductsHandler:  productsHandler,
		CustomersHandler: customersHandler,
		SalesHandler:     salesHandler,
		ExpensesHandler:  expensesHandler,
		OrdersHandler:    ordersHandler,
		InventoryHandler: inventoryHandler,
		NotesHandler:     notesHandler,
		FinanceHandler:   financeHandler,
		JobsHandler:      jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
