package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/Jkennedy2004/StokyGesti-n/internal/app"
	"github.com/Jkennedy2004/StokyGesti-n/internal/finance"
	"github.com/Jkennedy2004/StokyGesti-n/internal/materials"
	"github.com/Jkennedy2004/StokyGesti-n/internal/notes"
	"github.com/Jkennedy2004/StokyGesti-n/internal/observability"
	"github.com/Jkennedy2004/StokyGesti-n/internal/platform/cache"
	"github.com/Jkennedy2004/StokyGesti-n/internal/platform/db"
	"github.com/Jkennedy2004/StokyGesti-n/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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
		logger.Error("connect database", slog.Any("error", err))
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

	financeRepo := finance.NewRepository(pool)
	financeCache := finance.NewCache(redisClient, cfg.CacheTTL)
	financeService := finance.NewService(financeRepo, financeCache, cfg.LowStockThreshold)

	materialsRepo := materials.NewRepository(pool)
	materialsService := materials.NewService(materialsRepo, financeService, logger)

	notesRepo := notes.NewRepository(pool)
	notesService := notes.NewService(notesRepo)

	lowStockJob := jobs.NewLowStockScanJob(materialsService, metrics, logger, cfg.LowStockThreshold)
	warmupJob := jobs.NewFinanceWarmupJob(financeService, logger)
	remindersJob := jobs.NewNoteRemindersJob(notesService, logger)

	lowStockTask, err := jobs.NewLowStockScanTask(cfg.LowStockThreshold)
	if err != nil {
		logger.Error("build low stock task", slog.Any("error", err))
		os.Exit(1)
	}
	warmupTask, err := jobs.NewFinanceWarmupTask()
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}
	remindersTask, err := jobs.NewNoteRemindersTask()
	if err != nil {
		logger.Error("build reminders task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLowStockScan, Handler: lowStockJob.Handle},
			{Type: jobs.TaskFinanceWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskNoteReminders, Handler: remindersJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 7 * * *", Task: lowStockTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "30 6 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "0 8 * * *", Task: remindersTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
