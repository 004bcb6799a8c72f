package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Jkennedy2004/StokyGesti-n/internal/finance"
)

// FinanceWarmupJob pre-populates the cached statements so the dashboard
// never pays the first-build cost during business hours.
type FinanceWarmupJob struct {
	Finance *finance.Service
	Logger  *slog.Logger
}

// NewFinanceWarmupJob wires dependencies for the warmup handler.
func NewFinanceWarmupJob(financeSvc *finance.Service, logger *slog.Logger) *FinanceWarmupJob {
	return &FinanceWarmupJob{Finance: financeSvc, Logger: logger}
}

// Handle processes finance warmup tasks.
func (j *FinanceWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Finance == nil {
		return errors.New("finance warmup: handler not configured")
	}
	start := time.Now()

	if _, err := j.Finance.Statement(ctx); err != nil {
		j.logger().Error("warm statement", slog.Any("error", err))
		return err
	}
	if _, err := j.Finance.Profitability(ctx); err != nil {
		j.logger().Error("warm profitability", slog.Any("error", err))
		return err
	}
	if _, err := j.Finance.Dashboard(ctx); err != nil {
		j.logger().Error("warm dashboard", slog.Any("error", err))
		return err
	}

	j.logger().Info("completed finance warmup", slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *FinanceWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
