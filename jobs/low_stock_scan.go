package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/Jkennedy2004/StokyGesti-n/internal/materials"
	"github.com/Jkennedy2004/StokyGesti-n/internal/observability"
)

// LowStockScanJob flags materials running below the configured threshold.
type LowStockScanJob struct {
	Materials *materials.Service
	Metrics   *observability.Metrics
	Logger    *slog.Logger
	Threshold float64
}

// NewLowStockScanJob wires dependencies for the scan handler.
func NewLowStockScanJob(materialsSvc *materials.Service, metrics *observability.Metrics, logger *slog.Logger, threshold float64) *LowStockScanJob {
	if threshold <= 0 {
		threshold = 5
	}
	return &LowStockScanJob{Materials: materialsSvc, Metrics: metrics, Logger: logger, Threshold: threshold}
}

// Handle processes low stock scan tasks.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Materials == nil {
		return errors.New("low stock scan: handler not configured")
	}
	threshold := j.Threshold
	if len(t.Payload()) > 0 {
		var payload LowStockScanPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.Threshold > 0 {
			threshold = payload.Threshold
		}
	}

	items, err := j.Materials.ListLowStock(ctx, threshold)
	if err != nil {
		j.logger().Error("list low stock", slog.Any("error", err))
		return err
	}

	j.Metrics.SetLowStock(len(items))
	for _, m := range items {
		j.logger().Warn("material below stock threshold",
			slog.String("material", m.Name),
			slog.Float64("stock", m.Stock),
			slog.Float64("umbral", threshold))
	}
	j.logger().Info("completed low stock scan", slog.Int("materials", len(items)))
	return nil
}

func (j *LowStockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
