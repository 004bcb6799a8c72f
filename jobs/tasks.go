package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLowStockScan flags materials running below the stock threshold.
	TaskLowStockScan = "inventory:low_stock_scan"
	// TaskFinanceWarmup rebuilds the cached financial statements.
	TaskFinanceWarmup = "finance:warmup"
	// TaskNoteReminders surfaces notes whose reminder date has passed.
	TaskNoteReminders = "notes:reminders"
)

// LowStockScanPayload parameterises the stock scan.
type LowStockScanPayload struct {
	Threshold float64 `json:"threshold"`
}

// NewLowStockScanTask constructs an Asynq task for the stock scan.
func NewLowStockScanTask(threshold float64) (*asynq.Task, error) {
	data, err := json.Marshal(LowStockScanPayload{Threshold: threshold})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, data), nil
}

// NewFinanceWarmupTask constructs an Asynq task for the cache warmup.
func NewFinanceWarmupTask() (*asynq.Task, error) {
	return asynq.NewTask(TaskFinanceWarmup, nil), nil
}

// NewNoteRemindersTask constructs an Asynq task for the reminder scan.
func NewNoteRemindersTask() (*asynq.Task, error) {
	return asynq.NewTask(TaskNoteReminders, nil), nil
}
