package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/Jkennedy2004/StokyGesti-n/internal/notes"
)

// NoteRemindersJob surfaces notes whose reminder date has passed.
type NoteRemindersJob struct {
	Notes  *notes.Service
	Logger *slog.Logger
}

// NewNoteRemindersJob wires dependencies for the reminder handler.
func NewNoteRemindersJob(notesSvc *notes.Service, logger *slog.Logger) *NoteRemindersJob {
	return &NoteRemindersJob{Notes: notesSvc, Logger: logger}
}

// Handle processes reminder scan tasks.
func (j *NoteRemindersJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Notes == nil {
		return errors.New("note reminders: handler not configured")
	}

	due, err := j.Notes.DueReminders(ctx)
	if err != nil {
		j.logger().Error("list due reminders", slog.Any("error", err))
		return err
	}
	for _, n := range due {
		j.logger().Info("note reminder due",
			slog.String("titulo", n.Title),
			slog.String("prioridad", string(n.Priority)))
	}
	return nil
}

func (j *NoteRemindersJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
