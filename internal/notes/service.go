package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidNote = errors.New("notes: invalid note")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Note, int, error) {
	return s.repo.List(ctx, filters)
}

// DueReminders lists open notes whose reminder has passed.
func (s *Service) DueReminders(ctx context.Context) ([]Note, error) {
	return s.repo.ListDueReminders(ctx, time.Now().UTC())
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Note, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, n Note) (Note, error) {
	if n.Priority == "" {
		n.Priority = PriorityNormal
	}
	if err := validate(n); err != nil {
		return Note{}, err
	}
	return s.repo.Create(ctx, n)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, n Note) error {
	if n.Priority == "" {
		n.Priority = PriorityNormal
	}
	if err := validate(n); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, n)
}

func (s *Service) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	return s.repo.SetCompleted(ctx, id, completed)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validate(n Note) error {
	if n.Title == "" {
		return fmt.Errorf("%w: titulo is required", ErrInvalidNote)
	}
	if !n.Priority.Valid() {
		return fmt.Errorf("%w: unknown prioridad %q", ErrInvalidNote, n.Priority)
	}
	return nil
}
