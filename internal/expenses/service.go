package expenses

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

var ErrInvalidExpense = errors.New("expenses: invalid expense")

type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo        Repository
	invalidator CacheInvalidator
	logger      *slog.Logger
}

func NewService(repo Repository, invalidator CacheInvalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, invalidator: invalidator, logger: logger}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Expense, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Expense, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, e Expense) (Expense, error) {
	if err := s.validate(e); err != nil {
		return Expense{}, err
	}
	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return Expense{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, e Expense) error {
	if err := s.validate(e); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, e); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) validate(e Expense) error {
	if !e.Category.Valid() {
		return ErrInvalidExpense
	}
	if e.Amount < 0 {
		return ErrInvalidExpense
	}
	if e.Date.IsZero() {
		return ErrInvalidExpense
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil && s.logger != nil {
		s.logger.Warn("invalidate finance cache", slog.Any("error", err))
	}
}
