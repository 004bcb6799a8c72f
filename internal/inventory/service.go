package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Jkennedy2004/StokyGesti-n/internal/shared"
)

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// CacheInvalidator drops cached finance figures after stock changes,
// since the material valuation feeds the statement.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// MovementCounter feeds posted movements into the metrics registry.
type MovementCounter interface {
	CountMovement(tipo string)
}

// Service is the stock ledger. Every stock mutation goes through Apply,
// which locks the material row, derives the new stock and appends the
// movement in one transaction.
type Service struct {
	repo        RepositoryPort
	audit       AuditPort
	invalidator CacheInvalidator
	counter     MovementCounter
	logger      *slog.Logger
}

func NewService(repo RepositoryPort, audit AuditPort, invalidator CacheInvalidator, counter MovementCounter, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, invalidator: invalidator, counter: counter, logger: logger}
}

// Apply posts a movement. entrada adds the quantity, salida subtracts it
// and fails on insufficient stock, ajuste sets the absolute level.
func (s *Service) Apply(ctx context.Context, input MovementInput) (Movement, error) {
	if input.MaterialID == uuid.Nil {
		return Movement{}, ErrMaterialNotFound
	}
	if !input.Type.Valid() {
		return Movement{}, fmt.Errorf("%w: %q", ErrInvalidMovementType, input.Type)
	}
	switch input.Type {
	case MovementEntrada, MovementSalida:
		if input.Quantity <= 0 {
			return Movement{}, ErrInvalidQuantity
		}
	case MovementAjuste:
		if input.Quantity < 0 {
			return Movement{}, ErrInvalidQuantity
		}
	}

	now := time.Now().UTC()
	var movement Movement
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		before, err := tx.GetStockForUpdate(ctx, input.MaterialID)
		if err != nil {
			return err
		}

		var after float64
		switch input.Type {
		case MovementEntrada:
			after = before + input.Quantity
		case MovementSalida:
			after = before - input.Quantity
			if after < 0 {
				return fmt.Errorf("%w: have %g, need %g", ErrInsufficientStock, before, input.Quantity)
			}
		case MovementAjuste:
			after = input.Quantity
		}

		movement = Movement{
			ID:          uuid.New(),
			MaterialID:  input.MaterialID,
			Type:        input.Type,
			Quantity:    input.Quantity,
			StockBefore: before,
			StockAfter:  after,
			Reason:      input.Reason,
			ReferenceID: input.ReferenceID,
			Date:        now,
			CreatedAt:   now,
		}
		if err := tx.SetStock(ctx, input.MaterialID, after); err != nil {
			return err
		}
		return tx.InsertMovement(ctx, movement)
	})
	if err != nil {
		return Movement{}, err
	}

	if s.audit != nil {
		auditErr := s.audit.Record(ctx, shared.AuditLog{
			Actor:    actorOrDefault(ctx),
			Action:   "movement." + string(input.Type),
			Entity:   "material",
			EntityID: input.MaterialID.String(),
			Meta: map[string]any{
				"cantidad":       movement.Quantity,
				"stock_anterior": movement.StockBefore,
				"stock_nuevo":    movement.StockAfter,
			},
		})
		if auditErr != nil && s.logger != nil {
			s.logger.Warn("audit movement", slog.Any("error", auditErr))
		}
	}
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx); err != nil && s.logger != nil {
			s.logger.Warn("invalidate finance cache", slog.Any("error", err))
		}
	}
	if s.counter != nil {
		s.counter.CountMovement(string(movement.Type))
	}
	return movement, nil
}

// History lists ledger entries, newest first.
func (s *Service) History(ctx context.Context, filter MovementFilter) ([]Movement, int, error) {
	return s.repo.ListMovements(ctx, filter)
}

func actorOrDefault(ctx context.Context) string {
	if actor := shared.ActorFromContext(ctx); actor != "" {
		return actor
	}
	return "inventory"
}
