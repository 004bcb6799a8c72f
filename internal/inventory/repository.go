package inventory

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort abstracts repository usage for the ledger service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	ListMovements(ctx context.Context, filter MovementFilter) ([]Movement, int, error)
}

// TxRepository exposes the transactional operations the ledger needs.
type TxRepository interface {
	GetStockForUpdate(ctx context.Context, materialID uuid.UUID) (float64, error)
	SetStock(ctx context.Context, materialID uuid.UUID, stock float64) error
	InsertMovement(ctx context.Context, m Movement) error
}

// Repository persists the stock ledger in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &txRepo{tx: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const movementColumns = `id, material_id, tipo, cantidad, stock_anterior, stock_nuevo, motivo, referencia_id, fecha, created_at`

func (r *Repository) ListMovements(ctx context.Context, filter MovementFilter) ([]Movement, int, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos_inventario WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM movimientos_inventario WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	addFilter := func(clause string, value interface{}) {
		argCount++
		query += ` AND ` + clause + `$` + strconv.Itoa(argCount)
		countQuery += ` AND ` + clause + `$` + strconv.Itoa(argCount)
		args = append(args, value)
	}

	if filter.MaterialID != nil {
		addFilter(`material_id = `, *filter.MaterialID)
	}
	if filter.Type != nil {
		addFilter(`tipo = `, *filter.Type)
	}
	if !filter.From.IsZero() {
		addFilter(`fecha >= `, filter.From)
	}
	if !filter.To.IsZero() {
		addFilter(`fecha <= `, filter.To)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY fecha DESC, created_at DESC`
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filter.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, (page-1)*filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Movement
	for rows.Next() {
		var m Movement
		var reason *string
		if err := rows.Scan(&m.ID, &m.MaterialID, &m.Type, &m.Quantity, &m.StockBefore, &m.StockAfter, &reason, &m.ReferenceID, &m.Date, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		if reason != nil {
			m.Reason = *reason
		}
		result = append(result, m)
	}
	return result, total, rows.Err()
}

// GetStockForUpdate locks the material row so concurrent movements on the
// same material serialize.
func (r *txRepo) GetStockForUpdate(ctx context.Context, materialID uuid.UUID) (float64, error) {
	var stock float64
	err := r.tx.QueryRow(ctx,
		`SELECT stock_disponible FROM materiales WHERE id = $1 FOR UPDATE`, materialID).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrMaterialNotFound
	}
	return stock, err
}

func (r *txRepo) SetStock(ctx context.Context, materialID uuid.UUID, stock float64) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE materiales SET stock_disponible = $1, updated_at = now() WHERE id = $2`, stock, materialID)
	return err
}

func (r *txRepo) InsertMovement(ctx context.Context, m Movement) error {
	var reason *string
	if m.Reason != "" {
		reason = &m.Reason
	}
	_, err := r.tx.Exec(ctx,
		`INSERT INTO movimientos_inventario (id, material_id, tipo, cantidad, stock_anterior, stock_nuevo, motivo, referencia_id, fecha, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.MaterialID, m.Type, m.Quantity, m.StockBefore, m.StockAfter, reason, m.ReferenceID, m.Date, m.CreatedAt)
	return err
}
