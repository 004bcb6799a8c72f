package orders

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jkennedy2004/StokyGesti-n/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Order, int, error)
	Get(ctx context.Context, id uuid.UUID) (Order, error)
	Create(ctx context.Context, o Order) (Order, error)
	Update(ctx context.Context, id uuid.UUID, o Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	UpdateDeposit(ctx context.Context, id uuid.UUID, deposit float64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const orderColumns = `id, producto_id, cliente_id, cantidad, fecha_pedido, fecha_entrega_estimada, estado, precio_acordado, anticipo, notas, created_at, updated_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	var notes *string
	err := row.Scan(&o.ID, &o.ProductID, &o.CustomerID, &o.Quantity, &o.OrderDate, &o.EstimatedDelivery, &o.Status, &o.AgreedPrice, &o.Deposit, &notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Order{}, err
	}
	if notes != nil {
		o.Notes = *notes
	}
	return o, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Order, int, error) {
	query := `SELECT ` + orderColumns + ` FROM ordenes_pendientes WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM ordenes_pendientes WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	addFilter := func(clause string, value interface{}) {
		argCount++
		query += ` AND ` + clause + `$` + strconv.Itoa(argCount)
		countQuery += ` AND ` + clause + `$` + strconv.Itoa(argCount)
		args = append(args, value)
	}

	if filters.Status != nil {
		addFilter(`estado = `, *filters.Status)
	}
	if filters.CustomerID != nil {
		addFilter(`cliente_id = `, *filters.CustomerID)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY fecha_pedido DESC, created_at DESC`
	if filters.Limit > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, (page-1)*filters.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, o)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM ordenes_pendientes WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, shared.ErrNotFound
	}
	return o, err
}

func (r *repository) Create(ctx context.Context, o Order) (Order, error) {
	o.ID = uuid.New()
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	var notes *string
	if o.Notes != "" {
		notes = &o.Notes
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO ordenes_pendientes (id, producto_id, cliente_id, cantidad, fecha_pedido, fecha_entrega_estimada, estado, precio_acordado, anticipo, notas, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		o.ID, o.ProductID, o.CustomerID, o.Quantity, o.OrderDate, o.EstimatedDelivery, o.Status, o.AgreedPrice, o.Deposit, notes, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, o Order) error {
	var notes *string
	if o.Notes != "" {
		notes = &o.Notes
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE ordenes_pendientes SET producto_id = $1, cliente_id = $2, cantidad = $3, fecha_pedido = $4, fecha_entrega_estimada = $5, precio_acordado = $6, anticipo = $7, notas = $8, updated_at = now()
		 WHERE id = $9`,
		o.ProductID, o.CustomerID, o.Quantity, o.OrderDate, o.EstimatedDelivery, o.AgreedPrice, o.Deposit, notes, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE ordenes_pendientes SET estado = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) UpdateDeposit(ctx context.Context, id uuid.UUID, deposit float64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE ordenes_pendientes SET anticipo = $1, updated_at = now() WHERE id = $2`, deposit, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ordenes_pendientes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
