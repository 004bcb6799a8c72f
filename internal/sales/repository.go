package sales

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
	List(ctx context.Context, filters ListFilters) ([]Venta, int, error)
	Get(ctx context.Context, id uuid.UUID) (Venta, error)
	Create(ctx context.Context, v Venta) (Venta, error)
	Update(ctx context.Context, id uuid.UUID, v Venta) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context, from, to time.Time) (Summary, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const saleColumns = `id, producto_id, cliente_id, cantidad, precio_unitario, precio_total, costo_produccion, ganancia, fecha_venta, metodo_pago, estado, notas, created_at`

func scanSale(row pgx.Row) (Venta, error) {
	var v Venta
	var notes *string
	err := row.Scan(&v.ID, &v.ProductID, &v.CustomerID, &v.Quantity, &v.UnitPrice, &v.Total,
		&v.ProductionCost, &v.Profit, &v.SaleDate, &v.PaymentMethod, &v.Status, &notes, &v.CreatedAt)
	if err != nil {
		return Venta{}, err
	}
	if notes != nil {
		v.Notes = *notes
	}
	return v, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Venta, int, error) {
	query := `SELECT ` + saleColumns + ` FROM ventas WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM ventas WHERE 1=1`
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
	if filters.ProductID != nil {
		addFilter(`producto_id = `, *filters.ProductID)
	}
	if filters.CustomerID != nil {
		addFilter(`cliente_id = `, *filters.CustomerID)
	}
	if !filters.From.IsZero() {
		addFilter(`fecha_venta >= `, filters.From)
	}
	if !filters.To.IsZero() {
		addFilter(`fecha_venta <= `, filters.To)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY fecha_venta DESC, created_at DESC`
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

	var result []Venta
	for rows.Next() {
		v, err := scanSale(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, v)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Venta, error) {
	v, err := scanSale(r.db.QueryRow(ctx, `SELECT `+saleColumns+` FROM ventas WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Venta{}, shared.ErrNotFound
	}
	return v, err
}

func (r *repository) Create(ctx context.Context, v Venta) (Venta, error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO ventas (`+saleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		v.ID, v.ProductID, v.CustomerID, v.Quantity, v.UnitPrice, v.Total,
		v.ProductionCost, v.Profit, v.SaleDate, v.PaymentMethod, v.Status, v.Notes, v.CreatedAt)
	if err != nil {
		return Venta{}, err
	}
	return v, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, v Venta) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE ventas SET cantidad = $1, precio_unitario = $2, precio_total = $3, metodo_pago = $4, estado = $5, notas = $6 WHERE id = $7`,
		v.Quantity, v.UnitPrice, v.Total, v.PaymentMethod, v.Status, v.Notes, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE ventas SET estado = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Summary aggregates non-cancelled sales, optionally bounded by date.
func (r *repository) Summary(ctx context.Context, from, to time.Time) (Summary, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(cantidad), 0), COALESCE(SUM(precio_total), 0), COALESCE(SUM(ganancia * cantidad), 0)
		FROM ventas WHERE estado <> 'cancelado'`
	args := []interface{}{}
	argCount := 0
	if !from.IsZero() {
		argCount++
		query += ` AND fecha_venta >= $` + strconv.Itoa(argCount)
		args = append(args, from)
	}
	if !to.IsZero() {
		argCount++
		query += ` AND fecha_venta <= $` + strconv.Itoa(argCount)
		args = append(args, to)
	}
	var s Summary
	err := r.db.QueryRow(ctx, query, args...).Scan(&s.Count, &s.Units, &s.Total, &s.Profit)
	return s, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ventas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
