package finance

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jkennedy2004/StokyGesti-n/internal/expenses"
	"github.com/Jkennedy2004/StokyGesti-n/internal/sales"
)

// PgRepository loads snapshots straight from PostgreSQL.
type PgRepository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a PgRepository.
func NewRepository(db *pgxpool.Pool) *PgRepository {
	return &PgRepository{db: db}
}

func (r *PgRepository) SalesSnapshot(ctx context.Context) ([]Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, producto_id, cantidad, precio_total, costo_produccion, estado FROM ventas`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Sale
	for rows.Next() {
		var s Sale
		var estado string
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.Total, &s.UnitCost, &estado); err != nil {
			return nil, err
		}
		s.Cancelled = sales.Status(estado) == sales.StatusCancelado
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *PgRepository) ExpensesSnapshot(ctx context.Context) ([]Expense, error) {
	rows, err := r.db.Query(ctx, `SELECT categoria, monto FROM gastos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Expense
	for rows.Next() {
		var e Expense
		var categoria string
		if err := rows.Scan(&categoria, &e.Amount); err != nil {
			return nil, err
		}
		e.Category = expenses.Category(categoria)
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *PgRepository) MaterialsSnapshot(ctx context.Context) ([]Material, error) {
	rows, err := r.db.Query(ctx, `SELECT precio_unitario, stock_disponible FROM materiales`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.UnitPrice, &m.Stock); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *PgRepository) ProductsSnapshot(ctx context.Context) ([]ProductRef, error) {
	rows, err := r.db.Query(ctx, `SELECT id, nombre, categoria FROM productos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ProductRef
	for rows.Next() {
		var p ProductRef
		if err := rows.Scan(&p.ID, &p.Name, &p.Category); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *PgRepository) CountActiveProducts(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM productos WHERE activo`).Scan(&count)
	return count, err
}

func (r *PgRepository) CountLowStockMaterials(ctx context.Context, threshold float64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM materiales WHERE stock_disponible < $1`, threshold).Scan(&count)
	return count, err
}
