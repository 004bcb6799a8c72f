package materials

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jkennedy2004/StokyGesti-n/internal/platform/db"
	"github.com/Jkennedy2004/StokyGesti-n/internal/shared"
)

type ListFilters struct {
	Search string
	Page   int
	Limit  int
}

// StockChange carries the before/after stock of an edit so the
// repository can append the inventory trail in the same transaction.
type StockChange struct {
	Before float64
	After  float64
}

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Material, int, error)
	ListLowStock(ctx context.Context, threshold float64) ([]Material, error)
	Get(ctx context.Context, id uuid.UUID) (Material, error)
	Create(ctx context.Context, m Material) (Material, error)
	Update(ctx context.Context, id uuid.UUID, m Material, change *StockChange) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPurchases(ctx context.Context, materialID uuid.UUID) ([]Purchase, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const materialColumns = `id, nombre, precio_unitario, unidad_medida, stock_disponible, proveedor, fecha_compra, notas, created_at, updated_at`

func scanMaterial(row pgx.Row) (Material, error) {
	var m Material
	var supplier, notes *string
	err := row.Scan(&m.ID, &m.Name, &m.UnitPrice, &m.Unit, &m.Stock, &supplier, &m.PurchaseDate, &notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return Material{}, err
	}
	if supplier != nil {
		m.Supplier = *supplier
	}
	if notes != nil {
		m.Notes = *notes
	}
	return m, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Material, int, error) {
	query := `SELECT ` + materialColumns + ` FROM materiales WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM materiales WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		clause := ` AND (nombre ILIKE $` + strconv.Itoa(argCount) + ` OR proveedor ILIKE $` + strconv.Itoa(argCount) + `)`
		query += clause
		countQuery += clause
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY nombre ASC`
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

	var result []Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, m)
	}
	return result, total, rows.Err()
}

func (r *repository) ListLowStock(ctx context.Context, threshold float64) ([]Material, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+materialColumns+` FROM materiales WHERE stock_disponible < $1 ORDER BY stock_disponible ASC`,
		threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Material, error) {
	m, err := scanMaterial(r.db.QueryRow(ctx, `SELECT `+materialColumns+` FROM materiales WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Material{}, shared.ErrNotFound
	}
	return m, err
}

// Create inserts the material. When it arrives with initial stock the same
// transaction records the opening purchase and an entrada movement so the
// inventory trail starts consistent.
func (r *repository) Create(ctx context.Context, m Material) (Material, error) {
	m.ID = uuid.New()
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO materiales (id, nombre, precio_unitario, unidad_medida, stock_disponible, proveedor, fecha_compra, notas, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			m.ID, m.Name, m.UnitPrice, m.Unit, m.Stock, nullableString(m.Supplier), m.PurchaseDate, nullableString(m.Notes), m.CreatedAt, m.UpdatedAt)
		if err != nil {
			return err
		}
		if m.Stock <= 0 {
			return nil
		}
		purchaseDate := now
		if m.PurchaseDate != nil {
			purchaseDate = *m.PurchaseDate
		}
		if err := insertPurchase(ctx, tx, Purchase{
			MaterialID:   m.ID,
			Quantity:     m.Stock,
			UnitPrice:    m.UnitPrice,
			Total:        m.Stock * m.UnitPrice,
			Supplier:     m.Supplier,
			PurchaseDate: purchaseDate,
		}); err != nil {
			return err
		}
		return insertMovement(ctx, tx, m.ID, "entrada", m.Stock, 0, m.Stock, "Stock inicial del material")
	})
	if err != nil {
		return Material{}, err
	}
	return m, nil
}

// Update writes the material row; when change is non-nil the stock edit leaves
// a movement row, and stock increases also land in the purchase history.
func (r *repository) Update(ctx context.Context, id uuid.UUID, m Material, change *StockChange) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE materiales SET nombre = $1, precio_unitario = $2, unidad_medida = $3, stock_disponible = $4, proveedor = $5, fecha_compra = $6, notas = $7, updated_at = now()
			 WHERE id = $8`,
			m.Name, m.UnitPrice, m.Unit, m.Stock, nullableString(m.Supplier), m.PurchaseDate, nullableString(m.Notes), id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		if change == nil || change.Before == change.After {
			return nil
		}

		diff := change.After - change.Before
		movementType := "entrada"
		reason := "Compra de material (incremento de stock)"
		quantity := diff
		if diff < 0 {
			movementType = "salida"
			reason = "Ajuste de stock (reducción)"
			quantity = -diff
		}
		if err := insertMovement(ctx, tx, id, movementType, quantity, change.Before, change.After, reason); err != nil {
			return err
		}
		if diff <= 0 {
			return nil
		}
		purchaseDate := time.Now().UTC()
		if m.PurchaseDate != nil {
			purchaseDate = *m.PurchaseDate
		}
		return insertPurchase(ctx, tx, Purchase{
			MaterialID:   id,
			Quantity:     diff,
			UnitPrice:    m.UnitPrice,
			Total:        diff * m.UnitPrice,
			Supplier:     m.Supplier,
			PurchaseDate: purchaseDate,
			Notes:        fmt.Sprintf("Compra adicional - Stock actualizado de %g a %g %s", change.Before, change.After, m.Unit),
		})
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM materiales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) ListPurchases(ctx context.Context, materialID uuid.UUID) ([]Purchase, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, material_id, cantidad, precio_unitario, total, proveedor, fecha_compra, notas, created_at
		 FROM historial_compras_materiales WHERE material_id = $1 ORDER BY fecha_compra DESC`,
		materialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Purchase
	for rows.Next() {
		var p Purchase
		var supplier, notes *string
		if err := rows.Scan(&p.ID, &p.MaterialID, &p.Quantity, &p.UnitPrice, &p.Total, &supplier, &p.PurchaseDate, &notes, &p.CreatedAt); err != nil {
			return nil, err
		}
		if supplier != nil {
			p.Supplier = *supplier
		}
		if notes != nil {
			p.Notes = *notes
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func insertPurchase(ctx context.Context, tx pgx.Tx, p Purchase) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO historial_compras_materiales (id, material_id, cantidad, precio_unitario, total, proveedor, fecha_compra, notas, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`,
		uuid.New(), p.MaterialID, p.Quantity, p.UnitPrice, p.Total, nullableString(p.Supplier), p.PurchaseDate, nullableString(p.Notes))
	return err
}

func insertMovement(ctx context.Context, tx pgx.Tx, materialID uuid.UUID, movementType string, quantity, before, after float64, reason string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO movimientos_inventario (id, material_id, tipo, cantidad, stock_anterior, stock_nuevo, motivo, fecha, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`,
		uuid.New(), materialID, movementType, quantity, before, after, reason)
	return err
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
