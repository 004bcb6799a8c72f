package products

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jkennedy2004/StokyGesti-n/internal/platform/db"
	"github.com/Jkennedy2004/StokyGesti-n/internal/shared"
)

// ErrDuplicateLink means the recipe names the same material twice.
var ErrDuplicateLink = errors.New("products: material already linked")

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Product, int, error)
	Get(ctx context.Context, id uuid.UUID) (Product, error)
	GetLinks(ctx context.Context, productID uuid.UUID) ([]Link, error)
	Create(ctx context.Context, p Product, links []LinkRequest) (Product, error)
	Update(ctx context.Context, id uuid.UUID, p Product, links []LinkRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const productColumns = `id, nombre, categoria, descripcion, precio_venta, tiempo_elaboracion, foto_url, activo, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	var description, photoURL *string
	err := row.Scan(&p.ID, &p.Name, &p.Category, &description, &p.SalePrice, &p.PrepMinutes, &photoURL, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	if description != nil {
		p.Description = *description
	}
	if photoURL != nil {
		p.PhotoURL = *photoURL
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM productos WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	addFilter := func(clause string, value interface{}) {
		argCount++
		query += ` AND ` + clause + `$` + strconv.Itoa(argCount)
		countQuery += ` AND ` + clause + `$` + strconv.Itoa(argCount)
		args = append(args, value)
	}

	if filters.Category != "" {
		addFilter(`categoria = `, filters.Category)
	}
	if filters.Active != nil {
		addFilter(`activo = `, *filters.Active)
	}
	if filters.Search != "" {
		addFilter(`nombre ILIKE `, "%"+filters.Search+"%")
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

	var result []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.ErrNotFound
	}
	return p, err
}

// GetLinks joins the recipe against materiales. A link whose material
// was deleted comes back unresolved with a zero price.
func (r *repository) GetLinks(ctx context.Context, productID uuid.UUID) ([]Link, error) {
	rows, err := r.db.Query(ctx,
		`SELECT pm.id, pm.material_id, pm.cantidad, m.nombre, m.unidad_medida, m.precio_unitario
		 FROM producto_materiales pm
		 LEFT JOIN materiales m ON m.id = pm.material_id
		 WHERE pm.producto_id = $1
		 ORDER BY pm.created_at ASC`,
		productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Link
	for rows.Next() {
		var l Link
		var name, unit *string
		var unitPrice *float64
		if err := rows.Scan(&l.ID, &l.MaterialID, &l.Quantity, &name, &unit, &unitPrice); err != nil {
			return nil, err
		}
		if name != nil && unitPrice != nil {
			l.MaterialName = *name
			l.MaterialUnitPrice = *unitPrice
			l.Resolved = true
		}
		if unit != nil {
			l.MaterialUnit = *unit
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (r *repository) Create(ctx context.Context, p Product, links []LinkRequest) (Product, error) {
	p.ID = uuid.New()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO productos (id, nombre, categoria, descripcion, precio_venta, tiempo_elaboracion, foto_url, activo, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.ID, p.Name, p.Category, nullableString(p.Description), p.SalePrice, p.PrepMinutes, nullableString(p.PhotoURL), p.Active, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return err
		}
		return insertLinks(ctx, tx, p.ID, links)
	})
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// Update replaces the product row and rewrites the recipe links.
func (r *repository) Update(ctx context.Context, id uuid.UUID, p Product, links []LinkRequest) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE productos SET nombre = $1, categoria = $2, descripcion = $3, precio_venta = $4, tiempo_elaboracion = $5, foto_url = $6, activo = $7, updated_at = now()
			 WHERE id = $8`,
			p.Name, p.Category, nullableString(p.Description), p.SalePrice, p.PrepMinutes, nullableString(p.PhotoURL), p.Active, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM producto_materiales WHERE producto_id = $1`, id); err != nil {
			return err
		}
		return insertLinks(ctx, tx, id, links)
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM producto_materiales WHERE producto_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func insertLinks(ctx context.Context, tx pgx.Tx, productID uuid.UUID, links []LinkRequest) error {
	for _, l := range links {
		_, err := tx.Exec(ctx,
			`INSERT INTO producto_materiales (id, producto_id, material_id, cantidad, created_at) VALUES ($1, $2, $3, $4, now())`,
			uuid.New(), productID, l.MaterialID, l.Quantity)
		if err != nil {
			if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.ConstraintName == "uq_producto_material" {
				return ErrDuplicateLink
			}
			return err
		}
	}
	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
