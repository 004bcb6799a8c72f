package expenses

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

type ListFilters struct {
	Category *Category
	From     time.Time
	To       time.Time
	Page     int
	Limit    int
}

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Expense, int, error)
	Get(ctx context.Context, id uuid.UUID) (Expense, error)
	Create(ctx context.Context, e Expense) (Expense, error)
	Update(ctx context.Context, id uuid.UUID, e Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const expenseColumns = `id, categoria, monto, fecha, descripcion, created_at`

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Expense, int, error) {
	query := `SELECT ` + expenseColumns + ` FROM gastos WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM gastos WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	addFilter := func(clause string, value interface{}) {
		argCount++
		query += ` AND ` + clause + `$` + strconv.Itoa(argCount)
		countQuery += ` AND ` + clause + `$` + strconv.Itoa(argCount)
		args = append(args, value)
	}

	if filters.Category != nil {
		addFilter(`categoria = `, *filters.Category)
	}
	if !filters.From.IsZero() {
		addFilter(`fecha >= `, filters.From)
	}
	if !filters.To.IsZero() {
		addFilter(`fecha <= `, filters.To)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY fecha DESC, created_at DESC`
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

	var result []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &e.Date, &e.Description, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, e)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Expense, error) {
	var e Expense
	err := r.db.QueryRow(ctx, `SELECT `+expenseColumns+` FROM gastos WHERE id = $1`, id).
		Scan(&e.ID, &e.Category, &e.Amount, &e.Date, &e.Description, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, shared.ErrNotFound
	}
	return e, err
}

func (r *repository) Create(ctx context.Context, e Expense) (Expense, error) {
	e.ID = uuid.New()
	e.CreatedAt = time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO gastos (id, categoria, monto, fecha, descripcion, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Category, e.Amount, e.Date, e.Description, e.CreatedAt)
	if err != nil {
		return Expense{}, err
	}
	return e, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, e Expense) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE gastos SET categoria = $1, monto = $2, fecha = $3, descripcion = $4 WHERE id = $5`,
		e.Category, e.Amount, e.Date, e.Description, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM gastos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
