package notes

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
	Priority  *Priority
	Completed *bool
	Page      int
	Limit     int
}

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Note, int, error)
	ListDueReminders(ctx context.Context, until time.Time) ([]Note, error)
	Get(ctx context.Context, id uuid.UUID) (Note, error)
	Create(ctx context.Context, n Note) (Note, error)
	Update(ctx context.Context, id uuid.UUID, n Note) error
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const noteColumns = `id, titulo, contenido, prioridad, fecha_recordatorio, completado, created_at, updated_at`

func scanNote(row pgx.Row) (Note, error) {
	var n Note
	var content *string
	err := row.Scan(&n.ID, &n.Title, &content, &n.Priority, &n.Reminder, &n.Completed, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return Note{}, err
	}
	if content != nil {
		n.Content = *content
	}
	return n, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Note, int, error) {
	query := `SELECT ` + noteColumns + ` FROM notas WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM notas WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	addFilter := func(clause string, value interface{}) {
		argCount++
		query += ` AND ` + clause + `$` + strconv.Itoa(argCount)
		countQuery += ` AND ` + clause + `$` + strconv.Itoa(argCount)
		args = append(args, value)
	}

	if filters.Priority != nil {
		addFilter(`prioridad = `, *filters.Priority)
	}
	if filters.Completed != nil {
		addFilter(`completado = `, *filters.Completed)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY completado ASC, prioridad ASC, created_at DESC`
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

	var result []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, n)
	}
	return result, total, rows.Err()
}

func (r *repository) ListDueReminders(ctx context.Context, until time.Time) ([]Note, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+noteColumns+` FROM notas
		 WHERE completado = false AND fecha_recordatorio IS NOT NULL AND fecha_recordatorio <= $1
		 ORDER BY fecha_recordatorio ASC`,
		until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Note, error) {
	n, err := scanNote(r.db.QueryRow(ctx, `SELECT `+noteColumns+` FROM notas WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Note{}, shared.ErrNotFound
	}
	return n, err
}

func (r *repository) Create(ctx context.Context, n Note) (Note, error) {
	n.ID = uuid.New()
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	_, err := r.db.Exec(ctx,
		`INSERT INTO notas (id, titulo, contenido, prioridad, fecha_recordatorio, completado, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.Title, nullable(n.Content), n.Priority, n.Reminder, n.Completed, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return Note{}, err
	}
	return n, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, n Note) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notas SET titulo = $1, contenido = $2, prioridad = $3, fecha_recordatorio = $4, completado = $5, updated_at = now() WHERE id = $6`,
		n.Title, nullable(n.Content), n.Priority, n.Reminder, n.Completed, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notas SET completado = $1, updated_at = now() WHERE id = $2`, completed, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
