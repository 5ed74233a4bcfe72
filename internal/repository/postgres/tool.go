package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/repository"

	"github.com/lib/pq"
)

const toolColumns = `id, name, COALESCE(description, ''), price_per_day_cents, COALESCE(image_url, ''), category, available, created_on, deleted_on`

type toolRepository struct {
	db *sql.DB
}

func NewToolRepository(db *sql.DB) repository.ToolRepository {
	return &toolRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTool(row rowScanner) (*domain.Tool, error) {
	t := &domain.Tool{}
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.PricePerDayCents, &t.ImageURL, &t.Category, &t.Available, &t.CreatedOn, &t.DeletedOn); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *toolRepository) Create(ctx context.Context, t *domain.Tool) error {
	query := `INSERT INTO tools (name, description, price_per_day_cents, image_url, category, available, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on`
	t.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, t.Name, t.Description, t.PricePerDayCents, t.ImageURL, t.Category, t.Available, t.CreatedOn).Scan(&t.ID, &t.CreatedOn)
}

// GetByID returns live tools only.
func (r *toolRepository) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE id = $1 AND deleted_on IS NULL`
	t, err := scanTool(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, domain.ErrToolNotFound)
	}
	return t, nil
}

func (r *toolRepository) Update(ctx context.Context, t *domain.Tool) error {
	query := `UPDATE tools SET name=$1, description=$2, price_per_day_cents=$3, image_url=$4, category=$5, available=$6
	          WHERE id=$7 AND deleted_on IS NULL`
	res, err := r.db.ExecContext(ctx, query, t.Name, t.Description, t.PricePerDayCents, t.ImageURL, t.Category, t.Available, t.ID)
	if err != nil {
		return err
	}
	return checkAffected(res, domain.ErrToolNotFound)
}

// Delete is a soft delete; bookings keep pointing at the row.
func (r *toolRepository) Delete(ctx context.Context, id int32) error {
	query := `UPDATE tools SET deleted_on = $1 WHERE id = $2 AND deleted_on IS NULL`
	res, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	return checkAffected(res, domain.ErrToolNotFound)
}

var toolOrderBy = map[domain.ToolSort]string{
	domain.ToolSortPopular:   "id ASC",
	domain.ToolSortPriceAsc:  "price_per_day_cents ASC, id ASC",
	domain.ToolSortPriceDesc: "price_per_day_cents DESC, id ASC",
	domain.ToolSortName:      "name ASC, id ASC",
}

func (r *toolRepository) Search(ctx context.Context, f domain.ToolFilter) ([]domain.Tool, int32, error) {
	sql := `SELECT ` + toolColumns + ` FROM tools WHERE deleted_on IS NULL`

	var args []any
	argIdx := 1

	if f.Query != "" {
		sql += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+f.Query+"%")
		argIdx++
	}
	if len(f.Categories) > 0 {
		sql += fmt.Sprintf(" AND category = ANY($%d)", argIdx)
		args = append(args, pq.Array(f.Categories))
		argIdx++
	}
	if f.MinPriceCents > 0 {
		sql += fmt.Sprintf(" AND price_per_day_cents >= $%d", argIdx)
		args = append(args, f.MinPriceCents)
		argIdx++
	}
	if f.MaxPriceCents > 0 {
		sql += fmt.Sprintf(" AND price_per_day_cents <= $%d", argIdx)
		args = append(args, f.MaxPriceCents)
		argIdx++
	}
	if f.OnlyAvailable {
		sql += " AND available"
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sql + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	orderBy, ok := toolOrderBy[f.Sort]
	if !ok {
		orderBy = toolOrderBy[domain.ToolSortPopular]
	}
	offset := (f.Page - 1) * f.PageSize
	sql += fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, argIdx, argIdx+1)
	args = append(args, f.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tools []domain.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, 0, err
		}
		tools = append(tools, *t)
	}
	return tools, count, rows.Err()
}

func (r *toolRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM tools WHERE deleted_on IS NULL ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
