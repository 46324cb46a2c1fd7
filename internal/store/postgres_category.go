package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"baseware/internal/models"
)

type pgCategoryStore struct {
	q querier
}

const categoryColumns = `id, code, name, display_name, description, created_date, modified_date, created_by, modified_by`

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.DisplayName, &c.Description,
		&c.CreatedDate, &c.ModifiedDate, &c.CreatedBy, &c.ModifiedBy)
	return c, err
}

func (s *pgCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := scanCategory(s.q.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *pgCategoryStore) FindByCodeAndName(ctx context.Context, code models.CategoryCode, name string) (*models.Category, error) {
	c, err := scanCategory(s.q.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE code = $1 AND name = $2`, code, name))
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *pgCategoryStore) List(ctx context.Context, code *models.CategoryCode, limit, offset int) ([]models.Category, int, error) {
	var (
		where []string
		args  []any
	)
	if code != nil {
		args = append(args, *code)
		where = append(where, "code = $1")
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	total, err := count(ctx, s.q, `SELECT COUNT(*) FROM categories`+clause, args...)
	if err != nil {
		return nil, 0, err
	}

	n := len(args)
	args = append(args, limit, offset)
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories`+clause+
			` ORDER BY code ASC, name ASC LIMIT $`+itoa(n+1)+` OFFSET $`+itoa(n+2), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}

func (s *pgCategoryStore) Create(ctx context.Context, c *models.Category) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO categories (`+categoryColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Code, c.Name, c.DisplayName, c.Description, c.CreatedDate, c.ModifiedDate, c.CreatedBy, c.ModifiedBy)
	return translate(err)
}

func (s *pgCategoryStore) Update(ctx context.Context, c *models.Category) error {
	return expectOne(s.q.ExecContext(ctx,
		`UPDATE categories SET code = $2, name = $3, display_name = $4, description = $5,
		 modified_date = $6, modified_by = $7 WHERE id = $1`,
		c.ID, c.Code, c.Name, c.DisplayName, c.Description, c.ModifiedDate, c.ModifiedBy))
}

func (s *pgCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	return expectOne(s.q.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id))
}
