package store

import (
	"context"

	"github.com/google/uuid"

	"baseware/internal/models"
)

type pgUserStore struct {
	q querier
}

const userColumns = `id, username, email, full_name, password_hash, active, created_date, modified_date, created_by, modified_by`

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &u.Active,
		&u.CreatedDate, &u.ModifiedDate, &u.CreatedBy, &u.ModifiedBy)
	return u, err
}

func (s *pgUserStore) queryUsers(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *pgUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := scanUser(s.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *pgUserStore) FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.queryUsers(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ANY($1::uuid[]) ORDER BY created_date ASC, id ASC`, uuidArray(ids))
}

func (s *pgUserStore) List(ctx context.Context, limit, offset int) ([]models.User, int, error) {
	total, err := count(ctx, s.q, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.queryUsers(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_date DESC, id ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *pgUserStore) Create(ctx context.Context, u *models.User) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Username, u.Email, u.FullName, u.PasswordHash, u.Active,
		u.CreatedDate, u.ModifiedDate, u.CreatedBy, u.ModifiedBy)
	return translate(err)
}

func (s *pgUserStore) Update(ctx context.Context, u *models.User) error {
	return expectOne(s.q.ExecContext(ctx,
		`UPDATE users SET username = $2, email = $3, full_name = $4, password_hash = $5, active = $6,
		 modified_date = $7, modified_by = $8 WHERE id = $1`,
		u.ID, u.Username, u.Email, u.FullName, u.PasswordHash, u.Active, u.ModifiedDate, u.ModifiedBy))
}

func (s *pgUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return expectOne(s.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id))
}
