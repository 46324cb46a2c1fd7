package store

import (
	"context"

	"github.com/google/uuid"

	"baseware/internal/models"
)

type pgOrganizationStore struct {
	q querier
}

const organizationColumns = `id, name, code, description, level, parent_id, created_date, modified_date, created_by, modified_by`

func scanOrganization(row rowScanner) (models.Organization, error) {
	var (
		o      models.Organization
		parent uuid.NullUUID
	)
	err := row.Scan(&o.ID, &o.Name, &o.Code, &o.Description, &o.Level, &parent,
		&o.CreatedDate, &o.ModifiedDate, &o.CreatedBy, &o.ModifiedBy)
	o.ParentID = uuidPtr(parent)
	return o, err
}

func (s *pgOrganizationStore) queryOrganizations(ctx context.Context, query string, args ...any) ([]models.Organization, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []models.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func (s *pgOrganizationStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	o, err := scanOrganization(s.q.QueryRowContext(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (s *pgOrganizationStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM organizations WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (s *pgOrganizationStore) FindAll(ctx context.Context) ([]models.Organization, error) {
	return s.queryOrganizations(ctx,
		`SELECT `+organizationColumns+` FROM organizations ORDER BY created_date ASC, id ASC`)
}

func (s *pgOrganizationStore) FindRoots(ctx context.Context, limit, offset int) ([]models.Organization, int, error) {
	total, err := count(ctx, s.q, `SELECT COUNT(*) FROM organizations WHERE parent_id IS NULL`)
	if err != nil {
		return nil, 0, err
	}
	orgs, err := s.queryOrganizations(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE parent_id IS NULL
		 ORDER BY created_date DESC, id ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return orgs, total, nil
}

func (s *pgOrganizationStore) FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Organization, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.queryOrganizations(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE id = ANY($1::uuid[]) ORDER BY created_date ASC, id ASC`,
		uuidArray(ids))
}

func (s *pgOrganizationStore) Create(ctx context.Context, o *models.Organization) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO organizations (`+organizationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.Name, o.Code, o.Description, o.Level, nullUUID(o.ParentID),
		o.CreatedDate, o.ModifiedDate, o.CreatedBy, o.ModifiedBy)
	return translate(err)
}

func (s *pgOrganizationStore) Update(ctx context.Context, o *models.Organization) error {
	return expectOne(s.q.ExecContext(ctx,
		`UPDATE organizations SET name = $2, code = $3, description = $4, level = $5, parent_id = $6,
		 modified_date = $7, modified_by = $8 WHERE id = $1`,
		o.ID, o.Name, o.Code, o.Description, o.Level, nullUUID(o.ParentID), o.ModifiedDate, o.ModifiedBy))
}

func (s *pgOrganizationStore) SaveAll(ctx context.Context, orgs []models.Organization) error {
	for i := range orgs {
		o := &orgs[i]
		if err := expectOne(s.q.ExecContext(ctx,
			`UPDATE organizations SET parent_id = $2, modified_date = $3, modified_by = $4 WHERE id = $1`,
			o.ID, nullUUID(o.ParentID), o.ModifiedDate, o.ModifiedBy)); err != nil {
			return err
		}
	}
	return nil
}

// Delete relies on the foreign keys: children are set to NULL and
// memberships cascade.
func (s *pgOrganizationStore) Delete(ctx context.Context, id uuid.UUID) error {
	return expectOne(s.q.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id))
}
