package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"baseware/internal/models"
)

type pgMembershipStore struct {
	q querier
}

const membershipColumns = `id, user_id, organization_id, state, title_id, position_id, created_date, modified_date, created_by, modified_by`

func scanMembership(row rowScanner) (models.UserOrganization, error) {
	var (
		m               models.UserOrganization
		title, position uuid.NullUUID
	)
	err := row.Scan(&m.ID, &m.UserID, &m.OrganizationID, &m.State, &title, &position,
		&m.CreatedDate, &m.ModifiedDate, &m.CreatedBy, &m.ModifiedBy)
	m.TitleID = uuidPtr(title)
	m.PositionID = uuidPtr(position)
	return m, err
}

func (s *pgMembershipStore) FindActiveUserIDs(ctx context.Context, organizationID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT user_id FROM users_organizations WHERE organization_id = $1 AND state = $2`,
		organizationID, models.MembershipActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (s *pgMembershipStore) FindByUserAndOrganization(ctx context.Context, userID, organizationID uuid.UUID) (*models.UserOrganization, error) {
	m, err := scanMembership(s.q.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM users_organizations WHERE user_id = $1 AND organization_id = $2`,
		userID, organizationID))
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *pgMembershipStore) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]Member, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT uo.id, uo.user_id, uo.organization_id, uo.state, uo.title_id, uo.position_id,
		       uo.created_date, uo.modified_date, uo.created_by, uo.modified_by,
		       u.id, u.username, u.email, u.full_name, u.password_hash, u.active,
		       u.created_date, u.modified_date, u.created_by, u.modified_by,
		       t.code, t.name, t.display_name,
		       p.code, p.name, p.display_name
		FROM users_organizations uo
		JOIN users u ON u.id = uo.user_id
		LEFT JOIN categories t ON t.id = uo.title_id
		LEFT JOIN categories p ON p.id = uo.position_id
		WHERE uo.organization_id = $1
		ORDER BY uo.created_date ASC, uo.id ASC`, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var (
			m               Member
			title, position uuid.NullUUID
			tCode, tName    sql.NullString
			tDisplay        sql.NullString
			pCode, pName    sql.NullString
			pDisplay        sql.NullString
		)
		err := rows.Scan(
			&m.Membership.ID, &m.Membership.UserID, &m.Membership.OrganizationID, &m.Membership.State,
			&title, &position,
			&m.Membership.CreatedDate, &m.Membership.ModifiedDate, &m.Membership.CreatedBy, &m.Membership.ModifiedBy,
			&m.User.ID, &m.User.Username, &m.User.Email, &m.User.FullName, &m.User.PasswordHash, &m.User.Active,
			&m.User.CreatedDate, &m.User.ModifiedDate, &m.User.CreatedBy, &m.User.ModifiedBy,
			&tCode, &tName, &tDisplay,
			&pCode, &pName, &pDisplay,
		)
		if err != nil {
			return nil, err
		}
		m.Membership.TitleID = uuidPtr(title)
		m.Membership.PositionID = uuidPtr(position)
		if title.Valid && tCode.Valid {
			m.Title = &models.Category{ID: title.UUID, Code: models.CategoryCode(tCode.String), Name: tName.String, DisplayName: tDisplay.String}
		}
		if position.Valid && pCode.Valid {
			m.Position = &models.Category{ID: position.UUID, Code: models.CategoryCode(pCode.String), Name: pName.String, DisplayName: pDisplay.String}
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// SaveAll upserts on (user_id, organization_id). An existing row keeps its
// id and creation audit and takes the new state and title.
func (s *pgMembershipStore) SaveAll(ctx context.Context, memberships []models.UserOrganization) error {
	for i := range memberships {
		m := &memberships[i]
		_, err := s.q.ExecContext(ctx, `
			INSERT INTO users_organizations (`+membershipColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (user_id, organization_id) DO UPDATE
			SET state = EXCLUDED.state, title_id = EXCLUDED.title_id,
			    modified_date = EXCLUDED.modified_date, modified_by = EXCLUDED.modified_by`,
			m.ID, m.UserID, m.OrganizationID, m.State, nullUUID(m.TitleID), nullUUID(m.PositionID),
			m.CreatedDate, m.ModifiedDate, m.CreatedBy, m.ModifiedBy)
		if err != nil {
			return translate(err)
		}
	}
	return nil
}

func (s *pgMembershipStore) Save(ctx context.Context, m *models.UserOrganization) error {
	return expectOne(s.q.ExecContext(ctx,
		`UPDATE users_organizations SET state = $2, title_id = $3, position_id = $4,
		 modified_date = $5, modified_by = $6 WHERE id = $1`,
		m.ID, m.State, nullUUID(m.TitleID), nullUUID(m.PositionID), m.ModifiedDate, m.ModifiedBy))
}

func (s *pgMembershipStore) DeactivateUsers(ctx context.Context, organizationID uuid.UUID, userIDs []uuid.UUID, actor string, at time.Time) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	res, err := s.q.ExecContext(ctx,
		`UPDATE users_organizations SET state = $1, modified_date = $2, modified_by = $3
		 WHERE organization_id = $4 AND state = $5 AND user_id = ANY($6::uuid[])`,
		models.MembershipInactive, at, actor, organizationID, models.MembershipActive, uuidArray(userIDs))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
