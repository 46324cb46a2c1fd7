package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"baseware/internal/models"
	"baseware/internal/search"
)

type pgTaskStore struct {
	q querier
}

const taskColumns = `id, title, description, status, project_type, organization_id, assignee_id, priority_id, due_date, created_date, modified_date, created_by, modified_by`

func scanTask(row rowScanner) (models.Task, error) {
	var (
		t                       models.Task
		org, assignee, priority uuid.NullUUID
		due                     sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.ProjectType, &org, &assignee, &priority, &due,
		&t.CreatedDate, &t.ModifiedDate, &t.CreatedBy, &t.ModifiedBy)
	t.OrganizationID = uuidPtr(org)
	t.AssigneeID = uuidPtr(assignee)
	t.PriorityID = uuidPtr(priority)
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	return t, err
}

func nullTime(t *models.Task) sql.NullTime {
	if t.DueDate == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t.DueDate, Valid: true}
}

func (s *pgTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	t, err := scanTask(s.q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (s *pgTaskStore) List(ctx context.Context, criteria []search.Criterion, limit, offset int) ([]models.Task, int, error) {
	clause, args := search.Where(criteria, TaskFields, 1)
	if clause != "" {
		clause = " WHERE " + clause
	}

	total, err := count(ctx, s.q, `SELECT COUNT(*) FROM tasks`+clause, args...)
	if err != nil {
		return nil, 0, err
	}

	n := len(args)
	args = append(args, limit, offset)
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks`+clause+
			` ORDER BY created_date DESC, id ASC LIMIT $`+itoa(n+1)+` OFFSET $`+itoa(n+2), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}

func (s *pgTaskStore) Create(ctx context.Context, t *models.Task) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.ID, t.Title, t.Description, t.Status, t.ProjectType,
		nullUUID(t.OrganizationID), nullUUID(t.AssigneeID), nullUUID(t.PriorityID), nullTime(t),
		t.CreatedDate, t.ModifiedDate, t.CreatedBy, t.ModifiedBy)
	return translate(err)
}

func (s *pgTaskStore) Update(ctx context.Context, t *models.Task) error {
	return expectOne(s.q.ExecContext(ctx,
		`UPDATE tasks SET title = $2, description = $3, status = $4, project_type = $5,
		 organization_id = $6, assignee_id = $7, priority_id = $8, due_date = $9,
		 modified_date = $10, modified_by = $11 WHERE id = $1`,
		t.ID, t.Title, t.Description, t.Status, t.ProjectType,
		nullUUID(t.OrganizationID), nullUUID(t.AssigneeID), nullUUID(t.PriorityID), nullTime(t),
		t.ModifiedDate, t.ModifiedBy))
}

func (s *pgTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	return expectOne(s.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id))
}
