package store

import (
	"context"

	"github.com/google/uuid"

	"baseware/internal/models"
)

type pgTaskCommentStore struct {
	q querier
}

const commentColumns = `id, task_id, author_id, content, created_date, modified_date, created_by, modified_by`

func scanComment(row rowScanner) (models.TaskComment, error) {
	var c models.TaskComment
	err := row.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Content,
		&c.CreatedDate, &c.ModifiedDate, &c.CreatedBy, &c.ModifiedBy)
	return c, err
}

func (s *pgTaskCommentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.TaskComment, error) {
	c, err := scanComment(s.q.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM task_comments WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *pgTaskCommentStore) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.TaskComment, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM task_comments WHERE task_id = $1 ORDER BY created_date ASC, id ASC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.TaskComment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *pgTaskCommentStore) Create(ctx context.Context, c *models.TaskComment) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO task_comments (`+commentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.TaskID, c.AuthorID, c.Content, c.CreatedDate, c.ModifiedDate, c.CreatedBy, c.ModifiedBy)
	return translate(err)
}

func (s *pgTaskCommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	return expectOne(s.q.ExecContext(ctx, `DELETE FROM task_comments WHERE id = $1`, id))
}

type pgTaskAttachmentStore struct {
	q querier
}

const attachmentColumns = `id, comment_id, file_id, file_name, uploader_id, created_date, modified_date, created_by, modified_by`

func (s *pgTaskAttachmentStore) ListByComment(ctx context.Context, commentID uuid.UUID) ([]models.TaskCommentAttachment, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+attachmentColumns+` FROM task_comment_attachments WHERE comment_id = $1 ORDER BY created_date ASC, id ASC`,
		commentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []models.TaskCommentAttachment
	for rows.Next() {
		var (
			a        models.TaskCommentAttachment
			uploader uuid.NullUUID
		)
		if err := rows.Scan(&a.ID, &a.CommentID, &a.FileID, &a.FileName, &uploader,
			&a.CreatedDate, &a.ModifiedDate, &a.CreatedBy, &a.ModifiedBy); err != nil {
			return nil, err
		}
		a.UploaderID = uuidPtr(uploader)
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

func (s *pgTaskAttachmentStore) Create(ctx context.Context, a *models.TaskCommentAttachment) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO task_comment_attachments (`+attachmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.CommentID, a.FileID, a.FileName, nullUUID(a.UploaderID),
		a.CreatedDate, a.ModifiedDate, a.CreatedBy, a.ModifiedBy)
	return translate(err)
}
