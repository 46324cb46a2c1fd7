package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"baseware/internal/apperror"
	"baseware/internal/auth"
	"baseware/internal/dto"
	"baseware/internal/message"
	"baseware/internal/models"
	"baseware/internal/response"
	"baseware/internal/search"
	"baseware/internal/store"
)

type TaskService interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// List applies filter expressions of the form key<op>value.
	List(ctx context.Context, filters []string, p response.Pageable) ([]models.Task, int, error)
	Create(ctx context.Context, req dto.TaskRequest) (*models.Task, error)
	Update(ctx context.Context, id uuid.UUID, req dto.TaskRequest) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ApplyAction(ctx context.Context, id uuid.UUID, action string) (*models.Task, error)

	ListComments(ctx context.Context, taskID uuid.UUID) ([]models.TaskComment, error)
	AddComment(ctx context.Context, taskID uuid.UUID, req dto.CommentRequest) (*models.TaskComment, error)
	DeleteComment(ctx context.Context, taskID, commentID uuid.UUID) error
	ListAttachments(ctx context.Context, taskID, commentID uuid.UUID) ([]models.TaskCommentAttachment, error)
	AddAttachment(ctx context.Context, taskID, commentID uuid.UUID, req dto.AttachmentRequest) (*models.TaskCommentAttachment, error)
}

type taskService struct {
	*Services
}

func (s *taskService) get(ctx context.Context, tasks store.TaskStore, id uuid.UUID) (*models.Task, error) {
	t, err := tasks.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, s.notFound(ctx, message.TaskNotFound, id)
	}
	return t, err
}

// comment returns the comment only when it belongs to taskID.
func (s *taskService) comment(ctx context.Context, st store.Stores, taskID, commentID uuid.UUID) (*models.TaskComment, error) {
	if _, err := s.get(ctx, st.Tasks(), taskID); err != nil {
		return nil, err
	}
	c, err := st.TaskComments().GetByID(ctx, commentID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && c.TaskID != taskID) {
		return nil, s.notFound(ctx, message.CommentNotFound, commentID)
	}
	return c, err
}

func (s *taskService) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var t *models.Task
	err := s.tx.WithTx(ctx, store.ReadOnly, func(st store.Stores) error {
		var err error
		t, err = s.get(ctx, st.Tasks(), id)
		return err
	})
	return t, fail("get task", err)
}

func (s *taskService) List(ctx context.Context, filters []string, p response.Pageable) ([]models.Task, int, error) {
	criteria, err := search.ParseFilters(filters, store.TaskFields)
	if err != nil {
		msg := s.messages.Get(ctx, message.ValidationFailed)
		return nil, 0, apperror.Validation(msg, map[string]string{"filter": err.Error()})
	}

	var (
		tasks []models.Task
		total int
	)
	err = s.tx.WithTx(ctx, store.ReadOnly, func(st store.Stores) error {
		var err error
		tasks, total, err = st.Tasks().List(ctx, criteria, p.Size, p.Offset())
		return err
	})
	if err != nil {
		return nil, 0, fail("list tasks", err)
	}
	return tasks, total, nil
}

// checkReferences verifies the organization, assignee and priority a task
// points at.
func (s *taskService) checkReferences(ctx context.Context, st store.Stores, req dto.TaskRequest) error {
	if req.OrganizationID != nil {
		exists, err := st.Organizations().ExistsByID(ctx, *req.OrganizationID)
		if err != nil {
			return err
		}
		if !exists {
			return s.notFound(ctx, message.OrganizationNotFound, *req.OrganizationID)
		}
	}
	if req.AssigneeID != nil {
		if _, err := st.Users().GetByID(ctx, *req.AssigneeID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return s.notFound(ctx, message.UserNotFound, *req.AssigneeID)
			}
			return err
		}
	}
	if req.PriorityID != nil {
		c, err := st.Categories().GetByID(ctx, *req.PriorityID)
		if errors.Is(err, store.ErrNotFound) || (err == nil && c.Code != models.CategoryTaskPriority) {
			return s.notFound(ctx, message.CategoryNotFound, *req.PriorityID)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func apply(t *models.Task, req dto.TaskRequest) {
	t.Title = req.Title
	t.Description = req.Description
	if req.ProjectType != "" {
		t.ProjectType = req.ProjectType
	}
	t.OrganizationID = req.OrganizationID
	t.AssigneeID = req.AssigneeID
	t.PriorityID = req.PriorityID
	t.DueDate = req.DueDate
}

func (s *taskService) Create(ctx context.Context, req dto.TaskRequest) (*models.Task, error) {
	t := &models.Task{
		ID:          uuid.New(),
		Status:      models.TaskTodo,
		ProjectType: models.ProjectNormal,
	}
	apply(t, req)
	s.stamp(ctx, &t.Auditable)

	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		if err := s.checkReferences(ctx, st, req); err != nil {
			return err
		}
		return st.Tasks().Create(ctx, t)
	})
	if err != nil {
		return nil, fail("create task", err)
	}
	return t, nil
}

func (s *taskService) Update(ctx context.Context, id uuid.UUID, req dto.TaskRequest) (*models.Task, error) {
	var t *models.Task
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		var err error
		if t, err = s.get(ctx, st.Tasks(), id); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, st, req); err != nil {
			return err
		}
		apply(t, req)
		s.stamp(ctx, &t.Auditable)
		return st.Tasks().Update(ctx, t)
	})
	if err != nil {
		return nil, fail("update task", err)
	}
	return t, nil
}

func (s *taskService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		err := st.Tasks().Delete(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return s.notFound(ctx, message.TaskNotFound, id)
		}
		return err
	})
	return fail("delete task", err)
}

func (s *taskService) ApplyAction(ctx context.Context, id uuid.UUID, raw string) (*models.Task, error) {
	action, err := models.TaskActionFromValue(raw)
	if err != nil {
		return nil, apperror.Validation(err.Error(), map[string]string{"action": err.Error()})
	}

	var t *models.Task
	err = s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		var err error
		if t, err = s.get(ctx, st.Tasks(), id); err != nil {
			return err
		}
		next, ok := action.Next(t.Status)
		if !ok {
			return s.illegalState(ctx, message.TaskActionNotAllowed, action, t.Status)
		}
		t.Status = next
		s.stamp(ctx, &t.Auditable)
		return st.Tasks().Update(ctx, t)
	})
	if err != nil {
		return nil, fail("apply task action", err)
	}
	return t, nil
}

func (s *taskService) ListComments(ctx context.Context, taskID uuid.UUID) ([]models.TaskComment, error) {
	var comments []models.TaskComment
	err := s.tx.WithTx(ctx, store.ReadOnly, func(st store.Stores) error {
		if _, err := s.get(ctx, st.Tasks(), taskID); err != nil {
			return err
		}
		var err error
		comments, err = st.TaskComments().ListByTask(ctx, taskID)
		return err
	})
	if err != nil {
		return nil, fail("list comments", err)
	}
	return comments, nil
}

func (s *taskService) AddComment(ctx context.Context, taskID uuid.UUID, req dto.CommentRequest) (*models.TaskComment, error) {
	c := &models.TaskComment{
		ID:       uuid.New(),
		TaskID:   taskID,
		AuthorID: auth.SubjectID(ctx),
		Content:  req.Content,
	}
	s.stamp(ctx, &c.Auditable)

	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		if _, err := s.get(ctx, st.Tasks(), taskID); err != nil {
			return err
		}
		return st.TaskComments().Create(ctx, c)
	})
	if err != nil {
		return nil, fail("add comment", err)
	}
	return c, nil
}

func (s *taskService) DeleteComment(ctx context.Context, taskID, commentID uuid.UUID) error {
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		if _, err := s.comment(ctx, st, taskID, commentID); err != nil {
			return err
		}
		return st.TaskComments().Delete(ctx, commentID)
	})
	return fail("delete comment", err)
}

func (s *taskService) ListAttachments(ctx context.Context, taskID, commentID uuid.UUID) ([]models.TaskCommentAttachment, error) {
	var attachments []models.TaskCommentAttachment
	err := s.tx.WithTx(ctx, store.ReadOnly, func(st store.Stores) error {
		if _, err := s.comment(ctx, st, taskID, commentID); err != nil {
			return err
		}
		var err error
		attachments, err = st.TaskAttachments().ListByComment(ctx, commentID)
		return err
	})
	if err != nil {
		return nil, fail("list attachments", err)
	}
	return attachments, nil
}

func (s *taskService) AddAttachment(ctx context.Context, taskID, commentID uuid.UUID, req dto.AttachmentRequest) (*models.TaskCommentAttachment, error) {
	a := &models.TaskCommentAttachment{
		ID:        uuid.New(),
		CommentID: commentID,
		FileID:    req.FileID,
		FileName:  req.FileName,
	}
	if uploader := auth.SubjectID(ctx); uploader != uuid.Nil {
		a.UploaderID = &uploader
	}
	s.stamp(ctx, &a.Auditable)

	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		if _, err := s.comment(ctx, st, taskID, commentID); err != nil {
			return err
		}
		return st.TaskAttachments().Create(ctx, a)
	})
	if err != nil {
		return nil, fail("add attachment", err)
	}
	return a, nil
}
