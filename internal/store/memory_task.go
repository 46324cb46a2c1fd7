package store

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"baseware/internal/models"
	"baseware/internal/search"
)

type memTaskStore struct {
	db *memoryDB
}

func cloneTask(t models.Task) models.Task {
	t.OrganizationID = clonePtr(t.OrganizationID)
	t.AssigneeID = clonePtr(t.AssigneeID)
	t.PriorityID = clonePtr(t.PriorityID)
	t.DueDate = clonePtr(t.DueDate)
	return t
}

func taskKey(t models.Task) (time.Time, uuid.UUID) { return t.CreatedDate, t.ID }

// taskField returns the value behind a TaskFields key.
func taskField(t models.Task, key string) any {
	switch key {
	case "title":
		return t.Title
	case "status":
		return string(t.Status)
	case "projectType":
		return string(t.ProjectType)
	case "organizationId":
		return t.OrganizationID
	case "assigneeId":
		return t.AssigneeID
	case "priorityId":
		return t.PriorityID
	case "dueDate":
		return t.DueDate
	case "createdDate":
		return t.CreatedDate
	}
	return nil
}

func (s *memTaskStore) GetByID(_ context.Context, id uuid.UUID) (*models.Task, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	t, ok := s.db.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	t = cloneTask(t)
	return &t, nil
}

func (s *memTaskStore) List(_ context.Context, criteria []search.Criterion, limit, offset int) ([]models.Task, int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var tasks []models.Task
	for _, t := range sortedValues(s.db.tasks, taskKey) {
		if search.Match(criteria, func(key string) any { return taskField(t, key) }) {
			tasks = append(tasks, cloneTask(t))
		}
	}
	slices.SortStableFunc(tasks, func(a, b models.Task) int {
		return b.CreatedDate.Compare(a.CreatedDate)
	})
	return pageOf(tasks, limit, offset), len(tasks), nil
}

func (s *memTaskStore) Create(_ context.Context, t *models.Task) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.tasks[t.ID]; ok {
		return ErrDuplicate
	}
	s.db.tasks[t.ID] = cloneTask(*t)
	return nil
}

func (s *memTaskStore) Update(_ context.Context, t *models.Task) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.tasks[t.ID]
	if !ok {
		return ErrNotFound
	}
	updated := cloneTask(*t)
	updated.CreatedDate = existing.CreatedDate
	updated.CreatedBy = existing.CreatedBy
	s.db.tasks[t.ID] = updated
	return nil
}

func (s *memTaskStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.db.tasks, id)
	for cID, c := range s.db.comments {
		if c.TaskID == id {
			s.db.deleteComment(cID)
		}
	}
	return nil
}

// deleteComment removes a comment and its attachments. Callers hold mu.
func (db *memoryDB) deleteComment(id uuid.UUID) {
	delete(db.comments, id)
	for aID, a := range db.attachments {
		if a.CommentID == id {
			delete(db.attachments, aID)
		}
	}
}

type memTaskCommentStore struct {
	db *memoryDB
}

func commentKey(c models.TaskComment) (time.Time, uuid.UUID) { return c.CreatedDate, c.ID }

func (s *memTaskCommentStore) GetByID(_ context.Context, id uuid.UUID) (*models.TaskComment, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	c, ok := s.db.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *memTaskCommentStore) ListByTask(_ context.Context, taskID uuid.UUID) ([]models.TaskComment, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var comments []models.TaskComment
	for _, c := range sortedValues(s.db.comments, commentKey) {
		if c.TaskID == taskID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (s *memTaskCommentStore) Create(_ context.Context, c *models.TaskComment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.tasks[c.TaskID]; !ok {
		return ErrNotFound
	}
	s.db.comments[c.ID] = *c
	return nil
}

func (s *memTaskCommentStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.comments[id]; !ok {
		return ErrNotFound
	}
	s.db.deleteComment(id)
	return nil
}

type memTaskAttachmentStore struct {
	db *memoryDB
}

func attachmentKey(a models.TaskCommentAttachment) (time.Time, uuid.UUID) { return a.CreatedDate, a.ID }

func (s *memTaskAttachmentStore) ListByComment(_ context.Context, commentID uuid.UUID) ([]models.TaskCommentAttachment, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var attachments []models.TaskCommentAttachment
	for _, a := range sortedValues(s.db.attachments, attachmentKey) {
		if a.CommentID == commentID {
			a.UploaderID = clonePtr(a.UploaderID)
			attachments = append(attachments, a)
		}
	}
	return attachments, nil
}

func (s *memTaskAttachmentStore) Create(_ context.Context, a *models.TaskCommentAttachment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.comments[a.CommentID]; !ok {
		return ErrNotFound
	}
	stored := *a
	stored.UploaderID = clonePtr(a.UploaderID)
	s.db.attachments[a.ID] = stored
	return nil
}
