package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskApproved   TaskStatus = "APPROVED"
	TaskCancelled  TaskStatus = "CANCELLED"
)

var taskStatuses = []enumMeta[TaskStatus]{
	{TaskTodo, "todo", "Chưa thực hiện"},
	{TaskInProgress, "in_progress", "Đang thực hiện"},
	{TaskCompleted, "completed", "Hoàn thành"},
	{TaskApproved, "approved", "Đã duyệt"},
	{TaskCancelled, "cancelled", "Đã hủy"},
}

func TaskStatuses() []EnumEntry { return entries(taskStatuses) }

func (s TaskStatus) DisplayName() string { return displayName(taskStatuses, s) }

type TaskAction string

const (
	TaskActionStart    TaskAction = "START"
	TaskActionComplete TaskAction = "COMPLETE"
	TaskActionApprove  TaskAction = "APPROVE"
	TaskActionCancel   TaskAction = "CANCEL"
)

var taskActions = []enumMeta[TaskAction]{
	{TaskActionStart, "start", "Bắt đầu"},
	{TaskActionComplete, "complete", "Hoàn thành"},
	{TaskActionApprove, "approve", "Duyệt"},
	{TaskActionCancel, "cancel", "Hủy"},
}

func TaskActions() []EnumEntry { return entries(taskActions) }

func TaskActionFromValue(v string) (TaskAction, error) {
	if a, ok := lookup(taskActions, v); ok {
		return a, nil
	}
	return "", fmt.Errorf("unknown TaskAction value: %s", v)
}

// Next returns the status a task in status from moves to under a, and false
// when a is not allowed from that status.
func (a TaskAction) Next(from TaskStatus) (TaskStatus, bool) {
	switch a {
	case TaskActionStart:
		if from == TaskTodo {
			return TaskInProgress, true
		}
	case TaskActionComplete:
		if from == TaskInProgress {
			return TaskCompleted, true
		}
	case TaskActionApprove:
		if from == TaskCompleted {
			return TaskApproved, true
		}
	case TaskActionCancel:
		if from == TaskTodo || from == TaskInProgress || from == TaskCompleted {
			return TaskCancelled, true
		}
	}
	return from, false
}

type ProjectType string

const (
	ProjectPersonal ProjectType = "PERSONAL"
	ProjectNormal   ProjectType = "NORMAL"
)

var projectTypes = []enumMeta[ProjectType]{
	{ProjectPersonal, "personal", "Cá nhân"},
	{ProjectNormal, "normal", "Bình thường"},
}

func ProjectTypes() []EnumEntry { return entries(projectTypes) }

func ProjectTypeFromValue(v string) (ProjectType, error) {
	if p, ok := lookup(projectTypes, v); ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown ProjectType value: %s", v)
}

type Task struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	Title          string      `json:"title" db:"title"`
	Description    string      `json:"description" db:"description"`
	Status         TaskStatus  `json:"status" db:"status"`
	ProjectType    ProjectType `json:"project_type" db:"project_type"`
	OrganizationID *uuid.UUID  `json:"organization_id,omitempty" db:"organization_id"`
	AssigneeID     *uuid.UUID  `json:"assignee_id,omitempty" db:"assignee_id"`
	PriorityID     *uuid.UUID  `json:"priority_id,omitempty" db:"priority_id"`
	DueDate        *time.Time  `json:"due_date,omitempty" db:"due_date"`
	Auditable
}

type TaskComment struct {
	ID       uuid.UUID `json:"id" db:"id"`
	TaskID   uuid.UUID `json:"task_id" db:"task_id"`
	AuthorID uuid.UUID `json:"author_id" db:"author_id"`
	Content  string    `json:"content" db:"content"`
	Auditable
}

// TaskCommentAttachment links a comment to a document kept by the file service.
type TaskCommentAttachment struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	CommentID  uuid.UUID  `json:"comment_id" db:"comment_id"`
	FileID     uuid.UUID  `json:"file_id" db:"file_id"`
	FileName   string     `json:"file_name" db:"file_name"`
	UploaderID *uuid.UUID `json:"uploader_id,omitempty" db:"uploader_id"`
	Auditable
}
