package dto

import (
	"time"

	"github.com/google/uuid"

	"baseware/internal/models"
)

type TaskRequest struct {
	Title          string             `json:"title" validate:"required,max=255"`
	Description    string             `json:"description" validate:"max=5000"`
	ProjectType    models.ProjectType `json:"project_type" validate:"omitempty,oneof=PERSONAL NORMAL"`
	OrganizationID *uuid.UUID         `json:"organization_id,omitempty"`
	AssigneeID     *uuid.UUID         `json:"assignee_id,omitempty"`
	PriorityID     *uuid.UUID         `json:"priority_id,omitempty"`
	DueDate        *time.Time         `json:"due_date,omitempty"`
}

type TaskActionRequest struct {
	Action string `json:"action" validate:"required"`
}

type TaskResponse struct {
	ID             uuid.UUID          `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Status         models.TaskStatus  `json:"status"`
	StatusName     string             `json:"status_name"`
	ProjectType    models.ProjectType `json:"project_type"`
	OrganizationID *uuid.UUID         `json:"organization_id,omitempty"`
	AssigneeID     *uuid.UUID         `json:"assignee_id,omitempty"`
	PriorityID     *uuid.UUID         `json:"priority_id,omitempty"`
	DueDate        *time.Time         `json:"due_date,omitempty"`
	CreatedDate    time.Time          `json:"created_date"`
	ModifiedDate   time.Time          `json:"modified_date"`
	CreatedBy      string             `json:"created_by,omitempty"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type CommentResponse struct {
	ID          uuid.UUID `json:"id"`
	TaskID      uuid.UUID `json:"task_id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Content     string    `json:"content"`
	CreatedDate time.Time `json:"created_date"`
}

type AttachmentRequest struct {
	FileID   uuid.UUID `json:"file_id" validate:"required"`
	FileName string    `json:"file_name" validate:"required,max=255"`
}

type AttachmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	CommentID   uuid.UUID  `json:"comment_id"`
	FileID      uuid.UUID  `json:"file_id"`
	FileName    string     `json:"file_name"`
	UploaderID  *uuid.UUID `json:"uploader_id,omitempty"`
	CreatedDate time.Time  `json:"created_date"`
}

type EnumResponse = models.EnumEntry
