package dto

import (
	"time"

	"github.com/google/uuid"

	"baseware/internal/models"
)

type OrganizationRequest struct {
	Name        string                   `json:"name" validate:"required,min=1,max=255"`
	Code        string                   `json:"code" validate:"required,min=1,max=100"`
	Description string                   `json:"description" validate:"max=2000"`
	Level       models.OrganizationLevel `json:"level" validate:"required,min=1,max=4"`
	ParentID    *uuid.UUID               `json:"parent_id,omitempty"`
}

// IDsRequest carries the targets of a bulk assign or remove. An empty list
// is accepted and does nothing.
type IDsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type OrganizationResponse struct {
	ID           uuid.UUID                `json:"id"`
	Name         string                   `json:"name"`
	Code         string                   `json:"code"`
	Description  string                   `json:"description"`
	Level        models.OrganizationLevel `json:"level"`
	ParentID     *uuid.UUID               `json:"parent_id,omitempty"`
	Children     []*OrganizationResponse  `json:"children"`
	CreatedDate  time.Time                `json:"created_date"`
	ModifiedDate time.Time                `json:"modified_date"`
	CreatedBy    string                   `json:"created_by,omitempty"`
	ModifiedBy   string                   `json:"modified_by,omitempty"`
}
