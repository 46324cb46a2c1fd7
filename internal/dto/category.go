package dto

import (
	"time"

	"github.com/google/uuid"

	"baseware/internal/models"
)

type CategoryRequest struct {
	Code        models.CategoryCode `json:"code" validate:"required,oneof=ORGANIZATION_TITLE ORGANIZATION_POSITION TASK_PRIORITY TASK_LABEL"`
	Name        string              `json:"name" validate:"required,max=255"`
	DisplayName string              `json:"display_name" validate:"max=255"`
	Description string              `json:"description" validate:"max=2000"`
}

type CategoryResponse struct {
	ID           uuid.UUID           `json:"id"`
	Code         models.CategoryCode `json:"code"`
	Name         string              `json:"name"`
	DisplayName  string              `json:"display_name"`
	Description  string              `json:"description"`
	CreatedDate  time.Time           `json:"created_date"`
	ModifiedDate time.Time           `json:"modified_date"`
}
