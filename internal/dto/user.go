package dto

import (
	"time"

	"github.com/google/uuid"

	"baseware/internal/models"
	"baseware/internal/response"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	FullName string `json:"full_name" validate:"max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	FullName string `json:"full_name" validate:"max=255"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Active   *bool  `json:"active,omitempty"`
}

type UserResponse struct {
	ID           uuid.UUID                `json:"id"`
	Username     string                   `json:"username"`
	Email        string                   `json:"email"`
	FullName     string                   `json:"full_name"`
	Active       bool                     `json:"active"`
	CreatedDate  time.Time                `json:"created_date"`
	ModifiedDate time.Time                `json:"modified_date"`
	Links        map[string]response.Link `json:"_links,omitempty"`
}

type TitleRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type CategoryBrief struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
}

type MemberResponse struct {
	UserID       uuid.UUID              `json:"user_id"`
	Username     string                 `json:"username"`
	FullName     string                 `json:"full_name"`
	Email        string                 `json:"email"`
	State        models.MembershipState `json:"state"`
	Title        *CategoryBrief         `json:"title,omitempty"`
	Position     *CategoryBrief         `json:"position,omitempty"`
	AssignedDate time.Time              `json:"assigned_date"`
}
