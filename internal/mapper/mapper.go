package mapper

import (
	"fmt"
	"net/http"

	"baseware/internal/dto"
	"baseware/internal/models"
	"baseware/internal/response"
	"baseware/internal/store"
)

func ToUserResponse(u *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		Active:       u.Active,
		CreatedDate:  u.CreatedDate,
		ModifiedDate: u.ModifiedDate,
	}
}

// WithSelfLink adds a self link relative to the request's host.
func WithSelfLink(r *http.Request, u *dto.UserResponse) *dto.UserResponse {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	u.Links = map[string]response.Link{
		"self": {Href: fmt.Sprintf("%s://%s/api/v1/users/%s", scheme, r.Host, u.ID)},
	}
	return u
}

func toCategoryBrief(c *models.Category) *dto.CategoryBrief {
	if c == nil {
		return nil
	}
	return &dto.CategoryBrief{ID: c.ID, Name: c.Name, DisplayName: c.DisplayName}
}

func ToMemberResponse(m *store.Member) dto.MemberResponse {
	return dto.MemberResponse{
		UserID:       m.User.ID,
		Username:     m.User.Username,
		FullName:     m.User.FullName,
		Email:        m.User.Email,
		State:        m.Membership.State,
		Title:        toCategoryBrief(m.Title),
		Position:     toCategoryBrief(m.Position),
		AssignedDate: m.Membership.CreatedDate,
	}
}

func ToCategoryResponse(c *models.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:           c.ID,
		Code:         c.Code,
		Name:         c.Name,
		DisplayName:  c.DisplayName,
		Description:  c.Description,
		CreatedDate:  c.CreatedDate,
		ModifiedDate: c.ModifiedDate,
	}
}

func ToTaskResponse(t *models.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		StatusName:     t.Status.DisplayName(),
		ProjectType:    t.ProjectType,
		OrganizationID: t.OrganizationID,
		AssigneeID:     t.AssigneeID,
		PriorityID:     t.PriorityID,
		DueDate:        t.DueDate,
		CreatedDate:    t.CreatedDate,
		ModifiedDate:   t.ModifiedDate,
		CreatedBy:      t.CreatedBy,
	}
}

func ToCommentResponse(c *models.TaskComment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:          c.ID,
		TaskID:      c.TaskID,
		AuthorID:    c.AuthorID,
		Content:     c.Content,
		CreatedDate: c.CreatedDate,
	}
}

func ToAttachmentResponse(a *models.TaskCommentAttachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		ID:          a.ID,
		CommentID:   a.CommentID,
		FileID:      a.FileID,
		FileName:    a.FileName,
		UploaderID:  a.UploaderID,
		CreatedDate: a.CreatedDate,
	}
}

// Map converts each element of in with f.
func Map[T, R any](in []T, f func(*T) R) []R {
	out := make([]R, len(in))
	for i := range in {
		out[i] = f(&in[i])
	}
	return out
}
