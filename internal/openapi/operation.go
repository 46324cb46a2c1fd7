package openapi

import (
	"net/http"

	"baseware/internal/dto"
	"baseware/internal/models"
)

// Shape is how an operation's payload sits under the envelope's data field.
type Shape string

const (
	ShapeObject      Shape = "OBJECT"
	ShapeList        Shape = "LIST"
	ShapePage        Shape = "PAGE"
	ShapeHateoasPage Shape = "HATEOAS_PAGE"
)

// Operation describes one endpoint. A nil Payload means the endpoint answers
// with an envelope and no data.
type Operation struct {
	Method  string
	Path    string
	Tag     string
	Summary string
	Payload any
	Shape   Shape
	Body    any
	Query   []string
	Secured bool
}

const (
	tagOrganizations = "Organizations"
	tagUsers         = "Users"
	tagCategories    = "Categories"
	tagTasks         = "Tasks"
	tagEnums         = "Enums"
)

var paging = []string{"page", "size"}

// Operations is the table the served document is generated from. It lists
// every route under /api/v1.
var Operations = []Operation{
	{Method: http.MethodGet, Path: "/api/v1/organizations", Tag: tagOrganizations, Summary: "Page through organization trees", Payload: dto.OrganizationResponse{}, Shape: ShapePage, Query: paging, Secured: true},
	{Method: http.MethodGet, Path: "/api/v1/organizations/tree", Tag: tagOrganizations, Summary: "Full organization forest", Payload: dto.OrganizationResponse{}, Shape: ShapeList, Secured: true},
	{Method: http.MethodPost, Path: "/api/v1/organizations", Tag: tagOrganizations, Summary: "Create an organization", Payload: dto.OrganizationResponse{}, Shape: ShapeObject, Body: dto.OrganizationRequest{}, Secured: true},
	{Method: http.MethodGet, Path: "/api/v1/organizations/{id}", Tag: tagOrganizations, Summary: "Get an organization", Payload: dto.OrganizationResponse{}, Shape: ShapeObject, Secured: true},
	{Method: http.MethodPut, Path: "/api/v1/organizations/{id}", Tag: tagOrganizations, Summary: "Update an organization", Payload: dto.OrganizationResponse{}, Shape: ShapeObject, Body: dto.OrganizationRequest{}, Secured: true},
	{Method: http.MethodDelete, Path: "/api/v1/organizations/{id}", Tag: tagOrganizations, Summary: "Delete an organization", Secured: true},
	{Method: http.MethodPost, Path: "/api/v1/organizations/{id}/organizations/assign", Tag: tagOrganizations, Summary: "Attach child organizations", Body: dto.IDsRequest{}, Secured: true},
	{Method: http.MethodPost, Path: "/api/v1/organizations/{id}/organizations/remove", Tag: tagOrganizations, Summary: "Detach child organizations", Body: dto.IDsRequest{}, Secured: true},
	{Method: http.MethodGet, Path: "/api/v1/organizations/{id}/users", Tag: tagOrganizations, Summary: "List organization members", Payload: dto.MemberResponse{}, Shape: ShapeList, Secured: true},
	{Method: http.MethodPost, Path: "/api/v1/organizations/{id}/users/assign", Tag: tagOrganizations, Summary: "Assign users", Body: dto.IDsRequest{}, Secured: true},
	{Method: http.MethodPost, Path: "/api/v1/organizations/{id}/users/remove", Tag: tagOrganizations, Summary: "Remove users", Body: dto.IDsRequest{}, Secured: true},
	{Method: http.MethodPut, Path: "/api/v1/organizations/{id}/users/{userId}/title", Tag: tagOrganizations, Summary: "Change a member's title", Body: dto.TitleRequest{}, Secured: true},

	{Method: http.MethodGet, Path: "/api/v1/users", Tag: tagUsers, Summary: "Page through users", Payload: dto.UserResponse{}, Shape: ShapeHateoasPage, Query: paging, Secured: true},
	{Method: http.MethodPost, Path: "/api/v1/users", Tag: tagUsers, Summary: "Create a user", Payload: dto.UserResponse{}, Shape: ShapeObject, Body: dto.CreateUserRequest{}, Secured: true},
	{Method: http.MethodGet, Path: "/api/v1/users/{id}", Tag: tagUsers, Summary: "Get a user", Payload: dto.UserResponse{}, Shape: ShapeObject, Secured: true},
	{Method: http.MethodPut, Path: "/api/v1/users/{id}", Tag: tagUsers, Summary: "Update a user", Payload: dto.UserResponse{}, Shape: ShapeObject, Body: dto.UpdateUserRequest{}, Secured: true},
	{Method: http.MethodDelete, Path: "/api/v1/users/{id}", Tag: tagUsers, Summary: "Delete a user", Secured: true},

	{Method: http.MethodGet, Path: "/api/v1/categories", Tag: tagCategories, Summary: "Page through categories", Payload: dto.CategoryResponse{}, Shape: ShapePage, Query: []string{"code", "page", "size"}, Secured: true},
	{Method: http.MethodPost, Path: "/api/v1/categories", Tag: tagCategories, Summary: "Create a category", Payload: dto.CategoryResponse{}, Shape: ShapeObject, Body: dto.CategoryRequest{}, Secured: true},
	{Method: http.MethodGet, Path: "/api/v1/categories/{id}", Tag: tagCategories, Summary: "Get a category", Payload: dto.CategoryResponse{}, Shape: ShapeObject, Secured: true},
	{Method: http.MethodPut, Path: "/api/v1/categories/{id}", Tag: tagCategories, Summary: "Update a category", Payload: dto.CategoryResponse{}, Shape: ShapeObject, Body: dto.CategoryRequest{}, Secured: true},
	{Method: http.MethodDelete, Path: "/api/v1/categories/{id}", Tag: tagCategories, Summary: "Delete a category", Secured: true},

	{Method: http.MethodGet, Path: "/api/v1/tasks", Tag: tagTasks, Summary: "Search tasks", Payload: dto.TaskResponse{}, Shape: ShapePage, Query: []string{"filter", "page", "size"}, Secured: true},
	{Method: http.MethodPost, Path: "/api/v1/tasks", Tag: tagTasks, Summary: "Create a task", Payload: dto.TaskResponse{}, Shape: ShapeObject, Body: dto.TaskRequest{}, Secured: true},
	{Method: http.MethodGet, Path: "/api/v1/tasks/enums", Tag: tagTasks, Summary: "Task enum values", Payload: models.EnumEntry{}, Shape: ShapeList, Query: []string{"name"}, Secured: true},
	{Method: http.MethodGet, Path: "/api/v1/tasks/{id}", Tag: tagTasks, Summary: "Get a task", Payload: dto.TaskResponse{}, Shape: ShapeObject, Secured: true},
	{Method: http.MethodPut, Path: "/api/v1/tasks/{id}", Tag: tagTasks, Summary: "Update a task", Payload: dto.TaskResponse{}, Shape: ShapeObject, Body: dto.TaskRequest{}, Secured: true},
	{Method: http.MethodDelete, Path: "/api/v1/tasks/{id}", Tag: tagTasks, Summary: "Delete a task", Secured: true},
	{Method: http.MethodPost, Path: "/api/v1/tasks/{id}/actions", Tag: tagTasks, Summary: "Apply a status action", Payload: dto.TaskResponse{}, Shape: ShapeObject, Body: dto.TaskActionRequest{}, Secured: true},
	{Method: http.MethodGet, Path: "/api/v1/tasks/{id}/comments", Tag: tagTasks, Summary: "List comments", Payload: dto.CommentResponse{}, Shape: ShapeList, Secured: true},
	{Method: http.MethodPost, Path: "/api/v1/tasks/{id}/comments", Tag: tagTasks, Summary: "Add a comment", Payload: dto.CommentResponse{}, Shape: ShapeObject, Body: dto.CommentRequest{}, Secured: true},
	{Method: http.MethodDelete, Path: "/api/v1/tasks/{id}/comments/{commentId}", Tag: tagTasks, Summary: "Delete a comment", Secured: true},
	{Method: http.MethodGet, Path: "/api/v1/tasks/{id}/comments/{commentId}/attachments", Tag: tagTasks, Summary: "List attachments", Payload: dto.AttachmentResponse{}, Shape: ShapeList, Secured: true},
	{Method: http.MethodPost, Path: "/api/v1/tasks/{id}/comments/{commentId}/attachments", Tag: tagTasks, Summary: "Attach a file", Payload: dto.AttachmentResponse{}, Shape: ShapeObject, Body: dto.AttachmentRequest{}, Secured: true},

	{Method: http.MethodGet, Path: "/api/v1/enums", Tag: tagEnums, Summary: "Enum values by name", Payload: models.EnumEntry{}, Shape: ShapeList, Query: []string{"name"}, Secured: true},
}
