package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"baseware/internal/models"
	"baseware/internal/search"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

type OrganizationStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	// FindAll returns every organization, oldest first.
	FindAll(ctx context.Context) ([]models.Organization, error)
	// FindRoots pages through organizations without a parent, newest first,
	// and reports how many there are in total.
	FindRoots(ctx context.Context, limit, offset int) ([]models.Organization, int, error)
	FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Organization, error)
	Create(ctx context.Context, org *models.Organization) error
	Update(ctx context.Context, org *models.Organization) error
	// SaveAll persists the parent and audit columns of each organization.
	SaveAll(ctx context.Context, orgs []models.Organization) error
	// Delete removes the organization, detaching its children and dropping
	// its memberships.
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, int, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Member is a membership joined with its user and categories.
type Member struct {
	Membership models.UserOrganization
	User       models.User
	Title      *models.Category
	Position   *models.Category
}

type MembershipStore interface {
	FindActiveUserIDs(ctx context.Context, organizationID uuid.UUID) (map[uuid.UUID]struct{}, error)
	FindByUserAndOrganization(ctx context.Context, userID, organizationID uuid.UUID) (*models.UserOrganization, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]Member, error)
	// SaveAll inserts each membership, or overwrites state and title of the
	// existing row for the same (user, organization) pair.
	SaveAll(ctx context.Context, memberships []models.UserOrganization) error
	Save(ctx context.Context, membership *models.UserOrganization) error
	// DeactivateUsers marks the active memberships of userIDs in the
	// organization inactive, stamped with actor and at, and returns how many
	// rows changed.
	DeactivateUsers(ctx context.Context, organizationID uuid.UUID, userIDs []uuid.UUID, actor string, at time.Time) (int64, error)
}

type CategoryStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindByCodeAndName(ctx context.Context, code models.CategoryCode, name string) (*models.Category, error)
	List(ctx context.Context, code *models.CategoryCode, limit, offset int) ([]models.Category, int, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context, criteria []search.Criterion, limit, offset int) ([]models.Task, int, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskCommentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.TaskComment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.TaskComment, error)
	Create(ctx context.Context, comment *models.TaskComment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskAttachmentStore interface {
	ListByComment(ctx context.Context, commentID uuid.UUID) ([]models.TaskCommentAttachment, error)
	Create(ctx context.Context, attachment *models.TaskCommentAttachment) error
}

// Stores groups the stores bound to one connection or transaction.
type Stores interface {
	Organizations() OrganizationStore
	Users() UserStore
	Memberships() MembershipStore
	Categories() CategoryStore
	Tasks() TaskStore
	TaskComments() TaskCommentStore
	TaskAttachments() TaskAttachmentStore
}

// TxRunner runs fn against stores bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	WithTx(ctx context.Context, opts *sql.TxOptions, fn func(Stores) error) error
}

var (
	ReadOnly      = &sql.TxOptions{ReadOnly: true}
	ReadCommitted = &sql.TxOptions{Isolation: sql.LevelReadCommitted}
)

// TaskFields are the filter keys accepted when listing tasks.
var TaskFields = search.Fields{
	"title":          {Column: "title", Type: search.String},
	"status":         {Column: "status", Type: search.String},
	"projectType":    {Column: "project_type", Type: search.String},
	"organizationId": {Column: "organization_id", Type: search.UUID},
	"assigneeId":     {Column: "assignee_id", Type: search.UUID},
	"priorityId":     {Column: "priority_id", Type: search.UUID},
	"dueDate":        {Column: "due_date", Type: search.Date},
	"createdDate":    {Column: "created_date", Type: search.Date},
}
