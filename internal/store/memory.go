package store

import (
	"context"
	"database/sql"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"baseware/internal/models"
)

// StaffTitleID is the id of the seeded default title.
var StaffTitleID = uuid.MustParse("7b0e6f0a-3c59-4d0c-9d1e-5f1f2b8a0001")

// memoryDB keeps every table behind one lock. Deletes apply the same
// foreign key actions as the SQL schema.
type memoryDB struct {
	mu            sync.RWMutex
	organizations map[uuid.UUID]models.Organization
	users         map[uuid.UUID]models.User
	memberships   map[uuid.UUID]models.UserOrganization
	categories    map[uuid.UUID]models.Category
	tasks         map[uuid.UUID]models.Task
	comments      map[uuid.UUID]models.TaskComment
	attachments   map[uuid.UUID]models.TaskCommentAttachment
}

// MemoryStores is an in-process implementation of Stores and TxRunner.
type MemoryStores struct {
	db   *memoryDB
	txMu sync.Mutex
}

// NewMemoryStores returns empty stores seeded with the default title.
func NewMemoryStores() *MemoryStores {
	db := &memoryDB{
		organizations: make(map[uuid.UUID]models.Organization),
		users:         make(map[uuid.UUID]models.User),
		memberships:   make(map[uuid.UUID]models.UserOrganization),
		categories:    make(map[uuid.UUID]models.Category),
		tasks:         make(map[uuid.UUID]models.Task),
		comments:      make(map[uuid.UUID]models.TaskComment),
		attachments:   make(map[uuid.UUID]models.TaskCommentAttachment),
	}
	now := time.Now()
	db.categories[StaffTitleID] = models.Category{
		ID:          StaffTitleID,
		Code:        models.CategoryOrganizationTitle,
		Name:        models.DefaultTitleName,
		DisplayName: "Nhân viên",
		Description: "Default organization title",
		Auditable:   models.Auditable{CreatedDate: now, ModifiedDate: now, CreatedBy: "system", ModifiedBy: "system"},
	}
	return &MemoryStores{db: db}
}

func (s *MemoryStores) Organizations() OrganizationStore     { return &memOrganizationStore{db: s.db} }
func (s *MemoryStores) Users() UserStore                     { return &memUserStore{db: s.db} }
func (s *MemoryStores) Memberships() MembershipStore         { return &memMembershipStore{db: s.db} }
func (s *MemoryStores) Categories() CategoryStore            { return &memCategoryStore{db: s.db} }
func (s *MemoryStores) Tasks() TaskStore                     { return &memTaskStore{db: s.db} }
func (s *MemoryStores) TaskComments() TaskCommentStore       { return &memTaskCommentStore{db: s.db} }
func (s *MemoryStores) TaskAttachments() TaskAttachmentStore { return &memTaskAttachmentStore{db: s.db} }

// WithTx serializes writing transactions and restores the previous state
// when fn fails. Read-only transactions run concurrently.
func (s *MemoryStores) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts != nil && opts.ReadOnly {
		return fn(s)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.db.snapshot()
	if err := fn(s); err != nil {
		s.db.restore(snap)
		return err
	}
	return nil
}

func (db *memoryDB) snapshot() *memoryDB {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return &memoryDB{
		organizations: maps.Clone(db.organizations),
		users:         maps.Clone(db.users),
		memberships:   maps.Clone(db.memberships),
		categories:    maps.Clone(db.categories),
		tasks:         maps.Clone(db.tasks),
		comments:      maps.Clone(db.comments),
		attachments:   maps.Clone(db.attachments),
	}
}

func (db *memoryDB) restore(snap *memoryDB) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.organizations = snap.organizations
	db.users = snap.users
	db.memberships = snap.memberships
	db.categories = snap.categories
	db.tasks = snap.tasks
	db.comments = snap.comments
	db.attachments = snap.attachments
}

// sortedValues returns the map values ordered by creation date and id.
func sortedValues[T any](m map[uuid.UUID]T, created func(T) (time.Time, uuid.UUID)) []T {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, func(a, b T) int {
		ta, ia := created(a)
		tb, ib := created(b)
		if c := ta.Compare(tb); c != 0 {
			return c
		}
		return strings.Compare(ia.String(), ib.String())
	})
	return out
}

func pageOf[T any](items []T, limit, offset int) []T {
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	end := offset + min(limit, len(items)-offset)
	return slices.Clone(items[offset:end])
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
