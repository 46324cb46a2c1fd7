package service_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"baseware/internal/models"
	"baseware/internal/store"
)

type mockTxRunner struct {
	stores store.Stores
	calls  int
	opts   []*sql.TxOptions
}

func (m *mockTxRunner) WithTx(_ context.Context, opts *sql.TxOptions, fn func(store.Stores) error) error {
	m.calls++
	m.opts = append(m.opts, opts)
	return fn(m.stores)
}

type mockStores struct {
	orgs        *mockOrganizationStore
	users       *mockUserStore
	memberships *mockMembershipStore
	categories  *mockCategoryStore
}

func (m *mockStores) Organizations() store.OrganizationStore     { return m.orgs }
func (m *mockStores) Users() store.UserStore                     { return m.users }
func (m *mockStores) Memberships() store.MembershipStore         { return m.memberships }
func (m *mockStores) Categories() store.CategoryStore            { return m.categories }
func (m *mockStores) Tasks() store.TaskStore                     { return nil }
func (m *mockStores) TaskComments() store.TaskCommentStore       { return nil }
func (m *mockStores) TaskAttachments() store.TaskAttachmentStore { return nil }

type mockOrganizationStore struct {
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	existsByIDFn   func(ctx context.Context, id uuid.UUID) (bool, error)
	findAllFn      func(ctx context.Context) ([]models.Organization, error)
	findRootsFn    func(ctx context.Context, limit, offset int) ([]models.Organization, int, error)
	findAllByIDsFn func(ctx context.Context, ids []uuid.UUID) ([]models.Organization, error)
	saveAllFn      func(ctx context.Context, orgs []models.Organization) error
	findAllCalls   int
	saveAllCalls   int
}

func (m *mockOrganizationStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.existsByIDFn != nil {
		return m.existsByIDFn(ctx, id)
	}
	return false, nil
}

func (m *mockOrganizationStore) FindAll(ctx context.Context) ([]models.Organization, error) {
	m.findAllCalls++
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *mockOrganizationStore) FindRoots(ctx context.Context, limit, offset int) ([]models.Organization, int, error) {
	if m.findRootsFn != nil {
		return m.findRootsFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockOrganizationStore) FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Organization, error) {
	if m.findAllByIDsFn != nil {
		return m.findAllByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockOrganizationStore) Create(context.Context, *models.Organization) error { return nil }
func (m *mockOrganizationStore) Update(context.Context, *models.Organization) error { return nil }
func (m *mockOrganizationStore) Delete(context.Context, uuid.UUID) error            { return nil }

func (m *mockOrganizationStore) SaveAll(ctx context.Context, orgs []models.Organization) error {
	m.saveAllCalls++
	if m.saveAllFn != nil {
		return m.saveAllFn(ctx, orgs)
	}
	return nil
}

type mockUserStore struct {
	findAllByIDsFn func(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
}

func (m *mockUserStore) GetByID(context.Context, uuid.UUID) (*models.User, error) {
	return nil, store.ErrNotFound
}

func (m *mockUserStore) FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	if m.findAllByIDsFn != nil {
		return m.findAllByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockUserStore) List(context.Context, int, int) ([]models.User, int, error) { return nil, 0, nil }
func (m *mockUserStore) Create(context.Context, *models.User) error                 { return nil }
func (m *mockUserStore) Update(context.Context, *models.User) error                 { return nil }
func (m *mockUserStore) Delete(context.Context, uuid.UUID) error                    { return nil }

type mockMembershipStore struct {
	findActiveUserIDsFn func(ctx context.Context, organizationID uuid.UUID) (map[uuid.UUID]struct{}, error)
	findFn              func(ctx context.Context, userID, organizationID uuid.UUID) (*models.UserOrganization, error)
	saveAllFn           func(ctx context.Context, memberships []models.UserOrganization) error
	saveFn              func(ctx context.Context, membership *models.UserOrganization) error
	deactivateFn        func(ctx context.Context, organizationID uuid.UUID, userIDs []uuid.UUID, actor string, at time.Time) (int64, error)
	saveAllCalls        int
}

func (m *mockMembershipStore) FindActiveUserIDs(ctx context.Context, organizationID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	if m.findActiveUserIDsFn != nil {
		return m.findActiveUserIDsFn(ctx, organizationID)
	}
	return map[uuid.UUID]struct{}{}, nil
}

func (m *mockMembershipStore) FindByUserAndOrganization(ctx context.Context, userID, organizationID uuid.UUID) (*models.UserOrganization, error) {
	if m.findFn != nil {
		return m.findFn(ctx, userID, organizationID)
	}
	return nil, store.ErrNotFound
}

func (m *mockMembershipStore) ListByOrganization(context.Context, uuid.UUID) ([]store.Member, error) {
	return nil, nil
}

func (m *mockMembershipStore) SaveAll(ctx context.Context, memberships []models.UserOrganization) error {
	m.saveAllCalls++
	if m.saveAllFn != nil {
		return m.saveAllFn(ctx, memberships)
	}
	return nil
}

func (m *mockMembershipStore) Save(ctx context.Context, membership *models.UserOrganization) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, membership)
	}
	return nil
}

func (m *mockMembershipStore) DeactivateUsers(ctx context.Context, organizationID uuid.UUID, userIDs []uuid.UUID, actor string, at time.Time) (int64, error) {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, organizationID, userIDs, actor, at)
	}
	return 0, nil
}

type mockCategoryStore struct {
	findByCodeAndNameFn func(ctx context.Context, code models.CategoryCode, name string) (*models.Category, error)
	findCalls           int
}

func (m *mockCategoryStore) GetByID(context.Context, uuid.UUID) (*models.Category, error) {
	return nil, store.ErrNotFound
}

func (m *mockCategoryStore) FindByCodeAndName(ctx context.Context, code models.CategoryCode, name string) (*models.Category, error) {
	m.findCalls++
	if m.findByCodeAndNameFn != nil {
		return m.findByCodeAndNameFn(ctx, code, name)
	}
	return nil, store.ErrNotFound
}

func (m *mockCategoryStore) List(context.Context, *models.CategoryCode, int, int) ([]models.Category, int, error) {
	return nil, 0, nil
}
func (m *mockCategoryStore) Create(context.Context, *models.Category) error { return nil }
func (m *mockCategoryStore) Update(context.Context, *models.Category) error { return nil }
func (m *mockCategoryStore) Delete(context.Context, uuid.UUID) error        { return nil }

// mapCache is an in-process CategoryCache that counts hits.
type mapCache struct {
	entries map[string]models.Category
	hits    int
}

func newMapCache() *mapCache { return &mapCache{entries: map[string]models.Category{}} }

func (c *mapCache) key(code models.CategoryCode, name string) string { return string(code) + "/" + name }

func (c *mapCache) Get(_ context.Context, code models.CategoryCode, name string) (*models.Category, bool) {
	v, ok := c.entries[c.key(code, name)]
	if ok {
		c.hits++
	}
	return &v, ok
}

func (c *mapCache) Set(_ context.Context, category *models.Category) {
	c.entries[c.key(category.Code, category.Name)] = *category
}

func (c *mapCache) Invalidate(_ context.Context, code models.CategoryCode, name string) {
	delete(c.entries, c.key(code, name))
}


func errNotFound() error { return store.ErrNotFound }
