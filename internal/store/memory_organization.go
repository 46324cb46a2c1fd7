package store

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"baseware/internal/models"
)

type memOrganizationStore struct {
	db *memoryDB
}

func cloneOrganization(o models.Organization) models.Organization {
	o.ParentID = clonePtr(o.ParentID)
	return o
}

func organizationKey(o models.Organization) (time.Time, uuid.UUID) { return o.CreatedDate, o.ID }

func (s *memOrganizationStore) GetByID(_ context.Context, id uuid.UUID) (*models.Organization, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	o, ok := s.db.organizations[id]
	if !ok {
		return nil, ErrNotFound
	}
	o = cloneOrganization(o)
	return &o, nil
}

func (s *memOrganizationStore) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	_, ok := s.db.organizations[id]
	return ok, nil
}

func (s *memOrganizationStore) FindAll(_ context.Context) ([]models.Organization, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	orgs := sortedValues(s.db.organizations, organizationKey)
	for i := range orgs {
		orgs[i] = cloneOrganization(orgs[i])
	}
	return orgs, nil
}

func (s *memOrganizationStore) FindRoots(_ context.Context, limit, offset int) ([]models.Organization, int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var roots []models.Organization
	for _, o := range sortedValues(s.db.organizations, organizationKey) {
		if o.ParentID == nil {
			roots = append(roots, o)
		}
	}
	// newest first, ties keep id order
	slices.SortStableFunc(roots, func(a, b models.Organization) int {
		return b.CreatedDate.Compare(a.CreatedDate)
	})
	return pageOf(roots, limit, offset), len(roots), nil
}

func (s *memOrganizationStore) FindAllByIDs(_ context.Context, ids []uuid.UUID) ([]models.Organization, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var orgs []models.Organization
	for _, o := range sortedValues(s.db.organizations, organizationKey) {
		if slices.Contains(ids, o.ID) {
			orgs = append(orgs, cloneOrganization(o))
		}
	}
	return orgs, nil
}

func (s *memOrganizationStore) codeTaken(code string, except uuid.UUID) bool {
	for _, o := range s.db.organizations {
		if o.Code == code && o.ID != except {
			return true
		}
	}
	return false
}

func (s *memOrganizationStore) Create(_ context.Context, o *models.Organization) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.organizations[o.ID]; ok || s.codeTaken(o.Code, o.ID) {
		return ErrDuplicate
	}
	s.db.organizations[o.ID] = cloneOrganization(*o)
	return nil
}

func (s *memOrganizationStore) Update(_ context.Context, o *models.Organization) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.organizations[o.ID]
	if !ok {
		return ErrNotFound
	}
	if s.codeTaken(o.Code, o.ID) {
		return ErrDuplicate
	}
	updated := cloneOrganization(*o)
	updated.CreatedDate = existing.CreatedDate
	updated.CreatedBy = existing.CreatedBy
	s.db.organizations[o.ID] = updated
	return nil
}

func (s *memOrganizationStore) SaveAll(_ context.Context, orgs []models.Organization) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, o := range orgs {
		existing, ok := s.db.organizations[o.ID]
		if !ok {
			return ErrNotFound
		}
		existing.ParentID = clonePtr(o.ParentID)
		existing.ModifiedDate = o.ModifiedDate
		existing.ModifiedBy = o.ModifiedBy
		s.db.organizations[o.ID] = existing
	}
	return nil
}

func (s *memOrganizationStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.organizations[id]; !ok {
		return ErrNotFound
	}
	delete(s.db.organizations, id)

	for childID, child := range s.db.organizations {
		if child.HasParent(id) {
			child.ParentID = nil
			s.db.organizations[childID] = child
		}
	}
	for mID, m := range s.db.memberships {
		if m.OrganizationID == id {
			delete(s.db.memberships, mID)
		}
	}
	for tID, t := range s.db.tasks {
		if t.OrganizationID != nil && *t.OrganizationID == id {
			t.OrganizationID = nil
			s.db.tasks[tID] = t
		}
	}
	return nil
}
