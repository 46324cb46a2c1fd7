package store

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"baseware/internal/models"
)

type memMembershipStore struct {
	db *memoryDB
}

func cloneMembership(m models.UserOrganization) models.UserOrganization {
	m.TitleID = clonePtr(m.TitleID)
	m.PositionID = clonePtr(m.PositionID)
	return m
}

func membershipKey(m models.UserOrganization) (time.Time, uuid.UUID) { return m.CreatedDate, m.ID }

func (s *memMembershipStore) find(userID, organizationID uuid.UUID) (models.UserOrganization, bool) {
	for _, m := range s.db.memberships {
		if m.UserID == userID && m.OrganizationID == organizationID {
			return m, true
		}
	}
	return models.UserOrganization{}, false
}

func (s *memMembershipStore) FindActiveUserIDs(_ context.Context, organizationID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	ids := make(map[uuid.UUID]struct{})
	for _, m := range s.db.memberships {
		if m.OrganizationID == organizationID && m.IsActive() {
			ids[m.UserID] = struct{}{}
		}
	}
	return ids, nil
}

func (s *memMembershipStore) FindByUserAndOrganization(_ context.Context, userID, organizationID uuid.UUID) (*models.UserOrganization, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	m, ok := s.find(userID, organizationID)
	if !ok {
		return nil, ErrNotFound
	}
	m = cloneMembership(m)
	return &m, nil
}

func (s *memMembershipStore) ListByOrganization(_ context.Context, organizationID uuid.UUID) ([]Member, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var members []Member
	for _, m := range sortedValues(s.db.memberships, membershipKey) {
		if m.OrganizationID != organizationID {
			continue
		}
		user, ok := s.db.users[m.UserID]
		if !ok {
			continue
		}
		member := Member{Membership: cloneMembership(m), User: user}
		if m.TitleID != nil {
			if c, ok := s.db.categories[*m.TitleID]; ok {
				member.Title = &c
			}
		}
		if m.PositionID != nil {
			if c, ok := s.db.categories[*m.PositionID]; ok {
				member.Position = &c
			}
		}
		members = append(members, member)
	}
	return members, nil
}

func (s *memMembershipStore) SaveAll(_ context.Context, memberships []models.UserOrganization) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, m := range memberships {
		if existing, ok := s.find(m.UserID, m.OrganizationID); ok {
			existing.State = m.State
			existing.TitleID = clonePtr(m.TitleID)
			existing.ModifiedDate = m.ModifiedDate
			existing.ModifiedBy = m.ModifiedBy
			s.db.memberships[existing.ID] = existing
			continue
		}
		s.db.memberships[m.ID] = cloneMembership(m)
	}
	return nil
}

func (s *memMembershipStore) Save(_ context.Context, m *models.UserOrganization) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.memberships[m.ID]
	if !ok {
		return ErrNotFound
	}
	existing.State = m.State
	existing.TitleID = clonePtr(m.TitleID)
	existing.PositionID = clonePtr(m.PositionID)
	existing.ModifiedDate = m.ModifiedDate
	existing.ModifiedBy = m.ModifiedBy
	s.db.memberships[m.ID] = existing
	return nil
}

func (s *memMembershipStore) DeactivateUsers(_ context.Context, organizationID uuid.UUID, userIDs []uuid.UUID, actor string, at time.Time) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var n int64
	for id, m := range s.db.memberships {
		if m.OrganizationID != organizationID || !m.IsActive() || !slices.Contains(userIDs, m.UserID) {
			continue
		}
		m.State = models.MembershipInactive
		m.ModifiedDate = at
		m.ModifiedBy = actor
		s.db.memberships[id] = m
		n++
	}
	return n, nil
}
