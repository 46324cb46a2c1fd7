package store

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"baseware/internal/models"
)

type memUserStore struct {
	db *memoryDB
}

func userKey(u models.User) (time.Time, uuid.UUID) { return u.CreatedDate, u.ID }

func (s *memUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memUserStore) FindAllByIDs(_ context.Context, ids []uuid.UUID) ([]models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var users []models.User
	for _, u := range sortedValues(s.db.users, userKey) {
		if slices.Contains(ids, u.ID) {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *memUserStore) List(_ context.Context, limit, offset int) ([]models.User, int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	users := sortedValues(s.db.users, userKey)
	slices.Reverse(users)
	return pageOf(users, limit, offset), len(users), nil
}

func (s *memUserStore) taken(u *models.User) bool {
	for _, other := range s.db.users {
		if other.ID != u.ID && (other.Username == u.Username || other.Email == u.Email) {
			return true
		}
	}
	return false
}

func (s *memUserStore) Create(_ context.Context, u *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[u.ID]; ok || s.taken(u) {
		return ErrDuplicate
	}
	s.db.users[u.ID] = *u
	return nil
}

func (s *memUserStore) Update(_ context.Context, u *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.users[u.ID]
	if !ok {
		return ErrNotFound
	}
	if s.taken(u) {
		return ErrDuplicate
	}
	updated := *u
	updated.CreatedDate = existing.CreatedDate
	updated.CreatedBy = existing.CreatedBy
	s.db.users[u.ID] = updated
	return nil
}

func (s *memUserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.db.users, id)

	for mID, m := range s.db.memberships {
		if m.UserID == id {
			delete(s.db.memberships, mID)
		}
	}
	for tID, t := range s.db.tasks {
		if t.AssigneeID != nil && *t.AssigneeID == id {
			t.AssigneeID = nil
			s.db.tasks[tID] = t
		}
	}
	return nil
}
