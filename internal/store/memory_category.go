package store

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"baseware/internal/models"
)

type memCategoryStore struct {
	db *memoryDB
}

func (s *memCategoryStore) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	c, ok := s.db.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *memCategoryStore) FindByCodeAndName(_ context.Context, code models.CategoryCode, name string) (*models.Category, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, c := range s.db.categories {
		if c.Code == code && c.Name == name {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memCategoryStore) List(_ context.Context, code *models.CategoryCode, limit, offset int) ([]models.Category, int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var categories []models.Category
	for _, c := range s.db.categories {
		if code == nil || c.Code == *code {
			categories = append(categories, c)
		}
	}
	slices.SortFunc(categories, func(a, b models.Category) int {
		return cmp.Or(cmp.Compare(a.Code, b.Code), cmp.Compare(a.Name, b.Name))
	})
	return pageOf(categories, limit, offset), len(categories), nil
}

func (s *memCategoryStore) taken(c *models.Category) bool {
	for _, other := range s.db.categories {
		if other.ID != c.ID && other.Code == c.Code && other.Name == c.Name {
			return true
		}
	}
	return false
}

func (s *memCategoryStore) Create(_ context.Context, c *models.Category) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.categories[c.ID]; ok || s.taken(c) {
		return ErrDuplicate
	}
	s.db.categories[c.ID] = *c
	return nil
}

func (s *memCategoryStore) Update(_ context.Context, c *models.Category) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.categories[c.ID]
	if !ok {
		return ErrNotFound
	}
	if s.taken(c) {
		return ErrDuplicate
	}
	updated := *c
	updated.CreatedDate = existing.CreatedDate
	updated.CreatedBy = existing.CreatedBy
	s.db.categories[c.ID] = updated
	return nil
}

func (s *memCategoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.categories[id]; !ok {
		return ErrNotFound
	}
	delete(s.db.categories, id)

	for mID, m := range s.db.memberships {
		changed := false
		if m.TitleID != nil && *m.TitleID == id {
			m.TitleID, changed = nil, true
		}
		if m.PositionID != nil && *m.PositionID == id {
			m.PositionID, changed = nil, true
		}
		if changed {
			s.db.memberships[mID] = m
		}
	}
	for tID, t := range s.db.tasks {
		if t.PriorityID != nil && *t.PriorityID == id {
			t.PriorityID = nil
			s.db.tasks[tID] = t
		}
	}
	return nil
}
