package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"baseware/internal/dto"
	"baseware/internal/message"
	"baseware/internal/models"
	"baseware/internal/response"
	"baseware/internal/store"
)

type CategoryService interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context, code *models.CategoryCode, p response.Pageable) ([]models.Category, int, error)
	FindByCodeAndName(ctx context.Context, code models.CategoryCode, name string) (*models.Category, error)
	Create(ctx context.Context, req dto.CategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	*Services
}

func (s *categoryService) get(ctx context.Context, categories store.CategoryStore, id uuid.UUID) (*models.Category, error) {
	c, err := categories.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, s.notFound(ctx, message.CategoryNotFound, id)
	}
	return c, err
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c *models.Category
	err := s.tx.WithTx(ctx, store.ReadOnly, func(st store.Stores) error {
		var err error
		c, err = s.get(ctx, st.Categories(), id)
		return err
	})
	return c, fail("get category", err)
}

func (s *categoryService) List(ctx context.Context, code *models.CategoryCode, p response.Pageable) ([]models.Category, int, error) {
	var (
		categories []models.Category
		total      int
	)
	err := s.tx.WithTx(ctx, store.ReadOnly, func(st store.Stores) error {
		var err error
		categories, total, err = st.Categories().List(ctx, code, p.Size, p.Offset())
		return err
	})
	if err != nil {
		return nil, 0, fail("list categories", err)
	}
	return categories, total, nil
}

func (s *categoryService) FindByCodeAndName(ctx context.Context, code models.CategoryCode, name string) (*models.Category, error) {
	var c *models.Category
	err := s.tx.WithTx(ctx, store.ReadOnly, func(st store.Stores) error {
		var err error
		c, err = s.lookup.find(ctx, st.Categories(), code, name)
		if errors.Is(err, store.ErrNotFound) {
			return s.notFound(ctx, message.CategoryNameNotFound, code, name)
		}
		return err
	})
	return c, fail("find category", err)
}

func (s *categoryService) Create(ctx context.Context, req dto.CategoryRequest) (*models.Category, error) {
	c := &models.Category{
		ID:          uuid.New(),
		Code:        req.Code,
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
	}
	s.stamp(ctx, &c.Auditable)

	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		err := st.Categories().Create(ctx, c)
		if errors.Is(err, store.ErrDuplicate) {
			return s.invalid(ctx, "name", message.CategoryExists, c.Code, c.Name)
		}
		return err
	})
	if err != nil {
		return nil, fail("create category", err)
	}
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.CategoryRequest) (*models.Category, error) {
	var before, c *models.Category
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		var err error
		if c, err = s.get(ctx, st.Categories(), id); err != nil {
			return err
		}
		previous := *c
		before = &previous

		c.Code = req.Code
		c.Name = req.Name
		c.DisplayName = req.DisplayName
		c.Description = req.Description
		s.stamp(ctx, &c.Auditable)

		err = st.Categories().Update(ctx, c)
		if errors.Is(err, store.ErrDuplicate) {
			return s.invalid(ctx, "name", message.CategoryExists, c.Code, c.Name)
		}
		return err
	})
	if err != nil {
		return nil, fail("update category", err)
	}
	s.lookup.invalidate(ctx, before, c)
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	var deleted *models.Category
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		var err error
		if deleted, err = s.get(ctx, st.Categories(), id); err != nil {
			return err
		}
		return st.Categories().Delete(ctx, id)
	})
	if err != nil {
		return fail("delete category", err)
	}
	s.lookup.invalidate(ctx, deleted)
	return nil
}
