package service

import (
	"context"
	"errors"
	"time"

	"baseware/internal/apperror"
	"baseware/internal/auth"
	"baseware/internal/cache"
	"baseware/internal/message"
	"baseware/internal/models"
	"baseware/internal/store"
)

type Services struct {
	tx       store.TxRunner
	messages *message.Catalog
	lookup   *categoryLookup
	now      func() time.Time
}

func NewServices(tx store.TxRunner, categoryCache cache.CategoryCache, messages *message.Catalog) *Services {
	if categoryCache == nil {
		categoryCache = cache.NopCategoryCache{}
	}
	return &Services{
		tx:       tx,
		messages: messages,
		lookup:   &categoryLookup{cache: categoryCache},
		now:      time.Now,
	}
}

func (s *Services) Organizations() OrganizationService {
	return &organizationService{Services: s}
}

func (s *Services) Memberships() MembershipService {
	return &membershipService{Services: s}
}

func (s *Services) Users() UserService {
	return &userService{Services: s}
}

func (s *Services) Categories() CategoryService {
	return &categoryService{Services: s}
}

func (s *Services) Tasks() TaskService {
	return &taskService{Services: s}
}

func (s *Services) Enums() EnumService {
	return &enumService{Services: s}
}

// stamp fills the audit columns for a write made under ctx.
func (s *Services) stamp(ctx context.Context, a *models.Auditable) {
	a.Touch(auth.Actor(ctx), s.now())
}

func (s *Services) notFound(ctx context.Context, key string, args ...any) error {
	return apperror.NotFound(s.messages.Get(ctx, key, args...))
}

func (s *Services) illegalState(ctx context.Context, key string, args ...any) error {
	return apperror.IllegalState(s.messages.Get(ctx, key, args...))
}

func (s *Services) invalid(ctx context.Context, field, key string, args ...any) error {
	msg := s.messages.Get(ctx, key, args...)
	return apperror.Validation(msg, map[string]string{field: msg})
}

// fail passes application errors through and wraps everything else as an
// internal error for op.
func fail(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Internal(op, err)
}

// categoryLookup reads categories by (code, name) through the cache.
type categoryLookup struct {
	cache cache.CategoryCache
}

func (l *categoryLookup) find(ctx context.Context, categories store.CategoryStore, code models.CategoryCode, name string) (*models.Category, error) {
	if c, ok := l.cache.Get(ctx, code, name); ok {
		return c, nil
	}
	c, err := categories.FindByCodeAndName(ctx, code, name)
	if err != nil {
		return nil, err
	}
	l.cache.Set(ctx, c)
	return c, nil
}

func (l *categoryLookup) invalidate(ctx context.Context, categories ...*models.Category) {
	for _, c := range categories {
		if c != nil {
			l.cache.Invalidate(ctx, c.Code, c.Name)
		}
	}
}
