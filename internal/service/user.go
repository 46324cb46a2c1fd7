package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"baseware/internal/apperror"
	"baseware/internal/dto"
	"baseware/internal/message"
	"baseware/internal/models"
	"baseware/internal/response"
	"baseware/internal/store"
)

type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, p response.Pageable) ([]models.User, int, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	*Services
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.Internal("hash password", err)
	}
	return string(hash), nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user *models.User
	err := s.tx.WithTx(ctx, store.ReadOnly, func(st store.Stores) error {
		var err error
		user, err = st.Users().GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return s.notFound(ctx, message.UserNotFound, id)
		}
		return err
	})
	return user, fail("get user", err)
}

func (s *userService) List(ctx context.Context, p response.Pageable) ([]models.User, int, error) {
	var (
		users []models.User
		total int
	)
	err := s.tx.WithTx(ctx, store.ReadOnly, func(st store.Stores) error {
		var err error
		users, total, err = st.Users().List(ctx, p.Size, p.Offset())
		return err
	})
	if err != nil {
		return nil, 0, fail("list users", err)
	}
	return users, total, nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Active:       true,
	}
	s.stamp(ctx, &user.Auditable)

	err = s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		err := st.Users().Create(ctx, user)
		if errors.Is(err, store.ErrDuplicate) {
			return s.invalid(ctx, "username", message.UserExists)
		}
		return err
	})
	if err != nil {
		return nil, fail("create user", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*models.User, error) {
	var hash string
	if req.Password != "" {
		var err error
		if hash, err = hashPassword(req.Password); err != nil {
			return nil, err
		}
	}

	var user *models.User
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		var err error
		user, err = st.Users().GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return s.notFound(ctx, message.UserNotFound, id)
		}
		if err != nil {
			return err
		}

		user.Username = req.Username
		user.Email = req.Email
		user.FullName = req.FullName
		if hash != "" {
			user.PasswordHash = hash
		}
		if req.Active != nil {
			user.Active = *req.Active
		}
		s.stamp(ctx, &user.Auditable)

		err = st.Users().Update(ctx, user)
		if errors.Is(err, store.ErrDuplicate) {
			return s.invalid(ctx, "username", message.UserExists)
		}
		return err
	})
	if err != nil {
		return nil, fail("update user", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		err := st.Users().Delete(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return s.notFound(ctx, message.UserNotFound, id)
		}
		return err
	})
	return fail("delete user", err)
}
