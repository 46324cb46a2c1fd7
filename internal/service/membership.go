package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"baseware/internal/auth"
	"baseware/internal/dto"
	"baseware/internal/mapper"
	"baseware/internal/message"
	"baseware/internal/models"
	"baseware/internal/store"
)

// MembershipService moves (user, organization) pairs through
// UNASSIGNED -> ACTIVE -> INACTIVE, re-activating on a later assignment.
type MembershipService interface {
	AssignUsers(ctx context.Context, organizationID uuid.UUID, userIDs []uuid.UUID) error
	RemoveUsers(ctx context.Context, organizationID uuid.UUID, userIDs []uuid.UUID) error
	ChangeTitle(ctx context.Context, organizationID, userID uuid.UUID, title string) error
	ListMembers(ctx context.Context, organizationID uuid.UUID) ([]dto.MemberResponse, error)
}

type membershipService struct {
	*Services
}

func (s *membershipService) requireOrganization(ctx context.Context, st store.Stores, id uuid.UUID) error {
	exists, err := st.Organizations().ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return s.notFound(ctx, message.OrganizationNotFound, id)
	}
	return nil
}

func (s *membershipService) AssignUsers(ctx context.Context, organizationID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		if err := s.requireOrganization(ctx, st, organizationID); err != nil {
			return err
		}

		users, err := st.Users().FindAllByIDs(ctx, userIDs)
		if err != nil {
			return err
		}
		active, err := st.Memberships().FindActiveUserIDs(ctx, organizationID)
		if err != nil {
			return err
		}

		var targets []uuid.UUID
		for _, u := range users {
			if _, ok := active[u.ID]; ok {
				continue
			}
			active[u.ID] = struct{}{}
			targets = append(targets, u.ID)
		}
		if len(targets) == 0 {
			return nil
		}

		title, err := s.lookup.find(ctx, st.Categories(), models.CategoryOrganizationTitle, models.DefaultTitleName)
		if errors.Is(err, store.ErrNotFound) {
			return s.illegalState(ctx, message.DefaultTitleMissing)
		}
		if err != nil {
			return err
		}

		memberships := make([]models.UserOrganization, 0, len(targets))
		for _, userID := range targets {
			m := models.UserOrganization{
				ID:             uuid.New(),
				UserID:         userID,
				OrganizationID: organizationID,
				State:          models.MembershipActive,
				TitleID:        &title.ID,
			}
			s.stamp(ctx, &m.Auditable)
			memberships = append(memberships, m)
		}
		return st.Memberships().SaveAll(ctx, memberships)
	})
	return fail("assign users", err)
}

func (s *membershipService) RemoveUsers(ctx context.Context, organizationID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		if err := s.requireOrganization(ctx, st, organizationID); err != nil {
			return err
		}
		n, err := st.Memberships().DeactivateUsers(ctx, organizationID, userIDs, auth.Actor(ctx), s.now())
		if err != nil {
			return err
		}
		if n == 0 {
			return s.notFound(ctx, message.UsersNotInOrganization)
		}
		return nil
	})
	return fail("remove users", err)
}

func (s *membershipService) ChangeTitle(ctx context.Context, organizationID, userID uuid.UUID, title string) error {
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		m, err := st.Memberships().FindByUserAndOrganization(ctx, userID, organizationID)
		if errors.Is(err, store.ErrNotFound) {
			return s.notFound(ctx, message.UserNotInOrganization, userID, organizationID)
		}
		if err != nil {
			return err
		}
		if !m.IsActive() {
			return s.illegalState(ctx, message.MembershipInactive)
		}

		category, err := s.lookup.find(ctx, st.Categories(), models.CategoryOrganizationTitle, title)
		if errors.Is(err, store.ErrNotFound) {
			return s.notFound(ctx, message.TitleNotFound, title)
		}
		if err != nil {
			return err
		}

		m.TitleID = &category.ID
		s.stamp(ctx, &m.Auditable)
		return st.Memberships().Save(ctx, m)
	})
	return fail("change title", err)
}

func (s *membershipService) ListMembers(ctx context.Context, organizationID uuid.UUID) ([]dto.MemberResponse, error) {
	var members []store.Member
	err := s.tx.WithTx(ctx, store.ReadOnly, func(st store.Stores) error {
		if err := s.requireOrganization(ctx, st, organizationID); err != nil {
			return err
		}
		var err error
		members, err = st.Memberships().ListByOrganization(ctx, organizationID)
		return err
	})
	if err != nil {
		return nil, fail("list members", err)
	}
	return mapper.Map(members, mapper.ToMemberResponse), nil
}
