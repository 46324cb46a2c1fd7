package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"baseware/internal/dto"
	"baseware/internal/mapper"
	"baseware/internal/message"
	"baseware/internal/models"
	"baseware/internal/response"
	"baseware/internal/store"
)

type OrganizationService interface {
	// FindAll returns the whole forest.
	FindAll(ctx context.Context) ([]*dto.OrganizationResponse, error)
	// FindAllPaged pages through root organizations, each carrying all of
	// its descendants.
	FindAllPaged(ctx context.Context, p response.Pageable) (response.Page[*dto.OrganizationResponse], error)
	Get(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	Create(ctx context.Context, req dto.OrganizationRequest) (*models.Organization, error)
	Update(ctx context.Context, id uuid.UUID, req dto.OrganizationRequest) (*models.Organization, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AssignOrganizations(ctx context.Context, parentID uuid.UUID, childIDs []uuid.UUID) error
	RemoveOrganizations(ctx context.Context, parentID uuid.UUID, childIDs []uuid.UUID) error
}

type organizationService struct {
	*Services
}

func (s *organizationService) FindAll(ctx context.Context) ([]*dto.OrganizationResponse, error) {
	var orgs []models.Organization
	err := s.tx.WithTx(ctx, store.ReadOnly, func(st store.Stores) error {
		var err error
		orgs, err = st.Organizations().FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, fail("find organizations", err)
	}
	return mapper.MapOrganizationsToTree(orgs), nil
}

func (s *organizationService) FindAllPaged(ctx context.Context, p response.Pageable) (response.Page[*dto.OrganizationResponse], error) {
	var (
		roots, all []models.Organization
		total      int
	)
	err := s.tx.WithTx(ctx, store.ReadOnly, func(st store.Stores) error {
		var err error
		roots, total, err = st.Organizations().FindRoots(ctx, p.Size, p.Offset())
		if err != nil || len(roots) == 0 {
			return err
		}
		all, err = st.Organizations().FindAll(ctx)
		return err
	})
	if err != nil {
		return response.Page[*dto.OrganizationResponse]{}, fail("find organizations", err)
	}

	byParent := mapper.GroupByParent(all)
	content := make([]*dto.OrganizationResponse, 0, len(roots))
	for i := range roots {
		content = append(content, mapper.BuildOrganizationTree(&roots[i], byParent))
	}
	return response.NewPage(content, p, total), nil
}

func (s *organizationService) Get(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var org *models.Organization
	err := s.tx.WithTx(ctx, store.ReadOnly, func(st store.Stores) error {
		var err error
		org, err = s.get(ctx, st.Organizations(), id)
		return err
	})
	return org, fail("get organization", err)
}

func (s *organizationService) get(ctx context.Context, orgs store.OrganizationStore, id uuid.UUID) (*models.Organization, error) {
	org, err := orgs.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, s.notFound(ctx, message.OrganizationNotFound, id)
	}
	return org, err
}

func (s *organizationService) Create(ctx context.Context, req dto.OrganizationRequest) (*models.Organization, error) {
	org := &models.Organization{
		ID:          uuid.New(),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Level:       req.Level,
		ParentID:    req.ParentID,
	}
	s.stamp(ctx, &org.Auditable)

	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		if org.ParentID != nil {
			exists, err := st.Organizations().ExistsByID(ctx, *org.ParentID)
			if err != nil {
				return err
			}
			if !exists {
				return s.notFound(ctx, message.ParentNotFound, *org.ParentID)
			}
		}
		err := st.Organizations().Create(ctx, org)
		if errors.Is(err, store.ErrDuplicate) {
			return s.invalid(ctx, "code", message.OrganizationCodeExists, org.Code)
		}
		return err
	})
	if err != nil {
		return nil, fail("create organization", err)
	}
	return org, nil
}

func (s *organizationService) Update(ctx context.Context, id uuid.UUID, req dto.OrganizationRequest) (*models.Organization, error) {
	var org *models.Organization
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		orgs := st.Organizations()
		var err error
		if org, err = s.get(ctx, orgs, id); err != nil {
			return err
		}

		if req.ParentID != nil && !org.HasParent(*req.ParentID) {
			parent, err := orgs.GetByID(ctx, *req.ParentID)
			if errors.Is(err, store.ErrNotFound) {
				return s.notFound(ctx, message.ParentNotFound, *req.ParentID)
			}
			if err != nil {
				return err
			}
			lineage, err := s.lineage(ctx, orgs, parent)
			if err != nil {
				return err
			}
			if _, ok := lineage[id]; ok {
				return s.invalid(ctx, "parent_id", message.OrganizationCycle, id)
			}
		}

		org.Name = req.Name
		org.Code = req.Code
		org.Description = req.Description
		org.Level = req.Level
		org.ParentID = req.ParentID
		s.stamp(ctx, &org.Auditable)

		err = orgs.Update(ctx, org)
		if errors.Is(err, store.ErrDuplicate) {
			return s.invalid(ctx, "code", message.OrganizationCodeExists, org.Code)
		}
		return err
	})
	if err != nil {
		return nil, fail("update organization", err)
	}
	return org, nil
}

func (s *organizationService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		err := st.Organizations().Delete(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return s.notFound(ctx, message.OrganizationNotFound, id)
		}
		return err
	})
	return fail("delete organization", err)
}

// lineage returns org and all of its ancestors.
func (s *organizationService) lineage(ctx context.Context, orgs store.OrganizationStore, org *models.Organization) (map[uuid.UUID]struct{}, error) {
	seen := map[uuid.UUID]struct{}{org.ID: {}}
	for cur := org; cur.ParentID != nil; {
		if _, ok := seen[*cur.ParentID]; ok {
			break
		}
		next, err := orgs.GetByID(ctx, *cur.ParentID)
		if errors.Is(err, store.ErrNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		seen[next.ID] = struct{}{}
		cur = next
	}
	return seen, nil
}

func (s *organizationService) AssignOrganizations(ctx context.Context, parentID uuid.UUID, childIDs []uuid.UUID) error {
	if len(childIDs) == 0 {
		return nil
	}
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		orgs := st.Organizations()
		parent, err := s.get(ctx, orgs, parentID)
		if err != nil {
			return err
		}
		// the parent and its ancestors can never become its children
		excluded, err := s.lineage(ctx, orgs, parent)
		if err != nil {
			return err
		}

		children, err := orgs.FindAllByIDs(ctx, childIDs)
		if err != nil {
			return err
		}
		changed := make([]models.Organization, 0, len(children))
		for _, child := range children {
			if _, skip := excluded[child.ID]; skip || child.HasParent(parentID) {
				continue
			}
			child.ParentID = &parentID
			s.stamp(ctx, &child.Auditable)
			changed = append(changed, child)
		}
		return orgs.SaveAll(ctx, changed)
	})
	return fail("assign organizations", err)
}

func (s *organizationService) RemoveOrganizations(ctx context.Context, parentID uuid.UUID, childIDs []uuid.UUID) error {
	if len(childIDs) == 0 {
		return nil
	}
	err := s.tx.WithTx(ctx, store.ReadCommitted, func(st store.Stores) error {
		orgs := st.Organizations()
		exists, err := orgs.ExistsByID(ctx, parentID)
		if err != nil {
			return err
		}
		if !exists {
			return s.notFound(ctx, message.OrganizationNotFound, parentID)
		}

		children, err := orgs.FindAllByIDs(ctx, childIDs)
		if err != nil {
			return err
		}
		changed := make([]models.Organization, 0, len(children))
		for _, child := range children {
			if !child.HasParent(parentID) {
				continue
			}
			child.ParentID = nil
			s.stamp(ctx, &child.Auditable)
			changed = append(changed, child)
		}
		return orgs.SaveAll(ctx, changed)
	})
	return fail("remove organizations", err)
}
