package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"baseware/internal/apperror"
	"baseware/internal/auth"
	"baseware/internal/message"
	"baseware/internal/models"
	"baseware/internal/service"
	"baseware/internal/store"
)

var _ = Describe("MembershipService", func() {
	var (
		ctx         context.Context
		orgID       uuid.UUID
		orgStore    *mockOrganizationStore
		users       *mockUserStore
		memberships *mockMembershipStore
		categories  *mockCategoryStore
		tx          *mockTxRunner
		svc         service.MembershipService
		staff       models.Category
	)

	BeforeEach(func() {
		ctx = auth.WithPrincipal(context.Background(), auth.Principal{Name: "admin"})
		orgID = uuid.New()
		staff = models.Category{ID: uuid.New(), Code: models.CategoryOrganizationTitle, Name: models.DefaultTitleName}

		orgStore = &mockOrganizationStore{
			existsByIDFn: func(_ context.Context, id uuid.UUID) (bool, error) { return id == orgID, nil },
		}
		users = &mockUserStore{}
		memberships = &mockMembershipStore{}
		categories = &mockCategoryStore{
			findByCodeAndNameFn: func(_ context.Context, code models.CategoryCode, name string) (*models.Category, error) {
				if code == staff.Code && name == staff.Name {
					c := staff
					return &c, nil
				}
				return nil, store.ErrNotFound
			},
		}
		tx = &mockTxRunner{stores: &mockStores{orgs: orgStore, users: users, memberships: memberships, categories: categories}}
		svc = service.NewServices(tx, nil, message.New("en")).Memberships()
	})

	Describe("AssignUsers", func() {
		var user models.User

		BeforeEach(func() {
			user = models.User{ID: uuid.New(), Username: "alice"}
			users.findAllByIDsFn = func(_ context.Context, ids []uuid.UUID) ([]models.User, error) {
				var out []models.User
				for _, id := range ids {
					if id == user.ID {
						out = append(out, user)
					}
				}
				return out, nil
			}
		})

		It("is a no-op for an empty id list", func() {
			Expect(svc.AssignUsers(ctx, orgID, nil)).To(Succeed())
			Expect(tx.calls).To(BeZero())
		})

		It("fails with not found for an unknown organization", func() {
			err := svc.AssignUsers(ctx, uuid.New(), []uuid.UUID{user.ID})
			Expect(apperror.IsNotFound(err)).To(BeTrue())
		})

		It("creates an active STAFF membership and drops unknown users", func() {
			var saved []models.UserOrganization
			memberships.saveAllFn = func(_ context.Context, ms []models.UserOrganization) error {
				saved = ms
				return nil
			}

			Expect(svc.AssignUsers(ctx, orgID, []uuid.UUID{user.ID, uuid.New(), user.ID})).To(Succeed())
			Expect(saved).To(HaveLen(1))
			Expect(saved[0].UserID).To(Equal(user.ID))
			Expect(saved[0].OrganizationID).To(Equal(orgID))
			Expect(saved[0].IsActive()).To(BeTrue())
			Expect(*saved[0].TitleID).To(Equal(staff.ID))
			Expect(saved[0].CreatedBy).To(Equal("admin"))
		})

		It("creates nothing when the user is already active", func() {
			memberships.findActiveUserIDsFn = func(context.Context, uuid.UUID) (map[uuid.UUID]struct{}, error) {
				return map[uuid.UUID]struct{}{user.ID: {}}, nil
			}

			Expect(svc.AssignUsers(ctx, orgID, []uuid.UUID{user.ID})).To(Succeed())
			Expect(memberships.saveAllCalls).To(BeZero())
			Expect(categories.findCalls).To(BeZero())
		})

		It("fails with illegal state when the default title is missing", func() {
			categories.findByCodeAndNameFn = nil

			err := svc.AssignUsers(ctx, orgID, []uuid.UUID{user.ID})
			Expect(apperror.IsIllegalState(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("Default title STAFF not found"))
			Expect(memberships.saveAllCalls).To(BeZero())
		})
	})

	Describe("RemoveUsers", func() {
		It("fails with not found when no active row was touched", func() {
			memberships.deactivateFn = func(context.Context, uuid.UUID, []uuid.UUID, string, time.Time) (int64, error) {
				return 0, nil
			}

			err := svc.RemoveUsers(ctx, orgID, []uuid.UUID{uuid.New()})
			Expect(apperror.IsNotFound(err)).To(BeTrue())
		})

		It("deactivates the given active users", func() {
			target := uuid.New()
			memberships.deactivateFn = func(_ context.Context, org uuid.UUID, ids []uuid.UUID, actor string, at time.Time) (int64, error) {
				Expect(org).To(Equal(orgID))
				Expect(ids).To(ConsistOf(target))
				Expect(actor).To(Equal("admin"))
				Expect(at).To(BeTemporally("~", time.Now(), time.Minute))
				return 1, nil
			}

			Expect(svc.RemoveUsers(ctx, orgID, []uuid.UUID{target})).To(Succeed())
		})

		It("is a no-op for an empty id list", func() {
			Expect(svc.RemoveUsers(ctx, orgID, []uuid.UUID{})).To(Succeed())
			Expect(tx.calls).To(BeZero())
		})
	})

	Describe("ChangeTitle", func() {
		var (
			userID     uuid.UUID
			membership models.UserOrganization
			manager    models.Category
		)

		BeforeEach(func() {
			userID = uuid.New()
			membership = models.UserOrganization{
				ID: uuid.New(), UserID: userID, OrganizationID: orgID,
				State: models.MembershipActive, TitleID: &staff.ID,
			}
			manager = models.Category{ID: uuid.New(), Code: models.CategoryOrganizationTitle, Name: "MANAGER"}
			memberships.findFn = func(_ context.Context, u, o uuid.UUID) (*models.UserOrganization, error) {
				if u == userID && o == orgID {
					m := membership
					return &m, nil
				}
				return nil, store.ErrNotFound
			}
			categories.findByCodeAndNameFn = func(_ context.Context, code models.CategoryCode, name string) (*models.Category, error) {
				if code == manager.Code && name == manager.Name {
					c := manager
					return &c, nil
				}
				return nil, store.ErrNotFound
			}
		})

		It("updates the title of an active membership", func() {
			var saved *models.UserOrganization
			memberships.saveFn = func(_ context.Context, m *models.UserOrganization) error {
				saved = m
				return nil
			}

			Expect(svc.ChangeTitle(ctx, orgID, userID, "MANAGER")).To(Succeed())
			Expect(saved).NotTo(BeNil())
			Expect(*saved.TitleID).To(Equal(manager.ID))
			Expect(saved.ModifiedBy).To(Equal("admin"))
		})

		It("fails with not found when the membership is missing", func() {
			err := svc.ChangeTitle(ctx, orgID, uuid.New(), "MANAGER")
			Expect(apperror.IsNotFound(err)).To(BeTrue())
		})

		It("fails with illegal state when the membership is inactive", func() {
			membership.State = models.MembershipInactive

			err := svc.ChangeTitle(ctx, orgID, userID, "MANAGER")
			Expect(apperror.IsIllegalState(err)).To(BeTrue())
		})

		It("fails with not found naming the title when it does not exist", func() {
			err := svc.ChangeTitle(ctx, orgID, userID, "DIRECTOR")
			Expect(apperror.IsNotFound(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("DIRECTOR"))
		})
	})
})

var _ = Describe("MembershipService with memory stores", func() {
	It("never persists a duplicate pair and re-activates removed members", func() {
		ctx := context.Background()
		stores := store.NewMemoryStores()
		services := service.NewServices(stores, nil, message.New("en"))

		org := &models.Organization{ID: uuid.New(), Name: "HQ", Code: "HQ", Level: models.LevelProvince}
		user := &models.User{ID: uuid.New(), Username: "bob", Email: "bob@example.com"}
		Expect(stores.Organizations().Create(ctx, org)).To(Succeed())
		Expect(stores.Users().Create(ctx, user)).To(Succeed())

		svc := services.Memberships()
		Expect(svc.AssignUsers(ctx, org.ID, []uuid.UUID{user.ID})).To(Succeed())
		Expect(svc.AssignUsers(ctx, org.ID, []uuid.UUID{user.ID})).To(Succeed())

		members, err := svc.ListMembers(ctx, org.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(HaveLen(1))
		Expect(members[0].State).To(Equal(models.MembershipActive))
		Expect(members[0].Title.Name).To(Equal(models.DefaultTitleName))

		Expect(svc.RemoveUsers(ctx, org.ID, []uuid.UUID{user.ID})).To(Succeed())
		err = svc.RemoveUsers(ctx, org.ID, []uuid.UUID{user.ID})
		Expect(apperror.IsNotFound(err)).To(BeTrue())

		err = svc.ChangeTitle(ctx, org.ID, user.ID, models.DefaultTitleName)
		Expect(apperror.IsIllegalState(err)).To(BeTrue())

		Expect(svc.AssignUsers(ctx, org.ID, []uuid.UUID{user.ID})).To(Succeed())
		members, err = svc.ListMembers(ctx, org.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(members).To(HaveLen(1))
		Expect(members[0].State).To(Equal(models.MembershipActive))

		_, err = svc.ListMembers(ctx, uuid.New())
		Expect(apperror.IsNotFound(err)).To(BeTrue())
	})
})
