package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baseware/internal/models"
	"baseware/internal/search"
)

// backend is one store implementation under test. reset returns stores over
// an empty database holding only the seeded default title.
type backend struct {
	name  string
	reset func(t *testing.T) (Stores, TxRunner)
}

var base = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func at(minutes int) models.Auditable {
	ts := base.Add(time.Duration(minutes) * time.Minute)
	return models.Auditable{CreatedDate: ts, ModifiedDate: ts, CreatedBy: "tester", ModifiedBy: "tester"}
}

func newOrg(code string, parent *uuid.UUID, minutes int) *models.Organization {
	return &models.Organization{
		ID:        uuid.New(),
		Name:      "Org " + code,
		Code:      code,
		Level:     models.LevelDepartment,
		ParentID:  parent,
		Auditable: at(minutes),
	}
}

func newUser(name string, minutes int) *models.User {
	return &models.User{
		ID:           uuid.New(),
		Username:     name,
		Email:        name + "@example.com",
		FullName:     "User " + name,
		PasswordHash: "hash",
		Active:       true,
		Auditable:    at(minutes),
	}
}

func runContract(t *testing.T, b backend) {
	ctx := context.Background()

	t.Run(b.name+"/organizations", func(t *testing.T) {
		s, _ := b.reset(t)
		orgs := s.Organizations()

		a := newOrg("A", nil, 0)
		require.NoError(t, orgs.Create(ctx, a))
		child := newOrg("B", &a.ID, 1)
		require.NoError(t, orgs.Create(ctx, child))
		other := newOrg("C", nil, 2)
		require.NoError(t, orgs.Create(ctx, other))

		assert.ErrorIs(t, orgs.Create(ctx, newOrg("A", nil, 3)), ErrDuplicate)

		got, err := orgs.GetByID(ctx, child.ID)
		require.NoError(t, err)
		require.NotNil(t, got.ParentID)
		assert.Equal(t, a.ID, *got.ParentID)

		_, err = orgs.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)

		all, err := orgs.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"A", "B", "C"}, []string{all[0].Code, all[1].Code, all[2].Code})

		roots, total, err := orgs.FindRoots(ctx, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, roots, 1)
		assert.Equal(t, "C", roots[0].Code)

		roots, _, err = orgs.FindRoots(ctx, 10, 5)
		require.NoError(t, err)
		assert.Empty(t, roots)

		byIDs, err := orgs.FindAllByIDs(ctx, []uuid.UUID{other.ID, a.ID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, byIDs, 2)

		other.ParentID = &a.ID
		other.ModifiedBy = "mover"
		require.NoError(t, orgs.SaveAll(ctx, []models.Organization{*other}))
		moved, err := orgs.GetByID(ctx, other.ID)
		require.NoError(t, err)
		assert.True(t, moved.HasParent(a.ID))
		assert.Equal(t, "mover", moved.ModifiedBy)

		require.NoError(t, orgs.Delete(ctx, a.ID))
		exists, err := orgs.ExistsByID(ctx, a.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		detached, err := orgs.GetByID(ctx, child.ID)
		require.NoError(t, err)
		assert.Nil(t, detached.ParentID)

		assert.ErrorIs(t, orgs.Delete(ctx, a.ID), ErrNotFound)
	})

	t.Run(b.name+"/memberships", func(t *testing.T) {
		s, _ := b.reset(t)
		org := newOrg("M", nil, 0)
		require.NoError(t, s.Organizations().Create(ctx, org))
		u1, u2 := newUser("alice", 0), newUser("bob", 1)
		require.NoError(t, s.Users().Create(ctx, u1))
		require.NoError(t, s.Users().Create(ctx, u2))

		staff, err := s.Categories().FindByCodeAndName(ctx, models.CategoryOrganizationTitle, models.DefaultTitleName)
		require.NoError(t, err)

		membership := func(u *models.User, minutes int) models.UserOrganization {
			return models.UserOrganization{
				ID: uuid.New(), UserID: u.ID, OrganizationID: org.ID,
				State: models.MembershipActive, TitleID: &staff.ID, Auditable: at(minutes),
			}
		}
		ms := s.Memberships()
		require.NoError(t, ms.SaveAll(ctx, []models.UserOrganization{membership(u1, 0), membership(u2, 1)}))

		active, err := ms.FindActiveUserIDs(ctx, org.ID)
		require.NoError(t, err)
		assert.Len(t, active, 2)

		removedAt := base.Add(time.Hour)
		n, err := ms.DeactivateUsers(ctx, org.ID, []uuid.UUID{u1.ID, uuid.New()}, "remover", removedAt)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		active, err = ms.FindActiveUserIDs(ctx, org.ID)
		require.NoError(t, err)
		assert.Len(t, active, 1)
		assert.Contains(t, active, u2.ID)

		n, err = ms.DeactivateUsers(ctx, org.ID, []uuid.UUID{u1.ID}, "remover", removedAt.Add(time.Hour))
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)

		first, err := ms.FindByUserAndOrganization(ctx, u1.ID, org.ID)
		require.NoError(t, err)
		assert.False(t, first.IsActive())
		assert.Equal(t, "remover", first.ModifiedBy)
		assert.True(t, removedAt.Equal(first.ModifiedDate))

		second, err := ms.FindByUserAndOrganization(ctx, u2.ID, org.ID)
		require.NoError(t, err)
		assert.True(t, second.IsActive())
		assert.Equal(t, "tester", second.ModifiedBy)

		// re-assigning the pair reuses the row
		require.NoError(t, ms.SaveAll(ctx, []models.UserOrganization{membership(u1, 5)}))
		again, err := ms.FindByUserAndOrganization(ctx, u1.ID, org.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.True(t, again.IsActive())

		members, err := ms.ListByOrganization(ctx, org.ID)
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "alice", members[0].User.Username)
		require.NotNil(t, members[0].Title)
		assert.Equal(t, models.DefaultTitleName, members[0].Title.Name)
		assert.Nil(t, members[0].Position)

		again.State = models.MembershipInactive
		require.NoError(t, ms.Save(ctx, again))
		_, err = ms.FindByUserAndOrganization(ctx, uuid.New(), org.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, s.Users().Delete(ctx, u2.ID))
		members, err = ms.ListByOrganization(ctx, org.ID)
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run(b.name+"/categories", func(t *testing.T) {
		s, _ := b.reset(t)
		cs := s.Categories()
		high := &models.Category{ID: uuid.New(), Code: models.CategoryTaskPriority, Name: "HIGH", DisplayName: "Cao", Auditable: at(0)}
		require.NoError(t, cs.Create(ctx, high))
		dup := *high
		dup.ID = uuid.New()
		assert.ErrorIs(t, cs.Create(ctx, &dup), ErrDuplicate)

		code := models.CategoryTaskPriority
		list, total, err := cs.List(ctx, &code, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "HIGH", list[0].Name)

		_, total, err = cs.List(ctx, nil, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)

		high.DisplayName = "Rất cao"
		require.NoError(t, cs.Update(ctx, high))
		got, err := cs.GetByID(ctx, high.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rất cao", got.DisplayName)

		require.NoError(t, cs.Delete(ctx, high.ID))
		_, err = cs.FindByCodeAndName(ctx, models.CategoryTaskPriority, "HIGH")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run(b.name+"/tasks", func(t *testing.T) {
		s, _ := b.reset(t)
		ts := s.Tasks()
		mk := func(title string, status models.TaskStatus, minutes int) *models.Task {
			return &models.Task{ID: uuid.New(), Title: title, Status: status, ProjectType: models.ProjectNormal, Auditable: at(minutes)}
		}
		require.NoError(t, ts.Create(ctx, mk("Write report", models.TaskTodo, 0)))
		require.NoError(t, ts.Create(ctx, mk("Review report", models.TaskInProgress, 1)))
		require.NoError(t, ts.Create(ctx, mk("Deploy", models.TaskTodo, 2)))

		criteria, err := search.ParseFilters([]string{"title~REPORT", "status:TODO"}, TaskFields)
		require.NoError(t, err)
		tasks, total, err := ts.List(ctx, criteria, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, tasks, 1)
		assert.Equal(t, "Write report", tasks[0].Title)

		tasks, total, err = ts.List(ctx, nil, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, tasks, 2)
		assert.Equal(t, "Deploy", tasks[0].Title)

		task := tasks[0]
		comment := &models.TaskComment{ID: uuid.New(), TaskID: task.ID, AuthorID: uuid.New(), Content: "done?", Auditable: at(3)}
		require.NoError(t, s.TaskComments().Create(ctx, comment))
		attachment := &models.TaskCommentAttachment{ID: uuid.New(), CommentID: comment.ID, FileID: uuid.New(), FileName: "plan.pdf", Auditable: at(4)}
		require.NoError(t, s.TaskAttachments().Create(ctx, attachment))

		attachments, err := s.TaskAttachments().ListByComment(ctx, comment.ID)
		require.NoError(t, err)
		assert.Len(t, attachments, 1)

		require.NoError(t, ts.Delete(ctx, task.ID))
		comments, err := s.TaskComments().ListByTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)
		_, err = s.TaskComments().GetByID(ctx, comment.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run(b.name+"/transaction rollback", func(t *testing.T) {
		_, tx := b.reset(t)
		boom := errors.New("boom")
		org := newOrg("TX", nil, 0)

		err := tx.WithTx(ctx, ReadCommitted, func(s Stores) error {
			require.NoError(t, s.Organizations().Create(ctx, org))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		err = tx.WithTx(ctx, ReadOnly, func(s Stores) error {
			exists, err := s.Organizations().ExistsByID(ctx, org.ID)
			require.NoError(t, err)
			assert.False(t, exists)
			return nil
		})
		assert.NoError(t, err)
	})
}
