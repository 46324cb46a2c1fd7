package service_test

import (
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"baseware/internal/apperror"
	"baseware/internal/auth"
	"baseware/internal/dto"
	"baseware/internal/message"
	"baseware/internal/models"
	"baseware/internal/response"
	"baseware/internal/service"
	"baseware/internal/store"
)

var _ = Describe("CRUD services", func() {
	var (
		ctx      context.Context
		stores   *store.MemoryStores
		cache    *mapCache
		services *service.Services
	)

	BeforeEach(func() {
		ctx = auth.WithPrincipal(context.Background(), auth.Principal{Subject: uuid.NewString(), Name: "editor"})
		stores = store.NewMemoryStores()
		cache = newMapCache()
		services = service.NewServices(stores, cache, message.New("en"))
	})

	Describe("organizations", func() {
		It("creates, updates and deletes", func() {
			svc := services.Organizations()
			root, err := svc.Create(ctx, dto.OrganizationRequest{Name: "Root", Code: "ROOT", Level: models.LevelProvince})
			Expect(err).NotTo(HaveOccurred())
			Expect(root.CreatedBy).To(Equal("editor"))

			child, err := svc.Create(ctx, dto.OrganizationRequest{Name: "Child", Code: "CHILD", Level: models.LevelCommune, ParentID: &root.ID})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Create(ctx, dto.OrganizationRequest{Name: "Dup", Code: "ROOT", Level: models.LevelProvince})
			Expect(apperror.KindOf(err)).To(Equal(apperror.KindValidation))

			missing := uuid.New()
			_, err = svc.Create(ctx, dto.OrganizationRequest{Name: "Orphan", Code: "ORPHAN", Level: 1, ParentID: &missing})
			Expect(apperror.IsNotFound(err)).To(BeTrue())

			_, err = svc.Update(ctx, root.ID, dto.OrganizationRequest{Name: "Root", Code: "ROOT", Level: 1, ParentID: &child.ID})
			Expect(apperror.KindOf(err)).To(Equal(apperror.KindValidation))

			updated, err := svc.Update(ctx, root.ID, dto.OrganizationRequest{Name: "Renamed", Code: "ROOT", Level: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Renamed"))

			Expect(svc.Delete(ctx, root.ID)).To(Succeed())
			orphan, err := svc.Get(ctx, child.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(orphan.ParentID).To(BeNil())

			Expect(apperror.IsNotFound(svc.Delete(ctx, root.ID))).To(BeTrue())
		})
	})

	Describe("users", func() {
		It("hashes passwords and rejects duplicates", func() {
			svc := services.Users()
			user, err := svc.Create(ctx, dto.CreateUserRequest{Username: "carol", Email: "carol@example.com", Password: "s3cret-pass"})
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Active).To(BeTrue())
			Expect(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass"))).To(Succeed())

			_, err = svc.Create(ctx, dto.CreateUserRequest{Username: "carol", Email: "other@example.com", Password: "s3cret-pass"})
			Expect(apperror.KindOf(err)).To(Equal(apperror.KindValidation))

			inactive := false
			updated, err := svc.Update(ctx, user.ID, dto.UpdateUserRequest{Username: "carol", Email: "carol@example.com", Active: &inactive})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Active).To(BeFalse())
			Expect(updated.PasswordHash).To(Equal(user.PasswordHash))

			list, total, err := svc.List(ctx, response.Pageable{Page: 0, Size: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(1))
			Expect(list).To(HaveLen(1))

			Expect(svc.Delete(ctx, user.ID)).To(Succeed())
			_, err = svc.Get(ctx, user.ID)
			Expect(apperror.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("categories", func() {
		It("reads through the cache and invalidates on update", func() {
			svc := services.Categories()
			high, err := svc.Create(ctx, dto.CategoryRequest{Code: models.CategoryTaskPriority, Name: "HIGH"})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Create(ctx, dto.CategoryRequest{Code: models.CategoryTaskPriority, Name: "HIGH"})
			Expect(apperror.KindOf(err)).To(Equal(apperror.KindValidation))

			first, err := svc.FindByCodeAndName(ctx, models.CategoryTaskPriority, "HIGH")
			Expect(err).NotTo(HaveOccurred())
			Expect(first.ID).To(Equal(high.ID))
			Expect(cache.hits).To(BeZero())

			_, err = svc.FindByCodeAndName(ctx, models.CategoryTaskPriority, "HIGH")
			Expect(err).NotTo(HaveOccurred())
			Expect(cache.hits).To(Equal(1))

			_, err = svc.Update(ctx, high.ID, dto.CategoryRequest{Code: models.CategoryTaskPriority, Name: "URGENT"})
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.FindByCodeAndName(ctx, models.CategoryTaskPriority, "HIGH")
			Expect(apperror.IsNotFound(err)).To(BeTrue())

			code := models.CategoryTaskPriority
			list, total, err := svc.List(ctx, &code, response.Pageable{Size: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(1))
			Expect(list[0].Name).To(Equal("URGENT"))

			Expect(svc.Delete(ctx, high.ID)).To(Succeed())
			Expect(cache.entries).To(BeEmpty())
		})
	})

	Describe("tasks", func() {
		It("walks the status machine", func() {
			svc := services.Tasks()
			task, err := svc.Create(ctx, dto.TaskRequest{Title: "Ship"})
			Expect(err).NotTo(HaveOccurred())
			Expect(task.Status).To(Equal(models.TaskTodo))
			Expect(task.ProjectType).To(Equal(models.ProjectNormal))

			_, err = svc.ApplyAction(ctx, task.ID, "APPROVE")
			Expect(apperror.IsIllegalState(err)).To(BeTrue())

			for _, step := range []struct {
				action string
				want   models.TaskStatus
			}{
				{"START", models.TaskInProgress},
				{"complete", models.TaskCompleted},
				{"APPROVE", models.TaskApproved},
			} {
				task, err = svc.ApplyAction(ctx, task.ID, step.action)
				Expect(err).NotTo(HaveOccurred())
				Expect(task.Status).To(Equal(step.want))
			}

			_, err = svc.ApplyAction(ctx, task.ID, "CANCEL")
			Expect(apperror.IsIllegalState(err)).To(BeTrue())

			_, err = svc.ApplyAction(ctx, task.ID, "DANCE")
			Expect(apperror.KindOf(err)).To(Equal(apperror.KindValidation))
		})

		It("filters, rejects bad references and manages comments", func() {
			svc := services.Tasks()
			missing := uuid.New()
			_, err := svc.Create(ctx, dto.TaskRequest{Title: "Bad", AssigneeID: &missing})
			Expect(apperror.IsNotFound(err)).To(BeTrue())

			_, err = svc.Create(ctx, dto.TaskRequest{Title: "Plan sprint", ProjectType: models.ProjectPersonal})
			Expect(err).NotTo(HaveOccurred())
			task, err := svc.Create(ctx, dto.TaskRequest{Title: "Review plan"})
			Expect(err).NotTo(HaveOccurred())

			tasks, total, err := svc.List(ctx, []string{"projectType:PERSONAL"}, response.Pageable{Size: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(1))
			Expect(tasks[0].Title).To(Equal("Plan sprint"))

			_, _, err = svc.List(ctx, []string{"title~plan", "organizationId:not-a-uuid"}, response.Pageable{Size: 10})
			Expect(err).NotTo(HaveOccurred())

			comment, err := svc.AddComment(ctx, task.ID, dto.CommentRequest{Content: "LGTM"})
			Expect(err).NotTo(HaveOccurred())
			Expect(comment.AuthorID).To(Equal(auth.SubjectID(ctx)))

			attachment, err := svc.AddAttachment(ctx, task.ID, comment.ID, dto.AttachmentRequest{FileID: uuid.New(), FileName: "notes.txt"})
			Expect(err).NotTo(HaveOccurred())
			Expect(attachment.UploaderID).NotTo(BeNil())

			_, err = svc.AddAttachment(ctx, uuid.New(), comment.ID, dto.AttachmentRequest{FileID: uuid.New(), FileName: "x"})
			Expect(apperror.IsNotFound(err)).To(BeTrue())

			attachments, err := svc.ListAttachments(ctx, task.ID, comment.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(attachments).To(HaveLen(1))

			Expect(svc.DeleteComment(ctx, task.ID, comment.ID)).To(Succeed())
			comments, err := svc.ListComments(ctx, task.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(comments).To(BeEmpty())
		})
	})

	Describe("enums", func() {
		It("looks up registered enums by name", func() {
			svc := services.Enums()
			entries, err := svc.Lookup(ctx, "taskstatus")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(5))

			entries, err = svc.LookupTask(ctx, "ProjectType")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))

			_, err = svc.LookupTask(ctx, "OrganizationLevel")
			Expect(apperror.IsNotFound(err)).To(BeTrue())

			_, err = svc.Lookup(ctx, "Nope")
			Expect(apperror.IsNotFound(err)).To(BeTrue())
		})
	})
})
