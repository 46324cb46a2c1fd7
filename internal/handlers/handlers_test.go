package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"baseware/internal/apperror"
	"baseware/internal/dto"
	"baseware/internal/handlers"
	"baseware/internal/message"
	"baseware/internal/models"
	"baseware/internal/response"
	"baseware/internal/service"
	"baseware/internal/store"
)

type envelope struct {
	Message string            `json:"message"`
	Result  bool              `json:"result"`
	Code    int               `json:"code"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func serve(router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		Expect(json.NewEncoder(&buf).Encode(b)).To(Succeed())
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	Expect(json.Unmarshal(w.Body.Bytes(), &env)).To(Succeed())
	return w, env
}

func data[T any](env envelope) T {
	var out T
	Expect(json.Unmarshal(env.Data, &out)).To(Succeed())
	return out
}

var _ = Describe("Handlers", func() {
	var router *mux.Router

	BeforeEach(func() {
		messages := message.New("en")
		services := service.NewServices(store.NewMemoryStores(), nil, messages)
		router = mux.NewRouter()

		orgs := handlers.NewOrganizationHandler(services.Organizations(), messages)
		router.HandleFunc("/organizations", orgs.GetOrganizations).Methods(http.MethodGet)
		router.HandleFunc("/organizations", orgs.CreateOrganization).Methods(http.MethodPost)
		router.HandleFunc("/organizations/tree", orgs.GetOrganizationTree).Methods(http.MethodGet)
		router.HandleFunc("/organizations/{id}", orgs.GetOrganization).Methods(http.MethodGet)
		router.HandleFunc("/organizations/{id}", orgs.DeleteOrganization).Methods(http.MethodDelete)
		router.HandleFunc("/organizations/{id}/organizations/assign", orgs.AssignOrganizations).Methods(http.MethodPost)

		members := handlers.NewOrganizationUserHandler(services.Memberships(), messages)
		router.HandleFunc("/organizations/{id}/users", members.GetOrganizationUsers).Methods(http.MethodGet)
		router.HandleFunc("/organizations/{id}/users/assign", members.AddOrganizationUsers).Methods(http.MethodPost)
		router.HandleFunc("/organizations/{id}/users/remove", members.RemoveOrganizationUsers).Methods(http.MethodPost)
		router.HandleFunc("/organizations/{id}/users/{userId}/title", members.ChangeTitle).Methods(http.MethodPut)

		users := handlers.NewUserHandler(services.Users(), messages)
		router.HandleFunc("/api/v1/users", users.GetUsers).Methods(http.MethodGet)
		router.HandleFunc("/api/v1/users", users.CreateUser).Methods(http.MethodPost)

		categories := handlers.NewCategoryHandler(services.Categories(), messages)
		router.HandleFunc("/categories", categories.GetCategories).Methods(http.MethodGet)
		router.HandleFunc("/categories", categories.CreateCategory).Methods(http.MethodPost)

		tasks := handlers.NewTaskHandler(services.Tasks(), services.Enums(), messages)
		router.HandleFunc("/tasks/enums", tasks.GetTaskEnums).Methods(http.MethodGet)
		router.HandleFunc("/tasks", tasks.GetTasks).Methods(http.MethodGet)
		router.HandleFunc("/tasks", tasks.CreateTask).Methods(http.MethodPost)
		router.HandleFunc("/tasks/{id}/actions", tasks.ApplyAction).Methods(http.MethodPost)
		router.HandleFunc("/tasks/{id}/comments", tasks.GetComments).Methods(http.MethodGet)
		router.HandleFunc("/tasks/{id}/comments", tasks.AddComment).Methods(http.MethodPost)

		enums := handlers.NewEnumHandler(services.Enums(), messages)
		router.HandleFunc("/enums", enums.GetEnum).Methods(http.MethodGet)
	})

	createOrg := func(code string, parent *uuid.UUID) dto.OrganizationResponse {
		w, env := serve(router, http.MethodPost, "/organizations", dto.OrganizationRequest{
			Name: code, Code: code, Level: models.LevelProvince, ParentID: parent,
		})
		Expect(w.Code).To(Equal(http.StatusCreated))
		return data[dto.OrganizationResponse](env)
	}

	createUser := func(username string) dto.UserResponse {
		w, env := serve(router, http.MethodPost, "/api/v1/users", dto.CreateUserRequest{
			Username: username, Email: username + "@example.com", Password: "password123",
		})
		Expect(w.Code).To(Equal(http.StatusCreated))
		return data[dto.UserResponse](env)
	}

	Describe("organizations", func() {
		It("creates and returns the envelope", func() {
			w, env := serve(router, http.MethodPost, "/organizations", dto.OrganizationRequest{Name: "Hanoi", Code: "HN", Level: 1})
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(env.Result).To(BeTrue())
			Expect(env.Code).To(Equal(http.StatusCreated))
			Expect(data[dto.OrganizationResponse](env).Code).To(Equal("HN"))
		})

		It("returns 400 on a malformed body", func() {
			w, env := serve(router, http.MethodPost, "/organizations", `{`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(env.Result).To(BeFalse())
		})

		It("lists offending fields on validation failure", func() {
			w, env := serve(router, http.MethodPost, "/organizations", map[string]any{"level": 9})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(env.Errors).To(HaveKey("name"))
			Expect(env.Errors).To(HaveKey("code"))
			Expect(env.Errors).To(HaveKey("level"))
		})

		It("returns 400 for a malformed id and 404 for an unknown one", func() {
			w, _ := serve(router, http.MethodGet, "/organizations/not-a-uuid", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			w, env := serve(router, http.MethodGet, "/organizations/"+uuid.NewString(), nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(env.Message).To(ContainSubstring("Organization not found"))
		})

		It("serves the tree and the paged roots", func() {
			a := createOrg("A", nil)
			b := createOrg("B", &a.ID)
			createOrg("C", &b.ID)

			w, env := serve(router, http.MethodGet, "/organizations/tree", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			forest := data[[]dto.OrganizationResponse](env)
			Expect(forest).To(HaveLen(1))
			Expect(forest[0].Children).To(HaveLen(1))
			Expect(forest[0].Children[0].Children).To(HaveLen(1))

			w, env = serve(router, http.MethodGet, "/organizations?page=0&size=1", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			page := data[response.Page[dto.OrganizationResponse]](env)
			Expect(page.TotalElements).To(Equal(1))
			Expect(page.Content).To(HaveLen(1))

			w, _ = serve(router, http.MethodGet, "/organizations?page=-1", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("attaches children through the bulk endpoint", func() {
			parent := createOrg("P", nil)
			child := createOrg("K", nil)

			w, _ := serve(router, http.MethodPost, "/organizations/"+parent.ID.String()+"/organizations/assign", dto.IDsRequest{IDs: []uuid.UUID{child.ID}})
			Expect(w.Code).To(Equal(http.StatusOK))

			_, env := serve(router, http.MethodGet, "/organizations/"+child.ID.String(), nil)
			Expect(data[dto.OrganizationResponse](env).ParentID).To(Equal(&parent.ID))
		})
	})

	Describe("members", func() {
		It("assigns, retitles and removes users", func() {
			org := createOrg("ORG", nil)
			user := createUser("dana")
			base := "/organizations/" + org.ID.String() + "/users"

			w, _ := serve(router, http.MethodPost, base+"/assign", dto.IDsRequest{IDs: []uuid.UUID{user.ID}})
			Expect(w.Code).To(Equal(http.StatusOK))

			_, env := serve(router, http.MethodGet, base, nil)
			list := data[[]dto.MemberResponse](env)
			Expect(list).To(HaveLen(1))
			Expect(list[0].Title).NotTo(BeNil())
			Expect(list[0].Title.Name).To(Equal(models.DefaultTitleName))

			w, env = serve(router, http.MethodPut, base+"/"+user.ID.String()+"/title", dto.TitleRequest{Title: "DIRECTOR"})
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(env.Message).To(ContainSubstring("DIRECTOR"))

			w, _ = serve(router, http.MethodPost, base+"/remove", dto.IDsRequest{IDs: []uuid.UUID{user.ID}})
			Expect(w.Code).To(Equal(http.StatusOK))

			w, _ = serve(router, http.MethodPost, base+"/remove", dto.IDsRequest{IDs: []uuid.UUID{user.ID}})
			Expect(w.Code).To(Equal(http.StatusNotFound))

			w, _ = serve(router, http.MethodPut, base+"/"+user.ID.String()+"/title", dto.TitleRequest{Title: "STAFF"})
			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("users", func() {
		It("answers with a hypermedia page", func() {
			for _, name := range []string{"ann", "ben", "cat"} {
				createUser(name)
			}

			w, env := serve(router, http.MethodGet, "/api/v1/users?page=1&size=1", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			page := data[response.HateoasPage[dto.UserResponse]](env)
			Expect(page.Page.TotalElements).To(Equal(3))
			Expect(page.Page.TotalPages).To(Equal(3))
			Expect(page.Links).To(HaveKey("self"))
			Expect(page.Links).To(HaveKey("next"))
			Expect(page.Links).To(HaveKey("prev"))
			Expect(page.Content).To(HaveLen(1))
			Expect(page.Content[0].Links["self"].Href).To(HaveSuffix("/api/v1/users/" + page.Content[0].ID.String()))
		})

		It("rejects duplicate usernames", func() {
			createUser("eve")
			w, env := serve(router, http.MethodPost, "/api/v1/users", dto.CreateUserRequest{
				Username: "eve", Email: "other@example.com", Password: "password123",
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(env.Errors).To(HaveKey("username"))
		})
	})

	Describe("paging", func() {
		It("answers a page far past the data with empty content", func() {
			createUser("zed")
			createOrg("FAR", nil)
			const far = "?page=92233720368547759&size=100"

			w, env := serve(router, http.MethodGet, "/api/v1/users"+far, nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			users := data[response.HateoasPage[dto.UserResponse]](env)
			Expect(users.Content).To(BeEmpty())
			Expect(users.Page.TotalElements).To(Equal(1))
			Expect(users.Links).NotTo(HaveKey("next"))

			w, env = serve(router, http.MethodGet, "/organizations"+far, nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(data[response.Page[dto.OrganizationResponse]](env).Content).To(BeEmpty())

			w, env = serve(router, http.MethodGet, "/categories"+far, nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(data[response.Page[dto.CategoryResponse]](env).Content).To(BeEmpty())
		})
	})

	Describe("categories", func() {
		It("filters by code and rejects unknown codes", func() {
			w, _ := serve(router, http.MethodPost, "/categories", dto.CategoryRequest{Code: models.CategoryTaskLabel, Name: "BUG"})
			Expect(w.Code).To(Equal(http.StatusCreated))

			_, env := serve(router, http.MethodGet, "/categories?code=TASK_LABEL", nil)
			page := data[response.Page[dto.CategoryResponse]](env)
			Expect(page.TotalElements).To(Equal(1))
			Expect(page.Content[0].Name).To(Equal("BUG"))

			w, _ = serve(router, http.MethodGet, "/categories?code=NOPE", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("tasks", func() {
		It("moves through actions and filters by status", func() {
			w, env := serve(router, http.MethodPost, "/tasks", dto.TaskRequest{Title: "Write report"})
			Expect(w.Code).To(Equal(http.StatusCreated))
			task := data[dto.TaskResponse](env)
			Expect(task.Status).To(Equal(models.TaskTodo))

			actions := "/tasks/" + task.ID.String() + "/actions"
			w, env = serve(router, http.MethodPost, actions, dto.TaskActionRequest{Action: "START"})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(data[dto.TaskResponse](env).Status).To(Equal(models.TaskInProgress))

			w, _ = serve(router, http.MethodPost, actions, dto.TaskActionRequest{Action: "APPROVE"})
			Expect(w.Code).To(Equal(http.StatusConflict))

			w, _ = serve(router, http.MethodPost, actions, dto.TaskActionRequest{Action: "FLY"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			_, env = serve(router, http.MethodGet, "/tasks?filter=status:IN_PROGRESS", nil)
			Expect(data[response.Page[dto.TaskResponse]](env).TotalElements).To(Equal(1))

			_, env = serve(router, http.MethodGet, "/tasks?filter=status:TODO", nil)
			Expect(data[response.Page[dto.TaskResponse]](env).TotalElements).To(Equal(0))
		})

		It("keeps comments under their task", func() {
			_, env := serve(router, http.MethodPost, "/tasks", dto.TaskRequest{Title: "Review"})
			task := data[dto.TaskResponse](env)
			comments := "/tasks/" + task.ID.String() + "/comments"

			w, _ := serve(router, http.MethodPost, comments, dto.CommentRequest{Content: "looks good"})
			Expect(w.Code).To(Equal(http.StatusCreated))

			_, env = serve(router, http.MethodGet, comments, nil)
			Expect(data[[]dto.CommentResponse](env)).To(HaveLen(1))

			w, _ = serve(router, http.MethodGet, "/tasks/"+uuid.NewString()+"/comments", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("restricts the task enum endpoint", func() {
			w, env := serve(router, http.MethodGet, "/tasks/enums?name=taskstatus", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(data[[]models.EnumEntry](env)).NotTo(BeEmpty())

			w, _ = serve(router, http.MethodGet, "/tasks/enums?name=CategoryCode", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))

			w, _ = serve(router, http.MethodGet, "/enums?name=CategoryCode", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("error mapping", func() {
		var (
			svc    *mockOrganizationService
			mocked *mux.Router
		)

		BeforeEach(func() {
			svc = &mockOrganizationService{}
			h := handlers.NewOrganizationHandler(svc, message.New("en"))
			mocked = mux.NewRouter()
			mocked.HandleFunc("/organizations/tree", h.GetOrganizationTree).Methods(http.MethodGet)
			mocked.HandleFunc("/organizations/{id}/organizations/assign", h.AssignOrganizations).Methods(http.MethodPost)
		})

		It("hides internal errors", func() {
			svc.findAllFn = func(context.Context) ([]*dto.OrganizationResponse, error) {
				return nil, errors.New("connection reset by peer")
			}
			w, env := serve(mocked, http.MethodGet, "/organizations/tree", nil)
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(env.Message).To(Equal("Internal server error"))
		})

		It("maps illegal state to 409", func() {
			svc.assignFn = func(context.Context, uuid.UUID, []uuid.UUID) error {
				return apperror.IllegalState("busy")
			}
			w, env := serve(mocked, http.MethodPost, "/organizations/"+uuid.NewString()+"/organizations/assign", dto.IDsRequest{})
			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(env.Message).To(Equal("busy"))
		})

		It("passes an empty id list through", func() {
			var got []uuid.UUID
			called := false
			svc.assignFn = func(_ context.Context, _ uuid.UUID, ids []uuid.UUID) error {
				called = true
				got = ids
				return nil
			}
			w, _ := serve(mocked, http.MethodPost, "/organizations/"+uuid.NewString()+"/organizations/assign", `{"ids":[]}`)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(called).To(BeTrue())
			Expect(got).To(BeEmpty())
		})
	})

	Describe("health and docs", func() {
		It("reports up without a database", func() {
			w, env := serve(handlers.Health(nil), http.MethodGet, "/health", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(data[map[string]string](env)).To(HaveKeyWithValue("status", "up"))
		})

		It("serves the rendered document", func() {
			req := httptest.NewRequest(http.MethodGet, "/v3/api-docs", nil)
			w := httptest.NewRecorder()
			handlers.APIDocs([]byte(`{"openapi":"3.1.0"}`)).ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(w.Body.String()).To(Equal(`{"openapi":"3.1.0"}`))
		})
	})
})
