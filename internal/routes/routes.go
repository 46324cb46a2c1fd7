package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"baseware/internal/config"
	"baseware/internal/handlers"
	"baseware/internal/message"
	"baseware/internal/middleware"
	"baseware/internal/service"
)

type Deps struct {
	Services *service.Services
	Messages *message.Catalog
	// Verifier is nil when authentication is off.
	Verifier middleware.TokenVerifier
	// DB is pinged by /health when set.
	DB      handlers.Pinger
	APIDocs []byte
	CORS    config.CORSConfig
	Limiter *middleware.RateLimiter
}

// SetupRoutes builds the router and wraps it in the global middleware chain.
func SetupRoutes(d Deps) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", handlers.Health(d.DB)).Methods(http.MethodGet)
	r.HandleFunc("/v3/api-docs", handlers.APIDocs(d.APIDocs)).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticate(d.Verifier))

	orgs := handlers.NewOrganizationHandler(d.Services.Organizations(), d.Messages)
	api.HandleFunc("/organizations", orgs.GetOrganizations).Methods(http.MethodGet)
	api.HandleFunc("/organizations", orgs.CreateOrganization).Methods(http.MethodPost)
	api.HandleFunc("/organizations/tree", orgs.GetOrganizationTree).Methods(http.MethodGet)
	api.HandleFunc("/organizations/{id}", orgs.GetOrganization).Methods(http.MethodGet)
	api.HandleFunc("/organizations/{id}", orgs.UpdateOrganization).Methods(http.MethodPut)
	api.HandleFunc("/organizations/{id}", orgs.DeleteOrganization).Methods(http.MethodDelete)
	api.HandleFunc("/organizations/{id}/organizations/assign", orgs.AssignOrganizations).Methods(http.MethodPost)
	api.HandleFunc("/organizations/{id}/organizations/remove", orgs.RemoveOrganizations).Methods(http.MethodPost)

	members := handlers.NewOrganizationUserHandler(d.Services.Memberships(), d.Messages)
	api.HandleFunc("/organizations/{id}/users", members.GetOrganizationUsers).Methods(http.MethodGet)
	api.HandleFunc("/organizations/{id}/users/assign", members.AddOrganizationUsers).Methods(http.MethodPost)
	api.HandleFunc("/organizations/{id}/users/remove", members.RemoveOrganizationUsers).Methods(http.MethodPost)
	api.HandleFunc("/organizations/{id}/users/{userId}/title", members.ChangeTitle).Methods(http.MethodPut)

	users := handlers.NewUserHandler(d.Services.Users(), d.Messages)
	api.HandleFunc("/users", users.GetUsers).Methods(http.MethodGet)
	api.HandleFunc("/users", users.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", users.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", users.UpdateUser).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}", users.DeleteUser).Methods(http.MethodDelete)

	categories := handlers.NewCategoryHandler(d.Services.Categories(), d.Messages)
	api.HandleFunc("/categories", categories.GetCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories", categories.CreateCategory).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id}", categories.GetCategory).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id}", categories.UpdateCategory).Methods(http.MethodPut)
	api.HandleFunc("/categories/{id}", categories.DeleteCategory).Methods(http.MethodDelete)

	tasks := handlers.NewTaskHandler(d.Services.Tasks(), d.Services.Enums(), d.Messages)
	// registered before /tasks/{id} so "enums" is not taken for an id
	api.HandleFunc("/tasks/enums", tasks.GetTaskEnums).Methods(http.MethodGet)
	api.HandleFunc("/tasks", tasks.GetTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", tasks.CreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}", tasks.GetTask).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}", tasks.UpdateTask).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{id}", tasks.DeleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{id}/actions", tasks.ApplyAction).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}/comments", tasks.GetComments).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}/comments", tasks.AddComment).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}/comments/{commentId}", tasks.DeleteComment).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{id}/comments/{commentId}/attachments", tasks.GetAttachments).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}/comments/{commentId}/attachments", tasks.AddAttachment).Methods(http.MethodPost)

	enums := handlers.NewEnumHandler(d.Services.Enums(), d.Messages)
	api.HandleFunc("/enums", enums.GetEnum).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.SendError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.SendError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// outermost first
	chain := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Logging,
		middleware.Recovery,
		middleware.CORS(d.CORS),
		middleware.Language(d.Messages),
	}
	if d.Limiter != nil {
		chain = append(chain, d.Limiter.Limit)
	}

	var h http.Handler = r
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}
