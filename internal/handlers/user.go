package handlers

import (
	"net/http"

	"baseware/internal/dto"
	"baseware/internal/mapper"
	"baseware/internal/message"
	"baseware/internal/models"
	"baseware/internal/response"
	"baseware/internal/service"
)

type UserHandler struct {
	text
	svc service.UserService
}

func NewUserHandler(svc service.UserService, messages *message.Catalog) *UserHandler {
	return &UserHandler{text: text{messages}, svc: svc}
}

// GetUsers answers with a hypermedia page; every user carries a self link.
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	p, err := pageable(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	users, total, err := h.svc.List(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	content := mapper.Map(users, func(u *models.User) *dto.UserResponse {
		return mapper.WithSelfLink(r, mapper.ToUserResponse(u))
	})
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), response.NewHateoasPage(r, content, p, total))
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), mapper.ToUserResponse(user))
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusCreated, h.get(r, message.Created), mapper.ToUserResponse(user))
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.UpdateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Updated), mapper.ToUserResponse(user))
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccessNoData(w, http.StatusOK, h.get(r, message.Deleted))
}
