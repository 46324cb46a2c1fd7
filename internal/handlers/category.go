package handlers

import (
	"net/http"

	"baseware/internal/apperror"
	"baseware/internal/dto"
	"baseware/internal/mapper"
	"baseware/internal/message"
	"baseware/internal/models"
	"baseware/internal/response"
	"baseware/internal/service"
)

type CategoryHandler struct {
	text
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService, messages *message.Catalog) *CategoryHandler {
	return &CategoryHandler{text: text{messages}, svc: svc}
}

// GetCategories pages through categories, optionally narrowed by ?code=.
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	p, err := pageable(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var code *models.CategoryCode
	if raw := r.URL.Query().Get("code"); raw != "" {
		c, err := models.CategoryCodeFromValue(raw)
		if err != nil {
			writeError(w, r, apperror.Validation(err.Error(), map[string]string{"code": err.Error()}))
			return
		}
		code = &c
	}

	categories, total, err := h.svc.List(r.Context(), code, p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	content := mapper.Map(categories, mapper.ToCategoryResponse)
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), response.NewPage(content, p, total))
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), mapper.ToCategoryResponse(c))
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusCreated, h.get(r, message.Created), mapper.ToCategoryResponse(c))
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.CategoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Updated), mapper.ToCategoryResponse(c))
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
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
