package handlers

import (
	"net/http"

	"baseware/internal/dto"
	"baseware/internal/mapper"
	"baseware/internal/message"
	"baseware/internal/service"
)

type OrganizationHandler struct {
	text
	svc service.OrganizationService
}

func NewOrganizationHandler(svc service.OrganizationService, messages *message.Catalog) *OrganizationHandler {
	return &OrganizationHandler{text: text{messages}, svc: svc}
}

// GetOrganizations pages through root organizations, each with its subtree.
func (h *OrganizationHandler) GetOrganizations(w http.ResponseWriter, r *http.Request) {
	p, err := pageable(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.svc.FindAllPaged(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), page)
}

func (h *OrganizationHandler) GetOrganizationTree(w http.ResponseWriter, r *http.Request) {
	forest, err := h.svc.FindAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), forest)
}

func (h *OrganizationHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	org, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), mapper.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req dto.OrganizationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	org, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusCreated, h.get(r, message.Created), mapper.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.OrganizationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	org, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Updated), mapper.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
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

func (h *OrganizationHandler) AssignOrganizations(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, h.svc.AssignOrganizations)
}

func (h *OrganizationHandler) RemoveOrganizations(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, h.svc.RemoveOrganizations)
}

// bulk runs an {ids} operation against the organization in the path.
func (h *OrganizationHandler) bulk(w http.ResponseWriter, r *http.Request, op bulkOp) {
	runBulk(w, r, h.text, op)
}
