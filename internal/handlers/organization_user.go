package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"baseware/internal/dto"
	"baseware/internal/message"
	"baseware/internal/service"
)

type bulkOp func(ctx context.Context, organizationID uuid.UUID, ids []uuid.UUID) error

func runBulk(w http.ResponseWriter, r *http.Request, t text, op bulkOp) {
	orgID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.IDsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := op(r.Context(), orgID, req.IDs); err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccessNoData(w, http.StatusOK, t.get(r, message.Updated))
}

// OrganizationUserHandler serves organization membership.
type OrganizationUserHandler struct {
	text
	svc service.MembershipService
}

func NewOrganizationUserHandler(svc service.MembershipService, messages *message.Catalog) *OrganizationUserHandler {
	return &OrganizationUserHandler{text: text{messages}, svc: svc}
}

func (h *OrganizationUserHandler) GetOrganizationUsers(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	members, err := h.svc.ListMembers(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if members == nil {
		members = []dto.MemberResponse{}
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), members)
}

func (h *OrganizationUserHandler) AddOrganizationUsers(w http.ResponseWriter, r *http.Request) {
	runBulk(w, r, h.text, h.svc.AssignUsers)
}

func (h *OrganizationUserHandler) RemoveOrganizationUsers(w http.ResponseWriter, r *http.Request) {
	runBulk(w, r, h.text, h.svc.RemoveUsers)
}

func (h *OrganizationUserHandler) ChangeTitle(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.TitleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.ChangeTitle(r.Context(), orgID, userID, req.Title); err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccessNoData(w, http.StatusOK, h.get(r, message.Updated))
}
