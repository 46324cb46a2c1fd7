package handlers

import (
	"net/http"

	"baseware/internal/message"
	"baseware/internal/service"
)

type EnumHandler struct {
	text
	svc service.EnumService
}

func NewEnumHandler(svc service.EnumService, messages *message.Catalog) *EnumHandler {
	return &EnumHandler{text: text{messages}, svc: svc}
}

// GetEnum returns the values of the enum named by ?name=.
func (h *EnumHandler) GetEnum(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Lookup(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	SendSuccess(w, http.StatusOK, h.get(r, message.Retrieved), entries)
}
