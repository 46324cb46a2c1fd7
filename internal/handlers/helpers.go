package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"baseware/internal/apperror"
	"baseware/internal/dto"
	"baseware/internal/message"
	"baseware/internal/response"
)

// writeError maps a service error onto the envelope and status code.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Kind == apperror.KindValidation {
		SendValidationError(w, appErr.Message, appErr.Fields)
		return
	}

	status := apperror.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	SendError(w, status, apperror.PublicMessage(err))
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid ID", map[string]string{name: "must be a valid UUID"})
	}
	return id, nil
}

// decodeBody reads a JSON body into dst and validates it.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}
	return dto.Validate(dst)
}

func pageable(r *http.Request) (response.Pageable, error) {
	p, err := response.ParsePageable(r.URL.Query())
	if err != nil {
		return p, apperror.Validation(err.Error(), nil)
	}
	return p, nil
}

// text resolves a success message in the request's language.
type text struct {
	messages *message.Catalog
}

func (t text) get(r *http.Request, key string) string {
	return t.messages.Get(r.Context(), key)
}
