package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ApiMessage is the envelope around every API response.
type ApiMessage struct {
	Message string            `json:"message"`
	Result  bool              `json:"result"`
	Code    int               `json:"code"`
	Data    any               `json:"data"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, statusCode int, body ApiMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// SendSuccess writes a successful envelope carrying data.
func SendSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	write(w, statusCode, ApiMessage{Message: message, Result: true, Code: statusCode, Data: data})
}

// SendSuccessNoData writes a successful envelope with a null payload.
func SendSuccessNoData(w http.ResponseWriter, statusCode int, message string) {
	write(w, statusCode, ApiMessage{Message: message, Result: true, Code: statusCode})
}

func SendError(w http.ResponseWriter, statusCode int, message string) {
	write(w, statusCode, ApiMessage{Message: message, Result: false, Code: statusCode})
}

// SendValidationError writes a 400 envelope listing the offending fields.
func SendValidationError(w http.ResponseWriter, message string, fields map[string]string) {
	write(w, http.StatusBadRequest, ApiMessage{
		Message: message,
		Result:  false,
		Code:    http.StatusBadRequest,
		Errors:  fields,
	})
}
