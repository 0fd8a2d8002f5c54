package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/cargotrack/internal/form"
	"github.com/erazemk/cargotrack/internal/listing"
	"github.com/erazemk/cargotrack/internal/model"
	"github.com/erazemk/cargotrack/internal/screen"
)

type errorResponse struct {
	Error     string                 `json:"error"`
	Code      string                 `json:"code"`
	RequestID string                 `json:"request_id,omitempty"`
	Fields    *model.ValidationError `json:"fields,omitempty"`
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a structured JSON error response.
func jsonError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	jsonResponse(w, status, errorResponse{
		Error:     message,
		Code:      code,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// domainError maps errors returned by a screen to HTTP responses.
func domainError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonResponse(w, http.StatusUnprocessableEntity, errorResponse{
			Error:     verr.Error(),
			Code:      "VALIDATION_FAILED",
			RequestID: RequestIDFromContext(r.Context()),
			Fields:    verr,
		})
	case errors.Is(err, screen.ErrNotFound):
		jsonError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, listing.ErrPageOutOfRange):
		jsonError(w, r, http.StatusBadRequest, "PAGE_OUT_OF_RANGE", err.Error())
	case errors.Is(err, form.ErrSessionClosed):
		jsonError(w, r, http.StatusConflict, "FORM_CLOSED", err.Error())
	case errors.Is(err, screen.ErrNoPendingDelete):
		jsonError(w, r, http.StatusConflict, "NO_PENDING_DELETE", err.Error())
	default:
		slog.Error("failed to "+action, "error", err, "request_id", RequestIDFromContext(r.Context()))
		jsonError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to "+action)
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
