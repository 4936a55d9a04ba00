package helpers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"clubevents/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = domain.CodeBadRequest
	ErrCodeValidation    = "validation_error"
	ErrCodeUnauthorized  = domain.CodeUnauthorized
	ErrCodeNotFound      = domain.CodeNotFound
	ErrCodeInternalError = "internal_error"
	internalErrorMessage = "internal server error"
)

// APIError is the error object in the standardized API response envelope.
// Details lists individual field problems for validation errors.
// swagger:model APIError
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, APIResponse{Data: data})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, APIResponse{Error: &APIError{Code: code, Message: message}})
}

// WriteValidationError writes a 400 validation_error with one detail per problem.
func WriteValidationError(w http.ResponseWriter, details []string) {
	writeJSON(w, http.StatusBadRequest, APIResponse{Error: &APIError{
		Code:    ErrCodeValidation,
		Message: "request validation failed",
		Details: details,
	}})
}

// WriteServiceError maps a service error onto the envelope. *domain.Error values carry their
// own status and user-facing message. Anything else is logged and hidden behind a generic 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		WriteJSONError(w, domainErr.Status, domainErr.Code, domainErr.Message)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
		return
	}
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, internalErrorMessage)
}

func writeJSON(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
