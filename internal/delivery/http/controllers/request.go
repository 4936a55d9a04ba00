package controllers

import (
	"net/http"
	"regexp"
	"strings"

	"clubevents/internal/delivery/http/helpers"

	"github.com/google/uuid"
)

// emailRegexp matches a simple email format (local@domain with at least one dot in domain).
var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Field length limits for free-text input.
const (
	maxNameLen  = 200
	maxEmailLen = 254
	maxPhoneLen = 50
	maxTextLen  = 2000
	maxTitleLen = 300
)

// pathID reads a UUID path value. On failure it writes a 400 and returns false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return id.String(), true
}

// optionalText trims s and maps blank values to nil.
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func checkLen(errs []string, field string, value *string, limit int) []string {
	if value != nil && len(*value) > limit {
		errs = append(errs, field+" is too long")
	}
	return errs
}
