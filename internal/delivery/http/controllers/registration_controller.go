package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"clubevents/internal/delivery/http/helpers"
	"clubevents/internal/domain"

	"github.com/google/uuid"
)

// CreateRegistrationRequest is the request body for POST /api/event-registrations.
type CreateRegistrationRequest struct {
	EventID             string  `json:"eventId"`
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	Phone               *string `json:"phone,omitempty"`
	Organization        *string `json:"organization,omitempty"`
	DietaryRequirements *string `json:"dietaryRequirements,omitempty"`
	SpecialRequirements *string `json:"specialRequirements,omitempty"`
}

// Validate implements Validator.
func (c CreateRegistrationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.EventID) == "" {
		errs = append(errs, "eventId is required")
	} else if _, err := uuid.Parse(c.EventID); err != nil {
		errs = append(errs, "eventId must be a valid UUID")
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		errs = append(errs, "name is required")
	}
	errs = checkLen(errs, "name", &name, maxNameLen)
	email := strings.TrimSpace(c.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if len(email) > maxEmailLen || !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	errs = checkLen(errs, "phone", c.Phone, maxPhoneLen)
	errs = checkLen(errs, "organization", c.Organization, maxNameLen)
	errs = checkLen(errs, "dietaryRequirements", c.DietaryRequirements, maxTextLen)
	errs = checkLen(errs, "specialRequirements", c.SpecialRequirements, maxTextLen)
	return errs
}

func (c CreateRegistrationRequest) toDomain() *domain.RegistrationRequest {
	return &domain.RegistrationRequest{
		EventID:             strings.TrimSpace(c.EventID),
		Name:                strings.TrimSpace(c.Name),
		Email:               c.Email,
		Phone:               optionalText(c.Phone),
		Organization:        optionalText(c.Organization),
		DietaryRequirements: optionalText(c.DietaryRequirements),
		SpecialRequirements: optionalText(c.SpecialRequirements),
	}
}

// CreateRegistrationSuccessResponse is the success response envelope for POST /api/event-registrations (201).
type CreateRegistrationSuccessResponse struct {
	Data  *domain.RegistrationResult `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// UpdateRegistrationStatusRequest is the request body for PATCH /api/event-registrations/{registrationID}.
type UpdateRegistrationStatusRequest struct {
	Status domain.RegistrationStatus `json:"status"`
}

// Validate implements Validator.
func (u UpdateRegistrationStatusRequest) Validate() []string {
	if u.Status == "" {
		return []string{"status is required"}
	}
	if !u.Status.Valid() {
		return []string{"status must be one of CONFIRMED, WAITLIST, CANCELLED"}
	}
	return nil
}

// ListRegistrationsSuccessResponse is the success response envelope for GET /api/events/{eventID}/registrations (200).
type ListRegistrationsSuccessResponse struct {
	Data  helpers.Page[*domain.Registration] `json:"data"`
	Error *helpers.APIError                  `json:"error"`
}

// AvailabilitySuccessResponse is the success response envelope for GET /api/events/{eventID}/availability (200).
type AvailabilitySuccessResponse struct {
	Data  *domain.EventAvailability `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// EventStatusSuccessResponse is the success response envelope for GET /api/events/{eventID}/status (200).
type EventStatusSuccessResponse struct {
	Data  *domain.EventStatus `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// StatusResponse is the data payload for delete endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register for an event
// @Description Registers a person for an event. When the main list is full the registration is placed on the waitlist. The response carries a fresh availability snapshot.
// @Tags registrations
// @Accept json
// @Produce json
// @Param body body CreateRegistrationRequest true "Registration data"
// @Success 201 {object} controllers.CreateRegistrationSuccessResponse "data contains registration and availability"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	var req CreateRegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Register(r.Context(), req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}

// GetAvailability godoc
// @Summary Get event availability
// @Description Returns spots remaining, waitlist state and the registration deadline for an event.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.AvailabilitySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/availability [get]
func (c *RegistrationController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	availability, err := c.Service.GetAvailability(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, availability)
}

// GetEventStatus godoc
// @Summary Get event status
// @Description Returns the lifecycle status, registration status and a human-readable status message.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventStatusSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/status [get]
func (c *RegistrationController) GetEventStatus(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	status, err := c.Service.GetEventStatus(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, status)
}

// ListEventRegistrations godoc
// @Summary List registrations for an event
// @Description Paginated registrations for an event, oldest first. Optional status filter. Requires authentication.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param status query string false "CONFIRMED, WAITLIST or CANCELLED"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [get]
func (c *RegistrationController) ListEventRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var status *domain.RegistrationStatus
	if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
		st := domain.RegistrationStatus(strings.ToUpper(s))
		status = &st
	}
	params := helpers.ParsePagination(r)
	regs, total, err := c.Service.ListRegistrations(r.Context(), eventID, status, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewPage(regs, params, total))
}

// UpdateRegistrationStatus godoc
// @Summary Change a registration's status
// @Description Moves a registration between CONFIRMED, WAITLIST and CANCELLED. Requires authentication.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Param body body UpdateRegistrationStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations/{registrationID} [patch]
func (c *RegistrationController) UpdateRegistrationStatus(w http.ResponseWriter, r *http.Request) {
	registrationID, ok := pathID(w, r, "registrationID")
	if !ok {
		return
	}
	var req UpdateRegistrationStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.UpdateRegistrationStatus(r.Context(), registrationID, req.Status)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// DeleteRegistration godoc
// @Summary Delete a registration
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data.status is deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-registrations/{registrationID} [delete]
func (c *RegistrationController) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	registrationID, ok := pathID(w, r, "registrationID")
	if !ok {
		return
	}
	if err := c.Service.DeleteRegistration(r.Context(), registrationID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}
