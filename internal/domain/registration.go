package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the lifecycle state of a registration.
type RegistrationStatus string

const (
	RegistrationConfirmed RegistrationStatus = "CONFIRMED"
	RegistrationCancelled RegistrationStatus = "CANCELLED"
	RegistrationWaitlist  RegistrationStatus = "WAITLIST"
)

// Valid reports whether s is one of the known statuses.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationConfirmed, RegistrationCancelled, RegistrationWaitlist:
		return true
	}
	return false
}

// Registration is one person's registration for an event.
// Only Status changes after creation.
// swagger:model Registration
type Registration struct {
	ID                  string             `json:"id"`
	EventID             string             `json:"eventId"`
	Name                string             `json:"name"`
	Email               string             `json:"email"`
	Phone               *string            `json:"phone,omitempty"`
	Organization        *string            `json:"organization,omitempty"`
	DietaryRequirements *string            `json:"dietaryRequirements,omitempty"`
	SpecialRequirements *string            `json:"specialRequirements,omitempty"`
	Status              RegistrationStatus `json:"status"`
	CreatedAt           time.Time          `json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
}

// RegistrationRequest is the applicant-supplied data for a new registration.
type RegistrationRequest struct {
	EventID             string
	Name                string
	Email               string
	Phone               *string
	Organization        *string
	DietaryRequirements *string
	SpecialRequirements *string
}

// NewRegistration builds a registration from a request. ID is set by the repository on create.
func NewRegistration(req *RegistrationRequest, status RegistrationStatus, createdAt, updatedAt time.Time) *Registration {
	return &Registration{
		EventID:             req.EventID,
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Organization:        req.Organization,
		DietaryRequirements: req.DietaryRequirements,
		SpecialRequirements: req.SpecialRequirements,
		Status:              status,
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
	}
}

// RegistrationCounts tallies an event's registrations by status.
type RegistrationCounts struct {
	Confirmed  int
	Waitlisted int
	Cancelled  int
}

// Total is the number of registration rows, whatever their status.
func (c RegistrationCounts) Total() int {
	return c.Confirmed + c.Waitlisted + c.Cancelled
}

// CountRegistrations tallies regs by status. Unknown statuses are ignored.
func CountRegistrations(regs []*Registration) RegistrationCounts {
	var c RegistrationCounts
	for _, r := range regs {
		switch r.Status {
		case RegistrationConfirmed:
			c.Confirmed++
		case RegistrationWaitlist:
			c.Waitlisted++
		case RegistrationCancelled:
			c.Cancelled++
		}
	}
	return c
}

// RegistrationDecision is the outcome of a successful eligibility check.
type RegistrationDecision struct {
	ShouldWaitlist bool `json:"shouldWaitlist"`
}

// RegistrationResult is returned to the client after a successful registration.
// swagger:model RegistrationResult
type RegistrationResult struct {
	Registration *Registration     `json:"registration"`
	Availability EventAvailability `json:"availability"`
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Create inserts reg. A duplicate (event, email) pair yields ErrAlreadyRegistered.
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*Registration, error)
	ListByEvent(ctx context.Context, eventID string, status *RegistrationStatus, params PaginationParams) ([]*Registration, int, error)
	CountByEvent(ctx context.Context, eventID string) (RegistrationCounts, error)
	CountByEvents(ctx context.Context, eventIDs []string) (map[string]RegistrationCounts, error)
	UpdateStatus(ctx context.Context, id string, status RegistrationStatus) (*Registration, error)
	Delete(ctx context.Context, id string) error
}

// RegistrationRecorder records registration outcomes (e.g. metrics).
type RegistrationRecorder interface {
	RecordRegistration(status RegistrationStatus)
	RecordRejection(reason string)
}

// RegistrationService defines the registration flow and its administration.
type RegistrationService interface {
	// ValidateRegistration checks eligibility without writing anything.
	ValidateRegistration(ctx context.Context, eventID, email string) (*RegistrationDecision, error)
	Register(ctx context.Context, req *RegistrationRequest) (*RegistrationResult, error)
	GetAvailability(ctx context.Context, eventID string) (*EventAvailability, error)
	GetEventStatus(ctx context.Context, eventID string) (*EventStatus, error)
	ListRegistrations(ctx context.Context, eventID string, status *RegistrationStatus, params PaginationParams) ([]*Registration, int, error)
	UpdateRegistrationStatus(ctx context.Context, registrationID string, status RegistrationStatus) (*Registration, error)
	DeleteRegistration(ctx context.Context, registrationID string) error
}
