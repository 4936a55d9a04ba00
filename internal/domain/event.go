package domain

import (
	"context"
	"time"
)

// Event is a club event that people can register for.
// Capacity is collected by the admin form but registration limits come from RegistrationPolicy.
// swagger:model Event
type Event struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	EndDate       *time.Time      `json:"endDate,omitempty"`
	Location      string          `json:"location"`
	Capacity      *int            `json:"capacity,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Registrations []*Registration `json:"registrations,omitempty"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(title, description, location string, date time.Time, endDate *time.Time, capacity *int, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Location:    location,
		Date:        date,
		EndDate:     endDate,
		Capacity:    capacity,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Counts tallies the event's loaded registrations by status.
func (e *Event) Counts() RegistrationCounts {
	return CountRegistrations(e.Registrations)
}

// EventUpdate holds optional changes to an event. Nil fields are left unchanged.
type EventUpdate struct {
	Title       *string
	Description *string
	Date        *time.Time
	EndDate     *time.Time
	Location    *string
	Capacity    *int
}

// IsEmpty reports whether the update changes nothing.
func (u EventUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Date == nil &&
		u.EndDate == nil && u.Location == nil && u.Capacity == nil
}

// EventFilter narrows event listings.
type EventFilter struct {
	// UpcomingAfter, when set, keeps events whose date is at or after this instant.
	UpcomingAfter *time.Time
}

// EventDetails is an event together with its derived availability and status.
// swagger:model EventDetails
type EventDetails struct {
	Event        *Event            `json:"event"`
	Availability EventAvailability `json:"availability"`
	Status       EventStatus       `json:"status"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetWithRegistrations loads the event and its full registrations collection.
	GetWithRegistrations(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, id string, update EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventLocker serialises work on a single event. fn runs with a context that
// repositories use to join the same transaction; the lock is released when fn returns.
type EventLocker interface {
	WithEventLock(ctx context.Context, eventID string, fn func(ctx context.Context) error) error
}

// EventService defines the business logic for managing and presenting events.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, eventID string) (*EventDetails, error)
	ListEvents(ctx context.Context, upcomingOnly bool, params PaginationParams) ([]*EventDetails, int, error)
	UpdateEvent(ctx context.Context, eventID string, update EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}
