package domain

import "time"

// Registration policy defaults.
const (
	DefaultMaxAttendees    = 100
	DefaultMaxWaitlistSize = 50
	DefaultDeadlineHours   = 24
	deadlineDisplayLayout  = "Monday, January 2, 2006 at 3:04 PM MST"
)

// RegistrationPolicy holds the system-wide registration limits.
// These apply to every event; the per-event Capacity field is not consulted.
type RegistrationPolicy struct {
	MaxAttendees    int
	MaxWaitlistSize int
	// DeadlineWindow is how long before the event start registration closes.
	DeadlineWindow time.Duration
	// Location is used when formatting deadlines for people. Nil means UTC.
	Location *time.Location
}

// DefaultRegistrationPolicy returns the policy with the stock limits.
func DefaultRegistrationPolicy() RegistrationPolicy {
	return RegistrationPolicy{
		MaxAttendees:    DefaultMaxAttendees,
		MaxWaitlistSize: DefaultMaxWaitlistSize,
		DeadlineWindow:  DefaultDeadlineHours * time.Hour,
		Location:        time.UTC,
	}
}

// Deadline returns the registration deadline for an event starting at eventDate.
func (p RegistrationPolicy) Deadline(eventDate time.Time) time.Time {
	return eventDate.Add(-p.DeadlineWindow)
}

// FormatDeadline renders t for user-facing messages,
// e.g. "Monday, January 5, 2026 at 2:30 PM UTC".
func (p RegistrationPolicy) FormatDeadline(t time.Time) string {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(deadlineDisplayLayout)
}

// EventAvailability is a snapshot of an event's capacity, derived on every read.
// swagger:model EventAvailability
type EventAvailability struct {
	TotalSpots           int       `json:"totalSpots"`
	SpotsRemaining       int       `json:"spotsRemaining"`
	IsFull               bool      `json:"isFull"`
	IsWaitlistAvailable  bool      `json:"isWaitlistAvailable"`
	WaitlistCount        int       `json:"waitlistCount"`
	MaxWaitlistSize      int       `json:"maxWaitlistSize"`
	RegistrationDeadline time.Time `json:"registrationDeadline"`
	IsRegistrationOpen   bool      `json:"isRegistrationOpen"`
}

// CalculateAvailability derives availability from registration counts at instant now.
// Only WAITLIST rows count toward the waitlist; cancelled rows hold no place.
func CalculateAvailability(counts RegistrationCounts, policy RegistrationPolicy, eventDate, now time.Time) EventAvailability {
	remaining := max(0, policy.MaxAttendees-counts.Confirmed)
	isFull := remaining == 0
	waitlistCount := max(0, counts.Waitlisted)
	deadline := policy.Deadline(eventDate)

	return EventAvailability{
		TotalSpots:           policy.MaxAttendees,
		SpotsRemaining:       remaining,
		IsFull:               isFull,
		IsWaitlistAvailable:  isFull && waitlistCount < policy.MaxWaitlistSize,
		WaitlistCount:        waitlistCount,
		MaxWaitlistSize:      policy.MaxWaitlistSize,
		RegistrationDeadline: deadline,
		IsRegistrationOpen:   !now.After(deadline),
	}
}
