package domain

import (
	"fmt"
	"time"
)

// Lifecycle states of an event.
const (
	EventUpcoming   = "upcoming"
	EventInProgress = "in-progress"
	EventPast       = "past"
)

// Registration states shown alongside an event.
const (
	RegistrationOpen              = "open"
	RegistrationClosed            = "closed"
	RegistrationFull              = "full"
	RegistrationWaitlistAvailable = "waitlist"
)

// EventStatus is the presentation status of an event.
// swagger:model EventStatus
type EventStatus struct {
	Status             string `json:"status"`
	RegistrationStatus string `json:"registrationStatus"`
	StatusMessage      string `json:"statusMessage"`
}

// PresentEventStatus derives the lifecycle and registration status of an event at instant now.
// In-progress only matches the exact start instant; the event end date is not considered.
func PresentEventStatus(eventDate time.Time, counts RegistrationCounts, policy RegistrationPolicy, now time.Time) EventStatus {
	if eventDate.Before(now) {
		return EventStatus{
			Status:             EventPast,
			RegistrationStatus: RegistrationClosed,
			StatusMessage:      "This event has ended",
		}
	}
	if !now.Before(eventDate) {
		return EventStatus{
			Status:             EventInProgress,
			RegistrationStatus: RegistrationClosed,
			StatusMessage:      "This event is in progress",
		}
	}

	deadline := policy.Deadline(eventDate)
	switch {
	case counts.Confirmed >= policy.MaxAttendees && counts.Waitlisted >= policy.MaxWaitlistSize:
		return EventStatus{
			Status:             EventUpcoming,
			RegistrationStatus: RegistrationFull,
			StatusMessage:      "Event is full and waitlist is at capacity",
		}
	case counts.Confirmed >= policy.MaxAttendees:
		return EventStatus{
			Status:             EventUpcoming,
			RegistrationStatus: RegistrationWaitlistAvailable,
			StatusMessage:      "Main registration is full - waitlist available",
		}
	case now.After(deadline):
		return EventStatus{
			Status:             EventUpcoming,
			RegistrationStatus: RegistrationClosed,
			StatusMessage:      fmt.Sprintf("Registration closed on %s", policy.FormatDeadline(deadline)),
		}
	default:
		return EventStatus{
			Status:             EventUpcoming,
			RegistrationStatus: RegistrationOpen,
			StatusMessage:      fmt.Sprintf("Registration closes on %s", policy.FormatDeadline(deadline)),
		}
	}
}
