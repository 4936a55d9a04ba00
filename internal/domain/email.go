package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationEmailData holds data for registration confirmation and waitlist emails.
type RegistrationEmailData struct {
	Email      string
	Name       string
	EventTitle string
	EventDate  string
	Location   string
	Waitlisted bool
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationEmailData) error
}

// NewRegistrationEmailData builds the email payload for reg on event. Dates use policy's location.
func NewRegistrationEmailData(reg *Registration, event *Event, policy RegistrationPolicy) *RegistrationEmailData {
	loc := policy.Location
	if loc == nil {
		loc = time.UTC
	}
	return &RegistrationEmailData{
		Email:      reg.Email,
		Name:       reg.Name,
		EventTitle: event.Title,
		EventDate:  event.Date.In(loc).Format(deadlineDisplayLayout),
		Location:   event.Location,
		Waitlisted: reg.Status == RegistrationWaitlist,
	}
}
