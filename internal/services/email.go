package services

import (
	"context"
	"fmt"
	"log/slog"

	"clubevents/internal/domain"
)

const (
	templateRegistrationConfirmed  = "registration_confirmed"
	templateRegistrationWaitlisted = "registration_waitlisted"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendRegistrationConfirmation sends the confirmed or waitlisted email, depending on data.Waitlisted.
func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if data == nil {
		return fmt.Errorf("registration email data is nil")
	}
	name := templateRegistrationConfirmed
	if data.Waitlisted {
		name = templateRegistrationWaitlisted
	}
	subject, htmlBody, textBody, err := s.renderer.Render(name, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", name, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send registration email: %w", err)
	}
	s.logger.InfoContext(ctx, "registration email sent", "to", data.Email, "template", name)
	return nil
}
