package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clubevents/internal/domain"
)

// Rejection reasons reported to the RegistrationRecorder.
const (
	rejectNotFound     = "event_not_found"
	rejectPastEvent    = "past_event"
	rejectClosed       = "registration_closed"
	rejectDuplicate    = "already_registered"
	rejectAtCapacity   = "at_capacity"
	rejectInvalidInput = "invalid_input"
	rejectInternal     = "internal"
)

const (
	msgEventNotFound     = "Event not found"
	msgPastEvent         = "Cannot register for past events"
	msgAlreadyRegistered = "You have already registered for this event"
	msgAtCapacity        = "Event is full and waitlist is at capacity"

	msgRegistrationNotFound = "Registration not found"
)

type registrationService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	locker           domain.EventLocker
	emailService     domain.EmailService
	recorder         domain.RegistrationRecorder
	policy           domain.RegistrationPolicy
	logger           *slog.Logger
	contextTimeout   time.Duration
	now              func() time.Time
}

// NewRegistrationService returns a RegistrationService enforcing policy.
// emailService and recorder may be nil.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	locker domain.EventLocker,
	emailService domain.EmailService,
	recorder domain.RegistrationRecorder,
	policy domain.RegistrationPolicy,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		locker:           locker,
		emailService:     emailService,
		recorder:         recorder,
		policy:           policy,
		logger:           logger,
		contextTimeout:   timeout,
		now:              time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration applies the eligibility rules in order and fails on the first violation.
func (s *registrationService) ValidateRegistration(ctx context.Context, eventID, email string) (*domain.RegistrationDecision, error) {
	_, decision, err := s.validate(ctx, eventID, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return decision, nil
}

func (s *registrationService) validate(ctx context.Context, eventID, email string) (*domain.Event, *domain.RegistrationDecision, error) {
	event, err := s.eventRepo.GetWithRegistrations(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.NewNotFoundError(msgEventNotFound)
		}
		return nil, nil, fmt.Errorf("load event: %w", err)
	}

	now := s.now()
	if event.Date.Before(now) {
		return nil, nil, domain.NewBadRequestError(domain.ErrPastEvent, msgPastEvent)
	}
	deadline := s.policy.Deadline(event.Date)
	if now.After(deadline) {
		return nil, nil, domain.NewBadRequestError(domain.ErrRegistrationClosed,
			fmt.Sprintf("Registration is closed. The registration deadline was %s", s.policy.FormatDeadline(deadline)))
	}

	_, err = s.registrationRepo.GetByEventAndEmail(ctx, eventID, email)
	if err == nil {
		return nil, nil, domain.NewBadRequestError(domain.ErrAlreadyRegistered, msgAlreadyRegistered)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, fmt.Errorf("look up registration: %w", err)
	}

	counts := event.Counts()
	isFull := counts.Confirmed >= s.policy.MaxAttendees
	if isFull && counts.Waitlisted >= s.policy.MaxWaitlistSize {
		return nil, nil, domain.NewBadRequestError(domain.ErrEventAtCapacity, msgAtCapacity)
	}
	return event, &domain.RegistrationDecision{ShouldWaitlist: isFull}, nil
}

// Register validates and stores a registration while holding the event lock, so concurrent
// requests for the same event cannot both take the last confirmed spot.
func (s *registrationService) Register(ctx context.Context, req *domain.RegistrationRequest) (*domain.RegistrationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if req == nil || strings.TrimSpace(req.EventID) == "" {
		s.recordRejection(rejectInvalidInput)
		return nil, domain.NewBadRequestError(domain.ErrInvalidInput, "eventId is required")
	}
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	var (
		reg   *domain.Registration
		event *domain.Event
	)
	err := s.locker.WithEventLock(ctx, req.EventID, func(ctx context.Context) error {
		ev, decision, err := s.validate(ctx, req.EventID, req.Email)
		if err != nil {
			return err
		}
		status := domain.RegistrationConfirmed
		if decision.ShouldWaitlist {
			status = domain.RegistrationWaitlist
		}
		now := s.now()
		r := domain.NewRegistration(req, status, now, now)
		if err := s.registrationRepo.Create(ctx, r); err != nil {
			if errors.Is(err, domain.ErrAlreadyRegistered) {
				return domain.NewBadRequestError(domain.ErrAlreadyRegistered, msgAlreadyRegistered)
			}
			return fmt.Errorf("create registration: %w", err)
		}
		reg, event = r, ev
		return nil
	})
	if err != nil {
		var domainErr *domain.Error
		if !errors.As(err, &domainErr) && errors.Is(err, domain.ErrNotFound) {
			err = domain.NewNotFoundError(msgEventNotFound)
		}
		s.recordRejection(rejectionReason(err))
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.RecordRegistration(reg.Status)
	}

	counts, err := s.registrationRepo.CountByEvent(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	availability := domain.CalculateAvailability(counts, s.policy, event.Date, s.now())

	s.sendConfirmation(ctx, reg, event)

	return &domain.RegistrationResult{Registration: reg, Availability: availability}, nil
}

// sendConfirmation emails the applicant. Failures are logged; the registration already stands.
func (s *registrationService) sendConfirmation(ctx context.Context, reg *domain.Registration, event *domain.Event) {
	if s.emailService == nil {
		return
	}
	data := domain.NewRegistrationEmailData(reg, event, s.policy)
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "registration email failed",
			"registration_id", reg.ID, "event_id", event.ID, "err", err)
	}
}

func (s *registrationService) recordRejection(reason string) {
	if s.recorder != nil {
		s.recorder.RecordRejection(reason)
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return rejectNotFound
	case errors.Is(err, domain.ErrPastEvent):
		return rejectPastEvent
	case errors.Is(err, domain.ErrRegistrationClosed):
		return rejectClosed
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return rejectDuplicate
	case errors.Is(err, domain.ErrEventAtCapacity):
		return rejectAtCapacity
	default:
		return rejectInternal
	}
}

func (s *registrationService) loadEventCounts(ctx context.Context, eventID string) (*domain.Event, domain.RegistrationCounts, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.RegistrationCounts{}, domain.NewNotFoundError(msgEventNotFound)
		}
		return nil, domain.RegistrationCounts{}, fmt.Errorf("load event: %w", err)
	}
	counts, err := s.registrationRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, domain.RegistrationCounts{}, fmt.Errorf("count registrations: %w", err)
	}
	return event, counts, nil
}

func (s *registrationService) GetAvailability(ctx context.Context, eventID string) (*domain.EventAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, counts, err := s.loadEventCounts(ctx, eventID)
	if err != nil {
		return nil, err
	}
	availability := domain.CalculateAvailability(counts, s.policy, event.Date, s.now())
	return &availability, nil
}

func (s *registrationService) GetEventStatus(ctx context.Context, eventID string) (*domain.EventStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, counts, err := s.loadEventCounts(ctx, eventID)
	if err != nil {
		return nil, err
	}
	status := domain.PresentEventStatus(event.Date, counts, s.policy, s.now())
	return &status, nil
}

func (s *registrationService) ListRegistrations(ctx context.Context, eventID string, status *domain.RegistrationStatus, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if status != nil && !status.Valid() {
		return nil, 0, domain.NewBadRequestError(domain.ErrInvalidInput, fmt.Sprintf("unknown registration status %q", *status))
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.NewNotFoundError(msgEventNotFound)
		}
		return nil, 0, fmt.Errorf("load event: %w", err)
	}
	regs, total, err := s.registrationRepo.ListByEvent(ctx, eventID, status, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	return regs, total, nil
}

// UpdateRegistrationStatus changes a registration's status. Promotions to CONFIRMED are not
// capacity-checked; admins may deliberately overbook.
func (s *registrationService) UpdateRegistrationStatus(ctx context.Context, registrationID string, status domain.RegistrationStatus) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !status.Valid() {
		return nil, domain.NewBadRequestError(domain.ErrInvalidInput, fmt.Sprintf("unknown registration status %q", status))
	}
	reg, err := s.registrationRepo.UpdateStatus(ctx, registrationID, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError(msgRegistrationNotFound)
		}
		return nil, fmt.Errorf("update registration status: %w", err)
	}
	return reg, nil
}

func (s *registrationService) DeleteRegistration(ctx context.Context, registrationID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.registrationRepo.Delete(ctx, registrationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFoundError(msgRegistrationNotFound)
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}
