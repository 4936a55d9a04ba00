package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubevents/internal/domain"
)

type eventService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	policy           domain.RegistrationPolicy
	contextTimeout   time.Duration
	now              func() time.Time
}

// NewEventService returns an EventService that decorates events with availability and status under policy.
func NewEventService(eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	policy domain.RegistrationPolicy,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		policy:           policy,
		contextTimeout:   timeout,
		now:              time.Now,
	}
}

func validateEventFields(title string, date time.Time, endDate *time.Time, capacity *int) error {
	if strings.TrimSpace(title) == "" {
		return domain.NewBadRequestError(domain.ErrInvalidInput, "title is required")
	}
	if date.IsZero() {
		return domain.NewBadRequestError(domain.ErrInvalidInput, "date is required")
	}
	if endDate != nil && endDate.Before(date) {
		return domain.NewBadRequestError(domain.ErrInvalidInput, "endDate must not be before date")
	}
	if capacity != nil && *capacity < 0 {
		return domain.NewBadRequestError(domain.ErrInvalidInput, "capacity must not be negative")
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event.Title = strings.TrimSpace(event.Title)
	if err := validateEventFields(event.Title, event.Date, event.EndDate, event.Capacity); err != nil {
		return err
	}

	now := s.now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) details(event *domain.Event, counts domain.RegistrationCounts, now time.Time) *domain.EventDetails {
	return &domain.EventDetails{
		Event:        event,
		Availability: domain.CalculateAvailability(counts, s.policy, event.Date, now),
		Status:       domain.PresentEventStatus(event.Date, counts, s.policy, now),
	}
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError(msgEventNotFound)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	counts, err := s.registrationRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	return s.details(event, counts, s.now()), nil
}

// ListEvents returns a page of events, each with availability and status.
// upcomingOnly keeps events that have not started yet, soonest first.
func (s *eventService) ListEvents(ctx context.Context, upcomingOnly bool, params domain.PaginationParams) ([]*domain.EventDetails, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now()
	var filter domain.EventFilter
	if upcomingOnly {
		filter.UpcomingAfter = &now
	}
	events, total, err := s.eventRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	counts, err := s.registrationRepo.CountByEvents(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}

	out := make([]*domain.EventDetails, len(events))
	for i, e := range events {
		out[i] = s.details(e, counts[e.ID], now)
	}
	return out, total, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, update domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if update.Title != nil {
		t := strings.TrimSpace(*update.Title)
		if t == "" {
			return nil, domain.NewBadRequestError(domain.ErrInvalidInput, "title must not be empty")
		}
		update.Title = &t
	}
	if update.Capacity != nil && *update.Capacity < 0 {
		return nil, domain.NewBadRequestError(domain.ErrInvalidInput, "capacity must not be negative")
	}
	if update.Date != nil || update.EndDate != nil {
		current, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewNotFoundError(msgEventNotFound)
			}
			return nil, fmt.Errorf("get event: %w", err)
		}
		date, endDate := current.Date, current.EndDate
		if update.Date != nil {
			date = *update.Date
		}
		if update.EndDate != nil {
			endDate = update.EndDate
		}
		if endDate != nil && endDate.Before(date) {
			return nil, domain.NewBadRequestError(domain.ErrInvalidInput, "endDate must not be before date")
		}
	}

	event, err := s.eventRepo.Update(ctx, eventID, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError(msgEventNotFound)
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

// DeleteEvent removes the event; its registrations go with it (ON DELETE CASCADE).
func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFoundError(msgEventNotFound)
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
