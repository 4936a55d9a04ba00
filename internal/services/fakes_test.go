package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"clubevents/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// svcNow is the pinned clock for service tests (a Monday).
var svcNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

// fakeStore backs the in-memory event and registration repositories.
type fakeStore struct {
	mu     sync.Mutex
	events map[string]*domain.Event
	regs   []*domain.Registration
	nextID int

	getErr    error // GetByID / GetWithRegistrations
	createErr error // registration Create
	countErr  error // CountByEvent(s)
}

func newFakeStore() *fakeStore {
	return &fakeStore{events: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeStore) id(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, f.nextID)
	f.nextID++
	return id
}

// seed adds an event at date with the given number of registrations per status.
func (f *fakeStore) seed(eventID string, date time.Time, confirmed, waitlisted, cancelled int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[eventID] = &domain.Event{ID: eventID, Title: "Intro to Transformers", Location: "Room 101", Date: date}
	add := func(n int, status domain.RegistrationStatus) {
		for i := 0; i < n; i++ {
			f.regs = append(f.regs, &domain.Registration{
				ID:      f.id("reg"),
				EventID: eventID,
				Name:    "Seed",
				Email:   fmt.Sprintf("%s-%d@example.com", strings.ToLower(string(status)), i),
				Status:  status,
			})
		}
	}
	add(confirmed, domain.RegistrationConfirmed)
	add(waitlisted, domain.RegistrationWaitlist)
	add(cancelled, domain.RegistrationCancelled)
}

func (f *fakeStore) regsFor(eventID string) []*domain.Registration {
	var out []*domain.Registration
	for _, r := range f.regs {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out
}

type fakeEventRepo struct{ *fakeStore }

func (f fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.id("ev")
	f.events[e.ID] = e
	return nil
}

func (f fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f fakeEventRepo) GetWithRegistrations(ctx context.Context, id string) (*domain.Event, error) {
	e, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e.Registrations = f.regsFor(id)
	return e, nil
}

func (f fakeEventRepo) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Event
	for _, e := range f.events {
		if filter.UpcomingAfter != nil && e.Date.Before(*filter.UpcomingAfter) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, len(out), nil
}

func (f fakeEventRepo) Update(ctx context.Context, id string, u domain.EventUpdate) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.EndDate != nil {
		e.EndDate = u.EndDate
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	return e, nil
}

func (f fakeEventRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

type fakeRegistrationRepo struct{ *fakeStore }

func (f fakeRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, r := range f.regs {
		if r.EventID == reg.EventID && r.Email == reg.Email {
			return domain.ErrAlreadyRegistered
		}
	}
	reg.ID = f.id("reg")
	f.regs = append(f.regs, reg)
	return nil
}

func (f fakeRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.regs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeRegistrationRepo) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.regs {
		if r.EventID == eventID && r.Email == email {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeRegistrationRepo) ListByEvent(ctx context.Context, eventID string, status *domain.RegistrationStatus, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Registration
	for _, r := range f.regsFor(eventID) {
		if status == nil || r.Status == *status {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (f fakeRegistrationRepo) CountByEvent(ctx context.Context, eventID string) (domain.RegistrationCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return domain.RegistrationCounts{}, f.countErr
	}
	return domain.CountRegistrations(f.regsFor(eventID)), nil
}

func (f fakeRegistrationRepo) CountByEvents(ctx context.Context, eventIDs []string) (map[string]domain.RegistrationCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return nil, f.countErr
	}
	out := make(map[string]domain.RegistrationCounts, len(eventIDs))
	for _, id := range eventIDs {
		out[id] = domain.CountRegistrations(f.regsFor(id))
	}
	return out, nil
}

func (f fakeRegistrationRepo) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus) (*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.regs {
		if r.ID == id {
			r.Status = status
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeRegistrationRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.regs {
		if r.ID == id {
			f.regs = append(f.regs[:i], f.regs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeLocker serialises callbacks with a mutex, standing in for the row lock.
type fakeLocker struct {
	mu    sync.Mutex
	calls int
	err   error // returned before fn runs
}

func (l *fakeLocker) WithEventLock(ctx context.Context, eventID string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return l.err
	}
	return fn(ctx)
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []*domain.RegistrationEmailData
	err  error
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

type fakeRecorder struct {
	mu         sync.Mutex
	registered []domain.RegistrationStatus
	rejected   []string
}

func (f *fakeRecorder) RecordRegistration(status domain.RegistrationStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, status)
}

func (f *fakeRecorder) RecordRejection(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejected = append(f.rejected, reason)
}
