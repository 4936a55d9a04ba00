package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"clubevents/internal/delivery/http/helpers"
	"clubevents/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testEventID        = "6f1f8f5e-3c2a-4b1e-9a57-0d5a2b7c9e11"
	testRegistrationID = "b3d7c0a4-5e61-4f0b-8a3c-2e9d4f6a1b72"
	testPostID         = "1c9e2a7b-8d34-4c5f-a6e1-7b0f3d2c5a98"
)

// newRequest builds a request with an optional JSON body and path values.
func newRequest(method, target, body string, pathValues map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

// decodeEnvelope decodes the response envelope and, when dataDest is non-nil, its data field.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dataDest any) helpers.APIResponse {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw), "response must be valid JSON envelope")
	if dataDest != nil {
		require.NoError(t, json.Unmarshal(raw.Data, dataDest))
	}
	return helpers.APIResponse{Data: raw.Data, Error: raw.Error}
}

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	registerResult *domain.RegistrationResult
	registerErr    error
	lastRequest    *domain.RegistrationRequest

	availability    *domain.EventAvailability
	status          *domain.EventStatus
	lookupErr       error
	lastLookupEvent string

	listResult []*domain.Registration
	listTotal  int
	listErr    error
	lastStatus *domain.RegistrationStatus
	lastParams domain.PaginationParams

	updated          *domain.Registration
	updateErr        error
	lastUpdateID     string
	lastUpdateStatus domain.RegistrationStatus

	deleteErr    error
	lastDeleteID string
}

func (f *fakeRegistrationService) ValidateRegistration(ctx context.Context, eventID, email string) (*domain.RegistrationDecision, error) {
	return &domain.RegistrationDecision{}, nil
}

func (f *fakeRegistrationService) Register(ctx context.Context, req *domain.RegistrationRequest) (*domain.RegistrationResult, error) {
	f.lastRequest = req
	return f.registerResult, f.registerErr
}

func (f *fakeRegistrationService) GetAvailability(ctx context.Context, eventID string) (*domain.EventAvailability, error) {
	f.lastLookupEvent = eventID
	return f.availability, f.lookupErr
}

func (f *fakeRegistrationService) GetEventStatus(ctx context.Context, eventID string) (*domain.EventStatus, error) {
	f.lastLookupEvent = eventID
	return f.status, f.lookupErr
}

func (f *fakeRegistrationService) ListRegistrations(ctx context.Context, eventID string, status *domain.RegistrationStatus, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	f.lastLookupEvent = eventID
	f.lastStatus = status
	f.lastParams = params
	return f.listResult, f.listTotal, f.listErr
}

func (f *fakeRegistrationService) UpdateRegistrationStatus(ctx context.Context, registrationID string, status domain.RegistrationStatus) (*domain.Registration, error) {
	f.lastUpdateID = registrationID
	f.lastUpdateStatus = status
	return f.updated, f.updateErr
}

func (f *fakeRegistrationService) DeleteRegistration(ctx context.Context, registrationID string) error {
	f.lastDeleteID = registrationID
	return f.deleteErr
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr   error
	lastCreated *domain.Event

	details      *domain.EventDetails
	getErr       error
	lastGetID    string
	list         []*domain.EventDetails
	listTotal    int
	listErr      error
	lastUpcoming bool
	lastParams   domain.PaginationParams

	updated    *domain.Event
	updateErr  error
	lastUpdate domain.EventUpdate

	deleteErr    error
	lastDeleteID string
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	f.lastCreated = event
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = testEventID
	return nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, eventID string) (*domain.EventDetails, error) {
	f.lastGetID = eventID
	return f.details, f.getErr
}

func (f *fakeEventService) ListEvents(ctx context.Context, upcomingOnly bool, params domain.PaginationParams) ([]*domain.EventDetails, int, error) {
	f.lastUpcoming = upcomingOnly
	f.lastParams = params
	return f.list, f.listTotal, f.listErr
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, eventID string, update domain.EventUpdate) (*domain.Event, error) {
	f.lastUpdate = update
	return f.updated, f.updateErr
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, eventID string) error {
	f.lastDeleteID = eventID
	return f.deleteErr
}

// fakePostService implements domain.PostService for handler tests.
type fakePostService struct {
	createErr   error
	lastCreated *domain.Post

	bySlug   *domain.Post
	getErr   error
	lastSlug string

	list              []*domain.Post
	listTotal         int
	listErr           error
	lastPublishedOnly bool

	updated    *domain.Post
	updateErr  error
	lastUpdate domain.PostUpdate

	deleteErr    error
	lastDeleteID string
}

func (f *fakePostService) CreatePost(ctx context.Context, post *domain.Post) error {
	f.lastCreated = post
	if f.createErr != nil {
		return f.createErr
	}
	post.ID = testPostID
	return nil
}

func (f *fakePostService) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	f.lastSlug = slug
	return f.bySlug, f.getErr
}

func (f *fakePostService) ListPosts(ctx context.Context, publishedOnly bool, params domain.PaginationParams) ([]*domain.Post, int, error) {
	f.lastPublishedOnly = publishedOnly
	return f.list, f.listTotal, f.listErr
}

func (f *fakePostService) UpdatePost(ctx context.Context, postID string, update domain.PostUpdate) (*domain.Post, error) {
	f.lastUpdate = update
	return f.updated, f.updateErr
}

func (f *fakePostService) DeletePost(ctx context.Context, postID string) error {
	f.lastDeleteID = postID
	return f.deleteErr
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	token    string
	user     *domain.User
	loginErr error
	getErr   error
	lastID   string
}

func (f *fakeUserService) CreateAdmin(ctx context.Context, email, name, password string) (*domain.User, error) {
	return f.user, nil
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.token, f.user, nil
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.lastID = id
	return f.user, f.getErr
}
