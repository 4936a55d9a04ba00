package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clubevents/internal/delivery/http/helpers"
	"clubevents/internal/delivery/http/middleware"
	"clubevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthController_Login(t *testing.T) {
	admin := &domain.User{ID: "admin-1", Email: "admin@club.example.edu", Name: "Admin", PasswordHash: "secret-hash"}

	tests := []struct {
		name       string
		body       string
		loginErr   error
		wantStatus int
		wantCode   string
	}{
		{"success", `{"email":"admin@club.example.edu","password":"correct-horse"}`, nil, http.StatusOK, ""},
		{"missing fields", `{}`, nil, http.StatusBadRequest, helpers.ErrCodeValidation},
		{"wrong password", `{"email":"admin@club.example.edu","password":"nope"}`, domain.NewUnauthorizedError("invalid email or password"), http.StatusUnauthorized, helpers.ErrCodeUnauthorized},
		{"signing failure", `{"email":"admin@club.example.edu","password":"correct-horse"}`, errors.New("failed to sign token"), http.StatusInternalServerError, helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUserService{token: "jwt-token", user: admin, loginErr: tt.loginErr}
			rr := httptest.NewRecorder()

			NewAuthController(testLogger, fake).Login(rr, newRequest(http.MethodPost, "/api/auth/login", tt.body, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var got LoginResponse
				decodeEnvelope(t, rr, &got)
				assert.Equal(t, "jwt-token", got.Token)
				assert.Equal(t, "Bearer", got.TokenType)
				require.NotNil(t, got.User)
				assert.Equal(t, "admin-1", got.User.ID)
				assert.NotContains(t, rr.Body.String(), "secret-hash")
				return
			}
			envelope := decodeEnvelope(t, rr, nil)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestAuthController_Me(t *testing.T) {
	t.Run("returns the authenticated admin", func(t *testing.T) {
		fake := &fakeUserService{user: &domain.User{ID: "admin-1", Email: "admin@club.example.edu"}}
		req := newRequest(http.MethodGet, "/api/auth/me", "", nil)
		req = req.WithContext(middleware.SetUserID(req.Context(), "admin-1"))
		rr := httptest.NewRecorder()

		NewAuthController(testLogger, fake).Me(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "admin-1", fake.lastID)
	})

	t.Run("no user in context", func(t *testing.T) {
		rr := httptest.NewRecorder()

		NewAuthController(testLogger, &fakeUserService{}).Me(rr, newRequest(http.MethodGet, "/api/auth/me", "", nil))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("account removed", func(t *testing.T) {
		fake := &fakeUserService{getErr: domain.NewNotFoundError("User not found")}
		req := newRequest(http.MethodGet, "/api/auth/me", "", nil)
		req = req.WithContext(middleware.SetUserID(req.Context(), "admin-1"))
		rr := httptest.NewRecorder()

		NewAuthController(testLogger, fake).Me(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}
