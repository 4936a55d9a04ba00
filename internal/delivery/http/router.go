package http

import (
	"context"
	"net/http"
	"time"

	"clubevents/internal/delivery/http/controllers"
	"clubevents/internal/delivery/http/helpers"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger reports whether a backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events        *controllers.EventController
	Registrations *controllers.RegistrationController
	Posts         *controllers.PostController
	Auth          *controllers.AuthController
}

// NewRouter initializes the HTTP router with all application routes.
// requireAuth guards the admin routes; metrics serves the Prometheus registry.
func NewRouter(c Controllers, requireAuth func(http.HandlerFunc) http.HandlerFunc, db Pinger, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /api/events", c.Events.ListEvents)
	mux.HandleFunc("GET /api/events/{eventID}", c.Events.GetEvent)
	mux.HandleFunc("GET /api/events/{eventID}/availability", c.Registrations.GetAvailability)
	mux.HandleFunc("GET /api/events/{eventID}/status", c.Registrations.GetEventStatus)
	mux.HandleFunc("POST /api/event-registrations", c.Registrations.Register)
	mux.HandleFunc("GET /api/posts", c.Posts.ListPosts)
	mux.HandleFunc("GET /api/posts/{slug}", c.Posts.GetPost)
	mux.HandleFunc("POST /api/auth/login", c.Auth.Login)

	// Admin
	mux.HandleFunc("GET /api/auth/me", requireAuth(c.Auth.Me))
	mux.HandleFunc("POST /api/events", requireAuth(c.Events.CreateEvent))
	mux.HandleFunc("PATCH /api/events/{eventID}", requireAuth(c.Events.UpdateEvent))
	mux.HandleFunc("DELETE /api/events/{eventID}", requireAuth(c.Events.DeleteEvent))
	mux.HandleFunc("GET /api/events/{eventID}/registrations", requireAuth(c.Registrations.ListEventRegistrations))
	mux.HandleFunc("PATCH /api/event-registrations/{registrationID}", requireAuth(c.Registrations.UpdateRegistrationStatus))
	mux.HandleFunc("DELETE /api/event-registrations/{registrationID}", requireAuth(c.Registrations.DeleteRegistration))
	mux.HandleFunc("GET /api/admin/posts", requireAuth(c.Posts.ListAllPosts))
	mux.HandleFunc("POST /api/posts", requireAuth(c.Posts.CreatePost))
	mux.HandleFunc("PATCH /api/posts/{postID}", requireAuth(c.Posts.UpdatePost))
	mux.HandleFunc("DELETE /api/posts/{postID}", requireAuth(c.Posts.DeletePost))

	// Ops
	mux.HandleFunc("GET /healthz", healthz(db))
	mux.Handle("GET /metrics", metrics)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

type healthStatus struct {
	Status string `json:"status"`
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, "unavailable", "database unreachable")
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, healthStatus{Status: "ok"})
	}
}
