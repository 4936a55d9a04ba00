package middleware

import (
	"net/http"
	"time"
)

// RequestObserver receives the latency of every served request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Instrument reports each request to observer, labelled by its route pattern rather than
// the raw path so IDs do not explode label cardinality.
func Instrument(observer RequestObserver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		observer.ObserveRequest(r.Method, routeOf(r), wrapped.status, time.Since(start))
	})
}
