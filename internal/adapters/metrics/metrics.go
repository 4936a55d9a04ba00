package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"clubevents/internal/domain"
)

// Metrics holds the Prometheus collectors for registrations and HTTP traffic.
type Metrics struct {
	Registrations   *prometheus.CounterVec
	Rejections      *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clubevents_registrations_total",
			Help: "Registrations stored, by resulting status",
		}, []string{"status"}),
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clubevents_registration_rejections_total",
			Help: "Registration attempts rejected, by reason",
		}, []string{"reason"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clubevents_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// RecordRegistration counts a stored registration.
func (m *Metrics) RecordRegistration(status domain.RegistrationStatus) {
	m.Registrations.WithLabelValues(string(status)).Inc()
}

// RecordRejection counts a rejected registration attempt.
func (m *Metrics) RecordRejection(reason string) {
	m.Rejections.WithLabelValues(reason).Inc()
}

// ObserveRequest records the latency of one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
