package metrics

import (
	"testing"
	"time"

	"clubevents/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Registrations(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordRegistration(domain.RegistrationConfirmed)
	m.RecordRegistration(domain.RegistrationConfirmed)
	m.RecordRegistration(domain.RegistrationWaitlist)
	m.RecordRejection("at_capacity")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Registrations.WithLabelValues("CONFIRMED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations.WithLabelValues("WAITLIST")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejections.WithLabelValues("at_capacity")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Rejections.WithLabelValues("past_event")))
}

func TestMetrics_ObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("POST", "POST /api/event-registrations", 201, 30*time.Millisecond)
	m.ObserveRequest("GET", "GET /api/events", 200, 5*time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
	count, err := testutil.GatherAndCount(reg, "clubevents_http_request_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
