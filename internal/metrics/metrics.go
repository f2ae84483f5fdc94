package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event labels.
const (
	EventUserCreated    = "user_created"
	EventProfileUpdated = "profile_updated"
)

var (
	eventsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_sync_events_total",
			Help: "Total number of pushed events handled, by event and outcome",
		},
		[]string{"event", "outcome"},
	)

	eventDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "identity_sync_event_duration_seconds",
			Help:    "Time spent handling a pushed event",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"event"},
	)

	claimsSet = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_sync_claims_set_total",
			Help: "Total number of custom claim writes, by claimed role",
		},
		[]string{"role"},
	)
)

// ObserveEvent records one handled event.
func ObserveEvent(event, outcome string, started time.Time) {
	eventsHandled.WithLabelValues(event, outcome).Inc()
	eventDuration.WithLabelValues(event).Observe(time.Since(started).Seconds())
}

// ClaimSet records a successful claim write.
func ClaimSet(role string) {
	claimsSet.WithLabelValues(role).Inc()
}
