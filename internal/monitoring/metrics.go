// Package monitoring exposes the dining-hall Prometheus metrics served on
// the dedicated metrics port.
package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	// Resolutions counts rotation lookups by outcome (resolved, forced,
	// unconfigured).
	Resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dining_rotation_resolutions_total",
			Help: "Menu rotation resolutions by outcome.",
		},
		[]string{"outcome"},
	)

	// MissingGuests tracks the last computed number of guests without a
	// submitted order, per diet kind.
	MissingGuests = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dining_missing_guests",
			Help: "Guests without a submitted order at last check, by diet.",
		},
		[]string{"diet"},
	)

	// AssignedGuests counts guests that received orders through bulk
	// assignment.
	AssignedGuests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dining_bulk_assigned_guests_total",
			Help: "Guests given a default selection by bulk assignment.",
		},
	)

	// DaySubmissions counts full-day order saves by guests.
	DaySubmissions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dining_day_submissions_total",
			Help: "Full-day order submissions by guests.",
		},
	)
)

func init() {
	prometheus.MustRegister(Resolutions, MissingGuests, AssignedGuests, DaySubmissions)
}
