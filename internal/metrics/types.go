package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	BookingsCompleted  prometheus.Counter
	BookingsRejected   *prometheus.CounterVec
	PlacesBooked       prometheus.Histogram
	StorageFailures    prometheus.Counter
	Reloads            prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	EventsPublished    prometheus.Counter
	EventsFailed       prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
