package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		BookingsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gudlft_bookings_completed_total",
			Help: "The total number of bookings settled and persisted.",
		}),
		BookingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gudlft_bookings_rejected_total",
			Help: "The total number of booking attempts rejected, by reason.",
		}, []string{"reason"}),
		PlacesBooked: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gudlft_places_per_booking",
			Help:    "The number of places taken by each completed booking.",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 10, 12, 16, 20},
		}),
		StorageFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gudlft_storage_failures_total",
			Help: "The total number of failed reads or writes of the JSON collections.",
		}),
		Reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gudlft_collection_reloads_total",
			Help: "The total number of reloads of collections from disk.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gudlft_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gudlft_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gudlft_events_published_total",
			Help: "The total number of booking events published.",
		}),
		EventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gudlft_events_failed_total",
			Help: "The total number of booking events that failed to publish.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gudlft_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.BookingsCompleted,
		s.BookingsRejected,
		s.PlacesBooked,
		s.StorageFailures,
		s.Reloads,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.EventsPublished,
		s.EventsFailed,
		s.StartupTimeSeconds,
	)
	return s
}

func (s *Service) IncBookingsCompleted() {
	s.BookingsCompleted.Inc()
}

func (s *Service) IncBookingsRejected(reason string) {
	s.BookingsRejected.WithLabelValues(reason).Inc()
}

func (s *Service) ObservePlacesBooked(places int) {
	s.PlacesBooked.Observe(float64(places))
}

func (s *Service) IncStorageFailures() {
	s.StorageFailures.Inc()
}

func (s *Service) IncReloads() {
	s.Reloads.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncEventsPublished() {
	s.EventsPublished.Inc()
}

func (s *Service) IncEventsFailed() {
	s.EventsFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
