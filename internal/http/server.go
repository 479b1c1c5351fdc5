package http

import (
	"net/http"

	"github.com/kylianebat7/gudlft/internal/booking"
	"github.com/kylianebat7/gudlft/internal/club"
	"github.com/kylianebat7/gudlft/internal/config"
	"github.com/kylianebat7/gudlft/internal/metrics"
	"github.com/kylianebat7/gudlft/internal/notifier"
	"github.com/kylianebat7/gudlft/internal/pubsub"
)

func NewServer(store club.ClubStore, bookingSvc *booking.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Booking:        bookingSvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		PubSub:         pubsub,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /login", Chain(s.LoginHandler(), paramsMiddleware))
	s.Router.Handle("GET /competitions", Chain(s.ListCompetitionsHandler(), paramsMiddleware))
	s.Router.Handle("GET /clubs", Chain(s.PointsBoardHandler(), paramsMiddleware))
	s.Router.Handle("GET /clubs/{email}", Chain(s.ClubSummaryHandler(), paramsMiddleware))
	s.Router.Handle("GET /clubs/{email}/points", Chain(s.ClubPointsHandler(), paramsMiddleware))
	s.Router.Handle("GET /book/{competition}/{club}", Chain(s.BookingFormHandler(), paramsMiddleware))
	s.Router.Handle("POST /bookings", Chain(s.BookPlacesHandler(), paramsMiddleware))
	s.Router.Handle("GET /bookings", Chain(s.ListBookingsHandler(), paramsMiddleware))
	s.Router.Handle("POST /reload", Chain(s.ReloadHandler(), paramsMiddleware))
	s.Router.Handle("POST /notify-points-board", Chain(s.NotifyPointsBoardHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/booking-created", Chain(s.BookingCreatedHandler(), paramsMiddleware))
	s.Router.Handle("POST /slack/command/points", Chain(s.PointsCommandHandler(), paramsMiddleware, s.slackVerifyMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
