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

type Server struct {
	Store          club.ClubStore
	Booking        *booking.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	PubSub         pubsub.PubSubClient
	Router         *http.ServeMux
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// clubSummary is what a club sees after logging in.
type clubSummary struct {
	Club         club.Club              `json:"club"`
	Competitions []club.CompetitionView `json:"competitions"`
	Bookings     []club.Booking         `json:"bookings"`
}

// bookingForm is the pre-check answer for the booking page.
type bookingForm struct {
	Club        club.Club            `json:"club"`
	Competition club.CompetitionView `json:"competition"`
	MaxPlaces   int                  `json:"max_places"`
}

// pushEnvelope is the body Pub/Sub push subscriptions POST to us.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"` // base64-encoded message payload
		ID   string `json:"messageId"`
	} `json:"message"`
}
