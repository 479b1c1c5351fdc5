package booking

import (
	"time"

	"github.com/kylianebat7/gudlft/internal/club"
	"github.com/kylianebat7/gudlft/internal/metrics"
	"github.com/kylianebat7/gudlft/internal/notifier"
	"github.com/kylianebat7/gudlft/internal/pubsub"
)

// Policy holds the tunable booking rules.
type Policy struct {
	// MaxPlacesPerBooking caps a single booking. Zero disables the cap.
	MaxPlacesPerBooking int
}

// Request is a booking attempt as it arrives from a form. Places is parsed by
// the rule engine so that the order of rejections is preserved.
type Request struct {
	ClubName        string
	CompetitionName string
	Places          string
	DryRun          bool
}

// Result is a settled (or, for dry runs, would-be) booking and the balances after it.
type Result struct {
	Booking    club.Booking `json:"booking"`
	PointsLeft int          `json:"points_left"`
	PlacesLeft int          `json:"places_left"`
	DryRun     bool         `json:"dry_run"`
	Message    string       `json:"message"`
}

// Service runs booking requests against the club store.
type Service struct {
	store    club.ClubStore
	notifier notifier.Notifier
	pubsub   pubsub.PubSubClient
	metrics  metrics.Metrics
	policy   Policy
	now      func() time.Time
	newID    func() string

	// asyncNotify leaves confirmations to the booking-created event consumer.
	asyncNotify bool
}

// Option customises a Service.
type Option func(*Service)
