package booking

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/kylianebat7/gudlft/internal/club"
	"github.com/kylianebat7/gudlft/internal/metrics"
	"github.com/kylianebat7/gudlft/internal/notifier"
	"github.com/kylianebat7/gudlft/internal/pubsub"
)

const successMessage = "Great-booking complete!"

// WithClock replaces time.Now as the source of the current instant.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the UUID generator used for booking ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// WithAsyncNotifications stops the service from sending confirmations itself.
// The booking-created event consumer sends them instead.
func WithAsyncNotifications() Option {
	return func(s *Service) {
		s.asyncNotify = true
	}
}

// New creates a new booking Service.
func New(store club.ClubStore, notifier notifier.Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, policy Policy, opts ...Option) *Service {
	s := &Service{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
		policy:   policy,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book validates req and, unless it is a dry run, settles it. Rejections are
// returned as *RejectionError; a failed write wraps club.ErrStorageFailure and
// leaves the store as it was. Notification and event publishing happen after
// the booking is persisted and never undo it.
func (s *Service) Book(ctx context.Context, req Request) (Result, error) {
	now := s.now()
	decide := func(c *club.Club, competition *club.Competition) (club.Booking, error) {
		places, err := Evaluate(c, competition, req.Places, now, s.policy)
		if err != nil {
			return club.Booking{}, err
		}
		return club.Booking{
			ID:              s.newID(),
			ClubName:        c.Name,
			CompetitionName: competition.Name,
			Category:        competition.BookingCategory(),
			Places:          places,
			DateBooked:      now.Format(club.DateLayout),
		}, nil
	}

	if req.DryRun {
		settlement, err := s.store.Inspect(req.ClubName, req.CompetitionName, decide)
		if err != nil {
			log.Info("[Dry Run] Booking would be rejected", "club", req.ClubName, "competition", req.CompetitionName, "reason", ReasonOf(err))
			return Result{}, err
		}
		booking := settlement.Booking
		log.Info("[Dry Run] Would have booked places", "club", booking.ClubName, "competition", booking.CompetitionName, "places", booking.Places)
		return newResult(settlement, true), nil
	}

	settlement, err := s.store.Settle(req.ClubName, req.CompetitionName, decide)
	if err != nil {
		reason := ReasonOf(err)
		if reason == ReasonStorageFailure {
			s.metrics.IncStorageFailures()
		}
		s.metrics.IncBookingsRejected(string(reason))
		log.Warn("Booking rejected", "club", req.ClubName, "competition", req.CompetitionName, "places", req.Places, "reason", reason, "error", err)
		return Result{}, err
	}

	booking := settlement.Booking
	s.metrics.IncBookingsCompleted()
	s.metrics.ObservePlacesBooked(booking.Places)
	result := newResult(settlement, false)

	if !s.asyncNotify {
		if err := s.notifier.SendBookingConfirmation(ctx, booking, result.PointsLeft, false); err != nil {
			log.Error("Failed to send booking confirmation", "error", err, "bookingID", booking.ID)
		}
	}
	if err := s.pubsub.SendMessage(ctx, pubsub.EventBookingCreated, newBookingEvent(booking, result)); err != nil {
		s.metrics.IncEventsFailed()
		log.Error("Failed to publish booking event", "error", err, "bookingID", booking.ID)
	} else {
		s.metrics.IncEventsPublished()
	}
	return result, nil
}

// BookPlaces is Book for callers that already hold an integer quantity.
func (s *Service) BookPlaces(ctx context.Context, clubName, competitionName string, places int) (Result, error) {
	return s.Book(ctx, Request{ClubName: clubName, CompetitionName: competitionName, Places: strconv.Itoa(places)})
}

// CheckBookable resolves both names and verifies the competition is still open.
// It is the pre-check behind the booking form and applies only the first two rules.
func (s *Service) CheckBookable(clubName, competitionName string) (club.Club, club.Competition, error) {
	c, clubOK := s.store.FindClubByName(clubName)
	competition, competitionOK := s.store.FindCompetitionByName(competitionName)
	if !clubOK || !competitionOK {
		return c, competition, reject(ErrUnknownEntity, "Something went wrong-please try again")
	}
	if competition.IsPast(s.now()) {
		return c, competition, reject(ErrCompetitionClosed, "This competition is closed because the date has passed.")
	}
	return c, competition, nil
}

// Now returns the service clock's current instant.
func (s *Service) Now() time.Time {
	return s.now()
}

func newResult(settlement club.Settlement, dryRun bool) Result {
	return Result{
		Booking:    settlement.Booking,
		PointsLeft: settlement.PointsLeft,
		PlacesLeft: settlement.PlacesLeft,
		DryRun:     dryRun,
		Message:    successMessage,
	}
}

// BookingFromEvent rebuilds the booking record carried by a booking-created event.
func BookingFromEvent(event pubsub.BookingCreatedEvent) club.Booking {
	return club.Booking{
		ID:              event.BookingID,
		ClubName:        event.ClubName,
		CompetitionName: event.CompetitionName,
		Category:        event.Category,
		Places:          event.Places,
		DateBooked:      event.DateBooked,
	}
}

func newBookingEvent(booking club.Booking, result Result) pubsub.BookingCreatedEvent {
	return pubsub.BookingCreatedEvent{
		BookingID:       booking.ID,
		ClubName:        booking.ClubName,
		CompetitionName: booking.CompetitionName,
		Category:        booking.Category,
		Places:          booking.Places,
		DateBooked:      booking.DateBooked,
		PointsLeft:      result.PointsLeft,
		PlacesLeft:      result.PlacesLeft,
	}
}

// IsRejection reports whether err is a business-rule rejection rather than a failure.
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}
