package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventBookingCreated EventType = "booking-created"
)

// BookingCreatedEvent is published after a booking has been persisted.
type BookingCreatedEvent struct {
	BookingID       string `msgpack:"booking_id"`
	ClubName        string `msgpack:"club_name"`
	CompetitionName string `msgpack:"competition_name"`
	Category        string `msgpack:"category"`
	Places          int    `msgpack:"places"`
	DateBooked      string `msgpack:"date_booked"`
	PointsLeft      int    `msgpack:"points_left"`
	PlacesLeft      int    `msgpack:"places_left"`
}
