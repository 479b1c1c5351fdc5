package notifier

import (
	"context"

	"github.com/kylianebat7/gudlft/internal/club"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For completed bookings
	SendBookingConfirmation(ctx context.Context, booking club.Booking, pointsLeft int, dryRun bool) error
	// For the public points board
	SendPointsBoard(ctx context.Context, clubs []club.Club, dryRun bool) error

	// For responding to slash commands
	FormatPointsBoardResponse(clubs []club.Club) (any, error)
}
