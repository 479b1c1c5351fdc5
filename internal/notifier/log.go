package notifier

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/kylianebat7/gudlft/internal/club"
)

var _ Notifier = LogNotifier{}

// LogNotifier only logs. It is used when no Slack channel is configured.
type LogNotifier struct{}

func (LogNotifier) SendBookingConfirmation(ctx context.Context, booking club.Booking, pointsLeft int, dryRun bool) error {
	log.Info("Booking confirmation", "club", booking.ClubName, "competition", booking.CompetitionName,
		"places", booking.Places, "points_left", pointsLeft, "dry_run", dryRun)
	return nil
}

func (LogNotifier) SendPointsBoard(ctx context.Context, clubs []club.Club, dryRun bool) error {
	log.Info("Points board", "clubs", len(clubs), "dry_run", dryRun)
	return nil
}

// FormatPointsBoardResponse returns the clubs unchanged; the caller renders them as JSON.
func (LogNotifier) FormatPointsBoardResponse(clubs []club.Club) (any, error) {
	return clubs, nil
}
