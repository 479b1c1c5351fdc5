package booking

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/kylianebat7/gudlft/internal/club"
)

// Evaluate applies the booking rules in order and returns the number of places
// to take. The first failing rule decides the rejection:
// unknown club or competition, closed competition, malformed or non-positive
// places, not enough places left, not enough points, per-booking cap.
func Evaluate(c *club.Club, competition *club.Competition, rawPlaces string, now time.Time, policy Policy) (int, error) {
	if c == nil || competition == nil {
		return 0, reject(ErrUnknownEntity, "Invalid competition or club.")
	}
	if competition.IsPast(now) {
		return 0, reject(ErrCompetitionClosed, "This competition is closed because the date has passed.")
	}

	trimmed := strings.TrimSpace(rawPlaces)
	places, err := strconv.Atoi(trimmed)
	if errors.Is(err, strconv.ErrRange) {
		// Too large for an int, but still a number: it can only fail on size.
		if strings.HasPrefix(trimmed, "-") {
			return 0, reject(ErrInvalidQuantity, "Number of places must be greater than 0.")
		}
		return 0, reject(ErrInsufficientInventory, "Not enough places available for this competition.")
	}
	if err != nil {
		return 0, reject(ErrMalformedInput, "Invalid number of places.")
	}
	if places <= 0 {
		return 0, reject(ErrInvalidQuantity, "Number of places must be greater than 0.")
	}
	if places > int(competition.NumberOfPlaces) {
		return 0, reject(ErrInsufficientInventory, "Not enough places available for this competition.")
	}
	if places > int(c.Points) {
		return 0, reject(ErrInsufficientPoints, "Not enough points to complete the booking.")
	}
	if policy.MaxPlacesPerBooking > 0 && places > policy.MaxPlacesPerBooking {
		return 0, reject(ErrQuantityLimitExceeded, "You cannot book more than %d places in a single booking.", policy.MaxPlacesPerBooking)
	}
	return places, nil
}
