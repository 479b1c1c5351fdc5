package club

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DateLayout is the timestamp format used by competition dates and booking stamps.
const DateLayout = "2006-01-02 15:04:05"

// UnknownCategory is recorded on bookings for competitions without a category.
const UnknownCategory = "Unknown"

// Paths points at the three JSON files backing the store.
type Paths struct {
	Clubs        string
	Competitions string
	Bookings     string
}

// store keeps the three collections in memory and rewrites them on settlement.
type store struct {
	paths        Paths
	mu           sync.RWMutex
	clubs        []Club
	competitions []Competition
	bookings     []Booking
}

// Count is a non-negative quantity that may be stored as a JSON number or a numeric string.
// A string that is not a number, or any negative value, reads as zero.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("count must be an integer or a numeric string, got %s", string(data))
		}
		if n, err = strconv.Atoi(strings.TrimSpace(s)); err != nil {
			n = 0
		}
	}
	*c = Count(max(n, 0))
	return nil
}

// Club is a member club spending points on competition places.
type Club struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Points Count  `json:"points"`
}

// Competition is a bookable event with a limited number of places.
type Competition struct {
	Name           string `json:"name"`
	Date           string `json:"date"`
	NumberOfPlaces Count  `json:"numberOfPlaces"`
	Category       string `json:"category,omitempty"`
}

// State is the temporal state of a competition.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

// IsPast reports whether the competition is closed at now. A date that is
// missing or cannot be parsed counts as past. The date is read in now's location.
func (c Competition) IsPast(now time.Time) bool {
	date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(c.Date), now.Location())
	if err != nil {
		return true
	}
	return !date.After(now)
}

// State returns StateClosed when IsPast holds and StateOpen otherwise.
func (c Competition) State(now time.Time) State {
	if c.IsPast(now) {
		return StateClosed
	}
	return StateOpen
}

// BookingCategory is the category stamped on new bookings for this competition.
func (c Competition) BookingCategory() string {
	if strings.TrimSpace(c.Category) == "" {
		return UnknownCategory
	}
	return c.Category
}

// CompetitionView is a competition annotated for display. IsPast is never persisted.
type CompetitionView struct {
	Competition
	IsPast bool `json:"isPast"`
}

// Booking is an immutable record of places a club took in a competition.
type Booking struct {
	ID              string `json:"id,omitempty"`
	ClubName        string `json:"club_name"`
	CompetitionName string `json:"competition_name"`
	Category        string `json:"category"`
	Places          int    `json:"places"`
	DateBooked      string `json:"date_booked"`
}

// Settlement is a booking together with the club's points and the competition's
// places right after it, read under the same lock that applied it.
type Settlement struct {
	Booking    Booking
	PointsLeft int
	PlacesLeft int
}

// DecideFunc inspects the resolved club and competition and returns the booking
// to record, or an error to reject the request. Either pointer is nil when the
// corresponding name did not resolve. The pointers are copies; changes are ignored.
type DecideFunc func(club *Club, competition *Competition) (Booking, error)
