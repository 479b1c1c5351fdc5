package club

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kylianebat7/gudlft/internal/storage"
)

var (
	// ErrStorageFailure wraps any failure to read or write the backing files.
	ErrStorageFailure = errors.New("storage failure")
	// ErrInconsistentBooking is returned when a decided booking would break the
	// points or inventory invariants. The rule engine should never let one through.
	ErrInconsistentBooking = errors.New("booking would overdraw points or places")
)

const (
	clubsKey        = "clubs"
	competitionsKey = "competitions"
	bookingsKey     = "bookings"
)

// New loads all three collections from paths and returns a ready store.
// The clubs and competitions files must exist; a missing bookings file is an empty history.
func New(paths Paths) (ClubStore, error) {
	s := &store{paths: paths}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Seed writes the given collections to paths, replacing any existing files.
func Seed(paths Paths, clubs []Club, competitions []Competition, bookings []Booking) error {
	if err := storage.WriteCollection(paths.Clubs, clubsKey, clubs); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	if err := storage.WriteCollection(paths.Competitions, competitionsKey, competitions); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	if err := storage.WriteCollection(paths.Bookings, bookingsKey, bookings); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return nil
}

// Reload replaces every in-memory collection with the content on disk.
// The files are read under the write lock; on failure nothing changes.
func (s *store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clubs, err := storage.ReadCollection[Club](s.paths.Clubs, clubsKey, false)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	competitions, err := storage.ReadCollection[Competition](s.paths.Competitions, competitionsKey, false)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	bookings, err := storage.ReadCollection[Booking](s.paths.Bookings, bookingsKey, true)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	s.clubs = clubs
	s.competitions = competitions
	s.bookings = bookings
	log.Info("Loaded collections", "clubs", len(clubs), "competitions", len(competitions), "bookings", len(bookings))
	return nil
}

// ReloadCompetitions re-reads only the competitions file so newly added
// competitions become visible without a restart.
func (s *store) ReloadCompetitions() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	competitions, err := storage.ReadCollection[Competition](s.paths.Competitions, competitionsKey, false)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	s.competitions = competitions
	log.Debug("Reloaded competitions", "count", len(competitions))
	return nil
}

func (s *store) FindClubByEmail(email string) (Club, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clubs {
		if c.Email == email {
			return c, true
		}
	}
	return Club{}, false
}

func (s *store) FindClubByName(name string) (Club, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.clubIndexLocked(name); i >= 0 {
		return s.clubs[i], true
	}
	return Club{}, false
}

func (s *store) FindCompetitionByName(name string) (Competition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.competitionIndexLocked(name); i >= 0 {
		return s.competitions[i], true
	}
	return Competition{}, false
}

// ListClubs returns every club in file order. It backs the public points board.
func (s *store) ListClubs() []Club {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.clubs)
}

// ListCompetitions returns every competition annotated with its state at now.
func (s *store) ListCompetitions(now time.Time) []CompetitionView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	views := make([]CompetitionView, 0, len(s.competitions))
	for _, c := range s.competitions {
		views = append(views, CompetitionView{Competition: c, IsPast: c.IsPast(now)})
	}
	return views
}

// BookingsForClub returns the booking history of the named club, oldest first.
func (s *store) BookingsForClub(clubName string) []Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bookings := []Booking{}
	for _, b := range s.bookings {
		if b.ClubName == clubName {
			bookings = append(bookings, b)
		}
	}
	return bookings
}

func (s *store) AllBookings() []Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bookings)
}

func (s *store) Inspect(clubName, competitionName string, decide DecideFunc) (Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	booking, ci, pi, err := s.decideLocked(clubName, competitionName, decide)
	if err != nil {
		return Settlement{}, err
	}
	settlement := Settlement{Booking: booking}
	if ci >= 0 {
		settlement.PointsLeft = int(s.clubs[ci].Points) - booking.Places
	}
	if pi >= 0 {
		settlement.PlacesLeft = int(s.competitions[pi].NumberOfPlaces) - booking.Places
	}
	return settlement, nil
}

// Settle decides and applies a booking atomically with respect to other store calls
// and returns it with the balances it left.
// Points and places are decremented, the booking is appended and all three files are
// rewritten. If any write fails the in-memory change is undone, the files already
// rewritten are restored, and an error wrapping ErrStorageFailure is returned.
func (s *store) Settle(clubName, competitionName string, decide DecideFunc) (Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ci, pi, err := s.decideLocked(clubName, competitionName, decide)
	if err != nil {
		return Settlement{}, err
	}
	if ci < 0 || pi < 0 {
		return Settlement{}, fmt.Errorf("%w: club %q or competition %q does not exist", ErrInconsistentBooking, clubName, competitionName)
	}

	places := Count(booking.Places)
	if places <= 0 || places > s.clubs[ci].Points || places > s.competitions[pi].NumberOfPlaces {
		return Settlement{}, fmt.Errorf("%w: %d places against %d points and %d available",
			ErrInconsistentBooking, booking.Places, s.clubs[ci].Points, s.competitions[pi].NumberOfPlaces)
	}

	prevClub := s.clubs[ci]
	prevCompetition := s.competitions[pi]
	prevBookings := len(s.bookings)

	s.clubs[ci].Points -= places
	s.competitions[pi].NumberOfPlaces -= places
	s.bookings = append(s.bookings, booking)

	if err := s.persistLocked(); err != nil {
		s.clubs[ci] = prevClub
		s.competitions[pi] = prevCompetition
		s.bookings = s.bookings[:prevBookings]
		log.Error("Failed to persist booking, rolled back", "error", err, "club", clubName, "competition", competitionName)
		return Settlement{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	log.Info("Booking settled", "club", clubName, "competition", competitionName, "places", booking.Places,
		"points_left", s.clubs[ci].Points, "places_left", s.competitions[pi].NumberOfPlaces)
	return Settlement{
		Booking:    booking,
		PointsLeft: int(s.clubs[ci].Points),
		PlacesLeft: int(s.competitions[pi].NumberOfPlaces),
	}, nil
}

func (s *store) decideLocked(clubName, competitionName string, decide DecideFunc) (Booking, int, int, error) {
	ci := s.clubIndexLocked(clubName)
	pi := s.competitionIndexLocked(competitionName)

	var clubCopy *Club
	if ci >= 0 {
		c := s.clubs[ci]
		clubCopy = &c
	}
	var competitionCopy *Competition
	if pi >= 0 {
		c := s.competitions[pi]
		competitionCopy = &c
	}

	booking, err := decide(clubCopy, competitionCopy)
	return booking, ci, pi, err
}

// persistLocked rewrites clubs, competitions and bookings in that order.
func (s *store) persistLocked() error {
	type snapshot struct {
		path string
		data []byte
		ok   bool
	}
	var written []snapshot

	writes := []struct {
		path  string
		write func() error
	}{
		{s.paths.Clubs, func() error { return storage.WriteCollection(s.paths.Clubs, clubsKey, s.clubs) }},
		{s.paths.Competitions, func() error { return storage.WriteCollection(s.paths.Competitions, competitionsKey, s.competitions) }},
		{s.paths.Bookings, func() error { return storage.WriteCollection(s.paths.Bookings, bookingsKey, s.bookings) }},
	}

	for _, w := range writes {
		data, ok, err := storage.Snapshot(w.path)
		if err == nil {
			err = w.write()
		}
		if err != nil {
			for i := len(written) - 1; i >= 0; i-- {
				snap := written[i]
				if rerr := storage.Restore(snap.path, snap.data, snap.ok); rerr != nil {
					log.Error("Failed to restore collection file", "path", snap.path, "error", rerr)
				}
			}
			return err
		}
		written = append(written, snapshot{path: w.path, data: data, ok: ok})
	}
	return nil
}

func (s *store) clubIndexLocked(name string) int {
	return slices.IndexFunc(s.clubs, func(c Club) bool { return c.Name == name })
}

func (s *store) competitionIndexLocked(name string) int {
	return slices.IndexFunc(s.competitions, func(c Competition) bool { return c.Name == name })
}
