package club

import "time"

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	FindClubByEmail(email string) (Club, bool)
	FindClubByName(name string) (Club, bool)
	FindCompetitionByName(name string) (Competition, bool)
	ListClubs() []Club
	ListCompetitions(now time.Time) []CompetitionView
	BookingsForClub(clubName string) []Booking
	AllBookings() []Booking
	// Settle runs decide under the write lock and, if it accepts, applies and persists the booking.
	Settle(clubName, competitionName string, decide DecideFunc) (Settlement, error)
	// Inspect runs decide under the read lock without applying anything. The balances
	// are the ones the booking would leave.
	Inspect(clubName, competitionName string, decide DecideFunc) (Settlement, error)
	// Reload and ReloadCompetitions hold the write lock while reading, so a
	// concurrent Settle is never overwritten by an older copy of the files.
	Reload() error
	ReloadCompetitions() error
}
