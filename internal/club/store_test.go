package club_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kylianebat7/gudlft/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func testClubs() []club.Club {
	return []club.Club{
		{Name: "Simply Lift", Email: "john@simplylift.co", Points: 20},
		{Name: "Iron Temple", Email: "admin@irontemple.com", Points: 5},
		{Name: "She Lifts", Email: "kate@shelifts.co.uk", Points: 12},
	}
}

func testCompetitions() []club.Competition {
	return []club.Competition{
		{Name: "Spring Festival", Date: "2027-03-27 10:00:00", NumberOfPlaces: 30, Category: "Senior"},
		{Name: "Fall Classic", Date: "2020-10-22 13:30:00", NumberOfPlaces: 13},
	}
}

// setupTestStore writes the fixture collections into a temp dir and opens a store on them.
func setupTestStore(t *testing.T) (club.ClubStore, club.Paths) {
	t.Helper()

	dir := t.TempDir()
	paths := club.Paths{
		Clubs:        filepath.Join(dir, "clubs.json"),
		Competitions: filepath.Join(dir, "competitions.json"),
		Bookings:     filepath.Join(dir, "bookings.json"),
	}
	require.NoError(t, club.Seed(paths, testClubs(), testCompetitions(), nil))

	store, err := club.New(paths)
	require.NoError(t, err)
	return store, paths
}

func acceptPlaces(places int) club.DecideFunc {
	return func(c *club.Club, comp *club.Competition) (club.Booking, error) {
		return club.Booking{
			ClubName:        c.Name,
			CompetitionName: comp.Name,
			Category:        comp.BookingCategory(),
			Places:          places,
			DateBooked:      testNow.Format(club.DateLayout),
		}, nil
	}
}

func TestNew_MissingBookingsFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	paths := club.Paths{
		Clubs:        filepath.Join(dir, "clubs.json"),
		Competitions: filepath.Join(dir, "competitions.json"),
		Bookings:     filepath.Join(dir, "bookings.json"),
	}
	require.NoError(t, club.Seed(paths, testClubs(), testCompetitions(), nil))
	require.NoError(t, os.Remove(paths.Bookings))

	store, err := club.New(paths)
	require.NoError(t, err)
	assert.Empty(t, store.AllBookings())
}

func TestNew_MissingClubsFileFails(t *testing.T) {
	dir := t.TempDir()
	paths := club.Paths{
		Clubs:        filepath.Join(dir, "clubs.json"),
		Competitions: filepath.Join(dir, "competitions.json"),
		Bookings:     filepath.Join(dir, "bookings.json"),
	}

	_, err := club.New(paths)
	assert.ErrorIs(t, err, club.ErrStorageFailure)
}

func TestNew_ReadsStringQuantities(t *testing.T) {
	dir := t.TempDir()
	paths := club.Paths{
		Clubs:        filepath.Join(dir, "clubs.json"),
		Competitions: filepath.Join(dir, "competitions.json"),
		Bookings:     filepath.Join(dir, "bookings.json"),
	}
	require.NoError(t, os.WriteFile(paths.Clubs, []byte(`{"clubs": [{"name": "Simply Lift", "email": "john@simplylift.co", "points": "13"}]}`), 0o644))
	require.NoError(t, os.WriteFile(paths.Competitions, []byte(`{"competitions": [
		{"name": "Spring Festival", "date": "2027-03-27 10:00:00", "numberOfPlaces": "25"},
		{"name": "Broken", "date": "2027-03-27 10:00:00", "numberOfPlaces": "lots"}
	]}`), 0o644))

	store, err := club.New(paths)
	require.NoError(t, err)

	c, ok := store.FindClubByName("Simply Lift")
	require.True(t, ok)
	assert.Equal(t, club.Count(13), c.Points)

	comp, ok := store.FindCompetitionByName("Spring Festival")
	require.True(t, ok)
	assert.Equal(t, club.Count(25), comp.NumberOfPlaces)

	broken, ok := store.FindCompetitionByName("Broken")
	require.True(t, ok)
	assert.Equal(t, club.Count(0), broken.NumberOfPlaces)
}

func TestLookups(t *testing.T) {
	store, _ := setupTestStore(t)

	t.Run("club by email", func(t *testing.T) {
		c, ok := store.FindClubByEmail("admin@irontemple.com")
		require.True(t, ok)
		assert.Equal(t, "Iron Temple", c.Name)

		_, ok = store.FindClubByEmail("nobody@example.com")
		assert.False(t, ok)
	})

	t.Run("club by name", func(t *testing.T) {
		c, ok := store.FindClubByName("She Lifts")
		require.True(t, ok)
		assert.Equal(t, "kate@shelifts.co.uk", c.Email)

		_, ok = store.FindClubByName("she lifts")
		assert.False(t, ok, "lookups are exact")
	})

	t.Run("competition by name", func(t *testing.T) {
		comp, ok := store.FindCompetitionByName("Spring Festival")
		require.True(t, ok)
		assert.Equal(t, club.Count(30), comp.NumberOfPlaces)

		_, ok = store.FindCompetitionByName("Winter Open")
		assert.False(t, ok)
	})

	t.Run("repeated lookups are identical", func(t *testing.T) {
		first, _ := store.FindClubByEmail("john@simplylift.co")
		second, _ := store.FindClubByEmail("john@simplylift.co")
		assert.Equal(t, first, second)

		firstComp, _ := store.FindCompetitionByName("Fall Classic")
		secondComp, _ := store.FindCompetitionByName("Fall Classic")
		assert.Equal(t, firstComp, secondComp)
	})
}

func TestListCompetitions_AnnotatesState(t *testing.T) {
	store, _ := setupTestStore(t)

	views := store.ListCompetitions(testNow)
	require.Len(t, views, 2)
	assert.Equal(t, "Spring Festival", views[0].Name)
	assert.False(t, views[0].IsPast)
	assert.Equal(t, "Fall Classic", views[1].Name)
	assert.True(t, views[1].IsPast)
}

func TestListClubs_ReturnsCopy(t *testing.T) {
	store, _ := setupTestStore(t)

	clubs := store.ListClubs()
	require.Len(t, clubs, 3)
	clubs[0].Points = 999

	c, _ := store.FindClubByName("Simply Lift")
	assert.Equal(t, club.Count(20), c.Points)
}

func TestSettle_AppliesAndPersists(t *testing.T) {
	store, paths := setupTestStore(t)

	settlement, err := store.Settle("Simply Lift", "Spring Festival", acceptPlaces(8))
	require.NoError(t, err)
	booking := settlement.Booking
	assert.Equal(t, 8, booking.Places)
	assert.Equal(t, "Senior", booking.Category)
	assert.Equal(t, 12, settlement.PointsLeft)
	assert.Equal(t, 22, settlement.PlacesLeft)

	c, _ := store.FindClubByName("Simply Lift")
	assert.Equal(t, club.Count(12), c.Points)
	comp, _ := store.FindCompetitionByName("Spring Festival")
	assert.Equal(t, club.Count(22), comp.NumberOfPlaces)
	assert.Len(t, store.BookingsForClub("Simply Lift"), 1)
	assert.Empty(t, store.BookingsForClub("Iron Temple"))

	// A fresh store sees the same state on disk.
	reopened, err := club.New(paths)
	require.NoError(t, err)
	c, _ = reopened.FindClubByName("Simply Lift")
	assert.Equal(t, club.Count(12), c.Points)
	comp, _ = reopened.FindCompetitionByName("Spring Festival")
	assert.Equal(t, club.Count(22), comp.NumberOfPlaces)
	assert.Equal(t, []club.Booking{booking}, reopened.AllBookings())
}

func TestSettle_RejectionLeavesStateUnchanged(t *testing.T) {
	store, _ := setupTestStore(t)
	rejection := errors.New("rejected")

	var sawClub *club.Club
	var sawCompetition *club.Competition
	_, err := store.Settle("Simply Lift", "Nope", func(c *club.Club, comp *club.Competition) (club.Booking, error) {
		sawClub, sawCompetition = c, comp
		return club.Booking{}, rejection
	})
	assert.ErrorIs(t, err, rejection)
	require.NotNil(t, sawClub)
	assert.Nil(t, sawCompetition)

	c, _ := store.FindClubByName("Simply Lift")
	assert.Equal(t, club.Count(20), c.Points)
	assert.Empty(t, store.AllBookings())
}

func TestSettle_RefusesOverdraw(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.Settle("Iron Temple", "Spring Festival", acceptPlaces(6))
	assert.ErrorIs(t, err, club.ErrInconsistentBooking)

	_, err = store.Settle("Simply Lift", "Fall Classic", acceptPlaces(14))
	assert.ErrorIs(t, err, club.ErrInconsistentBooking)

	_, err = store.Settle("Simply Lift", "Spring Festival", acceptPlaces(0))
	assert.ErrorIs(t, err, club.ErrInconsistentBooking)

	c, _ := store.FindClubByName("Iron Temple")
	assert.Equal(t, club.Count(5), c.Points)
	assert.Empty(t, store.AllBookings())
}

func TestSettle_RollsBackOnWriteFailure(t *testing.T) {
	dir := t.TempDir()
	paths := club.Paths{
		Clubs:        filepath.Join(dir, "clubs.json"),
		Competitions: filepath.Join(dir, "competitions.json"),
		Bookings:     filepath.Join(dir, "bookings.json"),
	}
	require.NoError(t, club.Seed(paths, testClubs(), testCompetitions(), nil))
	clubsBefore, err := os.ReadFile(paths.Clubs)
	require.NoError(t, err)
	competitionsBefore, err := os.ReadFile(paths.Competitions)
	require.NoError(t, err)

	// The bookings file lives in a directory that does not exist, so its write fails
	// after clubs and competitions have already been rewritten.
	paths.Bookings = filepath.Join(dir, "missing", "bookings.json")
	store, err := club.New(paths)
	require.NoError(t, err)

	_, err = store.Settle("Simply Lift", "Spring Festival", acceptPlaces(8))
	require.ErrorIs(t, err, club.ErrStorageFailure)

	c, _ := store.FindClubByName("Simply Lift")
	assert.Equal(t, club.Count(20), c.Points)
	comp, _ := store.FindCompetitionByName("Spring Festival")
	assert.Equal(t, club.Count(30), comp.NumberOfPlaces)
	assert.Empty(t, store.AllBookings())

	clubsAfter, err := os.ReadFile(paths.Clubs)
	require.NoError(t, err)
	assert.Equal(t, string(clubsBefore), string(clubsAfter))
	competitionsAfter, err := os.ReadFile(paths.Competitions)
	require.NoError(t, err)
	assert.Equal(t, string(competitionsBefore), string(competitionsAfter))
}

func TestInspect_DoesNotMutate(t *testing.T) {
	store, _ := setupTestStore(t)

	settlement, err := store.Inspect("Simply Lift", "Spring Festival", acceptPlaces(8))
	require.NoError(t, err)
	assert.Equal(t, 8, settlement.Booking.Places)
	assert.Equal(t, 12, settlement.PointsLeft)
	assert.Equal(t, 22, settlement.PlacesLeft)

	c, _ := store.FindClubByName("Simply Lift")
	assert.Equal(t, club.Count(20), c.Points)
	assert.Empty(t, store.AllBookings())
}

func TestReloadCompetitions_PicksUpNewEntries(t *testing.T) {
	store, paths := setupTestStore(t)

	competitions := append(testCompetitions(), club.Competition{Name: "Winter Open", Date: "2027-01-10 09:00:00", NumberOfPlaces: 8})
	require.NoError(t, club.Seed(paths, testClubs(), competitions, nil))

	_, ok := store.FindCompetitionByName("Winter Open")
	assert.False(t, ok)

	require.NoError(t, store.ReloadCompetitions())
	comp, ok := store.FindCompetitionByName("Winter Open")
	require.True(t, ok)
	assert.Equal(t, club.Count(8), comp.NumberOfPlaces)
}

func TestReload_KeepsStateOnFailure(t *testing.T) {
	store, paths := setupTestStore(t)
	require.NoError(t, os.WriteFile(paths.Clubs, []byte(`not json`), 0o644))

	err := store.Reload()
	assert.ErrorIs(t, err, club.ErrStorageFailure)

	_, ok := store.FindClubByName("Simply Lift")
	assert.True(t, ok, "previous snapshot stays in place")
}

func TestReload_DoesNotUndoConcurrentSettlements(t *testing.T) {
	dir := t.TempDir()
	paths := club.Paths{
		Clubs:        filepath.Join(dir, "clubs.json"),
		Competitions: filepath.Join(dir, "competitions.json"),
		Bookings:     filepath.Join(dir, "bookings.json"),
	}
	const inventory = 100000
	require.NoError(t, club.Seed(paths,
		[]club.Club{{Name: "Simply Lift", Email: "john@simplylift.co", Points: inventory}},
		[]club.Competition{{Name: "Spring Festival", Date: "2027-03-27 10:00:00", NumberOfPlaces: inventory}},
		nil))
	store, err := club.New(paths)
	require.NoError(t, err)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				assert.NoError(t, store.ReloadCompetitions())
			}
		}
	}()
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				assert.NoError(t, store.Reload())
			}
		}
	}()

	const settlements = 300
	for i := 0; i < settlements; i++ {
		_, err := store.Settle("Simply Lift", "Spring Festival", acceptPlaces(1))
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()

	booked := 0
	for _, b := range store.AllBookings() {
		booked += b.Places
	}
	comp, _ := store.FindCompetitionByName("Spring Festival")
	c, _ := store.FindClubByName("Simply Lift")

	assert.Equal(t, settlements, booked)
	assert.Equal(t, inventory, booked+int(comp.NumberOfPlaces), "booked plus remaining must equal the original inventory")
	assert.Equal(t, inventory, booked+int(c.Points), "booked plus remaining points must equal the original balance")

	reopened, err := club.New(paths)
	require.NoError(t, err)
	comp, _ = reopened.FindCompetitionByName("Spring Festival")
	assert.Equal(t, inventory-settlements, int(comp.NumberOfPlaces))
	assert.Len(t, reopened.AllBookings(), settlements)
}
