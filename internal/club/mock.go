package club

import (
	"sync"
	"time"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use. Unset spies return zero values.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	FindClubByEmailFunc       func(email string) (Club, bool)
	FindClubByNameFunc        func(name string) (Club, bool)
	FindCompetitionByNameFunc func(name string) (Competition, bool)
	ListClubsFunc             func() []Club
	ListCompetitionsFunc      func(now time.Time) []CompetitionView
	BookingsForClubFunc       func(clubName string) []Booking
	AllBookingsFunc           func() []Booking
	SettleFunc                func(clubName, competitionName string, decide DecideFunc) (Settlement, error)
	InspectFunc               func(clubName, competitionName string, decide DecideFunc) (Settlement, error)
	ReloadFunc                func() error
	ReloadCompetitionsFunc    func() error

	// Call records
	SettleCalls []struct {
		ClubName        string
		CompetitionName string
	}
	InspectCalls []struct {
		ClubName        string
		CompetitionName string
	}
	ReloadCalls             int
	ReloadCompetitionsCalls int
}

var _ ClubStore = (*MockStore)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SettleCalls = nil
	m.InspectCalls = nil
	m.ReloadCalls = 0
	m.ReloadCompetitionsCalls = 0
}

func (m *MockStore) FindClubByEmail(email string) (Club, bool) {
	if m.FindClubByEmailFunc != nil {
		return m.FindClubByEmailFunc(email)
	}
	return Club{}, false
}

func (m *MockStore) FindClubByName(name string) (Club, bool) {
	if m.FindClubByNameFunc != nil {
		return m.FindClubByNameFunc(name)
	}
	return Club{}, false
}

func (m *MockStore) FindCompetitionByName(name string) (Competition, bool) {
	if m.FindCompetitionByNameFunc != nil {
		return m.FindCompetitionByNameFunc(name)
	}
	return Competition{}, false
}

func (m *MockStore) ListClubs() []Club {
	if m.ListClubsFunc != nil {
		return m.ListClubsFunc()
	}
	return []Club{}
}

func (m *MockStore) ListCompetitions(now time.Time) []CompetitionView {
	if m.ListCompetitionsFunc != nil {
		return m.ListCompetitionsFunc(now)
	}
	return []CompetitionView{}
}

func (m *MockStore) BookingsForClub(clubName string) []Booking {
	if m.BookingsForClubFunc != nil {
		return m.BookingsForClubFunc(clubName)
	}
	return []Booking{}
}

func (m *MockStore) AllBookings() []Booking {
	if m.AllBookingsFunc != nil {
		return m.AllBookingsFunc()
	}
	return []Booking{}
}

func (m *MockStore) Settle(clubName, competitionName string, decide DecideFunc) (Settlement, error) {
	m.mu.Lock()
	m.SettleCalls = append(m.SettleCalls, struct {
		ClubName        string
		CompetitionName string
	}{clubName, competitionName})
	m.mu.Unlock()
	if m.SettleFunc != nil {
		return m.SettleFunc(clubName, competitionName, decide)
	}
	return Settlement{}, nil
}

func (m *MockStore) Inspect(clubName, competitionName string, decide DecideFunc) (Settlement, error) {
	m.mu.Lock()
	m.InspectCalls = append(m.InspectCalls, struct {
		ClubName        string
		CompetitionName string
	}{clubName, competitionName})
	m.mu.Unlock()
	if m.InspectFunc != nil {
		return m.InspectFunc(clubName, competitionName, decide)
	}
	return Settlement{}, nil
}

func (m *MockStore) Reload() error {
	m.mu.Lock()
	m.ReloadCalls++
	m.mu.Unlock()
	if m.ReloadFunc != nil {
		return m.ReloadFunc()
	}
	return nil
}

func (m *MockStore) ReloadCompetitions() error {
	m.mu.Lock()
	m.ReloadCompetitionsCalls++
	m.mu.Unlock()
	if m.ReloadCompetitionsFunc != nil {
		return m.ReloadCompetitionsFunc()
	}
	return nil
}
