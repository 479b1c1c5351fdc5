package notifier

import (
	"context"
	"sync"

	"github.com/kylianebat7/gudlft/internal/club"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendBookingConfirmationFunc func(booking club.Booking, pointsLeft int, dryRun bool) error
	SendPointsBoardFunc         func(clubs []club.Club, dryRun bool) error
	FormatPointsBoardFunc       func(clubs []club.Club) (any, error)

	// Call records
	SendBookingConfirmationCalls []struct {
		Booking    club.Booking
		PointsLeft int
		DryRun     bool
	}
	SendPointsBoardCalls []struct {
		Clubs  []club.Club
		DryRun bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBookingConfirmationCalls = nil
	m.SendPointsBoardCalls = nil
}

func (m *Mock) SendBookingConfirmation(ctx context.Context, booking club.Booking, pointsLeft int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBookingConfirmationCalls = append(m.SendBookingConfirmationCalls, struct {
		Booking    club.Booking
		PointsLeft int
		DryRun     bool
	}{booking, pointsLeft, dryRun})
	if m.SendBookingConfirmationFunc != nil {
		return m.SendBookingConfirmationFunc(booking, pointsLeft, dryRun)
	}
	return nil
}

func (m *Mock) SendPointsBoard(ctx context.Context, clubs []club.Club, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPointsBoardCalls = append(m.SendPointsBoardCalls, struct {
		Clubs  []club.Club
		DryRun bool
	}{clubs, dryRun})
	if m.SendPointsBoardFunc != nil {
		return m.SendPointsBoardFunc(clubs, dryRun)
	}
	return nil
}

func (m *Mock) FormatPointsBoardResponse(clubs []club.Club) (any, error) {
	if m.FormatPointsBoardFunc != nil {
		return m.FormatPointsBoardFunc(clubs)
	}
	return clubs, nil
}
