package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	bookingsCompleted int
	bookingsRejected  map[string]int
	placesBooked      []int
	storageFailures   int
	reloads           int
	slackNotifSent    int
	slackNotifFailed  int
	eventsPublished   int
	eventsFailed      int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		bookingsRejected: make(map[string]int),
		placesBooked:     make([]int, 0),
	}
}

func (m *Mock) IncBookingsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookingsCompleted++
}

func (m *Mock) IncBookingsRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookingsRejected[reason]++
}

func (m *Mock) ObservePlacesBooked(places int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placesBooked = append(m.placesBooked, places)
}

func (m *Mock) IncStorageFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storageFailures++
}

func (m *Mock) IncReloads() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reloads++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncEventsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished++
}

func (m *Mock) IncEventsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// BookingsCompleted returns the number of times IncBookingsCompleted was called.
func (m *Mock) BookingsCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookingsCompleted
}

// BookingsRejected returns the number of rejections recorded for reason.
func (m *Mock) BookingsRejected(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookingsRejected[reason]
}

// PlacesBooked returns every value passed to ObservePlacesBooked.
func (m *Mock) PlacesBooked() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.placesBooked...)
}

// StorageFailures returns the number of times IncStorageFailures was called.
func (m *Mock) StorageFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storageFailures
}

// Reloads returns the number of times IncReloads was called.
func (m *Mock) Reloads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reloads
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// EventsPublished returns the number of times IncEventsPublished was called.
func (m *Mock) EventsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished
}

// EventsFailed returns the number of times IncEventsFailed was called.
func (m *Mock) EventsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsFailed
}
