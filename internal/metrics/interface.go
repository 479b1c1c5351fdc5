package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncBookingsCompleted()
	IncBookingsRejected(reason string)
	ObservePlacesBooked(places int)
	IncStorageFailures()
	IncReloads()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncEventsPublished()
	IncEventsFailed()
	SetStartupTime(duration float64)
}
