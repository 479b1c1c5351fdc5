package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RecordsBookingOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncBookingsCompleted()
	svc.IncBookingsCompleted()
	svc.IncBookingsRejected("insufficient_points")
	svc.IncBookingsRejected("insufficient_points")
	svc.IncBookingsRejected("competition_closed")
	svc.ObservePlacesBooked(8)

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.BookingsCompleted))
	assert.Equal(t, 2.0, testutil.ToFloat64(svc.BookingsRejected.WithLabelValues("insufficient_points")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.BookingsRejected.WithLabelValues("competition_closed")))
	assert.Equal(t, 1, testutil.CollectAndCount(svc.PlacesBooked))
}

func TestMetricsHandler_ExposesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)
	svc.IncReloads()
	svc.SetStartupTime(0.25)

	rr := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/metrics", nil)
	require.NoError(t, err)
	NewMetricsHandler(reg).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "gudlft_collection_reloads_total 1")
	assert.Contains(t, rr.Body.String(), "gudlft_startup_duration_seconds 0.25")
}
