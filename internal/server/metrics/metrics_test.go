package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"healthtrack/backend/internal/telemetry/domain"
)

func TestObserveHTTP(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/v1/profile", "200"))
	ObserveHTTP("GET", "/v1/profile", 200, 15*time.Millisecond)
	ObserveHTTP("GET", "/v1/profile", 200, 5*time.Millisecond)
	if got := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/v1/profile", "200")); got != before+2 {
		t.Errorf("http_requests_total = %v, want %v", got, before+2)
	}
}

func TestEventCounter(t *testing.T) {
	var c EventCounter
	before := testutil.ToFloat64(domainEvents.WithLabelValues(domain.EventMeasurementCreated))
	if err := c.Emit(context.Background(), &domain.Event{EventType: domain.EventMeasurementCreated}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := c.Emit(context.Background(), nil); err != nil {
		t.Fatalf("Emit(nil): %v", err)
	}
	if got := testutil.ToFloat64(domainEvents.WithLabelValues(domain.EventMeasurementCreated)); got != before+1 {
		t.Errorf("domain_events_total = %v, want %v", got, before+1)
	}
}

func TestHandler(t *testing.T) {
	Register()
	Register()
	ObserveHTTP("POST", "/v1/calc", 200, time.Millisecond)
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "healthtrack_http_requests_total") {
		t.Errorf("metrics = %d, missing healthtrack_http_requests_total", w.Code)
	}
}
