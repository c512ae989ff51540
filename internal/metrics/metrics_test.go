package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRefresh(t *testing.T) {
	m := NewManager()

	m.RecordRefresh(nil)
	m.RecordRefresh(nil)
	m.RecordRefresh(errors.New("backend down"))

	if got := testutil.ToFloat64(m.refreshes.WithLabelValues(ResultSuccess)); got != 2 {
		t.Errorf("refresh_total{success} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.refreshes.WithLabelValues(ResultError)); got != 1 {
		t.Errorf("refresh_total{error} = %v, want 1", got)
	}
}

func TestSetUpcoming(t *testing.T) {
	m := NewManager()

	m.SetUpcoming(7)
	m.SetUpcoming(3)

	if got := testutil.ToFloat64(m.upcomingMatches); got != 3 {
		t.Errorf("upcoming_matches = %v, want 3", got)
	}
}

func TestRecordExportAndHTTP(t *testing.T) {
	m := NewManager()

	m.RecordExport("download")
	m.RecordExport("open_link")
	m.RecordExport("download")
	m.RecordHTTPRequest("/api/matches", http.StatusOK)

	if got := testutil.ToFloat64(m.exports.WithLabelValues("download")); got != 2 {
		t.Errorf("exports_total{download} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/matches", "200")); got != 1 {
		t.Errorf("http_requests_total = %v, want 1", got)
	}
}

func TestObserveFetch(t *testing.T) {
	m := NewManager(WithHistogramBuckets([]float64{0.1, 1}))

	m.ObserveFetch("stadium", 50*time.Millisecond)
	m.ObserveFetch("fixtures", 2*time.Second)

	if n := testutil.CollectAndCount(m.fetchDuration); n != 2 {
		t.Errorf("fetch_duration_seconds series = %d, want 2", n)
	}
}

func TestNamespaceAndRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewManager(WithNamespace("test"), WithRegistry(registry))
	m.SetUpcoming(1)

	if m.Registry() != registry {
		t.Fatal("Registry() should return the configured registry")
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "test_upcoming_matches" {
			found = true
		}
	}
	if !found {
		t.Error("expected test_upcoming_matches on the configured registry")
	}
}

func TestHandler(t *testing.T) {
	m := NewManager()
	m.RecordRefresh(nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `stadium_fixtures_refresh_total{result="success"} 1`) {
		t.Errorf("metrics output missing refresh counter:\n%s", rec.Body.String())
	}
}

func TestNilManager(t *testing.T) {
	var m *Manager

	// None of these should panic
	m.RecordRefresh(nil)
	m.ObserveFetch("stadium", time.Second)
	m.SetUpcoming(1)
	m.RecordExport("download")
	m.RecordHTTPRequest("/", http.StatusOK)

	if m.Registry() != nil {
		t.Error("nil manager should have no registry")
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
