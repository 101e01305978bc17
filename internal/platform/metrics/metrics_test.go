package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	kit "reviewlens/internal/platform/testkit"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveHTTP(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/games/{id}", "200"))
	ObserveHTTP("GET", "/games/{id}", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/games/{id}", "200"))
	if after-before != 1 {
		t.Fatalf("counter moved by %v", after-before)
	}

	ObserveHTTP("GET", "", 404, time.Millisecond)
	if testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404")) < 1 {
		t.Fatal("empty route should be labelled unmatched")
	}
}

func TestBackendAndBreaker(t *testing.T) {
	ObserveBackend("games.get", OutcomeRejected, time.Second)
	if testutil.ToFloat64(backendCalls.WithLabelValues("games.get", OutcomeRejected)) < 1 {
		t.Fatal("rejected call not counted")
	}
	SetBreakerState("backend", 2)
	if got := testutil.ToFloat64(breakerState.WithLabelValues("backend")); got != 2 {
		t.Fatalf("breaker gauge = %v", got)
	}
	SetCatalogSources(4)
	if got := testutil.ToFloat64(catalogSources); got != 4 {
		t.Fatalf("catalog gauge = %v", got)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveReshape("calendar(day)", time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	kit.MustContain(t, body, "reviewlens_chart_reshape_duration_seconds")
	kit.MustContain(t, body, "go_goroutines")
}
