package observability_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_app/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample per family so they show up in the output
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveRender("Delhi")
	observability.ObserveCache("redis", "hit")
	observability.ObserveRateLimited()

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"hotelapp_http_requests_total",
		"hotelapp_render_passes_total",
		"hotelapp_cache_events_total",
		"hotelapp_rate_limited_total",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestServe_EmptyAddrDisabled(t *testing.T) {
	if err := observability.Serve(context.Background(), "", observability.InitRegistry()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
