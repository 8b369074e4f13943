//go:build integration || !unit

package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	server "hotel_app/internal/adapters/http_server"
	"hotel_app/internal/adapters/observability"
	redisad "hotel_app/internal/adapters/redis"
	"hotel_app/internal/app"
	"hotel_app/internal/domain"
)

// ---------- full wiring, as cmd/api does it ----------
func startServer(t *testing.T) (*httptest.Server, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })
	if err := cache.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	srv := server.New(server.Options{Timeout: 5 * time.Second})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Pages: app.NewPageService(domain.DefaultPageConfig(), cache, time.Minute)})

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts, mr
}

func fetch(t *testing.T, url string) (int, string) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return res.StatusCode, string(b)
}

// ---------- the tests ----------
func TestHTTP_EndToEnd_RenderPasses(t *testing.T) {
	ts, mr := startServer(t)

	// default pass, then two interactions
	passes := []struct {
		query string
		want  string
	}{
		{"", "Showing hotels in Delhi for 2 guest(s)."},
		{"?city=Mumbai&guests=5", "Showing hotels in Mumbai for 5 guest(s)."},
		{"?city=Bangalore&guests=1", "Showing hotels in Bangalore for 1 guest(s)."},
	}
	var firstTitle string
	for _, p := range passes {
		status, body := fetch(t, ts.URL+"/"+p.query)
		if status != http.StatusOK {
			t.Fatalf("%q: status %d", p.query, status)
		}
		if !strings.Contains(body, p.want) {
			t.Fatalf("%q: missing %q", p.query, p.want)
		}
		title := body[strings.Index(body, "<title>"):strings.Index(body, "</title>")]
		if firstTitle == "" {
			firstTitle = title
		} else if title != firstTitle {
			t.Fatalf("title changed between passes: %q vs %q", firstTitle, title)
		}
	}

	for _, key := range []string{"hotelapp:page:Delhi:2", "hotelapp:page:Mumbai:5", "hotelapp:page:Bangalore:1"} {
		if !mr.Exists(key) {
			t.Fatalf("expected %s cached, keys=%v", key, mr.Keys())
		}
	}
}

func TestHTTP_EndToEnd_BoundaryGuests(t *testing.T) {
	ts, _ := startServer(t)
	for _, n := range []int{1, 10} {
		status, body := fetch(t, fmt.Sprintf("%s/fragment?guests=%d", ts.URL, n))
		if status != http.StatusOK {
			t.Fatalf("guests=%d: status %d", n, status)
		}
		if !strings.Contains(body, fmt.Sprintf("for %d guest(s).", n)) {
			t.Fatalf("guests=%d did not round-trip: %q", n, body)
		}
	}
	for _, n := range []int{0, 11} {
		if status, _ := fetch(t, fmt.Sprintf("%s/fragment?guests=%d", ts.URL, n)); status != http.StatusBadRequest {
			t.Fatalf("guests=%d: expected 400, got %d", n, status)
		}
	}
}

func TestHTTP_EndToEnd_CacheOutage(t *testing.T) {
	ts, mr := startServer(t)
	mr.Close()

	status, body := fetch(t, ts.URL+"/fragment?city=Mumbai&guests=3")
	if status != http.StatusOK || !strings.Contains(body, "Showing hotels in Mumbai for 3 guest(s).") {
		t.Fatalf("expected uncached render during outage, got %d %q", status, body)
	}
}

func TestHTTP_EndToEnd_Metrics(t *testing.T) {
	ts, _ := startServer(t)
	fetch(t, ts.URL+"/?city=Delhi")
	status, body := fetch(t, ts.URL+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("metrics status %d", status)
	}
	if !strings.Contains(body, `hotelapp_render_passes_total{city="Delhi"}`) {
		t.Fatalf("render counter missing from metrics")
	}
}

func TestStartup_InvalidatesPreviousDeployViews(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })
	ctx := context.Background()

	// a view left behind by an older build
	old := domain.BuildView(domain.PageConfig{Title: "Old Title", Layout: "centered"}, domain.Filters{City: domain.Mumbai, Guests: 4})
	if err := cache.Set(ctx, "page:Mumbai:4", old, time.Hour); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// same order as cmd/api: ping, build the service, sweep the cache
	if err := cache.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	pages := app.NewPageService(domain.DefaultPageConfig(), cache, time.Minute)
	if err := pages.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if mr.Exists("hotelapp:page:Mumbai:4") {
		t.Fatalf("stale view survived startup sweep")
	}

	pv, err := pages.Render(ctx, domain.Filters{City: domain.Mumbai, Guests: 4})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if pv.Config.Title != "Hotel Booking App" {
		t.Fatalf("unexpected title %q", pv.Config.Title)
	}
}
