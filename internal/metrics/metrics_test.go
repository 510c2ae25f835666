package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// scrape renders the metrics exposition text.
func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

func TestMetrics_Observe(t *testing.T) {
	m := New("test")

	m.ObserveUpstream("/explore", 50*time.Millisecond, nil)
	m.ObserveUpstream("/explore", 10*time.Millisecond, errors.New("boom"))
	m.ObservePollCycle(nil)
	m.ObserveWhalesEmitted(3)
	m.ObserveWhalesEmitted(0)
	m.SetSubscribers(2)
	m.ObserveHTTP("/api/overview", 200, time.Millisecond)

	out := scrape(t, m)
	for _, want := range []string{
		`test_upstream_requests_total{endpoint="/explore",result="ok"} 1`,
		`test_upstream_requests_total{endpoint="/explore",result="error"} 1`,
		`test_upstream_request_duration_seconds_count{endpoint="/explore"} 2`,
		`test_whale_poll_cycles_total{result="ok"} 1`,
		`test_whale_trades_emitted_total 3`,
		`test_whale_subscribers 2`,
		`test_http_requests_total{code="200",route="/api/overview"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics

	m.ObserveUpstream("/explore", time.Second, nil)
	m.ObserveHTTP("/", 200, time.Second)
	m.ObservePollCycle(nil)
	m.ObserveWhalesEmitted(1)
	m.SetSubscribers(1)

	if m.Registry() != nil {
		t.Error("Registry() on nil Metrics should be nil")
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New("")
	m.SetSubscribers(4)

	if out := scrape(t, m); !strings.Contains(out, "zora_dashboard_whale_subscribers 4") {
		t.Errorf("metrics output missing subscribers gauge:\n%s", out)
	}
}
