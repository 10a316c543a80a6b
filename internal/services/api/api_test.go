package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/chaoss/grimoirelab-chronicler/internal/adapters/metrics"
	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventizer"
	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventizer/git"
	"github.com/chaoss/grimoirelab-chronicler/internal/modkit"
	phttp "github.com/chaoss/grimoirelab-chronicler/internal/platform/net/http"
	kit "github.com/chaoss/grimoirelab-chronicler/internal/platform/testkit"
	eventizemod "github.com/chaoss/grimoirelab-chronicler/internal/services/eventize/module"

	"github.com/go-chi/chi/v5"
)

func newAPI(t *testing.T, m *metrics.EventizeMetrics) phttp.Router {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{
		Deps:     modkit.Deps{Registry: eventizer.Discover(git.Namespace), Metrics: m},
		Eventize: eventizemod.Options{MaxLineBytes: 1 << 20},
	})
	return r
}

func commitLine(t *testing.T) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "..", "core", "eventizer", "git", "testdata", "commit.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		t.Fatalf("compact: %v", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

func TestMetaRoutes(t *testing.T) {
	r := newAPI(t, nil)
	for _, path := range []string{"/v1/meta/health", "/v1/meta/ready", "/v1/meta/version", "/v1/meta/service"} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != 200 {
			t.Fatalf("%s: status = %d body=%s", path, rec.Code, rec.Body.String())
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s: request id header missing", path)
		}
	}

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/meta/ready", nil))
	kit.MustContain(t, rec.Body.String(), `"status":"ok"`)

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/v1/meta/service", nil))
	kit.MustContain(t, rec.Body.String(), `"sources":["git"]`)
}

func TestEventsAndMetrics(t *testing.T) {
	m := metrics.New(nil)
	r := newAPI(t, m)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("POST", "/v1/events/git", bytes.NewReader(commitLine(t))))
	if rec.Code != 200 {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if n := len(kit.Lines(rec.Body.String())); n != 4 {
		t.Fatalf("events = %d", n)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	kit.MustContain(t, rec.Body.String(), `chronicler_eventize_items_total{source="git",status="ok"} 1`)
}

func TestUnknownSourceIs404Envelope(t *testing.T) {
	r := newAPI(t, nil)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("POST", "/v1/events/jira", nil))
	if rec.Code != 404 {
		t.Fatalf("status = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), `"status_code":404`)
	kit.MustContain(t, rec.Body.String(), `unknown eventizer \"jira\"`)
}

func TestHeartbeat(t *testing.T) {
	r := newAPI(t, nil)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != 200 || rec.Body.String() != "." {
		t.Fatalf("heartbeat = %d %q", rec.Code, rec.Body.String())
	}
}

func TestNoMetricsRouteWithoutMetrics(t *testing.T) {
	r := newAPI(t, nil)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Fatalf("status = %d", rec.Code)
	}
}
