package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func header(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set(name, "1")
			next.ServeHTTP(w, req)
		})
	}
}

func write(body string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = w.Write([]byte(body)) }
}

func TestAdaptChi_RootGroupRouteAndMux(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Use(header("X-Root"))
	r.Get("/root", write("root"))
	r.Head("/root", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusNoContent) })

	r.Group(func(gr Router) {
		gr.Use(header("X-Group"))
		if gr.Mux() == nil {
			t.Fatalf("group Mux() returned nil")
		}
		gr.Post("/g/ping", write("g"))
	})

	r.Route("/v1", func(sr Router) {
		sr.Use(header("X-Route"))
		sr.Get("/ping", write("pong"))
		sr.Handle("/raw", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
			w.WriteHeader(stdhttp.StatusAccepted)
		}))
	})

	do := func(method, path string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(method, path, nil))
		return rr
	}

	rr := do(stdhttp.MethodGet, "/root")
	if rr.Code != 200 || rr.Body.String() != "root" || rr.Header().Get("X-Root") != "1" {
		t.Fatalf("/root: %d %q %v", rr.Code, rr.Body.String(), rr.Header())
	}
	if rr.Header().Get("X-Group") != "" {
		t.Fatalf("group middleware leaked onto root route")
	}

	if rr = do(stdhttp.MethodHead, "/root"); rr.Code != stdhttp.StatusNoContent {
		t.Fatalf("HEAD /root: %d", rr.Code)
	}

	rr = do(stdhttp.MethodPost, "/g/ping")
	if rr.Body.String() != "g" || rr.Header().Get("X-Group") != "1" || rr.Header().Get("X-Root") != "1" {
		t.Fatalf("/g/ping: %q %v", rr.Body.String(), rr.Header())
	}
	if rr = do(stdhttp.MethodGet, "/g/ping"); rr.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("GET on POST-only route: %d", rr.Code)
	}

	rr = do(stdhttp.MethodGet, "/v1/ping")
	if rr.Body.String() != "pong" || rr.Header().Get("X-Route") != "1" {
		t.Fatalf("/v1/ping: %q %v", rr.Body.String(), rr.Header())
	}
	if rr = do(stdhttp.MethodGet, "/v1/raw"); rr.Code != stdhttp.StatusAccepted {
		t.Fatalf("/v1/raw: %d", rr.Code)
	}
}
