package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"
	pnet "github.com/chaoss/grimoirelab-chronicler/internal/platform/net"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/net/middleware"
	kit "github.com/chaoss/grimoirelab-chronicler/internal/platform/testkit"
)

func TestRecoverJSON_PanicBecomes500(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-p"))
	rr := httptest.NewRecorder()
	kit.MustNotPanic(t, func() { h.ServeHTTP(rr, req) })

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") != "rid-p" {
		t.Fatalf("request id not mirrored: %v", rr.Header())
	}
	var w pnet.Wire
	if err := json.Unmarshal(rr.Body.Bytes(), &w); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if w.Code != perr.ErrorCodePanic || w.RequestID != "rid-p" || w.Error == "" {
		t.Fatalf("bad wire: %+v", w)
	}
}

func TestRecoverJSON_AbortHandlerRepanics(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	got := kit.MustPanic(t, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
	if got != http.ErrAbortHandler {
		t.Fatalf("expected ErrAbortHandler, got %v", got)
	}
}

func TestRecoverJSON_NoPanicPassesThrough(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rr.Code)
	}
}
