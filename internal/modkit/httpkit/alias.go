// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "github.com/chaoss/grimoirelab-chronicler/internal/platform/net/http"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/net/http/bind"

	"github.com/go-chi/chi/v5"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.Call(fn) }

// RespondError writes err as an error envelope
func RespondError(w http.ResponseWriter, r *http.Request, err error) { phttp.RespondError(w, r, err) }

// Param returns the named URL path parameter
func Param(r *http.Request, name string) string { return chi.URLParam(r, name) }

// Query binds and validates query parameters into T
func Query[T any](r *http.Request) (T, error) { return bind.Query[T](r) }
