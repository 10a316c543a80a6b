package httpkit

import (
	"net/http"
	"time"

	"github.com/chaoss/grimoirelab-chronicler/internal/platform/config"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string      // empty disables CORS handling
	Slow        time.Duration // access log warn threshold
}

// StackFromConfig reads CORS_ORIGINS and SLOW from cfg (the CHRONICLER_SERVE_ view)
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		CORSOrigins: cfg.MayCSV("CORS_ORIGINS", nil),
		Slow:        cfg.MayDuration("SLOW", 2*time.Second),
	}
}

// CommonStack returns the baseline middleware slice, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// observability, outside recovery so panics are logged as 500s
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),
	}
	if len(o.CORSOrigins) > 0 {
		stack = append(stack, middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}))
	}
	return stack
}

// Heartbeat answers GET path with 200 before any routing, for probes
func Heartbeat(path string) func(http.Handler) http.Handler { return middleware.Heartbeat(path) }
