package middleware

import (
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/logger"
	pnet "github.com/chaoss/grimoirelab-chronicler/internal/platform/net"
	phttp "github.com/chaoss/grimoirelab-chronicler/internal/platform/net/http"
)

// RecoverJSON converts panics into a JSON 500 and logs the stack with the request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())

			// format stack like chi recover
			stack := strings.Join(strings.Split(string(debug.Stack()), "\n"), "\n\t")
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Msgf("panic recovered\n%s", stack)

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, wire := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
			phttp.JSON(w, status, wire)
		}()
		next.ServeHTTP(w, r)
	})
}
