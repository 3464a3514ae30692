package middlewares

import (
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/mailrelay/internal/respond"
	"github.com/dmitrymomot/mailrelay/pkg/logger"
)

// DefaultStackSize is the maximum captured stack trace size in bytes.
const DefaultStackSize = 4096

// Recover returns middleware that converts panics into a 500 envelope.
// The stack trace is always logged; it is included in the response body
// only when exposeStack is true (development mode). No panic is fatal to
// the process.
func Recover(log *slog.Logger, exposeStack bool) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNope()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				stack := make([]byte, DefaultStackSize)
				stack = stack[:runtime.Stack(stack, false)]

				log.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("stack", string(stack)),
				)

				body := ""
				if exposeStack {
					body = string(stack)
				}
				respond.Error(w, http.StatusInternalServerError, "internal server error", body)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
