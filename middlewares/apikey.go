package middlewares

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/mailrelay/internal/respond"
	"github.com/dmitrymomot/mailrelay/pkg/logger"
)

// APIKeyHeader is the header carrying the shared secret.
const APIKeyHeader = "X-API-Key"

// APIKey returns middleware that rejects requests without a matching shared
// secret. A missing key and a wrong key both yield 401, with distinct
// messages so clients can tell a forgotten header from a stale secret.
//
// Apply it only to the send route; health and diagnostic endpoints stay open.
func APIKey(secret string, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNope()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(APIKeyHeader)

			if key == "" {
				log.WarnContext(r.Context(), "api key missing",
					slog.String("path", r.URL.Path),
				)
				respond.Error(w, http.StatusUnauthorized, "missing API key", "")
				return
			}

			if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
				log.WarnContext(r.Context(), "api key invalid",
					slog.String("path", r.URL.Path),
				)
				respond.Error(w, http.StatusUnauthorized, "invalid API key", "")
				return
			}

			log.DebugContext(r.Context(), "api key accepted",
				slog.String("path", r.URL.Path),
			)
			next.ServeHTTP(w, r)
		})
	}
}
