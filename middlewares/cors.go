package middlewares

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/mailrelay/pkg/logger"
	"github.com/dmitrymomot/mailrelay/pkg/origin"
)

// DefaultCORSMaxAge is the default preflight cache duration.
const DefaultCORSMaxAge = 12 * time.Hour

// Methods and headers browsers may use against the relay. The send endpoint
// is POST-only, but GET is needed for the health and diagnostic endpoints.
var (
	DefaultAllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	DefaultAllowHeaders = []string{"Content-Type", "Authorization", "X-API-Key"}
)

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowMethods specifies the allowed HTTP methods.
	AllowMethods []string

	// AllowHeaders specifies the allowed request headers.
	AllowHeaders []string

	// MaxAge specifies how long preflight responses can be cached.
	MaxAge time.Duration

	// Logger records origin decisions.
	Logger *slog.Logger
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithAllowMethods overrides the allowed HTTP methods.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowMethods = methods
	}
}

// WithAllowHeaders overrides the allowed request headers.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowHeaders = headers
	}
}

// WithCORSMaxAge sets the preflight cache duration.
func WithCORSMaxAge(d time.Duration) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.MaxAge = d
	}
}

// WithCORSLogger sets the logger for origin decisions.
func WithCORSLogger(log *slog.Logger) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.Logger = log
	}
}

// CORS returns middleware enforcing the origin allow-list.
//
// Requests without an Origin header (non-browser clients) pass through
// untouched; authorization then rests on the API key check alone. Requests
// from a listed origin get the origin echoed back with the allowed methods
// and headers. Unlisted origins get no CORS headers at all — the request
// still executes server-side, but a browser will refuse to expose the
// response. OPTIONS preflights short-circuit before the credential check
// and dispatcher.
func CORS(allowed *origin.Set, opts ...CORSOption) func(http.Handler) http.Handler {
	cfg := &CORSConfig{
		AllowMethods: DefaultAllowMethods,
		AllowHeaders: DefaultAllowHeaders,
		MaxAge:       DefaultCORSMaxAge,
		Logger:       logger.NewNope(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqOrigin := r.Header.Get("Origin")

			if reqOrigin != "" {
				headers := w.Header()
				headers.Add("Vary", "Origin")

				if allowed.Contains(reqOrigin) {
					headers.Set("Access-Control-Allow-Origin", reqOrigin)
					headers.Set("Access-Control-Allow-Methods", allowMethods)
					headers.Set("Access-Control-Allow-Headers", allowHeaders)

					cfg.Logger.InfoContext(r.Context(), "cors origin allowed",
						slog.String("origin", reqOrigin),
					)
				} else {
					cfg.Logger.WarnContext(r.Context(), "cors origin rejected",
						slog.String("origin", reqOrigin),
					)
				}
			}

			// Preflights never reach the credential check or dispatcher.
			if r.Method == http.MethodOptions {
				headers := w.Header()
				headers.Add("Vary", "Access-Control-Request-Method")
				headers.Add("Vary", "Access-Control-Request-Headers")
				if cfg.MaxAge > 0 && headers.Get("Access-Control-Allow-Origin") != "" {
					headers.Set("Access-Control-Max-Age", maxAge)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
