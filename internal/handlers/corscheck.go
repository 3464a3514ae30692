package handlers

import (
	"net/http"

	"github.com/dmitrymomot/mailrelay/internal/respond"
)

// CORSCheckResponse is the body of GET /cors-test.
type CORSCheckResponse struct {
	Message   string            `json:"message"`
	Origin    string            `json:"origin"`
	Timestamp string            `json:"timestamp"`
	Headers   map[string]string `json:"headers"`
}

// corsHeaderNames are the response headers reported by the diagnostic.
var corsHeaderNames = []string{
	"Access-Control-Allow-Origin",
	"Access-Control-Allow-Methods",
	"Access-Control-Allow-Headers",
}

// CORSCheck reports the effective CORS headers as set by the gate for the
// calling origin. It bypasses the credential check; operators use it to
// debug browser integrations.
func CORSCheck() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The CORS middleware has already run, so the observed headers are
		// exactly what a browser would see.
		headers := make(map[string]string, len(corsHeaderNames))
		for _, name := range corsHeaderNames {
			if v := w.Header().Get(name); v != "" {
				headers[name] = v
			}
		}

		reqOrigin := r.Header.Get("Origin")
		if reqOrigin == "" {
			reqOrigin = "none"
		}

		respond.JSON(w, http.StatusOK, CORSCheckResponse{
			Message:   "CORS check successful",
			Origin:    reqOrigin,
			Timestamp: respond.Timestamp(),
			Headers:   headers,
		})
	})
}
