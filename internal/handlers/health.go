package handlers

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/mailrelay/internal/respond"
	"github.com/dmitrymomot/mailrelay/pkg/origin"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status         string   `json:"status"`
	Timestamp      string   `json:"timestamp"`
	Uptime         string   `json:"uptime"`
	Environment    string   `json:"environment"`
	AllowedOrigins []string `json:"allowedOrigins"`
}

// Health reports liveness. It bypasses both gate checks and always
// returns 200.
type Health struct {
	startedAt   time.Time
	environment string
	origins     *origin.Set
}

// NewHealth creates the health handler.
func NewHealth(environment string, origins *origin.Set) *Health {
	return &Health{
		startedAt:   time.Now(),
		environment: environment,
		origins:     origins,
	}
}

// ServeHTTP implements http.Handler for GET /health.
func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:         "up",
		Timestamp:      respond.Timestamp(),
		Uptime:         time.Since(h.startedAt).Round(time.Second).String(),
		Environment:    h.environment,
		AllowedOrigins: h.origins.List(),
	})
}
