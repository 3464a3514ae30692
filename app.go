package mailrelay

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailrelay/internal/handlers"
	"github.com/dmitrymomot/mailrelay/middlewares"
	"github.com/dmitrymomot/mailrelay/pkg/logger"
	"github.com/dmitrymomot/mailrelay/pkg/mailer"
	"github.com/dmitrymomot/mailrelay/pkg/mailer/stdout"
)

// DefaultShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
const DefaultShutdownTimeout = 10 * time.Second

// App assembles the relay: router, request gate, dispatcher.
type App struct {
	cfg             Config
	log             *slog.Logger
	sender          mailer.Sender
	router          chi.Router
	shutdownTimeout time.Duration
	done            chan struct{}
}

// New creates the relay application. Without options it logs nowhere and
// delivers via the stdout provider; production wiring passes WithLogger
// and WithSender.
func New(cfg Config, opts ...Option) *App {
	a := &App{
		cfg:             cfg,
		log:             logger.NewNope(),
		shutdownTimeout: DefaultShutdownTimeout,
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.sender == nil {
		a.sender = stdout.New(a.log)
	}

	a.router = a.buildRouter()
	return a
}

// Handler returns the relay's HTTP handler, fully wired. Exposed for tests
// and for embedding into an existing server.
func (a *App) Handler() http.Handler {
	return a.router
}

// buildRouter wires the middleware pipeline and routes.
//
// Order matters: request ID and logging first, recovery before anything
// that can panic, then the CORS gate. The CORS middleware also intercepts
// every OPTIONS request, so preflights never reach the credential check.
// The API key gate applies to the send route only.
func (a *App) buildRouter() chi.Router {
	origins := a.cfg.Origins()

	r := chi.NewRouter()
	r.Use(middlewares.RequestID())
	r.Use(middlewares.Logging(a.log))
	r.Use(middlewares.Recover(a.log, a.cfg.IsDevelopment()))
	r.Use(middlewares.CORS(origins, middlewares.WithCORSLogger(a.log)))

	r.Method(http.MethodGet, "/health", handlers.NewHealth(a.cfg.Environment, origins))
	r.Method(http.MethodGet, "/cors-test", handlers.CORSCheck())

	r.With(middlewares.APIKey(a.cfg.APIKey, a.log)).
		Method(http.MethodPost, "/send-email", handlers.NewSend(a.sender, a.cfg.DefaultSender(), a.log))

	r.NotFound(handlers.NotFound())
	r.MethodNotAllowed(handlers.MethodNotAllowed())

	return r
}
