package httpserver

import (
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/yndnr/tokgate/internal/server/httpserver/handler"
	"github.com/yndnr/tokgate/internal/telemetry/logger"
	"github.com/yndnr/tokgate/internal/telemetry/metric"
)

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	Tokens   handler.Tokens
	Sessions handler.Sessions

	// Ready gates /ready. Nil means always ready.
	Ready func() error

	// Metrics enables per-route instrumentation and, with MetricsPath,
	// the Prometheus endpoint.
	Metrics     *metric.Registry
	MetricsPath string

	// CORSOrigins enables CORS for the listed origins.
	CORSOrigins []string

	Version string
	Clock   clockwork.Clock
	Logger  logger.Logger
}

// NewRouter builds the HTTP handler with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	api := handler.New(handler.Config{
		Tokens:   cfg.Tokens,
		Sessions: cfg.Sessions,
		Ready:    cfg.Ready,
		Version:  cfg.Version,
		Clock:    cfg.Clock,
		Logger:   log,
		Wrap: func(pattern string, h http.Handler) http.Handler {
			return Instrument(cfg.Metrics, pattern)(h)
		},
	})

	mux := http.NewServeMux()
	mux.Handle("/", api)
	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		mux.Handle("GET "+cfg.MetricsPath, cfg.Metrics.Handler())
	}

	middlewares := []Middleware{Recover(), RequestID(log)}
	if len(cfg.CORSOrigins) > 0 {
		middlewares = append(middlewares, CORS(cfg.CORSOrigins))
	}
	middlewares = append(middlewares, Audit())

	return Chain(mux, middlewares...)
}
