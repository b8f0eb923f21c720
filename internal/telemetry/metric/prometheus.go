package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tokgate"

// Verification outcomes.
const (
	OutcomeValid            = "valid"
	OutcomeExpired          = "expired"
	OutcomeMalformed        = "malformed"
	OutcomeDecryptFailed    = "decrypt_failed"
	OutcomePayloadMalformed = "payload_malformed"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Token metrics
	TokensIssued        prometheus.Counter
	TokenIssueErrors    prometheus.Counter
	TokenVerifications  *prometheus.CounterVec
	TokenVerifyDuration prometheus.Histogram

	// Auth metrics
	Registrations *prometheus.CounterVec
	Logins        *prometheus.CounterVec

	// Notification metrics
	Notifications *prometheus.CounterVec

	// Request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
}

// NewRegistry creates a registry with Go runtime and process collectors and
// all application metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		TokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Total number of tokens issued.",
		}),
		TokenIssueErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_issue_errors_total",
			Help:      "Total number of failed token issuances.",
		}),
		TokenVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_verifications_total",
			Help:      "Token verifications by outcome.",
		}, []string{"outcome"}),
		TokenVerifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "token_verify_duration_seconds",
			Help:      "Time spent verifying a token.",
			Buckets:   []float64{.00001, .000025, .00005, .0001, .00025, .0005, .001, .005},
		}),

		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration attempts by result.",
		}, []string{"result"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),

		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Token deliveries by driver and result.",
		}, []string{"driver", "result"}),

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.TokensIssued,
		r.TokenIssueErrors,
		r.TokenVerifications,
		r.TokenVerifyDuration,
		r.Registrations,
		r.Logins,
		r.Notifications,
		r.RequestsTotal,
		r.RequestDuration,
		r.RequestsInFlight,
	)
	return r
}

// Register adds a collector to the registry.
func (r *Registry) Register(c prometheus.Collector) error {
	if r == nil {
		return nil
	}
	return r.registry.Register(c)
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns the /metrics HTTP handler.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry: r.registry,
	})
}

// TokenIssued records an issuance attempt.
func (r *Registry) TokenIssued(err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.TokenIssueErrors.Inc()
		return
	}
	r.TokensIssued.Inc()
}

// TokenVerified records a verification outcome and its duration.
func (r *Registry) TokenVerified(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.TokenVerifications.WithLabelValues(outcome).Inc()
	r.TokenVerifyDuration.Observe(d.Seconds())
}

// Registered records a registration result.
func (r *Registry) Registered(result string) {
	if r == nil {
		return
	}
	r.Registrations.WithLabelValues(result).Inc()
}

// LoggedIn records a login result.
func (r *Registry) LoggedIn(result string) {
	if r == nil {
		return
	}
	r.Logins.WithLabelValues(result).Inc()
}

// Notified records a delivery result for a notifier driver.
func (r *Registry) Notified(driver string, err error) {
	if r == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.Notifications.WithLabelValues(driver, result).Inc()
}

// ObserveRequest records a served HTTP request.
func (r *Registry) ObserveRequest(method, route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.RequestsTotal.WithLabelValues(method, route, statusClass(status)).Inc()
	r.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
