package metric

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

// KeySource reports the lifecycle of the process key.
type KeySource interface {
	CreatedAt() time.Time
	Destroyed() bool
}

// SessionSource reports whether a principal is logged in.
type SessionSource interface {
	IsLoggedIn() bool
}

// StateCollector reads key and session state at scrape time.
type StateCollector struct {
	key     KeySource
	session SessionSource
	clock   clockwork.Clock

	keyAge     *prometheus.Desc
	keyPresent *prometheus.Desc
	loggedIn   *prometheus.Desc
}

// NewStateCollector creates a collector. session may be nil.
func NewStateCollector(key KeySource, session SessionSource, clock clockwork.Clock) *StateCollector {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StateCollector{
		key:     key,
		session: session,
		clock:   clock,
		keyAge: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "key", "age_seconds"),
			"Seconds since the token key was generated.", nil, nil),
		keyPresent: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "key", "present"),
			"1 while the token key is held in memory, 0 after it is destroyed.", nil, nil),
		loggedIn: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "logged_in"),
			"1 while a principal is logged in.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *StateCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keyAge
	ch <- c.keyPresent
	if c.session != nil {
		ch <- c.loggedIn
	}
}

// Collect implements prometheus.Collector.
func (c *StateCollector) Collect(ch chan<- prometheus.Metric) {
	present := 1.0
	if c.key.Destroyed() {
		present = 0
	}
	ch <- prometheus.MustNewConstMetric(c.keyPresent, prometheus.GaugeValue, present)
	ch <- prometheus.MustNewConstMetric(c.keyAge, prometheus.GaugeValue,
		c.clock.Now().Sub(c.key.CreatedAt()).Seconds())

	if c.session != nil {
		v := 0.0
		if c.session.IsLoggedIn() {
			v = 1
		}
		ch <- prometheus.MustNewConstMetric(c.loggedIn, prometheus.GaugeValue, v)
	}
}
