// Package metric provides Prometheus metrics for tokgate.
//
//   - prometheus.go: the Registry of token, auth, notification and HTTP
//     metrics, and the /metrics handler
//   - collector.go: a scrape-time collector for key age and session state
//
// Each server builds its own Registry; nothing is registered with the
// Prometheus default registry. All Registry methods accept a nil receiver
// so components can run without metrics in tests.
package metric
