// Package httpserver serves the tokgate HTTP API on net/http.
//
// Routes:
//
//   - Token endpoints: POST /v1/tokens, POST /v1/tokens/verify
//   - Session endpoints: /v1/auth/register, /v1/auth/login,
//     /v1/auth/logout, /v1/auth/status
//   - Operations: /health, /ready, /metrics
//
// Middleware chain, outermost first: Recover, RequestID, CORS (when
// origins are configured), Audit. Each route is additionally wrapped with
// Prometheus instrumentation labelled by its pattern.
package httpserver
