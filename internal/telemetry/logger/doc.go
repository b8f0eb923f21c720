// Package logger provides structured logging for tokgate.
//
// It wraps log/slog:
//
//   - logger.go: Logger interface, JSON and text handlers, a process-wide
//     level that can be changed at runtime (config reload)
//   - context.go: request ID propagation and the L(ctx) shorthand
//   - redact.go: redaction of secrets by attribute key and masking of
//     values that look like issued tokens
//
// Raw tokens must never reach a log line unmasked. Prefer logging a token
// fingerprint under a "_fp" key.
package logger
