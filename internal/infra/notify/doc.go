// Package notify delivers freshly issued tokens to their recipients.
//
// Three drivers are available:
//   - file: appends each message to a local log file
//   - postmark: sends transactional email through Postmark
//   - log: writes a structured log line with the token fingerprinted
//
// Every driver is wrapped so that deliveries are counted in metrics.
package notify
