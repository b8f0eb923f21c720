// Package config defines the tokgate-server configuration.
//
//   - spec.go: ServerConfig and its sections
//   - default.go: default values
//   - verify.go: validation before startup
//   - sanitize.go: secret masking for logs and `config show`
//   - convert.go: mapping onto service and notifier configuration
//
// Values are loaded by internal/infra/confloader from a YAML file,
// TOKGATE_* environment variables and command-line overrides.
package config
