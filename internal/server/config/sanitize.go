package config

import "strings"

// Sanitize returns a copy of the config with secrets masked.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	sanitized := *cfg
	sanitized.Server.HTTP.CORSOrigins = append([]string(nil), cfg.Server.HTTP.CORSOrigins...)

	pm := &sanitized.Notify.Postmark
	if pm.ServerToken != "" {
		pm.ServerToken = maskSecret(pm.ServerToken)
	}
	if pm.AccountToken != "" {
		pm.AccountToken = maskSecret(pm.AccountToken)
	}
	return &sanitized
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
