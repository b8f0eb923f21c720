package config

import "time"

// ServerConfig is the root configuration for tokgate-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server" json:"server" yaml:"server"`
	Token   TokenSection   `koanf:"token" json:"token" yaml:"token"`
	Notify  NotifySection  `koanf:"notify" json:"notify" yaml:"notify"`
	Metrics MetricsSection `koanf:"metrics" json:"metrics" yaml:"metrics"`
	Log     LogSection     `koanf:"log" json:"log" yaml:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http" json:"http" yaml:"http"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr        string        `koanf:"addr" json:"addr" yaml:"addr"`
	TLSCertFile string        `koanf:"tls_cert_file" json:"tls_cert_file,omitempty" yaml:"tls_cert_file,omitempty"`
	TLSKeyFile  string        `koanf:"tls_key_file" json:"tls_key_file,omitempty" yaml:"tls_key_file,omitempty"`
	ReadTimeout time.Duration `koanf:"read_timeout" json:"read_timeout" yaml:"read_timeout"`
	IdleTimeout time.Duration `koanf:"idle_timeout" json:"idle_timeout" yaml:"idle_timeout"`

	// CORSOrigins lists origins allowed to call the API from a browser.
	// Empty disables CORS headers.
	CORSOrigins []string `koanf:"cors_origins" json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`
}

// TLSEnabled reports whether a certificate is configured.
func (h HTTPConfig) TLSEnabled() bool {
	return h.TLSCertFile != "" || h.TLSKeyFile != ""
}

// TokenSection configures token issuance.
type TokenSection struct {
	Expiry      time.Duration `koanf:"expiry" json:"expiry" yaml:"expiry"`
	NonceLength int           `koanf:"nonce_length" json:"nonce_length" yaml:"nonce_length"`
	Cipher      string        `koanf:"cipher" json:"cipher" yaml:"cipher"`
}

// NotifySection configures token delivery.
type NotifySection struct {
	Driver      string         `koanf:"driver" json:"driver" yaml:"driver"`
	ProductName string         `koanf:"product_name" json:"product_name" yaml:"product_name"`
	File        FileConfig     `koanf:"file" json:"file" yaml:"file"`
	Postmark    PostmarkConfig `koanf:"postmark" json:"postmark" yaml:"postmark"`
}

// FileConfig configures the file notifier.
type FileConfig struct {
	Path string `koanf:"path" json:"path" yaml:"path"`
}

// PostmarkConfig configures the Postmark notifier.
type PostmarkConfig struct {
	ServerToken  string `koanf:"server_token" json:"server_token,omitempty" yaml:"server_token,omitempty"`
	AccountToken string `koanf:"account_token" json:"account_token,omitempty" yaml:"account_token,omitempty"`
	From         string `koanf:"from" json:"from,omitempty" yaml:"from,omitempty"`
	BaseURL      string `koanf:"base_url" json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	Enabled bool   `koanf:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `koanf:"path" json:"path" yaml:"path"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}
