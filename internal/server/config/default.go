package config

import (
	"time"

	"github.com/yndnr/tokgate/internal/core/domain"
	"github.com/yndnr/tokgate/internal/infra/notify"
	"github.com/yndnr/tokgate/pkg/crypto/adaptive"
)

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:5080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	DefaultNotifyDriver = string(notify.DriverFile)
	DefaultMetricsPath  = "/metrics"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:        DefaultHTTPAddr,
				ReadTimeout: DefaultReadTimeout,
				IdleTimeout: DefaultIdleTimeout,
			},
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Token: TokenSection{
			Expiry:      domain.TokenExpiry,
			NonceLength: domain.TokenNonceLength,
			Cipher:      string(adaptive.CipherAESCBC),
		},
		Notify: NotifySection{
			Driver:      DefaultNotifyDriver,
			ProductName: notify.DefaultProductName,
			File:        FileConfig{Path: notify.DefaultFilePath},
		},
		Metrics: MetricsSection{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
