package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/yndnr/tokgate/internal/infra/notify"
	"github.com/yndnr/tokgate/internal/telemetry/logger"
	"github.com/yndnr/tokgate/pkg/crypto/adaptive"
)

const maxNonceLength = 256

// Verify validates the configuration and reports every problem found.
func Verify(cfg *ServerConfig) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	return errors.Join(
		verifyServer(&cfg.Server),
		verifyToken(&cfg.Token),
		verifyNotify(&cfg.Notify),
		verifyMetrics(&cfg.Metrics),
		verifyLog(&cfg.Log),
	)
}

func verifyServer(cfg *ServerSection) error {
	var errs []error

	if cfg.HTTP.Addr == "" {
		errs = append(errs, errors.New("server.http.addr is required"))
	} else if _, _, err := net.SplitHostPort(cfg.HTTP.Addr); err != nil {
		errs = append(errs, fmt.Errorf("server.http.addr: %w", err))
	}

	if cfg.HTTP.TLSEnabled() {
		if cfg.HTTP.TLSCertFile == "" || cfg.HTTP.TLSKeyFile == "" {
			errs = append(errs, errors.New("server.http.tls_cert_file and tls_key_file must be set together"))
		}
		for _, f := range []string{cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile} {
			if f == "" {
				continue
			}
			if _, err := os.Stat(f); err != nil {
				errs = append(errs, fmt.Errorf("server.http tls file: %w", err))
			}
		}
	}

	if cfg.HTTP.ReadTimeout < 0 || cfg.HTTP.IdleTimeout < 0 || cfg.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}
	return errors.Join(errs...)
}

func verifyToken(cfg *TokenSection) error {
	var errs []error
	if cfg.Expiry < time.Second {
		errs = append(errs, fmt.Errorf("token.expiry must be at least 1s, got %s", cfg.Expiry))
	}
	if cfg.NonceLength < 1 || cfg.NonceLength > maxNonceLength {
		errs = append(errs, fmt.Errorf("token.nonce_length must be between 1 and %d, got %d", maxNonceLength, cfg.NonceLength))
	}
	if _, err := adaptive.ParseCipherType(cfg.Cipher); err != nil {
		errs = append(errs, fmt.Errorf("token.cipher: %w", err))
	}
	return errors.Join(errs...)
}

func verifyNotify(cfg *NotifySection) error {
	switch notify.Driver(strings.ToLower(cfg.Driver)) {
	case notify.DriverFile, notify.DriverLog:
		return nil
	case notify.DriverPostmark:
		var errs []error
		if cfg.Postmark.ServerToken == "" {
			errs = append(errs, errors.New("notify.postmark.server_token is required"))
		}
		if cfg.Postmark.From == "" {
			errs = append(errs, errors.New("notify.postmark.from is required"))
		}
		return errors.Join(errs...)
	default:
		return fmt.Errorf("notify.driver: unknown driver %q", cfg.Driver)
	}
}

func verifyMetrics(cfg *MetricsSection) error {
	if cfg.Enabled && !strings.HasPrefix(cfg.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got %q", cfg.Path)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	var errs []error
	if _, err := logger.ParseLevel(cfg.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(cfg.Format) {
	case "", "json", "text", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", cfg.Format))
	}
	return errors.Join(errs...)
}
