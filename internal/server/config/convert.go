package config

import (
	"github.com/yndnr/tokgate/internal/core/service"
	"github.com/yndnr/tokgate/internal/infra/notify"
	"github.com/yndnr/tokgate/internal/telemetry/logger"
	"github.com/yndnr/tokgate/pkg/crypto/adaptive"
)

// TokenServiceConfig maps the token section onto service configuration.
// Runtime dependencies (clock, logger, metrics) are left for the caller.
func (c *ServerConfig) TokenServiceConfig() (*service.TokenServiceConfig, error) {
	cipher, err := adaptive.ParseCipherType(c.Token.Cipher)
	if err != nil {
		return nil, err
	}
	return &service.TokenServiceConfig{
		Expiry:      c.Token.Expiry,
		NonceLength: c.Token.NonceLength,
		Cipher:      cipher,
	}, nil
}

// NotifyConfig maps the notify section onto notifier configuration.
func (c *ServerConfig) NotifyConfig() notify.Config {
	return notify.Config{
		Driver:      c.Notify.Driver,
		ProductName: c.Notify.ProductName,
		File:        notify.FileConfig{Path: c.Notify.File.Path},
		Postmark: notify.PostmarkConfig{
			ServerToken:  c.Notify.Postmark.ServerToken,
			AccountToken: c.Notify.Postmark.AccountToken,
			From:         c.Notify.Postmark.From,
			BaseURL:      c.Notify.Postmark.BaseURL,
		},
	}
}

// LoggerConfig maps the log section onto logger configuration.
func (c *ServerConfig) LoggerConfig() logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	return cfg
}
