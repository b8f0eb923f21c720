package benchmark

import (
	"fmt"
	"testing"

	"github.com/yndnr/tokgate/internal/core/service"
	"github.com/yndnr/tokgate/internal/telemetry/logger"
	"github.com/yndnr/tokgate/internal/telemetry/metric"
	"github.com/yndnr/tokgate/pkg/crypto/adaptive"
	"github.com/yndnr/tokgate/pkg/crypto/keystore"
)

// Ciphers benchmarked against each other.
var Ciphers = []adaptive.CipherType{
	adaptive.CipherAESCBC,
	adaptive.CipherAESGCM,
	adaptive.CipherChaCha20,
}

const benchIdentifier = "bench.user@example.com"

// newTokenService builds a service over a fresh key.
func newTokenService(b *testing.B, cipher adaptive.CipherType, metrics *metric.Registry) *service.TokenService {
	b.Helper()

	ks, err := keystore.New()
	if err != nil {
		b.Fatalf("keystore.New() error = %v", err)
	}
	b.Cleanup(ks.Destroy)

	cfg := service.DefaultTokenServiceConfig()
	cfg.Cipher = cipher
	cfg.Logger = logger.Discard()
	cfg.Metrics = metrics
	svc, err := service.NewTokenService(ks, cfg)
	if err != nil {
		b.Fatalf("NewTokenService() error = %v", err)
	}
	return svc
}

// issueTokens issues n tokens for distinct identifiers.
func issueTokens(b *testing.B, svc *service.TokenService, n int) []string {
	b.Helper()

	tokens := make([]string, n)
	for i := range tokens {
		tok, err := svc.Issue(fmt.Sprintf("user-%d@example.com", i))
		if err != nil {
			b.Fatalf("Issue() error = %v", err)
		}
		tokens[i] = tok
	}
	return tokens
}
