package service

import (
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/yndnr/tokgate/internal/core/domain"
	"github.com/yndnr/tokgate/internal/telemetry/logger"
	"github.com/yndnr/tokgate/internal/telemetry/metric"
	"github.com/yndnr/tokgate/pkg/crypto/adaptive"
	"github.com/yndnr/tokgate/pkg/crypto/keystore"
	"github.com/yndnr/tokgate/pkg/token"
)

// tokenAAD binds sealed payloads to this token format version.
var tokenAAD = []byte("tokgate.token.v1")

// KeySource provides the working cipher key. The caller wipes the result.
type KeySource interface {
	CipherKey() ([]byte, error)
}

// TokenServiceConfig holds configuration for TokenService.
type TokenServiceConfig struct {
	// Expiry is the validity window of a token (default: 24h).
	Expiry time.Duration

	// NonceLength is the nonce length in characters (default: 32).
	NonceLength int

	// Cipher selects the sealing algorithm (default: aes-cbc-hmac).
	Cipher adaptive.CipherType

	Clock   clockwork.Clock
	Logger  logger.Logger
	Metrics *metric.Registry
}

// DefaultTokenServiceConfig returns default configuration.
func DefaultTokenServiceConfig() *TokenServiceConfig {
	return &TokenServiceConfig{
		Expiry:      domain.TokenExpiry,
		NonceLength: domain.TokenNonceLength,
		Cipher:      adaptive.CipherAESCBC,
	}
}

// TokenService issues and verifies tokens.
type TokenService struct {
	keys        KeySource
	expiry      time.Duration
	nonceLength int
	cipher      adaptive.CipherType
	clock       clockwork.Clock
	log         logger.Logger
	metrics     *metric.Registry
}

// NewTokenService creates a TokenService. Zero config fields take defaults.
func NewTokenService(keys KeySource, cfg *TokenServiceConfig) (*TokenService, error) {
	if keys == nil {
		return nil, domain.ErrMissingArgument.WithDetails("key source is required")
	}
	if cfg == nil {
		cfg = DefaultTokenServiceConfig()
	}

	s := &TokenService{
		keys:        keys,
		expiry:      cfg.Expiry,
		nonceLength: cfg.NonceLength,
		cipher:      cfg.Cipher,
		clock:       cfg.Clock,
		log:         cfg.Logger,
		metrics:     cfg.Metrics,
	}
	if s.expiry == 0 {
		s.expiry = domain.TokenExpiry
	}
	if s.nonceLength == 0 {
		s.nonceLength = domain.TokenNonceLength
	}
	if s.cipher == "" {
		s.cipher = adaptive.CipherAESCBC
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.log == nil {
		s.log = logger.Default()
	}

	switch {
	case s.expiry < time.Second:
		return nil, domain.ErrInvalidArgument.WithDetails("expiry must be at least 1s")
	case s.nonceLength < 0:
		return nil, domain.ErrInvalidArgument.WithDetails("nonce length must be positive")
	}
	if _, err := adaptive.ParseCipherType(string(s.cipher)); err != nil {
		return nil, domain.ErrInvalidArgument.WithDetails("cipher").WithCause(err)
	}

	s.log = s.log.With("component", "token", "cipher", string(s.cipher))
	return s, nil
}

// Expiry returns the validity window.
func (s *TokenService) Expiry() time.Duration {
	return s.expiry
}

// Issue seals identifier, the current time and a fresh nonce into a token.
//
// The identifier must be non-empty and must not contain ':'. Failures of the
// random source or a destroyed key return ErrCryptoUnavailable.
func (s *TokenService) Issue(identifier string) (string, error) {
	tok, err := s.issue(identifier)
	if !errors.Is(err, domain.ErrInvalidArgument) && !errors.Is(err, domain.ErrMissingArgument) {
		s.metrics.TokenIssued(err)
	}
	if err != nil {
		return "", err
	}

	s.log.Debug("token issued", "token_fp", token.Fingerprint(tok))
	return tok, nil
}

func (s *TokenService) issue(identifier string) (string, error) {
	if err := domain.ValidateIdentifier(identifier); err != nil {
		return "", err
	}

	nonce, err := token.GenerateNonce(s.nonceLength)
	if err != nil {
		return "", domain.ErrCryptoUnavailable.WithCause(err)
	}

	payload := domain.TokenPayload{
		Identifier: identifier,
		IssuedAt:   s.clock.Now().Unix(),
		Nonce:      nonce,
	}

	c, err := s.newCipher()
	if err != nil {
		return "", err
	}

	plain := []byte(payload.Pack())
	sealed, err := c.Encrypt(plain, tokenAAD)
	clear(plain)
	if err != nil {
		return "", domain.ErrCryptoUnavailable.WithCause(err)
	}
	return hex.EncodeToString(sealed), nil
}

// Verify checks a token. It never fails: anything that does not decode,
// authenticate and unpack is StatusMalformed, a genuine token outside
// [issuedAt, issuedAt+expiry) is StatusExpired.
func (s *TokenService) Verify(tok string) domain.VerifyResult {
	start := time.Now()
	payload, err := s.open(tok)

	res := domain.VerifyResult{Status: domain.StatusMalformed}
	if payload != nil {
		res.Identifier = payload.Identifier
		res.IssuedAt = payload.IssuedTime()
		res.ExpiresAt = res.IssuedAt.Add(s.expiry)
	}

	outcome := metric.OutcomeValid
	switch {
	case err == nil:
		res.Status = domain.StatusValid
	case errors.Is(err, domain.ErrTokenExpired):
		res.Status = domain.StatusExpired
		outcome = metric.OutcomeExpired
	case errors.Is(err, domain.ErrDecryptionFailed):
		outcome = metric.OutcomeDecryptFailed
	case errors.Is(err, domain.ErrPayloadMalformed):
		outcome = metric.OutcomePayloadMalformed
	default:
		outcome = metric.OutcomeMalformed
	}
	s.metrics.TokenVerified(outcome, time.Since(start))

	if err != nil {
		s.log.Debug("token rejected", "token_fp", token.Fingerprint(tok), "reason", domain.GetErrorCode(err), "error", err)
	}
	return res
}

// ExpiresAt returns when a genuine token stops being valid, expired or not.
// It reports false for anything that does not authenticate and unpack.
func (s *TokenService) ExpiresAt(tok string) (time.Time, bool) {
	payload, _ := s.open(tok)
	if payload == nil {
		return time.Time{}, false
	}
	return payload.IssuedTime().Add(s.expiry), true
}

// open decodes, authenticates and unpacks a token, then checks its age.
// The payload is returned whenever it was recovered, including with
// ErrTokenExpired.
func (s *TokenService) open(tok string) (*domain.TokenPayload, error) {
	if !domain.ValidateTokenFormat(tok) {
		return nil, domain.ErrTokenMalformed
	}
	sealed, err := hex.DecodeString(tok)
	if err != nil {
		return nil, domain.ErrTokenMalformed.WithCause(err)
	}

	c, err := s.newCipher()
	if err != nil {
		return nil, domain.ErrDecryptionFailed.WithCause(err)
	}
	plain, err := c.Decrypt(sealed, tokenAAD)
	if err != nil {
		return nil, domain.ErrDecryptionFailed.WithCause(err)
	}
	defer clear(plain)

	payload, err := domain.ParsePayload(string(plain), s.nonceLength)
	if err != nil {
		return nil, err
	}
	if !token.IsNonce(payload.Nonce, s.nonceLength) {
		return nil, domain.ErrPayloadMalformed.WithDetails("nonce alphabet")
	}

	age := s.clock.Now().Unix() - payload.IssuedAt
	if age < 0 || age >= int64(s.expiry/time.Second) {
		return &payload, domain.ErrTokenExpired.WithDetails("age " + strconv.FormatInt(age, 10) + "s")
	}
	return &payload, nil
}

// newCipher derives the working key and builds the configured cipher. The
// key copy is wiped before returning; the cipher keeps only its own schedule.
func (s *TokenService) newCipher() (adaptive.Cipher, error) {
	key, err := s.keys.CipherKey()
	if err != nil {
		return nil, domain.ErrCryptoUnavailable.WithCause(err)
	}
	defer keystore.Wipe(key)

	c, err := adaptive.NewWithType(key, s.cipher)
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}
	return c, nil
}
