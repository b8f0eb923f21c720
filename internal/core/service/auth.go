package service

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/yndnr/tokgate/internal/core/domain"
	"github.com/yndnr/tokgate/internal/telemetry/logger"
	"github.com/yndnr/tokgate/internal/telemetry/metric"
	"github.com/yndnr/tokgate/pkg/token"
)

// Notifier delivers a token to its recipient out of band.
// A nil error means the token was handed off successfully.
type Notifier interface {
	Deliver(ctx context.Context, recipient, token string) error
}

// Tokens is the token codec used by AuthService.
type Tokens interface {
	Issue(identifier string) (string, error)
	Verify(token string) domain.VerifyResult
	Expiry() time.Duration
}

// AuthServiceConfig holds optional dependencies for AuthService.
type AuthServiceConfig struct {
	Clock   clockwork.Clock
	Logger  logger.Logger
	Metrics *metric.Registry
}

// RegisterResult describes a registration.
type RegisterResult struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Delivered bool      `json:"delivered"`
}

// AuthService tracks the single principal of this process.
//
// Register records the principal with a fresh token but does not log it in.
// Login accepts any valid token and binds its identifier.
type AuthService struct {
	tokens   Tokens
	notifier Notifier
	clock    clockwork.Clock
	log      logger.Logger
	metrics  *metric.Registry

	mu      sync.Mutex
	current domain.Principal
}

// NewAuthService creates an AuthService.
func NewAuthService(tokens Tokens, notifier Notifier, cfg *AuthServiceConfig) *AuthService {
	if cfg == nil {
		cfg = &AuthServiceConfig{}
	}
	s := &AuthService{
		tokens:   tokens,
		notifier: notifier,
		clock:    cfg.Clock,
		log:      cfg.Logger,
		metrics:  cfg.Metrics,
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.log == nil {
		s.log = logger.Default()
	}
	s.log = s.log.With("component", "auth")
	return s
}

// Register validates email, issues a token for it, records it as the
// current principal and delivers the token.
//
// A delivery failure returns ErrDeliveryFailed together with a result whose
// Delivered is false. The principal stays recorded, so a token obtained
// another way still logs in.
func (s *AuthService) Register(ctx context.Context, email string) (*RegisterResult, error) {
	email = domain.NormalizeEmail(email)
	if err := domain.ValidateEmail(email); err != nil {
		s.metrics.Registered("invalid_email")
		return nil, err
	}

	tok, err := s.tokens.Issue(email)
	if err != nil {
		s.metrics.Registered("issue_failed")
		return nil, err
	}

	expiresAt := s.clock.Now().Add(s.tokens.Expiry())
	s.mu.Lock()
	s.current = domain.Principal{
		Email:     email,
		Token:     tok,
		ExpiresAt: expiresAt,
	}
	s.mu.Unlock()

	res := &RegisterResult{Email: email, ExpiresAt: expiresAt}
	log := s.logFor(ctx).With("token_fp", token.Fingerprint(tok))

	if s.notifier == nil {
		s.metrics.Registered("delivery_failed")
		return res, domain.ErrDeliveryFailed.WithDetails("no notifier configured")
	}
	if err := s.notifier.Deliver(ctx, email, tok); err != nil {
		s.metrics.Registered("delivery_failed")
		log.Warn("token delivery failed", "error", err)
		return res, domain.ErrDeliveryFailed.WithCause(err)
	}

	res.Delivered = true
	s.metrics.Registered("delivered")
	log.Info("principal registered")
	return res, nil
}

// Login verifies tok and makes its identifier the logged-in principal. The
// session expires when the token does.
func (s *AuthService) Login(ctx context.Context, tok string) (*domain.Principal, error) {
	res := s.tokens.Verify(tok)
	if !res.Valid() {
		s.metrics.LoggedIn("rejected")
		s.logFor(ctx).Debug("login rejected", "status", res.Status.String())
		return nil, domain.ErrNotAuthenticated
	}

	p := domain.Principal{
		Email:     res.Identifier,
		Token:     tok,
		ExpiresAt: res.ExpiresAt,
		LoggedIn:  true,
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()

	s.metrics.LoggedIn("success")
	s.logFor(ctx).Info("principal logged in", "token_fp", token.Fingerprint(tok))
	return &p, nil
}

// CurrentUser returns the recorded principal, registered or logged in.
func (s *AuthService) CurrentUser() (domain.Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current.Email != ""
}

// CurrentToken returns the token of the recorded principal, if any.
func (s *AuthService) CurrentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Token
}

// IsLoggedIn reports whether a principal is logged in and unexpired.
func (s *AuthService) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Active(s.clock.Now())
}

// Logout forgets the current principal.
func (s *AuthService) Logout(ctx context.Context) {
	s.mu.Lock()
	was := s.current.Email != ""
	s.current = domain.Principal{}
	s.mu.Unlock()

	if was {
		s.logFor(ctx).Info("principal logged out")
	}
}

func (s *AuthService) logFor(ctx context.Context) logger.Logger {
	if id := logger.RequestIDFromContext(ctx); id != "" {
		return s.log.With("request_id", id)
	}
	return s.log
}
