package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/tokgate/internal/core/domain"
	"github.com/yndnr/tokgate/internal/telemetry/logger"
	"github.com/yndnr/tokgate/internal/telemetry/metric"
)

type delivery struct {
	recipient string
	token     string
}

type mockNotifier struct {
	mu     sync.Mutex
	sent   []delivery
	err    error
	onSend func()
}

func (n *mockNotifier) Deliver(_ context.Context, recipient, token string) error {
	if n.onSend != nil {
		n.onSend()
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, delivery{recipient, token})
	return nil
}

func (n *mockNotifier) last() delivery {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return delivery{}
	}
	return n.sent[len(n.sent)-1]
}

type authFixture struct {
	clock    clockwork.FakeClock
	tokens   *TokenService
	notifier *mockNotifier
	auth     *AuthService
	metrics  *metric.Registry
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		clock:    clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0)),
		notifier: &mockNotifier{},
		metrics:  metric.NewRegistry(),
	}
	f.tokens = newTokenService(t, newKeyStore(t), f.clock)
	f.auth = NewAuthService(f.tokens, f.notifier, &AuthServiceConfig{
		Clock:   f.clock,
		Logger:  logger.Discard(),
		Metrics: f.metrics,
	})
	return f
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	res, err := f.auth.Register(ctx, "  alice@example.com ")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if !res.Delivered || res.Email != "alice@example.com" {
		t.Errorf("Register() = %+v", res)
	}
	if want := f.clock.Now().Add(24 * time.Hour); !res.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", res.ExpiresAt, want)
	}

	sent := f.notifier.last()
	if sent.recipient != "alice@example.com" {
		t.Errorf("delivered to %q", sent.recipient)
	}
	if sent.token != f.auth.CurrentToken() {
		t.Error("delivered token differs from CurrentToken()")
	}
	if !f.tokens.Verify(sent.token).Valid() {
		t.Error("delivered token does not verify")
	}

	p, ok := f.auth.CurrentUser()
	if !ok || p.Email != "alice@example.com" {
		t.Errorf("CurrentUser() = %+v, %v", p, ok)
	}
	if f.auth.IsLoggedIn() {
		t.Error("IsLoggedIn() = true before Login")
	}
	if got := testutil.ToFloat64(f.metrics.Registrations.WithLabelValues("delivered")); got != 1 {
		t.Errorf("registrations_total{delivered} = %v, want 1", got)
	}
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	f := newAuthFixture(t)

	for _, email := range []string{"", "not-an-email", "a@", "a:b@example.com"} {
		_, err := f.auth.Register(context.Background(), email)
		if !errors.Is(err, domain.ErrInvalidEmail) {
			t.Errorf("Register(%q) error = %v, want ErrInvalidEmail", email, err)
		}
	}
	if len(f.notifier.sent) != 0 {
		t.Error("no token should be delivered for invalid emails")
	}
	if _, ok := f.auth.CurrentUser(); ok {
		t.Error("invalid registration recorded a principal")
	}
}

func TestAuthService_Register_DeliveryFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.notifier.err = errors.New("smtp down")

	res, err := f.auth.Register(context.Background(), "alice@example.com")
	if !errors.Is(err, domain.ErrDeliveryFailed) {
		t.Fatalf("Register() error = %v, want ErrDeliveryFailed", err)
	}
	if res == nil || res.Delivered {
		t.Fatalf("Register() result = %+v, want Delivered=false", res)
	}
	if _, ok := f.auth.CurrentUser(); !ok {
		t.Error("principal should stay recorded after a delivery failure")
	}
	if f.auth.CurrentToken() == "" {
		t.Error("CurrentToken() should be set after a delivery failure")
	}
}

func TestAuthService_Register_NoNotifier(t *testing.T) {
	f := newAuthFixture(t)
	auth := NewAuthService(f.tokens, nil, &AuthServiceConfig{Clock: f.clock, Logger: logger.Discard()})

	if _, err := auth.Register(context.Background(), "alice@example.com"); !errors.Is(err, domain.ErrDeliveryFailed) {
		t.Errorf("Register() error = %v, want ErrDeliveryFailed", err)
	}
}

func TestAuthService_Register_NoLockDuringDelivery(t *testing.T) {
	f := newAuthFixture(t)
	done := make(chan struct{})
	f.notifier.onSend = func() {
		// Would deadlock if Register held its mutex here.
		f.auth.IsLoggedIn()
		f.auth.CurrentUser()
		close(done)
	}

	if _, err := f.auth.Register(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notifier callback did not run")
	}
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	registeredAt := f.clock.Now()

	if _, err := f.auth.Register(ctx, "alice@example.com"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	tok := f.notifier.last().token

	f.clock.Advance(time.Hour)
	p, err := f.auth.Login(ctx, tok)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if p.Email != "alice@example.com" || !p.LoggedIn {
		t.Errorf("Login() = %+v", p)
	}
	if want := registeredAt.Add(24 * time.Hour); !p.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v (token expiry, not login time)", p.ExpiresAt, want)
	}
	if !f.auth.IsLoggedIn() {
		t.Error("IsLoggedIn() = false after Login")
	}

	f.clock.Advance(23*time.Hour - time.Second)
	if !f.auth.IsLoggedIn() {
		t.Error("IsLoggedIn() = false one second before expiry")
	}
	f.clock.Advance(time.Second)
	if f.auth.IsLoggedIn() {
		t.Error("IsLoggedIn() = true at expiry")
	}
}

func TestAuthService_Login_Rejected(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		token func() string
	}{
		{"garbage", func() string { return "zz" }},
		{"empty", func() string { return "" }},
		{"expired", func() string {
			tok, _ := f.tokens.Issue("alice@example.com")
			f.clock.Advance(25 * time.Hour)
			return tok
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := f.auth.Login(ctx, tt.token())
			if !errors.Is(err, domain.ErrNotAuthenticated) {
				t.Fatalf("Login() error = %v, want ErrNotAuthenticated", err)
			}
			if p != nil {
				t.Errorf("Login() principal = %+v, want nil", p)
			}
			if f.auth.IsLoggedIn() {
				t.Error("IsLoggedIn() = true after rejected login")
			}
		})
	}

	if got := testutil.ToFloat64(f.metrics.Logins.WithLabelValues("rejected")); got != 3 {
		t.Errorf("logins_total{rejected} = %v, want 3", got)
	}
}

func TestAuthService_Login_AnyValidToken(t *testing.T) {
	f := newAuthFixture(t)

	tok, err := f.tokens.Issue("bob@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	p, err := f.auth.Login(context.Background(), tok)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if p.Email != "bob@example.com" {
		t.Errorf("Email = %q, want the token identifier", p.Email)
	}
	if f.auth.CurrentToken() != tok {
		t.Error("CurrentToken() should be the login token")
	}
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.auth.Register(ctx, "alice@example.com")
	f.auth.Login(ctx, f.notifier.last().token)
	f.auth.Logout(ctx)

	if f.auth.IsLoggedIn() {
		t.Error("IsLoggedIn() = true after Logout")
	}
	if _, ok := f.auth.CurrentUser(); ok {
		t.Error("CurrentUser() should be empty after Logout")
	}
	if f.auth.CurrentToken() != "" {
		t.Error("CurrentToken() should be empty after Logout")
	}

	// Logging out twice is harmless.
	f.auth.Logout(ctx)
}

func TestAuthService_Concurrent(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	tok, _ := f.tokens.Issue("alice@example.com")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); f.auth.Login(ctx, tok) }()
		go func() { defer wg.Done(); f.auth.IsLoggedIn(); f.auth.CurrentUser() }()
		go func() { defer wg.Done(); f.auth.Register(ctx, "bob@example.com") }()
	}
	wg.Wait()
}
