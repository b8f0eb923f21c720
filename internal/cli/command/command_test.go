package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/yndnr/tokgate/internal/cli/config"
	"github.com/yndnr/tokgate/internal/cli/connection"
	"github.com/yndnr/tokgate/internal/core/service"
	"github.com/yndnr/tokgate/internal/server/httpserver"
	"github.com/yndnr/tokgate/internal/telemetry/logger"
	"github.com/yndnr/tokgate/pkg/crypto/keystore"
)

type captureNotifier struct {
	mu    sync.Mutex
	token string
	err   error
}

func (n *captureNotifier) Deliver(_ context.Context, _, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.token = token
	return n.err
}

func (n *captureNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.token
}

type cliEnv struct {
	server   *httptest.Server
	notifier *captureNotifier
	config   string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	ks, err := keystore.New()
	if err != nil {
		t.Fatalf("keystore.New() error = %v", err)
	}
	t.Cleanup(ks.Destroy)

	cfg := service.DefaultTokenServiceConfig()
	cfg.Logger = logger.Discard()
	tokens, err := service.NewTokenService(ks, cfg)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	env := &cliEnv{
		notifier: &captureNotifier{},
		config:   filepath.Join(t.TempDir(), "cli.yaml"),
	}
	auth := service.NewAuthService(tokens, env.notifier, &service.AuthServiceConfig{Logger: logger.Discard()})

	env.server = httptest.NewServer(httpserver.NewRouter(&httpserver.RouterConfig{
		Tokens:   tokens,
		Sessions: auth,
		Version:  "v9.9.9",
		Logger:   logger.Discard(),
	}))
	t.Cleanup(env.server.Close)
	return env
}

// run executes the CLI against the test server and returns stdout.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = io.Discard

	full := append([]string{"tokgate-cli", "--config", e.config, "--server", e.server.URL}, args...)
	err := app.Run(full)
	return out.String(), err
}

func TestApp(t *testing.T) {
	app := App()
	if app.Name != "tokgate-cli" {
		t.Errorf("Name = %q", app.Name)
	}

	names := make(map[string]bool)
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, want := range []string{"token", "auth", "system", "config"} {
		if !names[want] {
			t.Errorf("missing command %q", want)
		}
	}
}

func TestToken_IssueAndVerify(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "-o", "json", "token", "issue", "alice@example.com")
	if err != nil {
		t.Fatalf("token issue error = %v", err)
	}
	var issued TokenResult
	if err := json.Unmarshal([]byte(out), &issued); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if issued.Token == "" || issued.ExpiresAt.IsZero() {
		t.Fatalf("issued = %+v", issued)
	}

	out, err = env.run(t, "-o", "json", "token", "verify", issued.Token)
	if err != nil {
		t.Fatalf("token verify error = %v", err)
	}
	var verified VerifyResult
	if err := json.Unmarshal([]byte(out), &verified); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !verified.Valid || verified.Identifier != "alice@example.com" {
		t.Errorf("verified = %+v", verified)
	}
}

func TestToken_VerifyInvalid(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "token", "verify", "deadbeef")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("error = %v, want ErrTokenInvalid", err)
	}
	if !strings.Contains(out, "valid") || !strings.Contains(out, "false") {
		t.Errorf("output = %q", out)
	}
}

func TestToken_MissingArgument(t *testing.T) {
	env := newCLIEnv(t)

	if _, err := env.run(t, "token", "issue"); err == nil || !strings.Contains(err.Error(), "IDENTIFIER") {
		t.Errorf("error = %v, want missing IDENTIFIER", err)
	}
}

func TestAuth_Flow(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "-o", "yaml", "auth", "register", "bob@example.com")
	if err != nil {
		t.Fatalf("auth register error = %v", err)
	}
	if !strings.Contains(out, "email: bob@example.com") || !strings.Contains(out, "delivered: true") {
		t.Errorf("register output = %q", out)
	}

	token := env.notifier.last()
	if token == "" {
		t.Fatal("notifier received no token")
	}

	out, err = env.run(t, "-o", "json", "auth", "login", token)
	if err != nil {
		t.Fatalf("auth login error = %v", err)
	}
	var session SessionResult
	if err := json.Unmarshal([]byte(out), &session); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !session.LoggedIn || session.Email != "bob@example.com" || session.ExpiresAt == nil {
		t.Errorf("login = %+v", session)
	}

	out, err = env.run(t, "-o", "json", "auth", "status")
	if err != nil {
		t.Fatalf("auth status error = %v", err)
	}
	session = SessionResult{}
	json.Unmarshal([]byte(out), &session)
	if !session.LoggedIn {
		t.Errorf("status = %+v, want logged in", session)
	}

	if _, err := env.run(t, "auth", "logout"); err != nil {
		t.Fatalf("auth logout error = %v", err)
	}
	out, _ = env.run(t, "-o", "json", "auth", "status")
	session = SessionResult{}
	json.Unmarshal([]byte(out), &session)
	if session.LoggedIn {
		t.Errorf("status after logout = %+v", session)
	}
}

func TestAuth_LoginRejected(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "auth", "login", "not-a-token")
	var apiErr *connection.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *connection.APIError", err)
	}
	if apiErr.Status != 401 {
		t.Errorf("status = %d, want 401", apiErr.Status)
	}
}

func TestAuth_RegisterDeliveryFailure(t *testing.T) {
	env := newCLIEnv(t)
	env.notifier.err = errors.New("smtp down")

	out, err := env.run(t, "-o", "json", "auth", "register", "carol@example.com")
	if err == nil {
		t.Fatal("expected delivery failure")
	}
	if !strings.Contains(out, "carol@example.com") {
		t.Errorf("issued registration not shown: %q", out)
	}
}

func TestSystem_Health(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "system", "health")
	if err != nil {
		t.Fatalf("system health error = %v", err)
	}
	for _, want := range []string{"healthy", "v9.9.9", env.server.URL} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSystem_Version(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "-o", "json", "system", "version")
	if err != nil {
		t.Fatalf("system version error = %v", err)
	}
	var v VersionResult
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if v.Server != "v9.9.9" || v.Client.GoVersion == "" {
		t.Errorf("version = %+v", v)
	}
}

func TestConfig_SetAndShow(t *testing.T) {
	env := newCLIEnv(t)

	if _, err := env.run(t, "config", "set-output", "yaml"); err != nil {
		t.Fatalf("set-output error = %v", err)
	}
	if _, err := env.run(t, "config", "set-output", "xml"); err == nil {
		t.Error("set-output xml should fail")
	}
	if _, err := env.run(t, "config", "set-server", "https://gate.example.com"); err != nil {
		t.Fatalf("set-server error = %v", err)
	}

	cfg, err := config.Load(env.config)
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	if cfg.Output != "yaml" || cfg.Server != "https://gate.example.com" {
		t.Errorf("saved config = %+v", cfg)
	}

	// The --server flag from run() wins over the saved server; the saved
	// output format applies since no -o is given.
	out, err := env.run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(out, "server: "+env.server.URL) || !strings.Contains(out, "output: yaml") {
		t.Errorf("config show = %q", out)
	}
}

func TestResolveSettings_BadOutput(t *testing.T) {
	env := newCLIEnv(t)

	if err := os.WriteFile(env.config, []byte("output: xml\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := env.run(t, "system", "health"); err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("error = %v, want unknown output format", err)
	}
}
