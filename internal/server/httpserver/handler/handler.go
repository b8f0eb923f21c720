package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/yndnr/tokgate/internal/core/domain"
	"github.com/yndnr/tokgate/internal/core/service"
	"github.com/yndnr/tokgate/internal/telemetry/logger"
)

// maxBodyBytes bounds request bodies. A maximal token fits comfortably.
const maxBodyBytes = 64 << 10

// Tokens issues and verifies tokens.
type Tokens interface {
	Issue(identifier string) (string, error)
	Verify(token string) domain.VerifyResult
	ExpiresAt(token string) (time.Time, bool)
}

// Sessions tracks the registered and logged-in principal.
type Sessions interface {
	Register(ctx context.Context, email string) (*service.RegisterResult, error)
	Login(ctx context.Context, token string) (*domain.Principal, error)
	Logout(ctx context.Context)
	CurrentUser() (domain.Principal, bool)
	IsLoggedIn() bool
}

// Config holds the dependencies of Handler.
type Config struct {
	Tokens   Tokens
	Sessions Sessions

	// Ready reports whether the server can issue tokens. Nil means always.
	Ready func() error

	// Version is reported by /health.
	Version string

	Clock  clockwork.Clock
	Logger logger.Logger

	// Wrap decorates each route, for example with per-route metrics.
	Wrap func(pattern string, h http.Handler) http.Handler
}

// Handler serves the API routes.
type Handler struct {
	tokens   Tokens
	sessions Sessions
	ready    func() error
	version  string
	clock    clockwork.Clock
	log      logger.Logger
	started  time.Time
	mux      *http.ServeMux
}

// New creates a Handler and registers its routes.
func New(cfg Config) *Handler {
	h := &Handler{
		tokens:   cfg.Tokens,
		sessions: cfg.Sessions,
		ready:    cfg.Ready,
		version:  cfg.Version,
		clock:    cfg.Clock,
		log:      cfg.Logger,
		mux:      http.NewServeMux(),
	}
	if h.clock == nil {
		h.clock = clockwork.NewRealClock()
	}
	if h.log == nil {
		h.log = logger.Default()
	}
	h.started = h.clock.Now()

	wrap := cfg.Wrap
	if wrap == nil {
		wrap = func(_ string, h http.Handler) http.Handler { return h }
	}
	handle := func(pattern string, fn http.HandlerFunc) {
		h.mux.Handle(pattern, wrap(pattern, fn))
	}

	handle("GET /health", h.handleHealth)
	handle("GET /ready", h.handleReady)

	handle("POST /v1/tokens", h.handleIssueToken)
	handle("POST /v1/tokens/verify", h.handleVerifyToken)

	handle("POST /v1/auth/register", h.handleRegister)
	handle("POST /v1/auth/login", h.handleLogin)
	handle("POST /v1/auth/logout", h.handleLogout)
	handle("GET /v1/auth/status", h.handleStatus)

	h.mux.HandleFunc("/", h.handleNotFound)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, domain.ErrNotFound)
}

// decode reads a JSON body into v, rejecting unknown fields and
// oversized bodies.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		msg := "invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		h.writeError(w, r, domain.ErrBadRequest.WithDetails(msg))
		return false
	}
	return true
}

func (h *Handler) envelope(r *http.Request, code, message string, data any) Response {
	return Response{
		Code:      code,
		Message:   message,
		RequestID: logger.RequestIDFromContext(r.Context()),
		Timestamp: h.clock.Now().UnixMilli(),
		Data:      data,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	h.write(w, status, h.envelope(r, CodeOK, "success", data))
}

// writeError writes err as an envelope. Non-domain errors become
// TG-SYS-5000 and are logged; their text is not sent to the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	h.writeErrorData(w, r, err, nil)
}

func (h *Handler) writeErrorData(w http.ResponseWriter, r *http.Request, err error, data any) {
	var de *domain.DomainError
	if !errors.As(err, &de) {
		logger.L(r.Context()).Error("internal error", "path", r.URL.Path, "error", err)
		de = domain.ErrInternalServer
	}

	message := de.Message
	if de.Details != "" {
		message += ": " + de.Details
	}

	w.Header().Set("X-Error-Code", de.Code)
	h.write(w, StatusForCode(de.Code), h.envelope(r, de.Code, message, data))
}

func (h *Handler) write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

// StatusForCode maps a TG-* error code to an HTTP status. The last four
// digits encode the status times ten; argument errors map to 400.
func StatusForCode(code string) int {
	if len(code) < 4 {
		return http.StatusInternalServerError
	}
	n, err := strconv.Atoi(code[len(code)-4:])
	if err != nil {
		return http.StatusInternalServerError
	}
	if status := n / 10; status >= 400 && status < 600 {
		return status
	}
	if n >= 1000 && n < 2000 {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
