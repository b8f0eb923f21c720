package handler

import "time"

// CodeOK is the envelope code of successful responses.
const CodeOK = "OK"

// Response is the standard API response envelope.
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// IssueTokenRequest is the body of POST /v1/tokens.
type IssueTokenRequest struct {
	Identifier string `json:"identifier"`
}

// IssueTokenResponse is returned by POST /v1/tokens.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerifyTokenRequest is the body of POST /v1/tokens/verify and
// POST /v1/auth/login.
type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// VerifyTokenResponse is returned by POST /v1/tokens/verify. Identifier
// and ExpiresAt are only set for valid tokens.
type VerifyTokenResponse struct {
	Valid      bool       `json:"valid"`
	Identifier string     `json:"identifier,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Email string `json:"email"`
}

// RegisterResponse is returned by POST /v1/auth/register.
type RegisterResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Delivered bool      `json:"delivered"`
}

// LoginResponse is returned by POST /v1/auth/login.
type LoginResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StatusResponse is returned by GET /v1/auth/status and POST /v1/auth/logout.
type StatusResponse struct {
	LoggedIn  bool       `json:"logged_in"`
	Email     string     `json:"email,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// HealthResponse is returned by GET /health and GET /ready.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
