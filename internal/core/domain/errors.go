package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
// Codes have the form TG-<AREA>-<NNNN>; the last three digits follow the HTTP
// status the error maps to.
type DomainError struct {
	Code    string // Error code (e.g., "TG-TOKN-4011")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches another DomainError by code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	c := *e
	c.Details = details
	return &c
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	c := *e
	c.Cause = cause
	return &c
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return code == "" || de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Token errors (TOKN). These are internal to token verification: Verify
// reports them through VerifyResult and metrics, never to the caller.
var (
	// ErrTokenMalformed indicates the token is not lowercase hex of a
	// plausible length.
	ErrTokenMalformed = NewDomainError("TG-TOKN-4000", "malformed token")

	// ErrPayloadMalformed indicates the decrypted payload does not unpack.
	ErrPayloadMalformed = NewDomainError("TG-TOKN-4001", "malformed token payload")

	// ErrDecryptionFailed indicates authentication, decryption or padding
	// failed, usually a forged token or one sealed under another key.
	ErrDecryptionFailed = NewDomainError("TG-TOKN-4010", "token decryption failed")

	// ErrTokenExpired indicates the token is outside its validity window.
	ErrTokenExpired = NewDomainError("TG-TOKN-4011", "token expired")
)

// Authentication errors (AUTH).
var (
	// ErrInvalidEmail indicates the email address failed validation.
	ErrInvalidEmail = NewDomainError("TG-AUTH-4001", "invalid email address")

	// ErrNotAuthenticated indicates a login token was rejected.
	ErrNotAuthenticated = NewDomainError("TG-AUTH-4010", "invalid or expired token")
)

// Notification errors (NTFY).
var (
	// ErrDeliveryFailed indicates the token could not be delivered.
	ErrDeliveryFailed = NewDomainError("TG-NTFY-5020", "token delivery failed")
)

// System errors (SYS).
var (
	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = NewDomainError("TG-SYS-4000", "bad request")

	// ErrNotFound indicates an unknown route.
	ErrNotFound = NewDomainError("TG-SYS-4040", "not found")

	// ErrMethodNotAllowed indicates the route exists with another method.
	ErrMethodNotAllowed = NewDomainError("TG-SYS-4050", "method not allowed")

	// ErrInternalServer indicates an internal server error.
	ErrInternalServer = NewDomainError("TG-SYS-5000", "internal server error")

	// ErrServiceUnavailable indicates the service is shutting down.
	ErrServiceUnavailable = NewDomainError("TG-SYS-5030", "service unavailable")

	// ErrCryptoUnavailable indicates no secure random source or a destroyed
	// key. Token issuance cannot proceed.
	ErrCryptoUnavailable = NewDomainError("TG-SYS-5031", "secure random source unavailable")
)

// Argument errors (ARG).
var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("TG-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("TG-ARG-1002", "missing required argument")

	// ErrArgumentConflict indicates conflicting arguments.
	ErrArgumentConflict = NewDomainError("TG-ARG-1003", "argument conflict")
)
