package domain

import (
	"strconv"
	"strings"
	"time"
)

// Token constants.
const (
	// TokenNonceLength is the nonce length in characters.
	TokenNonceLength = 32

	// TokenExpiryHours is the validity window of a token.
	TokenExpiryHours = 24

	// TokenExpiry is TokenExpiryHours as a duration.
	TokenExpiry = TokenExpiryHours * time.Hour

	// BlockSize is the cipher block and IV size in bytes.
	BlockSize = 16

	// MaxIdentifierLength bounds the identifier sealed in a token.
	MaxIdentifierLength = 1024

	// MaxTokenLength bounds the hex length accepted by verification.
	MaxTokenLength = 8192

	// PayloadSeparator separates the payload fields.
	PayloadSeparator = ":"
)

// TokenPayload is the plaintext sealed inside a token:
// identifier ":" issuedAtUnix ":" nonce.
type TokenPayload struct {
	Identifier string
	IssuedAt   int64
	Nonce      string
}

// Pack serializes the payload.
func (p TokenPayload) Pack() string {
	return p.Identifier + PayloadSeparator + strconv.FormatInt(p.IssuedAt, 10) + PayloadSeparator + p.Nonce
}

// IssuedTime returns IssuedAt as a time.
func (p TokenPayload) IssuedTime() time.Time {
	return time.Unix(p.IssuedAt, 0)
}

// ParsePayload unpacks a payload. It requires exactly three fields, a
// non-empty identifier, a base-10 issue time and a nonce of nonceLength
// characters.
func ParsePayload(s string, nonceLength int) (TokenPayload, error) {
	parts := strings.Split(s, PayloadSeparator)
	if len(parts) != 3 {
		return TokenPayload{}, ErrPayloadMalformed.WithDetails("expected 3 fields, got " + strconv.Itoa(len(parts)))
	}
	if parts[0] == "" {
		return TokenPayload{}, ErrPayloadMalformed.WithDetails("empty identifier")
	}

	issuedAt, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return TokenPayload{}, ErrPayloadMalformed.WithDetails("issued_at is not an integer").WithCause(err)
	}
	if len(parts[2]) != nonceLength {
		return TokenPayload{}, ErrPayloadMalformed.WithDetails("nonce length " + strconv.Itoa(len(parts[2])))
	}

	return TokenPayload{
		Identifier: parts[0],
		IssuedAt:   issuedAt,
		Nonce:      parts[2],
	}, nil
}

// ValidateIdentifier checks that an identifier can round-trip through a
// payload.
func ValidateIdentifier(id string) error {
	switch {
	case id == "":
		return ErrMissingArgument.WithDetails("identifier is required")
	case strings.Contains(id, PayloadSeparator):
		return ErrInvalidArgument.WithDetails("identifier must not contain ':'")
	case len(id) > MaxIdentifierLength:
		return ErrInvalidArgument.WithDetails("identifier too long")
	}
	return nil
}

// ValidateTokenFormat reports whether token is non-empty, even-length,
// lowercase hex no longer than MaxTokenLength.
func ValidateTokenFormat(token string) bool {
	if token == "" || len(token)%2 != 0 || len(token) > MaxTokenLength {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

// VerifyStatus is the outcome of token verification.
type VerifyStatus int

const (
	// StatusMalformed covers every token that did not decode, authenticate
	// or unpack.
	StatusMalformed VerifyStatus = iota

	// StatusExpired is a genuine token outside its validity window,
	// including tokens issued in the future.
	StatusExpired

	// StatusValid is a genuine token inside its validity window.
	StatusValid
)

// String returns the status name.
func (s VerifyStatus) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	default:
		return "malformed"
	}
}

// VerifyResult is the outcome of checking a token. Identifier, IssuedAt and
// ExpiresAt are set whenever the payload was recovered, so an expired token
// still reports who it belonged to.
type VerifyResult struct {
	Status     VerifyStatus
	Identifier string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Valid reports whether the token is genuine and unexpired.
func (r VerifyResult) Valid() bool {
	return r.Status == StatusValid
}
