package logger

import (
	"log/slog"
	"strings"
)

// Attribute keys containing one of these are redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"key",
	"credential",
	"bearer",
	"authorization",
}

// Keys with these suffixes carry derived, non-reversible values.
var safeKeySuffixes = []string{
	"_fp",
	"fingerprint",
}

// minTokenHexLength is the shortest token any cipher emits, in hex:
// 12-byte AEAD nonce, one payload byte and a 16-byte tag.
const minTokenHexLength = 2 * (12 + 1 + 16)

const redactedValue = "***REDACTED***"

func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		v := a.Value.String()
		if v == "" {
			return a
		}
		if IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if IsSensitiveValue(v) {
			return slog.String(a.Key, MaskToken(v))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// MaskToken keeps the first 6 and last 4 characters of a token.
func MaskToken(token string) string {
	if len(token) < 16 {
		return redactedValue
	}
	return token[:6] + "..." + token[len(token)-4:]
}

// IsSensitiveKey reports whether an attribute key suggests secret content.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, s := range safeKeySuffixes {
		if strings.HasSuffix(k, s) {
			return false
		}
	}
	for _, p := range sensitiveKeyPatterns {
		if strings.Contains(k, p) {
			return true
		}
	}
	return false
}

// IsSensitiveValue reports whether a value looks like an issued token:
// long, even-length lowercase hex.
func IsSensitiveValue(v string) bool {
	if len(v) < minTokenHexLength || len(v)%2 != 0 {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}
