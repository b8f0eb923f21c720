package token

import (
	"crypto/sha256"
	"encoding/hex"
)

// FingerprintLength is the length of Fingerprint output in hex characters.
const FingerprintLength = 12

// Hash returns the hex SHA-256 of a token.
func Hash(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// Fingerprint returns a short, stable identifier for a token that is safe
// to log. Empty input yields an empty fingerprint.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	return Hash(token)[:FingerprintLength]
}
