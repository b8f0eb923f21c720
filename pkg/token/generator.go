package token

import (
	"crypto/rand"
	"errors"
	"io"
)

// Alphabet is the nonce character set.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultNonceLength is the nonce length in characters.
const DefaultNonceLength = 32

// ErrInvalidLength is returned for a non-positive nonce length.
var ErrInvalidLength = errors.New("token: nonce length must be positive")

// largest multiple of len(Alphabet) that fits in a byte; bytes at or above
// it are discarded so the modulo stays unbiased.
const rejectAbove = 256 - 256%len(Alphabet)

// GenerateNonce returns n random characters from Alphabet.
func GenerateNonce(n int) (string, error) {
	return GenerateNonceFrom(rand.Reader, n)
}

// GenerateNonceFrom is GenerateNonce over an explicit entropy source.
func GenerateNonceFrom(r io.Reader, n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidLength
	}

	out := make([]byte, 0, n)
	buf := make([]byte, n+n/4+1)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	clear(buf)
	return string(out), nil
}

// IsNonce reports whether s is exactly n characters from Alphabet.
func IsNonce(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}
