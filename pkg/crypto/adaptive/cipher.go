package adaptive

import (
	"errors"
	"runtime"
	"strings"
)

// CipherType identifies the cipher algorithm.
type CipherType string

const (
	CipherAESCBC   CipherType = "aes-cbc-hmac"
	CipherAESGCM   CipherType = "aes-gcm"
	CipherChaCha20 CipherType = "chacha20-poly1305"
	CipherAuto     CipherType = "auto"
)

// Cipher errors.
var (
	ErrInvalidKeySize     = errors.New("adaptive: invalid key size")
	ErrUnknownCipher      = errors.New("adaptive: unknown cipher type")
	ErrCiphertextTooShort = errors.New("adaptive: ciphertext too short")
	ErrAuthentication     = errors.New("adaptive: message authentication failed")
	ErrPadding            = errors.New("adaptive: invalid padding")
)

// Cipher seals and opens byte strings.
type Cipher interface {
	// Type returns the cipher type.
	Type() CipherType

	// Encrypt encrypts plaintext with additional data.
	Encrypt(plaintext, additionalData []byte) ([]byte, error)

	// Decrypt decrypts ciphertext with additional data.
	Decrypt(ciphertext, additionalData []byte) ([]byte, error)

	// NonceSize returns the IV or nonce size in bytes.
	NonceSize() int

	// Overhead returns the authentication tag size in bytes.
	Overhead() int
}

// New creates the default token cipher (AES-256-CBC with HMAC-SHA256).
func New(key []byte) (Cipher, error) {
	return NewAESCBC(key)
}

// NewWithType creates a cipher of the specified type.
func NewWithType(key []byte, cipherType CipherType) (Cipher, error) {
	switch cipherType {
	case CipherAESCBC, "":
		return NewAESCBC(key)
	case CipherAESGCM:
		return NewAESGCM(key)
	case CipherChaCha20:
		return NewChaCha20(key)
	case CipherAuto:
		if hasAESNI() {
			return NewAESGCM(key)
		}
		return NewChaCha20(key)
	default:
		return nil, errors.Join(ErrUnknownCipher, errors.New(string(cipherType)))
	}
}

// ParseCipherType normalizes a configured cipher name.
func ParseCipherType(s string) (CipherType, error) {
	switch t := CipherType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return CipherAESCBC, nil
	case CipherAESCBC, CipherAESGCM, CipherChaCha20, CipherAuto:
		return t, nil
	default:
		return "", errors.Join(ErrUnknownCipher, errors.New(s))
	}
}

// hasAESNI reports whether Go's crypto/aes is hardware accelerated here.
// On amd64 it uses AES-NI, on arm64 the ARM crypto extensions.
func hasAESNI() bool {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return true
	default:
		return false
	}
}
