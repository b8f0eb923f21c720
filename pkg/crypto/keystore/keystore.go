// Package keystore owns the process-wide symmetric key used to seal tokens.
package keystore

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// KeySize is the length of the symmetric key in bytes.
const KeySize = 32

var (
	// ErrCryptoUnavailable is returned when the secure random source cannot
	// produce key material. It is fatal to token issuance.
	ErrCryptoUnavailable = errors.New("keystore: secure random source unavailable")

	// ErrKeyDestroyed is returned by derivations after Destroy.
	ErrKeyDestroyed = errors.New("keystore: key destroyed")
)

// KeyStore holds one randomly generated key for the lifetime of the process.
//
// The key is never persisted, logged or exported; callers only get derived
// material. After construction the key is read-only, so concurrent
// derivations do not contend with each other.
type KeyStore struct {
	mu        sync.RWMutex
	key       []byte
	createdAt time.Time
}

// New generates a key from crypto/rand.
func New() (*KeyStore, error) {
	return NewFromReader(rand.Reader)
}

// NewFromReader generates a key from the given entropy source.
func NewFromReader(r io.Reader) (*KeyStore, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		wipe(key)
		return nil, fmt.Errorf("%w: %v", ErrCryptoUnavailable, err)
	}
	return &KeyStore{
		key:       key,
		createdAt: time.Now(),
	}, nil
}

// CipherKey returns SHA-256 of the key, the working key for the block cipher.
// The caller owns the returned buffer and should Wipe it after use.
func (ks *KeyStore) CipherKey() ([]byte, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	if ks.key == nil {
		return nil, ErrKeyDestroyed
	}
	sum := sha256.Sum256(ks.key)
	out := make([]byte, len(sum))
	copy(out, sum[:])
	wipe(sum[:])
	return out, nil
}

// Fingerprint returns a short identifier of the key safe for logs.
func (ks *KeyStore) Fingerprint() string {
	working, err := ks.CipherKey()
	if err != nil {
		return "destroyed"
	}
	defer Wipe(working)

	sum := sha256.Sum256(working)
	return hex.EncodeToString(sum[:4])
}

// CreatedAt returns the time the key was generated.
func (ks *KeyStore) CreatedAt() time.Time {
	return ks.createdAt
}

// Destroyed reports whether Destroy has been called.
func (ks *KeyStore) Destroyed() bool {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	return ks.key == nil
}

// Destroy overwrites the key with zeros and releases it. It is idempotent.
func (ks *KeyStore) Destroy() {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.key == nil {
		return
	}
	wipe(ks.key)
	ks.key = nil
}

// Wipe zeroes a buffer holding derived key material.
func Wipe(b []byte) {
	wipe(b)
}

func wipe(b []byte) {
	clear(b)
}
