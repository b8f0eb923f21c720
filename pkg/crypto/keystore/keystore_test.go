package keystore

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"io"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy pool closed")
}

func TestNew(t *testing.T) {
	ks, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ks.Destroy()

	if len(ks.key) != KeySize {
		t.Errorf("key length = %d, want %d", len(ks.key), KeySize)
	}
	if ks.CreatedAt().IsZero() {
		t.Error("CreatedAt() should be set")
	}
}

func TestNew_Unique(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	b, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if bytes.Equal(a.key, b.key) {
		t.Error("two key stores produced the same key")
	}
}

func TestNewFromReader_Unavailable(t *testing.T) {
	tests := []struct {
		name   string
		reader io.Reader
	}{
		{"failing reader", failingReader{}},
		{"short reader", bytes.NewReader(make([]byte, KeySize-1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ks, err := NewFromReader(tt.reader)
			if !errors.Is(err, ErrCryptoUnavailable) {
				t.Fatalf("NewFromReader() error = %v, want ErrCryptoUnavailable", err)
			}
			if ks != nil {
				t.Error("NewFromReader() should return nil store on failure")
			}
		})
	}
}

func TestCipherKey(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, KeySize)
	ks, err := NewFromReader(bytes.NewReader(seed))
	if err != nil {
		t.Fatalf("NewFromReader() error = %v", err)
	}

	got, err := ks.CipherKey()
	if err != nil {
		t.Fatalf("CipherKey() error = %v", err)
	}
	want := sha256.Sum256(seed)
	if !bytes.Equal(got, want[:]) {
		t.Errorf("CipherKey() = %x, want %x", got, want)
	}

	// Wiping the derived copy must not touch the stored key.
	Wipe(got)
	again, _ := ks.CipherKey()
	if !bytes.Equal(again, want[:]) {
		t.Error("wiping a derived key changed the stored key")
	}
}

func TestDestroy(t *testing.T) {
	ks, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	key := ks.key

	ks.Destroy()

	if !bytes.Equal(key, make([]byte, KeySize)) {
		t.Error("Destroy() did not zero the key buffer")
	}
	if !ks.Destroyed() {
		t.Error("Destroyed() = false after Destroy()")
	}
	if _, err := ks.CipherKey(); !errors.Is(err, ErrKeyDestroyed) {
		t.Errorf("CipherKey() after Destroy error = %v, want ErrKeyDestroyed", err)
	}
	if fp := ks.Fingerprint(); fp != "destroyed" {
		t.Errorf("Fingerprint() after Destroy = %q", fp)
	}

	// Second call is a no-op.
	ks.Destroy()
}

func TestFingerprint(t *testing.T) {
	ks, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ks.Destroy()

	fp := ks.Fingerprint()
	if len(fp) != 8 {
		t.Errorf("Fingerprint() length = %d, want 8", len(fp))
	}
	if fp != ks.Fingerprint() {
		t.Error("Fingerprint() is not stable")
	}
}
