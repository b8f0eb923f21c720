package adaptive

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	cbcKeySize = 32
	cbcTagSize = sha256.Size

	macInfo = "tokgate token mac v1"
)

// AESCBC is AES-256-CBC with PKCS#7 padding, authenticated with
// HMAC-SHA256 over IV and ciphertext (encrypt-then-MAC).
//
// Output layout: iv(16) || ciphertext(n*16) || tag(32).
type AESCBC struct {
	block  cipher.Block
	macKey []byte
}

// NewAESCBC creates an AES-256-CBC cipher. Key must be 32 bytes. The MAC
// key is derived from it with HKDF-SHA256 so the two never coincide.
func NewAESCBC(key []byte) (*AESCBC, error) {
	if len(key) != cbcKeySize {
		return nil, fmt.Errorf("%w: aes-cbc-hmac needs %d bytes, got %d", ErrInvalidKeySize, cbcKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	macKey := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, []byte(macInfo)), macKey); err != nil {
		return nil, err
	}

	return &AESCBC{block: block, macKey: macKey}, nil
}

// Type returns CipherAESCBC.
func (c *AESCBC) Type() CipherType {
	return CipherAESCBC
}

// NonceSize returns the IV size.
func (c *AESCBC) NonceSize() int {
	return aes.BlockSize
}

// Overhead returns the HMAC tag size. Padding adds up to one more block.
func (c *AESCBC) Overhead() int {
	return cbcTagSize
}

// Encrypt pads plaintext, encrypts it under a fresh random IV and appends the tag.
func (c *AESCBC) Encrypt(plaintext, additionalData []byte) ([]byte, error) {
	padded := pkcs7Pad(plaintext, aes.BlockSize)

	out := make([]byte, aes.BlockSize+len(padded), aes.BlockSize+len(padded)+cbcTagSize)
	iv := out[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}

	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(out[aes.BlockSize:], padded)
	clear(padded)

	return append(out, c.tag(out, additionalData)...), nil
}

// Decrypt checks the tag before touching the ciphertext, then decrypts and unpads.
func (c *AESCBC) Decrypt(ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) < aes.BlockSize+aes.BlockSize+cbcTagSize {
		return nil, ErrCiphertextTooShort
	}

	body := ciphertext[:len(ciphertext)-cbcTagSize]
	if !hmac.Equal(c.tag(body, additionalData), ciphertext[len(body):]) {
		return nil, ErrAuthentication
	}
	if (len(body)-aes.BlockSize)%aes.BlockSize != 0 {
		return nil, ErrCiphertextTooShort
	}

	iv, enc := body[:aes.BlockSize], body[aes.BlockSize:]
	plain := make([]byte, len(enc))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plain, enc)

	out, err := pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		clear(plain)
		return nil, err
	}
	return out, nil
}

// tag is HMAC-SHA256(len(aad) || aad || iv || ciphertext).
func (c *AESCBC) tag(body, additionalData []byte) []byte {
	mac := hmac.New(sha256.New, c.macKey)
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(additionalData)))
	mac.Write(n[:])
	mac.Write(additionalData)
	mac.Write(body)
	return mac.Sum(nil)
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	out := make([]byte, len(b)+n)
	copy(out, b)
	for i := len(b); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func pkcs7Unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, ErrPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size {
		return nil, ErrPadding
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, ErrPadding
		}
	}
	return b[:len(b)-n], nil
}
