// Package adaptive provides the block and AEAD ciphers used to seal tokens.
//
// Supported algorithms:
//
//   - aes-cbc-hmac: AES-256-CBC with PKCS#7 padding and an HMAC-SHA256 tag
//     (encrypt-then-MAC). This is the default token scheme.
//   - aes-gcm: AES-GCM, preferred AEAD when hardware AES is available.
//   - chacha20-poly1305: AEAD fallback for systems without AES-NI.
//   - auto: picks aes-gcm or chacha20-poly1305 from the CPU architecture.
//
// Every cipher emits a self-contained byte string: the IV or nonce comes
// first and any tag last, so the receiver needs nothing but the key.
//
// Usage:
//
//	c, err := adaptive.NewWithType(key, adaptive.CipherAESCBC)
//	sealed, err := c.Encrypt(plaintext, aad)
//	plaintext, err := c.Decrypt(sealed, aad)
package adaptive
