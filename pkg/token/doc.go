// Package token provides the random and hashing primitives behind tokens.
//
// Nonces are drawn from crypto/rand over the 62-character alphabet
// [a-zA-Z0-9] using rejection sampling, so every character is uniformly
// distributed. A 32-character nonce carries about 190 bits of entropy.
//
// Fingerprints are truncated SHA-256 digests used to correlate a token in
// logs and audit records without revealing it.
package token
