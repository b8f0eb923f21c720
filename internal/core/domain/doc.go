// Package domain defines the core domain models for tokgate.
//
// Domain models are pure values without IO dependencies:
//
//   - TokenPayload: the identifier, issue time and nonce sealed in a token
//   - VerifyResult: the outcome of checking a token
//   - Principal: the user bound to the current session
//   - Errors: coded domain errors shared by the service, HTTP and CLI layers
package domain
