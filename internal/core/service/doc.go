// Package service provides domain services for tokgate.
//
//   - TokenService: issues and verifies self-contained encrypted tokens
//     sealed under the process key. It keeps no per-token state.
//   - AuthService: the single-principal session flow on top of it.
//     Register issues a token and hands it to a Notifier, Login binds the
//     token's identifier as the current principal.
//
// Both services are safe for concurrent use. Time comes from an injected
// clockwork.Clock.
package service
