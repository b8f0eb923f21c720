// Command tokgate-server issues and verifies stateless tokens over HTTP.
//
// The token key lives only in process memory: restarting the server
// invalidates every token issued before.
//
// Usage:
//
//	tokgate-server [-config /etc/tokgate/server.yaml]
//	tokgate-server -version
//
// Every setting can also come from TOKGATE_* environment variables, for
// example TOKGATE_SERVER_HTTP_ADDR=0.0.0.0:5080.
package main
