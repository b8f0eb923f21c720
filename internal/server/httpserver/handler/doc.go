// Package handler implements the tokgate HTTP API.
//
// Every JSON response uses the envelope
//
//	{"code": "OK", "message": "...", "request_id": "...", "timestamp": 1700000000000, "data": {...}}
//
// Errors carry a TG-* code in both the envelope and the X-Error-Code
// header. Token verification always answers 200: an invalid token is a
// normal result, not an error.
package handler
