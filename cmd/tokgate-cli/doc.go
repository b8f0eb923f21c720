// Command tokgate-cli is the command-line client for tokgate-server.
//
// Usage:
//
//	tokgate-cli token issue alice@example.com
//	tokgate-cli -o json token verify <token>
//	tokgate-cli auth register alice@example.com
//	tokgate-cli config set-server https://gate.example.com
package main
