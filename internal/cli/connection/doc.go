// Package connection is the CLI's HTTP client for the tokgate server API.
package connection
