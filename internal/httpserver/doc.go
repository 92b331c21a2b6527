// Package httpserver runs the environment endpoint behind an http.Server with
// a validated listen address, fixed timeouts and bounded graceful shutdown.
package httpserver
