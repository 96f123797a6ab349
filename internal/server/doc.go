// Package server runs the local control API over HTTP.
//
// The server is bound to the process context: cancelling it shuts the
// listener down gracefully.
package server
