package adapter

import "errors"

var (
	// ErrRemoteUnavailable is returned when the server cannot be reached or
	// answers 502, 503 or 504.
	ErrRemoteUnavailable = errors.New("remote unavailable")
	// ErrUnexpectedStatus wraps any other non-2xx answer.
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("client unauthorized")
	ErrConflict         = errors.New("conflict")
)
