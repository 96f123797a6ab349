package service

import "errors"

// Errors returned by the few non-total entry points (StartSync) and used by
// the HTTP layer to pick status codes. Public engine methods stay total and
// report these conditions through ok=false instead.
var (
	ErrConflictNotFound        = errors.New("conflict not found")
	ErrConflictAlreadyResolved = errors.New("conflict already resolved")
	ErrInvalidStrategy         = errors.New("invalid auto-resolve strategy")

	ErrOffline        = errors.New("client is offline")
	ErrSyncInProgress = errors.New("sync already in progress")
)
