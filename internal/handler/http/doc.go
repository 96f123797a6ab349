// Package http implements the local control API of the field-sync client.
//
// A presentation layer uses it to read the sync status, list and resolve
// conflicts, inspect pending edits, change the auto-resolve strategy, inject
// connectivity transitions and trigger a sync. Request tracing, access logging
// and response compression are handled here before requests reach the
// service layer.
package http
