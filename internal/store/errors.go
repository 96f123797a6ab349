package store

import "errors"

// Sentinel errors returned by the storage layer. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when a key, entity or setting does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorageClosed is returned by any operation on a closed store.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrUnsupportedDriver is returned when the configured state driver is
	// not one of memory, bolt or sqlite.
	ErrUnsupportedDriver = errors.New("unsupported state storage driver")

	// ErrEmptyKey is returned when a key-value operation receives an empty key.
	ErrEmptyKey = errors.New("empty storage key")

	// ErrEncodingRecord is returned when a value cannot be serialized.
	ErrEncodingRecord = errors.New("failed to encode record")

	// ErrDecodingRecord is returned when a stored value cannot be parsed.
	ErrDecodingRecord = errors.New("failed to decode record")
)

// Low-level database operation errors. These are wrapped by the SQLite-backed
// stores when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
