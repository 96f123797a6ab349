package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/validators"
)

var errorStatusMap = map[error]int{
	errInvalidJSON:          http.StatusBadRequest,
	errInvalidOlderThanDays: http.StatusBadRequest,
	errEmptyEntityKey:       http.StatusBadRequest,

	validators.ErrEmptyEntityType: http.StatusBadRequest,
	validators.ErrEmptyEntityID:   http.StatusBadRequest,
	validators.ErrEmptyData:       http.StatusBadRequest,
	validators.ErrInvalidStrategy: http.StatusBadRequest,

	service.ErrConflictNotFound:        http.StatusNotFound,
	service.ErrConflictAlreadyResolved: http.StatusConflict,
	service.ErrInvalidStrategy:         http.StatusBadRequest,
	service.ErrOffline:                 http.StatusServiceUnavailable,
	service.ErrSyncInProgress:          http.StatusConflict,

	store.ErrNotFound:       http.StatusNotFound,
	store.ErrStorageClosed:  http.StatusServiceUnavailable,
	store.ErrExecutingQuery: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
