package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

func (h *Handler) getConflicts(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.Conflicts.GetConflicts(), http.StatusOK)
}

func (h *Handler) getUnresolvedConflicts(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.Conflicts.GetUnresolvedConflicts(), http.StatusOK)
}

func (h *Handler) getConflictHistory(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.Conflicts.GetConflictHistory(), http.StatusOK)
}

func (h *Handler) getConflict(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	conflict, ok := h.services.Conflicts.GetConflict(id)
	if !ok {
		fail(w, r, "*Handler.getConflict", service.ErrConflictNotFound)
		return
	}

	utils.WriteJSON(w, conflict, http.StatusOK)
}

func (h *Handler) resolveKeepLocal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, ok := h.services.Resolution.ResolveKeepLocal(r.Context(), id)
	h.writeResolved(w, r, "*Handler.resolveKeepLocal", id, record, ok)
}

func (h *Handler) resolveKeepRemote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, ok := h.services.Resolution.ResolveKeepRemote(r.Context(), id)
	h.writeResolved(w, r, "*Handler.resolveKeepRemote", id, record, ok)
}

func (h *Handler) resolveWithMerge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, r, "*Handler.resolveWithMerge", errInvalidJSON)
		return
	}
	if err := h.validator.Validate(r.Context(), req); err != nil {
		fail(w, r, "*Handler.resolveWithMerge", err)
		return
	}

	record, ok := h.services.Resolution.ResolveWithMerge(r.Context(), id, req.Data)
	h.writeResolved(w, r, "*Handler.resolveWithMerge", id, record, ok)
}

// writeResolved tells an unknown conflict (404) from one resolved earlier
// (409) when the resolution was refused.
func (h *Handler) writeResolved(w http.ResponseWriter, r *http.Request, fn, id string, record models.Record, ok bool) {
	if !ok {
		err := service.ErrConflictAlreadyResolved
		if _, found := h.services.Conflicts.GetConflict(id); !found {
			err = service.ErrConflictNotFound
		}
		fail(w, r, fn, err)
		return
	}

	utils.WriteJSON(w, models.ResolveResponse{ConflictID: id, Record: record}, http.StatusOK)
}

func (h *Handler) resolveAllKeepLocal(w http.ResponseWriter, r *http.Request) {
	count := h.services.Resolution.ResolveAllKeepLocal(r.Context())
	utils.WriteJSON(w, models.CountResponse{Count: count}, http.StatusOK)
}

func (h *Handler) resolveAllKeepRemote(w http.ResponseWriter, r *http.Request) {
	count := h.services.Resolution.ResolveAllKeepRemote(r.Context())
	utils.WriteJSON(w, models.CountResponse{Count: count}, http.StatusOK)
}

func (h *Handler) clearResolvedConflicts(w http.ResponseWriter, r *http.Request) {
	days := h.retentionDays
	if raw := r.URL.Query().Get("olderThanDays"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			fail(w, r, "*Handler.clearResolvedConflicts", errInvalidOlderThanDays)
			return
		}
		days = parsed
	}

	count := h.services.Conflicts.ClearResolvedConflicts(r.Context(), days)
	utils.WriteJSON(w, models.CountResponse{Count: count}, http.StatusOK)
}

// fail logs err on the request logger and answers with the mapped status.
func fail(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)
	logger.FromRequest(r).Warn().
		Err(err).
		Str("func", fn).
		Int("status", status).
		Msg("request rejected")
	http.Error(w, err.Error(), status)
}
