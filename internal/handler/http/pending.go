package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

func (h *Handler) getPendingChanges(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.PendingChanges.GetPendingChanges(), http.StatusOK)
}

func (h *Handler) trackLocalChange(w http.ResponseWriter, r *http.Request) {
	var req models.TrackChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, r, "*Handler.trackLocalChange", errInvalidJSON)
		return
	}
	if err := h.validator.Validate(r.Context(), req); err != nil {
		fail(w, r, "*Handler.trackLocalChange", err)
		return
	}

	if !h.services.PendingChanges.TrackLocalChange(r.Context(), req.EntityType, req.EntityID, req.Data) {
		fail(w, r, "*Handler.trackLocalChange", errEmptyEntityKey)
		return
	}

	change, _ := h.services.PendingChanges.GetPendingChange(req.EntityType, req.EntityID)
	utils.WriteJSON(w, change, http.StatusAccepted)
}
