package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

func (h *Handler) getSyncStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.SyncStatus(), http.StatusOK)
}

// startSync runs one sync round and answers once it is over. Offline and
// in-flight rounds are reported as 503 and 409.
func (h *Handler) startSync(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Connectivity.StartSync(r.Context()); err != nil {
		fail(w, r, "*Handler.startSync", err)
		return
	}

	utils.WriteJSON(w, h.services.SyncStatus(), http.StatusOK)
}

func (h *Handler) setConnectivity(w http.ResponseWriter, r *http.Request) {
	var req models.ConnectivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, r, "*Handler.setConnectivity", errInvalidJSON)
		return
	}

	h.services.Connectivity.SetOnline(r.Context(), req.Online)

	utils.WriteJSON(w, h.services.SyncStatus(), http.StatusOK)
}
