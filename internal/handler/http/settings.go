package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

func (h *Handler) getAutoResolveStrategy(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.StrategyRequest{Strategy: h.services.Resolution.AutoResolveStrategy()}, http.StatusOK)
}

func (h *Handler) setAutoResolveStrategy(w http.ResponseWriter, r *http.Request) {
	var req models.StrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, r, "*Handler.setAutoResolveStrategy", errInvalidJSON)
		return
	}
	if err := h.validator.Validate(r.Context(), req); err != nil {
		fail(w, r, "*Handler.setAutoResolveStrategy", err)
		return
	}

	if !h.services.Resolution.SetAutoResolveStrategy(r.Context(), req.Strategy) {
		fail(w, r, "*Handler.setAutoResolveStrategy", service.ErrInvalidStrategy)
		return
	}

	utils.WriteJSON(w, models.StrategyRequest{Strategy: h.services.Resolution.AutoResolveStrategy()}, http.StatusOK)
}
