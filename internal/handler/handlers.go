package handler

import (
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/handler/http"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the control API handlers. The local API is optional: an
// empty listen address leaves the engine running headless.
func NewHandlers(services *service.ClientServices, cfg config.ClientServer, app config.ClientApp, logger *logger.Logger) (*Handlers, error) {
	if services == nil {
		return nil, errNoServices
	}

	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}
	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, app, logger)
	}

	return handlers, nil
}
