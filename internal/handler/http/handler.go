package http

import (
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/validators"
)

type Handler struct {
	services  *service.ClientServices
	validator validators.Validator

	version       string
	retentionDays int

	logger *logger.Logger
}

func NewHandler(services *service.ClientServices, app config.ClientApp, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		validator:     validators.NewSyncRequestValidator(),
		version:       app.Version,
		retentionDays: app.ResolvedRetentionDays,
		logger:        logger,
	}
}
