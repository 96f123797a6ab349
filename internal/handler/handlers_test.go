package handler

import (
	"testing"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandlers(t *testing.T) {
	services := &service.ClientServices{}

	t.Run("http address set", func(t *testing.T) {
		h, err := NewHandlers(services, config.ClientServer{HTTPAddress: "localhost:8089"}, config.ClientApp{}, logger.Nop())
		require.NoError(t, err)
		assert.NotNil(t, h.HTTP)
	})

	t.Run("headless", func(t *testing.T) {
		h, err := NewHandlers(services, config.ClientServer{}, config.ClientApp{}, logger.Nop())
		require.NoError(t, err)
		assert.Nil(t, h.HTTP)
	})

	t.Run("no services", func(t *testing.T) {
		_, err := NewHandlers(nil, config.ClientServer{HTTPAddress: "localhost:8089"}, config.ClientApp{}, logger.Nop())
		assert.ErrorIs(t, err, errNoServices)
	})
}
