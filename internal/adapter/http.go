package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/internal/validators"
	"github.com/MKhiriev/go-field-sync/models"
)

const (
	pushPath   = "/api/sync/push"
	pullPath   = "/api/sync/pull"
	healthPath = "/api/health"
)

type httpServerAdapter struct {
	client    *utils.HTTPClient
	validator validators.Validator
	logger    *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST implementation of
// [ServerAdapter]. The base URL is taken from cfg.HTTPAddress; a missing
// scheme defaults to http. Every request is bounded by cfg.RequestTimeout.
func NewHTTPServerAdapter(cfg config.ClientAdapter, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client:    utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		validator: validators.NewSyncRequestValidator(),
		logger:    log.WithComponent("server-adapter"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Push implements [ServerAdapter].
func (h *httpServerAdapter) Push(ctx context.Context, changes []models.PendingChange) error {
	req := models.PushRequest{Changes: changes, Length: len(changes)}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(pushPath)
	if err != nil {
		return fmt.Errorf("%w: push request: %w", ErrRemoteUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.logger.Debug().
		Str("func", "httpServerAdapter.Push").
		Int("changes", len(changes)).
		Msg("pending changes pushed")

	return nil
}

// Pull implements [ServerAdapter].
func (h *httpServerAdapter) Pull(ctx context.Context, since *time.Time) ([]models.RemoteRecord, error) {
	var result models.PullResponse

	req := h.client.R().
		SetContext(ctx).
		SetResult(&result)
	if since != nil {
		req.SetQueryParam("since", since.UTC().Format(time.RFC3339Nano))
	}

	resp, err := req.Get(pullPath)
	if err != nil {
		return nil, fmt.Errorf("%w: pull request: %w", ErrRemoteUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	records := make([]models.RemoteRecord, 0, len(result.Records))
	for _, rec := range result.Records {
		if err = h.validator.Validate(ctx, rec); err != nil {
			h.logger.Warn().
				Err(err).
				Str("func", "httpServerAdapter.Pull").
				Str("entity_type", rec.EntityType).
				Str("entity_id", rec.EntityID).
				Msg("malformed remote record skipped")
			continue
		}
		records = append(records, rec)
	}

	h.logger.Debug().
		Str("func", "httpServerAdapter.Pull").
		Int("records", len(records)).
		Msg("remote changes pulled")

	return records, nil
}

// Probe implements [ServerAdapter]. Any transport error counts as offline.
func (h *httpServerAdapter) Probe(ctx context.Context) bool {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(healthPath)
	if err != nil {
		h.logger.Debug().Err(err).Str("func", "httpServerAdapter.Probe").Msg("health probe failed")
		return false
	}

	return mapHTTPError(resp) == nil
}
