package validators

import (
	"context"

	"github.com/MKhiriev/go-field-sync/models"
)

// Field names accepted by [SyncRequestValidator].
const (
	FieldEntityType = "entity_type"
	FieldEntityID   = "entity_id"
	FieldData       = "data"
	FieldStrategy   = "strategy"
	FieldModifiedAt = "modified_at"
)

// SyncRequestValidator validates TrackChangeRequest, MergeRequest,
// StrategyRequest and RemoteRecord values and pointers.
type SyncRequestValidator struct{}

func NewSyncRequestValidator() Validator {
	return &SyncRequestValidator{}
}

func (v *SyncRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.TrackChangeRequest:
		return v.validateTrackChange(value, fields...)
	case *models.TrackChangeRequest:
		return v.validateTrackChange(*value, fields...)

	case models.MergeRequest:
		return v.validateMerge(value, fields...)
	case *models.MergeRequest:
		return v.validateMerge(*value, fields...)

	case models.StrategyRequest:
		return v.validateStrategy(value, fields...)
	case *models.StrategyRequest:
		return v.validateStrategy(*value, fields...)

	case models.RemoteRecord:
		return v.validateRemoteRecord(value, fields...)
	case *models.RemoteRecord:
		return v.validateRemoteRecord(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncRequestValidator) validateTrackChange(req models.TrackChangeRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntityType, FieldEntityID, FieldData}
	}

	for _, f := range fields {
		switch f {
		case FieldEntityType:
			if req.EntityType == "" {
				return ErrEmptyEntityType
			}
		case FieldEntityID:
			if req.EntityID == "" {
				return ErrEmptyEntityID
			}
		case FieldData:
			if req.Data == nil {
				return ErrEmptyData
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncRequestValidator) validateMerge(req models.MergeRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldData}
	}

	for _, f := range fields {
		switch f {
		case FieldData:
			if len(req.Data) == 0 {
				return ErrEmptyData
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncRequestValidator) validateStrategy(req models.StrategyRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldStrategy}
	}

	for _, f := range fields {
		switch f {
		case FieldStrategy:
			if !req.Strategy.Valid() {
				return ErrInvalidStrategy
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// A remote record may legitimately carry an empty data map, so only a nil
// one is rejected.
func (v *SyncRequestValidator) validateRemoteRecord(rec models.RemoteRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntityType, FieldEntityID, FieldData, FieldModifiedAt}
	}

	for _, f := range fields {
		switch f {
		case FieldEntityType:
			if rec.EntityType == "" {
				return ErrEmptyEntityType
			}
		case FieldEntityID:
			if rec.EntityID == "" {
				return ErrEmptyEntityID
			}
		case FieldData:
			if rec.Snapshot.Data == nil {
				return ErrEmptyData
			}
		case FieldModifiedAt:
			if rec.Snapshot.ModifiedAt.IsZero() {
				return ErrMissingModifiedAt
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
