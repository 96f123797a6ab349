package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEntityType   = errors.New("entity type is required")
	ErrEmptyEntityID     = errors.New("entity id is required")
	ErrEmptyData         = errors.New("data is required")
	ErrInvalidStrategy   = errors.New("invalid auto-resolve strategy")
	ErrMissingModifiedAt = errors.New("modification time is required")
)
