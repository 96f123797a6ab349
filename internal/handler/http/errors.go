// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request validation errors. They map to 400 in statusFromError.
var (
	errInvalidJSON          = errors.New("invalid JSON was passed")
	errInvalidOlderThanDays = errors.New("olderThanDays must be a non-negative integer")
	errEmptyEntityKey       = errors.New("entity_type and entity_id are required")
)
