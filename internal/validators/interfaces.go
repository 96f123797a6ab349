// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks inbound payloads before they reach the sync
// engine: control API requests and records pulled from the remote server.
//
// Validate takes optional field names to restrict the check to a subset of
// the payload; with no names every field of the type is checked.
package validators

import "context"

// Validator validates an arbitrary input value, optionally restricted to
// the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
