// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"
)

// Record is a deserialized business entity (order, quote, invoice, customer)
// keyed by field name. Values are expected in the shapes encoding/json
// produces: string, float64, bool, nil, []any and map[string]any.
type Record map[string]any

// Clone returns a deep copy of r. Nested maps and slices are copied so the
// clone can be mutated without touching the original.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Record:
		return val.Clone()
	case map[string]any:
		return map[string]any(Record(val).Clone())
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = cloneValue(val[i])
		}
		return out
	default:
		return v
	}
}

// EntityKey identifies a record in the local store and on the remote side.
type EntityKey struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
}

func (k EntityKey) String() string {
	return k.EntityType + "/" + k.EntityID
}

// VersionSnapshot is a captured copy of an entity's fields plus provenance.
// Snapshots are cloned on capture and never mutated afterwards.
type VersionSnapshot struct {
	Data       Record    `json:"data"`
	ModifiedAt time.Time `json:"modified_at"`
	ModifiedBy string    `json:"modified_by,omitempty"`
}

// Clone returns a copy of the snapshot with its own Data map.
func (s VersionSnapshot) Clone() VersionSnapshot {
	return VersionSnapshot{
		Data:       s.Data.Clone(),
		ModifiedAt: s.ModifiedAt,
		ModifiedBy: s.ModifiedBy,
	}
}

// RemoteRecord is one entity returned by the pull side of a reconciliation
// round.
type RemoteRecord struct {
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	EntityName string          `json:"entity_name,omitempty"`
	Snapshot   VersionSnapshot `json:"snapshot"`
}
