// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ConflictStatus is the lifecycle state of a ConflictRecord.
type ConflictStatus string

const (
	ConflictUnresolved ConflictStatus = "unresolved"
	ConflictResolved   ConflictStatus = "resolved"
)

// Resolution names the snapshot that won a resolved conflict. The zero value
// means the conflict has not been resolved yet.
type Resolution string

const (
	ResolutionNone   Resolution = ""
	ResolutionLocal  Resolution = "local"
	ResolutionRemote Resolution = "remote"
	ResolutionMerged Resolution = "merged"
)

// FieldDiff describes a single field whose local and remote values differ.
type FieldDiff struct {
	Field       string `json:"field"`
	Label       string `json:"label"`
	LocalValue  any    `json:"local_value"`
	RemoteValue any    `json:"remote_value"`
}

// ConflictRecord is a detected divergence between the locally cached and the
// remote version of one entity.
//
// Resolution and ResolvedAt are set exactly when Status is ConflictResolved.
type ConflictRecord struct {
	ID                string          `json:"id"`
	EntityType        string          `json:"entity_type"`
	EntityID          string          `json:"entity_id"`
	EntityName        string          `json:"entity_name"`
	LocalVersion      VersionSnapshot `json:"local_version"`
	RemoteVersion     VersionSnapshot `json:"remote_version"`
	ConflictingFields []FieldDiff     `json:"conflicting_fields"`
	Status            ConflictStatus  `json:"status"`
	Resolution        Resolution      `json:"resolution,omitempty"`
	MergedData        Record          `json:"merged_data,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	ResolvedAt        *time.Time      `json:"resolved_at,omitempty"`
}

// Key returns the identity of the entity the conflict is about.
func (c ConflictRecord) Key() EntityKey {
	return EntityKey{EntityType: c.EntityType, EntityID: c.EntityID}
}

// IsResolved reports whether the conflict reached its terminal state.
func (c ConflictRecord) IsResolved() bool {
	return c.Status == ConflictResolved
}

// Clone returns a deep copy so callers can never mutate stored state.
func (c ConflictRecord) Clone() ConflictRecord {
	out := c
	out.LocalVersion = c.LocalVersion.Clone()
	out.RemoteVersion = c.RemoteVersion.Clone()
	out.MergedData = c.MergedData.Clone()
	if c.ConflictingFields != nil {
		out.ConflictingFields = make([]FieldDiff, len(c.ConflictingFields))
		copy(out.ConflictingFields, c.ConflictingFields)
	}
	if c.ResolvedAt != nil {
		at := *c.ResolvedAt
		out.ResolvedAt = &at
	}
	return out
}

// ConflictInput carries what the pull side knows about a divergent entity.
// Local or Remote being nil means the snapshot is missing and no conflict
// can be recorded.
type ConflictInput struct {
	EntityType  string            `json:"entity_type"`
	EntityID    string            `json:"entity_id"`
	EntityName  string            `json:"entity_name,omitempty"`
	Local       *VersionSnapshot  `json:"local,omitempty"`
	Remote      *VersionSnapshot  `json:"remote,omitempty"`
	FieldLabels map[string]string `json:"field_labels,omitempty"`
}
