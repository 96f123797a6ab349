// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package diff compares two entity snapshots field by field.
//
// Everything here is pure: no logging, no storage, no clocks. The same
// structural equality is used by conflict detection and by the pull-side
// reconciler, so both agree on what "changed" means.
package diff

import (
	"sort"
	"strings"

	"github.com/MKhiriev/go-field-sync/models"
)

// ignoredFields are identity and ownership metadata that never count as a
// divergence.
var ignoredFields = map[string]struct{}{
	"id":         {},
	"user_id":    {},
	"userId":     {},
	"owner_id":   {},
	"ownerId":    {},
	"created_at": {},
	"createdAt":  {},
}

// IsIgnored reports whether field is excluded from comparison. Fields
// prefixed with an underscore are client-internal bookkeeping.
func IsIgnored(field string) bool {
	if strings.HasPrefix(field, "_") {
		return true
	}
	_, ok := ignoredFields[field]
	return ok
}

// Generate returns one FieldDiff per non-ignored field whose values differ
// between local and remote. Fields are visited in name order so the result is
// deterministic. labels overrides the humanized label of a field.
//
// Swapping local and remote yields the same set of field names.
func Generate(local, remote models.Record, labels map[string]string) []models.FieldDiff {
	fields := unionFields(local, remote)

	var diffs []models.FieldDiff
	for _, field := range fields {
		lv, lok := local[field]
		rv, rok := remote[field]
		if equalPresence(lv, lok, rv, rok) {
			continue
		}

		label, ok := labels[field]
		if !ok || label == "" {
			label = Humanize(field)
		}

		diffs = append(diffs, models.FieldDiff{
			Field:       field,
			Label:       label,
			LocalValue:  lv,
			RemoteValue: rv,
		})
	}

	return diffs
}

// Fields returns the names of the differing fields only.
func Fields(diffs []models.FieldDiff) []string {
	names := make([]string, 0, len(diffs))
	for _, d := range diffs {
		names = append(names, d.Field)
	}
	return names
}

func unionFields(local, remote models.Record) []string {
	seen := make(map[string]struct{}, len(local)+len(remote))
	for k := range local {
		seen[k] = struct{}{}
	}
	for k := range remote {
		seen[k] = struct{}{}
	}

	fields := make([]string, 0, len(seen))
	for k := range seen {
		if IsIgnored(k) {
			continue
		}
		fields = append(fields, k)
	}
	sort.Strings(fields)

	return fields
}

// equalPresence reports a field present on one side only as a difference,
// even when the present value is nil.
func equalPresence(lv any, lok bool, rv any, rok bool) bool {
	if lok != rok {
		return false
	}
	return Equal(lv, rv)
}
