// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncStatus is an aggregate view over the reconciliation state. It is
// computed on demand and never persisted.
type SyncStatus struct {
	IsOnline       bool       `json:"is_online"`
	LastSyncAt     *time.Time `json:"last_sync_at,omitempty"`
	PendingChanges int        `json:"pending_changes"`
	Conflicts      int        `json:"conflicts"`
	SyncInProgress bool       `json:"sync_in_progress"`
}

// NotificationKind names the mutation that triggered a notification.
type NotificationKind string

const (
	NotificationConflictAdded          NotificationKind = "conflict-added"
	NotificationConflictUpdated        NotificationKind = "conflict-updated"
	NotificationConflictResolved       NotificationKind = "conflict-resolved"
	NotificationConflictsBatchResolved NotificationKind = "conflicts-batch-resolved"
	NotificationConflictsPurged        NotificationKind = "conflicts-purged"
	NotificationSettingsChanged        NotificationKind = "settings-changed"
	NotificationPendingChanged         NotificationKind = "pending-changed"
	NotificationConnectivityChanged    NotificationKind = "connectivity-changed"
	NotificationSyncStarted            NotificationKind = "sync-started"
	NotificationSyncFinished           NotificationKind = "sync-finished"
)

// Notification is delivered synchronously to every subscriber after a
// mutation. Status is computed at publish time.
type Notification struct {
	Kind       NotificationKind `json:"kind"`
	ConflictID string           `json:"conflict_id,omitempty"`
	Status     SyncStatus       `json:"status"`
}
