package models

import "time"

// PendingChange is the latest not-yet-pushed local edit of one entity.
type PendingChange struct {
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	EntityName string    `json:"entity_name"`
	Data       Record    `json:"data"`
	ChangedAt  time.Time `json:"changed_at"`
}

func (p PendingChange) Key() EntityKey {
	return EntityKey{EntityType: p.EntityType, EntityID: p.EntityID}
}
