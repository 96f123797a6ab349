package service

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-field-sync/models"
)

// entityNameFields are probed in order for a display name.
var entityNameFields = []string{
	"name",
	"title",
	"kunde",
	"firmenname",
	"nummer",
	"po_nummer",
	"bezeichnung",
	"description",
}

// deriveEntityName picks the first non-empty display field of the first
// record that has one, falling back to the entity id.
func deriveEntityName(entityID string, records ...models.Record) string {
	for _, r := range records {
		for _, field := range entityNameFields {
			v, ok := r[field]
			if !ok || v == nil {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
				return s
			}
		}
	}
	return entityID
}
