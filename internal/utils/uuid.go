// Package utils holds small helpers shared by the client packages: JSON
// responses, the outbound HTTP client and identifier generation.
package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered identifiers, so conflict ids sort by
// creation.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, falling back to a random v4 when the clock
// source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
