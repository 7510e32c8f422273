package util

import (
	"github.com/google/uuid"
)

// NewID returns a time-ordered UUID v7, optionally prefixed. Ordering by ID
// therefore follows insertion order.
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	if prefix == "" {
		return id.String()
	}
	return prefix + "_" + id.String()
}
