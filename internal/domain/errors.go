// Package domain holds the sentinel errors shared by every repository.
package domain

import "errors"

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("duplicate record")
	ErrStaleVersion = errors.New("record was modified concurrently")
)

// ErrSlotTaken is reported by storage when a write would make two active
// appointments of one barber overlap.
var ErrSlotTaken = errors.New("slot overlaps an active appointment")
