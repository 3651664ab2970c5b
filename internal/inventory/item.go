package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Item represents a stocked medical supply.
type Item struct {
	ID        uuid.UUID
	Name      string
	Category  string
	Unit      string // display unit, e.g. "strip", "box"
	Stock     int    // units on hand, never negative
	Price     float64
	CreatedAt time.Time
	UpdatedAt *time.Time
}
