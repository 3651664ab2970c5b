package sales

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no ledger entry matches the given id.
var ErrNotFound = errors.New("sale not found")

// Sale is one ledger entry. ItemID is a weak reference: it locates the item
// at recording time only, and may dangle once the item is deleted. ItemName
// is a snapshot of the item's name when the sale was recorded.
type Sale struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	ItemName  string
	Quantity  int
	Date      time.Time // calendar day
	CreatedAt time.Time
	UpdatedAt *time.Time
}
