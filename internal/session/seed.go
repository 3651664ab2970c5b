package session

import (
	"time"

	"github.com/google/uuid"
)

// Seed returns the fixture data used when no snapshot exists yet: two stocked
// items and one sale recorded today against the first of them.
func Seed() Data {
	now := time.Now()
	created := now.Format(time.RFC3339)

	paracetamol := uuid.NewString()
	amoxicillin := uuid.NewString()

	return Data{
		Items: []ItemRecord{
			{
				ID:        paracetamol,
				Name:      "Paracetamol 500mg",
				Category:  "Analgesic",
				Unit:      "strip",
				Stock:     120,
				Price:     1.2,
				CreatedAt: created,
			},
			{
				ID:        amoxicillin,
				Name:      "Amoxicillin 250mg",
				Category:  "Antibiotic",
				Unit:      "box",
				Stock:     80,
				Price:     3.5,
				CreatedAt: created,
			},
		},
		Sales: []SaleRecord{
			{
				ID:        uuid.NewString(),
				ItemID:    paracetamol,
				ItemName:  "Paracetamol 500mg",
				Quantity:  8,
				Date:      now.Format(time.DateOnly),
				CreatedAt: created,
			},
		},
	}
}
