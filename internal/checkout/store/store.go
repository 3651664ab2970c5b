package store

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/medistock/internal/inventory"
	"github.com/MrJamesThe3rd/medistock/internal/sales"
	salesStore "github.com/MrJamesThe3rd/medistock/internal/sales/store"
	"github.com/MrJamesThe3rd/medistock/internal/session"
)

// Store implements checkout.Repository. Both mutations run inside a single
// session update, so concurrent sellers serialize on the same lock and the
// stock check cannot race with the decrement.
type Store struct {
	db *session.Store
}

func New(db *session.Store) *Store {
	return &Store{db: db}
}

func (s *Store) RecordSale(_ context.Context, itemID uuid.UUID, quantity int, date time.Time) (*sales.Sale, error) {
	sale := &sales.Sale{
		ID:        uuid.New(),
		ItemID:    itemID,
		Quantity:  quantity,
		Date:      date,
		CreatedAt: time.Now(),
	}

	err := s.db.Update(func(data *session.Data) error {
		want := itemID.String()

		idx := slices.IndexFunc(data.Items, func(rec session.ItemRecord) bool {
			return rec.ID == want
		})
		if idx < 0 {
			return inventory.ErrNotFound
		}

		if data.Items[idx].Stock < quantity {
			return inventory.ErrInsufficientStock
		}

		sale.ItemName = data.Items[idx].Name

		data.Items[idx].Stock -= quantity
		data.Items[idx].UpdatedAt = sale.CreatedAt.Format(time.RFC3339)
		data.Sales = append(data.Sales, salesStore.EncodeSale(sale))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}
