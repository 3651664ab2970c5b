package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/medistock/internal/sales"
	"github.com/MrJamesThe3rd/medistock/internal/session"
)

// Store implements sales.Repository over the session snapshot. The record
// slice preserves insertion order, which is the ledger's canonical order.
type Store struct {
	db *session.Store
}

func New(db *session.Store) *Store {
	return &Store{db: db}
}

func (s *Store) CreateSale(_ context.Context, sale *sales.Sale) error {
	sale.ID = uuid.New()
	sale.CreatedAt = time.Now()

	return s.db.Update(func(data *session.Data) error {
		data.Sales = append(data.Sales, EncodeSale(sale))
		return nil
	})
}

func (s *Store) GetSale(_ context.Context, id uuid.UUID) (*sales.Sale, error) {
	var (
		sale *sales.Sale
		err  error
	)

	s.db.View(func(data *session.Data) {
		idx := indexOf(data.Sales, id)
		if idx < 0 {
			err = sales.ErrNotFound
			return
		}

		sale, err = DecodeSale(data.Sales[idx])
	})

	if err != nil {
		return nil, err
	}

	return sale, nil
}

func (s *Store) ListSales(_ context.Context) ([]*sales.Sale, error) {
	var (
		list []*sales.Sale
		err  error
	)

	s.db.View(func(data *session.Data) {
		list = make([]*sales.Sale, 0, len(data.Sales))

		for _, rec := range data.Sales {
			sale, decodeErr := DecodeSale(rec)
			if decodeErr != nil {
				err = decodeErr
				return
			}

			list = append(list, sale)
		}
	})

	if err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) UpdateSale(_ context.Context, sale *sales.Sale) error {
	now := time.Now()
	sale.UpdatedAt = &now

	return s.db.Update(func(data *session.Data) error {
		idx := indexOf(data.Sales, sale.ID)
		if idx < 0 {
			return sales.ErrNotFound
		}

		data.Sales[idx] = EncodeSale(sale)

		return nil
	})
}

// DeleteSale removes the entry only. The referenced item's stock is left as
// is.
func (s *Store) DeleteSale(_ context.Context, id uuid.UUID) error {
	return s.db.Update(func(data *session.Data) error {
		idx := indexOf(data.Sales, id)
		if idx < 0 {
			return sales.ErrNotFound
		}

		data.Sales = slices.Delete(data.Sales, idx, idx+1)

		return nil
	})
}

func indexOf(recs []session.SaleRecord, id uuid.UUID) int {
	want := id.String()

	return slices.IndexFunc(recs, func(rec session.SaleRecord) bool {
		return rec.ID == want
	})
}

// EncodeSale serializes a sale to its session record. Exported so the
// checkout store can append entries within its own atomic update.
func EncodeSale(sale *sales.Sale) session.SaleRecord {
	rec := session.SaleRecord{
		ID:        sale.ID.String(),
		ItemID:    sale.ItemID.String(),
		ItemName:  sale.ItemName,
		Quantity:  sale.Quantity,
		Date:      sale.Date.Format(time.DateOnly),
		CreatedAt: sale.CreatedAt.Format(time.RFC3339),
	}

	if sale.UpdatedAt != nil {
		rec.UpdatedAt = sale.UpdatedAt.Format(time.RFC3339)
	}

	return rec
}

func DecodeSale(rec session.SaleRecord) (*sales.Sale, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("parsing sale id %q: %w", rec.ID, err)
	}

	// ItemID is a weak reference and may predate the uuid scheme or dangle;
	// an unparsable value decodes to the zero uuid rather than failing.
	itemID, _ := uuid.Parse(rec.ItemID)

	sale := &sales.Sale{
		ID:       id,
		ItemID:   itemID,
		ItemName: rec.ItemName,
		Quantity: rec.Quantity,
	}

	if rec.Date != "" {
		if sale.Date, err = time.Parse(time.DateOnly, rec.Date); err != nil {
			return nil, fmt.Errorf("parsing sale date: %w", err)
		}
	}

	if rec.CreatedAt != "" {
		if sale.CreatedAt, err = time.Parse(time.RFC3339, rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("parsing sale created_at: %w", err)
		}
	}

	if rec.UpdatedAt != "" {
		updated, err := time.Parse(time.RFC3339, rec.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing sale updated_at: %w", err)
		}

		sale.UpdatedAt = &updated
	}

	return sale, nil
}
