package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/medistock/internal/inventory"
	"github.com/MrJamesThe3rd/medistock/internal/session"
)

// Store implements inventory.Repository over the session snapshot.
type Store struct {
	db *session.Store
}

func New(db *session.Store) *Store {
	return &Store{db: db}
}

func (s *Store) CreateItem(_ context.Context, item *inventory.Item) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now()

	return s.db.Update(func(data *session.Data) error {
		data.Items = append(data.Items, encodeItem(item))
		return nil
	})
}

func (s *Store) GetItem(_ context.Context, id uuid.UUID) (*inventory.Item, error) {
	var (
		item *inventory.Item
		err  error
	)

	s.db.View(func(data *session.Data) {
		idx := indexOf(data.Items, id)
		if idx < 0 {
			err = inventory.ErrNotFound
			return
		}

		item, err = decodeItem(data.Items[idx])
	})

	if err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Store) ListItems(_ context.Context) ([]*inventory.Item, error) {
	var (
		items []*inventory.Item
		err   error
	)

	s.db.View(func(data *session.Data) {
		items = make([]*inventory.Item, 0, len(data.Items))

		for _, rec := range data.Items {
			item, decodeErr := decodeItem(rec)
			if decodeErr != nil {
				err = decodeErr
				return
			}

			items = append(items, item)
		}
	})

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (s *Store) UpdateItem(_ context.Context, item *inventory.Item) error {
	now := time.Now()
	item.UpdatedAt = &now

	return s.db.Update(func(data *session.Data) error {
		idx := indexOf(data.Items, item.ID)
		if idx < 0 {
			return inventory.ErrNotFound
		}

		data.Items[idx] = encodeItem(item)

		return nil
	})
}

func (s *Store) DeleteItem(_ context.Context, id uuid.UUID) error {
	return s.db.Update(func(data *session.Data) error {
		idx := indexOf(data.Items, id)
		if idx < 0 {
			return inventory.ErrNotFound
		}

		data.Items = slices.Delete(data.Items, idx, idx+1)

		return nil
	})
}

func (s *Store) DecrementStock(_ context.Context, id uuid.UUID, amount int) error {
	return s.db.Update(func(data *session.Data) error {
		idx := indexOf(data.Items, id)
		if idx < 0 {
			return inventory.ErrNotFound
		}

		if data.Items[idx].Stock < amount {
			return inventory.ErrInsufficientStock
		}

		data.Items[idx].Stock -= amount
		data.Items[idx].UpdatedAt = time.Now().Format(time.RFC3339)

		return nil
	})
}

func indexOf(items []session.ItemRecord, id uuid.UUID) int {
	want := id.String()

	return slices.IndexFunc(items, func(rec session.ItemRecord) bool {
		return rec.ID == want
	})
}

func encodeItem(item *inventory.Item) session.ItemRecord {
	rec := session.ItemRecord{
		ID:        item.ID.String(),
		Name:      item.Name,
		Category:  item.Category,
		Unit:      item.Unit,
		Stock:     item.Stock,
		Price:     item.Price,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
	}

	if item.UpdatedAt != nil {
		rec.UpdatedAt = item.UpdatedAt.Format(time.RFC3339)
	}

	return rec
}

func decodeItem(rec session.ItemRecord) (*inventory.Item, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("parsing item id %q: %w", rec.ID, err)
	}

	item := &inventory.Item{
		ID:       id,
		Name:     rec.Name,
		Category: rec.Category,
		Unit:     rec.Unit,
		Stock:    rec.Stock,
		Price:    rec.Price,
	}

	if rec.CreatedAt != "" {
		if item.CreatedAt, err = time.Parse(time.RFC3339, rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("parsing item created_at: %w", err)
		}
	}

	if rec.UpdatedAt != "" {
		updated, err := time.Parse(time.RFC3339, rec.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing item updated_at: %w", err)
		}

		item.UpdatedAt = &updated
	}

	return item, nil
}
