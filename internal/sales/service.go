package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sales
type Repository interface {
	CreateSale(ctx context.Context, sale *Sale) error
	GetSale(ctx context.Context, id uuid.UUID) (*Sale, error)
	ListSales(ctx context.Context) ([]*Sale, error)
	UpdateSale(ctx context.Context, sale *Sale) error
	DeleteSale(ctx context.Context, id uuid.UUID) error
}

// Service owns the sales ledger: an append-biased, admin-editable list whose
// insertion order is the canonical ordering.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ItemID   uuid.UUID
	ItemName string
	Quantity int
	Date     time.Time
}

// UpdateParams carries the ledger fields an admin may overwrite. Edits are
// corrections to the record and are not re-validated against the inventory.
type UpdateParams struct {
	ItemName *string
	Quantity *int
	Date     *time.Time
}

// Append adds a new entry with a fresh id at the end of the ledger.
func (s *Service) Append(ctx context.Context, params CreateParams) (*Sale, error) {
	sale := &Sale{
		ItemID:   params.ItemID,
		ItemName: params.ItemName,
		Quantity: params.Quantity,
		Date:     params.Date,
	}
	if err := s.repo.CreateSale(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Sale, error) {
	return s.repo.GetSale(ctx, id)
}

// List returns the ledger in insertion order.
func (s *Service) List(ctx context.Context) ([]*Sale, error) {
	return s.repo.ListSales(ctx)
}

// Update overwrites the provided fields of the entry. An unknown id is a
// silent no-op.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Sale, error) {
	sale, err := s.repo.GetSale(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}

		return nil, err
	}

	if params.ItemName != nil {
		sale.ItemName = *params.ItemName
	}

	if params.Quantity != nil {
		sale.Quantity = *params.Quantity
	}

	if params.Date != nil {
		sale.Date = *params.Date
	}

	if err := s.repo.UpdateSale(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

// Remove deletes the entry. Removing a sale is a correction to the ledger,
// not an inverse transaction: the item's stock is not restored.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteSale(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	return nil
}
