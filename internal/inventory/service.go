package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=inventory
type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListItems(ctx context.Context) ([]*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	DecrementStock(ctx context.Context, id uuid.UUID, amount int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name     string
	Category string
	Unit     string
	Stock    int
	Price    float64
}

// UpdateParams carries the fields to overwrite. Nil fields keep their current
// value.
type UpdateParams struct {
	Name     *string
	Category *string
	Unit     *string
	Stock    *int
	Price    *float64
}

// Add validates the draft and stores it under a fresh id. Duplicate names are
// permitted. Negative stock or price is coerced to zero, matching the form
// boundary which parses absent or invalid numbers to zero.
func (s *Service) Add(ctx context.Context, params CreateParams) (*Item, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, newValidationError("name is required")
	}

	if strings.TrimSpace(params.Category) == "" {
		return nil, newValidationError("category is required")
	}

	if strings.TrimSpace(params.Unit) == "" {
		return nil, newValidationError("unit is required")
	}

	item := &Item{
		Name:     params.Name,
		Category: params.Category,
		Unit:     params.Unit,
		Stock:    max(params.Stock, 0),
		Price:    max(params.Price, 0),
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.ListItems(ctx)
}

// Update overwrites the provided fields of the item. An unknown id is a
// silent no-op.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}

		return nil, err
	}

	if params.Name != nil {
		item.Name = *params.Name
	}

	if params.Category != nil {
		item.Category = *params.Category
	}

	if params.Unit != nil {
		item.Unit = *params.Unit
	}

	if params.Stock != nil {
		item.Stock = max(*params.Stock, 0)
	}

	if params.Price != nil {
		item.Price = max(*params.Price, 0)
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes the item. An unknown id is a silent no-op. Sales referencing
// the item are left untouched; their ItemName snapshot stays valid.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	return nil
}

// DecrementStock reduces stock by amount. The storage layer refuses the
// mutation with ErrInsufficientStock rather than letting stock go negative.
func (s *Service) DecrementStock(ctx context.Context, id uuid.UUID, amount int) error {
	if amount < 0 {
		return newValidationError("amount must not be negative")
	}

	return s.repo.DecrementStock(ctx, id, amount)
}
