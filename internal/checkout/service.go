// Package checkout implements the sale transaction: the single operation
// that couples the sales ledger and the inventory. Recording a sale appends
// a ledger entry and decrements the item's stock as one unit; no reader ever
// observes one without the other.
package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/medistock/internal/sales"
)

// ValidationError communicates a rejected sale request back to the caller.
type ValidationError struct {
	message string
}

func (e ValidationError) Error() string { return e.message }

func newValidationError(msg string) error {
	return ValidationError{message: msg}
}

// IsValidation helps callers distinguish rejected input from business-rule
// failures such as inventory.ErrInsufficientStock.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=checkout
type Repository interface {
	// RecordSale checks stock and, when sufficient, appends the ledger entry
	// and decrements the item's stock under one lock. The entry's ItemName is
	// the item's name at this moment, captured as a snapshot.
	RecordSale(ctx context.Context, itemID uuid.UUID, quantity int, date time.Time) (*sales.Sale, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Sell records a sale of quantity units of the given item on the given day.
// It fails with a ValidationError for non-positive quantities, with
// inventory.ErrNotFound for unknown items, and with
// inventory.ErrInsufficientStock when fewer than quantity units are on hand.
// On failure neither the ledger nor the inventory changes.
func (s *Service) Sell(ctx context.Context, itemID uuid.UUID, quantity int, date time.Time) (*sales.Sale, error) {
	if quantity <= 0 {
		return nil, newValidationError("quantity must be positive")
	}

	return s.repo.RecordSale(ctx, itemID, quantity, date)
}
