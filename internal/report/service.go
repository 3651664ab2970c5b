package report

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/medistock/internal/inventory"
	"github.com/MrJamesThe3rd/medistock/internal/sales"
)

// Summary holds the dashboard stat cards.
type Summary struct {
	TotalItems int
	TotalStock int
}

// Service answers dashboard queries against the two collections.
type Service struct {
	items  *inventory.Service
	ledger *sales.Service
}

func NewService(items *inventory.Service, ledger *sales.Service) *Service {
	return &Service{items: items, ledger: ledger}
}

// Summary returns the item count and the stock total across the inventory.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("listing items: %w", err)
	}

	summary := Summary{TotalItems: len(items)}
	for _, item := range items {
		summary.TotalStock += item.Stock
	}

	return summary, nil
}

// DailySales returns per-day unit totals for the last days days ending at ref.
func (s *Service) DailySales(ctx context.Context, ref time.Time, days int) ([]DayTotal, error) {
	list, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}

	return DailySales(list, ref, days), nil
}
