// Package report derives view data from the current inventory and ledger
// snapshots. Every function is a pure computation over its input; nothing is
// cached or maintained incrementally.
package report

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/medistock/internal/sales"
)

// Field names a sortable sale column, matching the table headers of the
// sales view.
type Field string

const (
	FieldID       Field = "id"
	FieldItemName Field = "itemName"
	FieldQuantity Field = "quantity"
	FieldDate     Field = "date"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Filter returns the sales whose ItemName contains query, case-insensitively.
// Other fields are not searched. An empty query matches everything.
func Filter(list []*sales.Sale, query string) []*sales.Sale {
	if query == "" {
		return slices.Clone(list)
	}

	query = strings.ToLower(query)

	out := make([]*sales.Sale, 0, len(list))

	for _, sale := range list {
		if strings.Contains(strings.ToLower(sale.ItemName), query) {
			out = append(out, sale)
		}
	}

	return out
}

// Sort returns a copy of list ordered by the given field. The sort is stable:
// ties keep their original ledger order in both directions. An unknown field
// leaves the ledger order untouched.
func Sort(list []*sales.Sale, field Field, dir Direction) []*sales.Sale {
	out := slices.Clone(list)

	var compare func(a, b *sales.Sale) int

	switch field {
	case FieldID:
		compare = func(a, b *sales.Sale) int { return strings.Compare(a.ID.String(), b.ID.String()) }
	case FieldItemName:
		compare = func(a, b *sales.Sale) int { return strings.Compare(a.ItemName, b.ItemName) }
	case FieldQuantity:
		compare = func(a, b *sales.Sale) int { return cmp.Compare(a.Quantity, b.Quantity) }
	case FieldDate:
		compare = func(a, b *sales.Sale) int { return a.Date.Compare(b.Date) }
	default:
		return out
	}

	if dir == Desc {
		inner := compare
		compare = func(a, b *sales.Sale) int { return -inner(a, b) }
	}

	slices.SortStableFunc(out, compare)

	return out
}

// Paginate returns the 1-based page of the given size. Out-of-range pages
// return an empty slice rather than failing.
func Paginate[T any](list []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}

	start := (page - 1) * pageSize
	if start >= len(list) {
		return []T{}
	}

	return list[start:min(start+pageSize, len(list))]
}

// DayTotal pairs a calendar day with the units sold on it.
type DayTotal struct {
	Date     time.Time
	Quantity int
}

// DailySales sums quantities per calendar day over the last days days ending
// at ref inclusive, oldest first. Days without sales report zero. Callers
// pass the current time; tests pass a fixed reference date.
func DailySales(list []*sales.Sale, ref time.Time, days int) []DayTotal {
	if days < 1 {
		return []DayTotal{}
	}

	totals := make(map[string]int, len(list))
	for _, sale := range list {
		totals[sale.Date.Format(time.DateOnly)] += sale.Quantity
	}

	out := make([]DayTotal, 0, days)

	for i := days - 1; i >= 0; i-- {
		day := ref.AddDate(0, 0, -i)
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

		out = append(out, DayTotal{
			Date:     day,
			Quantity: totals[day.Format(time.DateOnly)],
		})
	}

	return out
}
