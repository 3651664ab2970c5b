package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/medistock/internal/report"
	"github.com/MrJamesThe3rd/medistock/internal/sales"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFilter(t *testing.T) {
	ledger := []*sales.Sale{
		{ItemName: "Paracetamol 500mg"},
		{ItemName: "Amoxicillin 250mg"},
		{ItemName: "paracetamol syrup"},
	}

	type testCase struct {
		name      string
		query     string
		wantNames []string
	}

	tests := []testCase{
		{
			name:      "EmptyQueryMatchesAll",
			query:     "",
			wantNames: []string{"Paracetamol 500mg", "Amoxicillin 250mg", "paracetamol syrup"},
		},
		{
			name:      "CaseInsensitive",
			query:     "PARACETAMOL",
			wantNames: []string{"Paracetamol 500mg", "paracetamol syrup"},
		},
		{
			name:      "Substring",
			query:     "250",
			wantNames: []string{"Amoxicillin 250mg"},
		},
		{
			name:      "NoMatch",
			query:     "ibuprofen",
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.Filter(ledger, tt.query)

			names := make([]string, 0, len(got))
			for _, sale := range got {
				names = append(names, sale.ItemName)
			}

			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	ledger := []*sales.Sale{{ItemName: "A"}, {ItemName: "B"}}

	got := report.Filter(ledger, "")
	got[0] = nil

	assert.Equal(t, "A", ledger[0].ItemName)
}

func TestSort_ByQuantity(t *testing.T) {
	ledger := []*sales.Sale{
		{ItemName: "C", Quantity: 5},
		{ItemName: "A", Quantity: 1},
		{ItemName: "B", Quantity: 3},
	}

	asc := report.Sort(ledger, report.FieldQuantity, report.Asc)
	require.Len(t, asc, 3)
	assert.Equal(t, []int{1, 3, 5}, []int{asc[0].Quantity, asc[1].Quantity, asc[2].Quantity})

	desc := report.Sort(ledger, report.FieldQuantity, report.Desc)
	assert.Equal(t, []int{5, 3, 1}, []int{desc[0].Quantity, desc[1].Quantity, desc[2].Quantity})

	// The input keeps its ledger order.
	assert.Equal(t, "C", ledger[0].ItemName)
}

func TestSort_TiesKeepLedgerOrder(t *testing.T) {
	ledger := []*sales.Sale{
		{ItemName: "first", Quantity: 2},
		{ItemName: "second", Quantity: 2},
		{ItemName: "third", Quantity: 2},
	}

	for _, dir := range []report.Direction{report.Asc, report.Desc} {
		got := report.Sort(ledger, report.FieldQuantity, dir)
		require.Len(t, got, 3)
		assert.Equal(t, "first", got[0].ItemName, "dir=%s", dir)
		assert.Equal(t, "second", got[1].ItemName, "dir=%s", dir)
		assert.Equal(t, "third", got[2].ItemName, "dir=%s", dir)
	}
}

func TestSort_ByDate(t *testing.T) {
	ledger := []*sales.Sale{
		{ItemName: "late", Date: day(2024, 6, 3)},
		{ItemName: "early", Date: day(2024, 6, 1)},
		{ItemName: "mid", Date: day(2024, 6, 2)},
	}

	got := report.Sort(ledger, report.FieldDate, report.Asc)
	assert.Equal(t, "early", got[0].ItemName)
	assert.Equal(t, "mid", got[1].ItemName)
	assert.Equal(t, "late", got[2].ItemName)
}

func TestSort_UnknownFieldKeepsLedgerOrder(t *testing.T) {
	ledger := []*sales.Sale{
		{ItemName: "b", Quantity: 2},
		{ItemName: "a", Quantity: 1},
	}

	got := report.Sort(ledger, "price", report.Asc)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ItemName)
	assert.Equal(t, "a", got[1].ItemName)
}

func TestPaginate(t *testing.T) {
	list := make([]int, 12)
	for i := range list {
		list[i] = i + 1
	}

	type testCase struct {
		name     string
		page     int
		pageSize int
		want     []int
	}

	tests := []testCase{
		{name: "FirstPage", page: 1, pageSize: 5, want: []int{1, 2, 3, 4, 5}},
		{name: "MiddlePage", page: 2, pageSize: 5, want: []int{6, 7, 8, 9, 10}},
		{name: "ShortLastPage", page: 3, pageSize: 5, want: []int{11, 12}},
		{name: "PastTheEnd", page: 99, pageSize: 5, want: []int{}},
		{name: "PageZero", page: 0, pageSize: 5, want: []int{}},
		{name: "ZeroPageSize", page: 1, pageSize: 0, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, report.Paginate(list, tt.page, tt.pageSize))
		})
	}
}

func TestDailySales(t *testing.T) {
	ref := day(2024, 6, 15)

	ledger := []*sales.Sale{
		{ID: uuid.New(), Quantity: 5, Date: ref},
		{ID: uuid.New(), Quantity: 3, Date: ref.AddDate(0, 0, -1)},
		// Outside the 7-day window; must not appear.
		{ID: uuid.New(), Quantity: 100, Date: ref.AddDate(0, 0, -10)},
	}

	got := report.DailySales(ledger, ref, 7)
	require.Len(t, got, 7)

	// Oldest first, ending at the reference day.
	assert.Equal(t, day(2024, 6, 9), got[0].Date)
	assert.Equal(t, ref, got[6].Date)

	for i, total := range got[:5] {
		assert.Zero(t, total.Quantity, "day %d", i)
	}

	assert.Equal(t, 3, got[5].Quantity)
	assert.Equal(t, 5, got[6].Quantity)
}

func TestDailySales_SumsSameDay(t *testing.T) {
	ref := day(2024, 6, 15)

	ledger := []*sales.Sale{
		{Quantity: 2, Date: ref},
		{Quantity: 3, Date: ref},
		{Quantity: 4, Date: ref},
	}

	got := report.DailySales(ledger, ref, 1)
	require.Len(t, got, 1)
	assert.Equal(t, 9, got[0].Quantity)
}

func TestDailySales_NoDays(t *testing.T) {
	assert.Empty(t, report.DailySales(nil, day(2024, 6, 15), 0))
}
