package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/medistock/internal/sales"
)

// Filename is the download name offered to the user.
const Filename = "sales.csv"

// ContentType is the mime type of the export.
const ContentType = "text/csv"

// Service renders the sales ledger as a CSV export.
type Service struct {
	ledger *sales.Service
}

func NewService(ledger *sales.Service) *Service {
	return &Service{ledger: ledger}
}

// SalesCSV returns the ledger as newline-separated rows under the header
// ID,Item,Qty,Date, in current ledger order. Fields are joined verbatim:
// a comma inside an item name corrupts its row.
func (s *Service) SalesCSV(ctx context.Context) (string, error) {
	list, err := s.ledger.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing sales: %w", err)
	}

	return RenderCSV(list), nil
}

// RenderCSV formats the given sales without touching the ledger.
func RenderCSV(list []*sales.Sale) string {
	rows := make([]string, 0, len(list)+1)
	rows = append(rows, "ID,Item,Qty,Date")

	for _, sale := range list {
		rows = append(rows, fmt.Sprintf("%s,%s,%d,%s",
			sale.ID, sale.ItemName, sale.Quantity, sale.Date.Format(time.DateOnly)))
	}

	return strings.Join(rows, "\n")
}
