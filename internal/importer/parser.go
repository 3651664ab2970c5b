// Package importer reads inventory spreadsheets so an admin can bulk-load
// items instead of typing them one by one.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	enc "github.com/MrJamesThe3rd/medistock/internal/encoding"
	"github.com/MrJamesThe3rd/medistock/internal/inventory"
)

const (
	colName     = "Name"
	colCategory = "Category"
	colStock    = "Stock"
	colUnit     = "Unit"
	colPrice    = "Price"
)

// Parser reads a comma-separated inventory listing. The header row is located
// by landmark scan so exports with preamble rows still parse, and the input
// encoding is auto-detected.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]inventory.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	idxName, idxCategory, idxStock, idxUnit, idxPrice := -1, -1, -1, -1, -1
	headerFound := false

	var items []inventory.CreateParams

	for _, row := range rows {
		if !headerFound {
			matches := 0

			for i, cell := range row {
				switch strings.TrimSpace(cell) {
				case colName:
					idxName = i
					matches++
				case colCategory:
					idxCategory = i
					matches++
				case colStock:
					idxStock = i
					matches++
				case colUnit:
					idxUnit = i
					matches++
				case colPrice:
					idxPrice = i
					matches++
				}
			}

			// Name plus at least one numeric column marks the header.
			if idxName != -1 && matches >= 3 {
				headerFound = true
			}

			continue
		}

		maxIdx := max(idxName, idxCategory, idxStock, idxUnit, idxPrice)
		if len(row) <= maxIdx {
			continue
		}

		name := strings.TrimSpace(row[idxName])
		if name == "" {
			continue
		}

		params := inventory.CreateParams{Name: name}

		if idxCategory != -1 {
			params.Category = strings.TrimSpace(row[idxCategory])
		}

		if idxUnit != -1 {
			params.Unit = strings.TrimSpace(row[idxUnit])
		}

		// Absent or malformed numbers default to zero, matching the add-item
		// form.
		if idxStock != -1 {
			params.Stock, _ = strconv.Atoi(strings.TrimSpace(row[idxStock]))
		}

		if idxPrice != -1 {
			params.Price, _ = strconv.ParseFloat(strings.TrimSpace(row[idxPrice]), 64)
		}

		items = append(items, params)
	}

	if !headerFound {
		return nil, fmt.Errorf("no inventory header found: expected columns %s, %s, %s, %s, %s",
			colName, colCategory, colStock, colUnit, colPrice)
	}

	return items, nil
}
