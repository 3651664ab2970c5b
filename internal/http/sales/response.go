package sales

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/medistock/internal/sales"
)

type saleResponse struct {
	ID        uuid.UUID  `json:"id"`
	ItemID    uuid.UUID  `json:"item_id"`
	ItemName  string     `json:"item_name"`
	Quantity  int        `json:"quantity"`
	Date      string     `json:"date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type listResponse struct {
	Sales    []saleResponse `json:"sales"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

func toResponse(sale *sales.Sale) saleResponse {
	return saleResponse{
		ID:        sale.ID,
		ItemID:    sale.ItemID,
		ItemName:  sale.ItemName,
		Quantity:  sale.Quantity,
		Date:      sale.Date.Format(time.DateOnly),
		CreatedAt: sale.CreatedAt,
		UpdatedAt: sale.UpdatedAt,
	}
}

func toResponseList(list []*sales.Sale) []saleResponse {
	resp := make([]saleResponse, len(list))
	for i, sale := range list {
		resp[i] = toResponse(sale)
	}

	return resp
}
