package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/medistock/internal/inventory"
)

type itemResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Unit      string     `json:"unit"`
	Stock     int        `json:"stock"`
	Price     float64    `json:"price"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(item *inventory.Item) itemResponse {
	return itemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Category:  item.Category,
		Unit:      item.Unit,
		Stock:     item.Stock,
		Price:     item.Price,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toResponseList(items []*inventory.Item) []itemResponse {
	resp := make([]itemResponse, len(items))
	for i, item := range items {
		resp[i] = toResponse(item)
	}

	return resp
}
