package sales

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/medistock/internal/checkout"
	"github.com/MrJamesThe3rd/medistock/internal/inventory"
	"github.com/MrJamesThe3rd/medistock/internal/report"
	"github.com/MrJamesThe3rd/medistock/internal/sales"
)

const defaultPageSize = 5

type Handler struct {
	ledger   *sales.Service
	checkout *checkout.Service
}

func NewHandler(ledger *sales.Service, checkoutSvc *checkout.Service) *Handler {
	return &Handler{ledger: ledger, checkout: checkoutSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

func (h *Handler) AdminRoutes(r chi.Router) {
	r.Post("/", h.record)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// list applies the sales view pipeline: filter by item name, stable sort,
// then paginate.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	all, err := h.ledger.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()

	filtered := report.Filter(all, q.Get("search"))

	if field := q.Get("sort"); field != "" {
		dir := report.Asc
		if q.Get("dir") == string(report.Desc) {
			dir = report.Desc
		}

		filtered = report.Sort(filtered, report.Field(field), dir)
	}

	page := 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}

	pageSize := defaultPageSize
	if v, err := strconv.Atoi(q.Get("page_size")); err == nil && v > 0 {
		pageSize = v
	}

	paged := report.Paginate(filtered, page, pageSize)

	w.Header().Set("Content-Type", "application/json")

	resp := listResponse{
		Sales:    toResponseList(paged),
		Total:    len(filtered),
		Page:     page,
		PageSize: pageSize,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type recordSaleRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
	Date     string    `json:"date"` // YYYY-MM-DD, defaults to today
}

// record runs the sale transaction: ledger append plus stock decrement as one
// unit, or neither.
func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date := time.Now()

	if req.Date != "" {
		var err error
		if date, err = time.Parse(time.DateOnly, req.Date); err != nil {
			http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	sale, err := h.checkout.Sell(r.Context(), req.ItemID, req.Quantity, date)
	if err != nil {
		switch {
		case checkout.IsValidation(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, inventory.ErrNotFound):
			http.Error(w, "item not found", http.StatusNotFound)
		case errors.Is(err, inventory.ErrInsufficientStock):
			http.Error(w, "insufficient stock", http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(sale)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateSaleRequest struct {
	ItemName *string `json:"item_name,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
	Date     *string `json:"date,omitempty"`
}

// update corrects a ledger entry. Edits are not validated against the
// inventory, and an unknown id is a no-op answered with 204.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := sales.UpdateParams{
		ItemName: req.ItemName,
		Quantity: req.Quantity,
	}

	if req.Date != nil {
		date, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		params.Date = &date
	}

	sale, err := h.ledger.Update(r.Context(), id, params)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if sale == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sale)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// delete removes the ledger entry. Stock is not restored; the deletion is a
// correction to the record, not an inverse transaction.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.ledger.Remove(r.Context(), id); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
