package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/medistock/internal/report"
)

const defaultDays = 7

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/daily", h.daily)
}

type summaryResponse struct {
	TotalItems int `json:"total_items"`
	TotalStock int `json:"total_stock"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := summaryResponse{
		TotalItems: summary.TotalItems,
		TotalStock: summary.TotalStock,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type dayTotalResponse struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

// daily reports per-day unit totals for the trailing window ending today.
// "Today" is the server's wall clock at request time.
func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	days := defaultDays
	if v, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && v > 0 {
		days = v
	}

	totals, err := h.svc.DailySales(r.Context(), time.Now(), days)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]dayTotalResponse, len(totals))
	for i, day := range totals {
		resp[i] = dayTotalResponse{
			Date:     day.Date.Format(time.DateOnly),
			Quantity: day.Quantity,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
