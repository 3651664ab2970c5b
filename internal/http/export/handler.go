package export

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/medistock/internal/export"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/sales.csv", h.salesCSV)
}

func (h *Handler) salesCSV(w http.ResponseWriter, r *http.Request) {
	csv, err := h.svc.SalesCSV(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename))

	if _, err := w.Write([]byte(csv)); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
