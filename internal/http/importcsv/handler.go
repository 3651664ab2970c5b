package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/medistock/internal/importer"
	"github.com/MrJamesThe3rd/medistock/internal/inventory"
)

type Handler struct {
	parser *importer.Parser
	items  *inventory.Service
}

func NewHandler(parser *importer.Parser, items *inventory.Service) *Handler {
	return &Handler{parser: parser, items: items}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// importCSV bulk-adds items from an uploaded spreadsheet. Rows that fail
// validation are skipped and counted; the rest are added.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	drafts, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var resp importResponse

	for _, draft := range drafts {
		if _, err := h.items.Add(r.Context(), draft); err != nil {
			if inventory.IsValidation(err) {
				resp.Skipped++
				continue
			}

			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		resp.Imported++
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
