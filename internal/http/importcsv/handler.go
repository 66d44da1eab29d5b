package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/suggest"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Handler struct {
	importSvc  *importer.Service
	txSvc      *transaction.Service
	suggestSvc *suggest.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service, suggestSvc *suggest.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		txSvc:      txSvc,
		suggestSvc: suggestSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported     int      `json:"imported"`
	Failed       int      `json:"failed"`
	Transactions []string `json:"transaction_ids"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatBankCSV
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Fill in categories from learned mappings where the sheet had none.
	for i, p := range params {
		if p.Category != "" {
			continue
		}

		suggested, err := h.suggestSvc.Suggest(r.Context(), p.Description)
		if err != nil || suggested == "" {
			continue
		}

		params[i].Category = suggested
	}

	resp := importResponse{Transactions: []string{}}

	for _, p := range params {
		tx, err := h.txSvc.Create(r.Context(), p)
		if err != nil {
			slog.Error("failed to import transaction", "description", p.Description, "error", err)

			resp.Failed++

			continue
		}

		resp.Imported++
		resp.Transactions = append(resp.Transactions, tx.TransactionID)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
