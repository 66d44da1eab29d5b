package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/income-statement", h.incomeStatement)
	r.Get("/balance-sheet", h.balanceSheet)
	r.Get("/cash-flow", h.cashFlow)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, report.ErrInvalidPeriod) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (h *Handler) incomeStatement(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		http.Error(w, "month query parameter is required", http.StatusBadRequest)
		return
	}

	stmt, err := h.svc.IncomeStatement(r.Context(), month)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, stmt)
}

func (h *Handler) balanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now().UTC()

	if s := r.URL.Query().Get("as_of_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "as_of_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		// Include the whole as-of day.
		asOf = t.Add(24*time.Hour - time.Second)
	}

	sheet, err := h.svc.BalanceSheet(r.Context(), asOf)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, sheet)
}

func (h *Handler) cashFlow(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		http.Error(w, "month query parameter is required", http.StatusBadRequest)
		return
	}

	stmt, err := h.svc.CashFlow(r.Context(), month)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, stmt)
}
