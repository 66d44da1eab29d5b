package analytics

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/analytics"
)

const (
	defaultMonths = 6
	maxMonths     = 60
)

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/revenue", h.revenue)
	r.Get("/cash-flow", h.cashFlow)
}

func months(r *http.Request) int {
	s := r.URL.Query().Get("months")
	if s == "" {
		return defaultMonths
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return defaultMonths
	}

	return min(n, maxMonths)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) revenue(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Revenue(r.Context(), months(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, out)
}

func (h *Handler) cashFlow(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.CashFlow(r.Context(), months(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, out)
}
