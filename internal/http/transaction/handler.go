package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/reconcile", h.reconcile)
	r.Patch("/{id}", h.update)
}

// writeError maps domain sentinels onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, transaction.ErrDuplicateID):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, transaction.ErrInvalidType),
		errors.Is(err, transaction.ErrInvalidPaymentMethod),
		errors.Is(err, transaction.ErrInvalidAmount),
		errors.Is(err, transaction.ErrMissingDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createTransactionRequest struct {
	Description     string                    `json:"description"`
	Type            transaction.Type          `json:"type"`
	Category        string                    `json:"category"`
	Amount          decimal.Decimal           `json:"amount"`
	PaymentMethod   transaction.PaymentMethod `json:"payment_method"`
	Reference       string                    `json:"reference"`
	Account         string                    `json:"account"`
	Notes           string                    `json:"notes"`
	CreatedBy       string                    `json:"created_by"`
	TransactionDate time.Time                 `json:"transaction_date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Description:     req.Description,
		Type:            req.Type,
		Category:        req.Category,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		Reference:       req.Reference,
		Account:         req.Account,
		Notes:           req.Notes,
		CreatedBy:       req.CreatedBy,
		TransactionDate: req.TransactionDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx))
}

const defaultListLimit = 50

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.Filter{Limit: defaultListLimit}

	if s := r.URL.Query().Get("type"); s != "" {
		filter.Type = new(transaction.Type(s))
	}

	if s := r.URL.Query().Get("payment_method"); s != "" {
		filter.PaymentMethod = new(transaction.PaymentMethod(s))
	}

	filter.Search = r.URL.Query().Get("search")

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	if s := r.URL.Query().Get("skip"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			filter.Skip = n
		}
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateTransactionRequest struct {
	Description     *string                    `json:"description,omitempty"`
	Type            *transaction.Type          `json:"type,omitempty"`
	Category        *string                    `json:"category,omitempty"`
	Amount          *decimal.Decimal           `json:"amount,omitempty"`
	PaymentMethod   *transaction.PaymentMethod `json:"payment_method,omitempty"`
	Reference       *string                    `json:"reference,omitempty"`
	Account         *string                    `json:"account,omitempty"`
	Notes           *string                    `json:"notes,omitempty"`
	TransactionDate *time.Time                 `json:"transaction_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Update(r.Context(), id, transaction.UpdateParams{
		Description:     req.Description,
		Type:            req.Type,
		Category:        req.Category,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		Reference:       req.Reference,
		Account:         req.Account,
		Notes:           req.Notes,
		TransactionDate: req.TransactionDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

type reconcileRequest struct {
	ReconciledBy string `json:"reconciled_by"`
}

func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Reconcile(r.Context(), id, req.ReconciledBy)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}
