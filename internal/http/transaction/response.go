package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type transactionResponse struct {
	ID              uuid.UUID                 `json:"id"`
	TransactionID   string                    `json:"transaction_id"`
	Description     string                    `json:"description"`
	Type            transaction.Type          `json:"type"`
	Category        string                    `json:"category,omitempty"`
	Amount          decimal.Decimal           `json:"amount"`
	PaymentMethod   transaction.PaymentMethod `json:"payment_method"`
	Reference       string                    `json:"reference,omitempty"`
	Account         string                    `json:"account,omitempty"`
	Notes           string                    `json:"notes,omitempty"`
	CreatedBy       string                    `json:"created_by,omitempty"`
	IsReconciled    bool                      `json:"is_reconciled"`
	ReconciledAt    *time.Time                `json:"reconciled_at,omitempty"`
	ReconciledBy    string                    `json:"reconciled_by,omitempty"`
	TransactionDate time.Time                 `json:"transaction_date"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       *time.Time                `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:              tx.ID,
		TransactionID:   tx.TransactionID,
		Description:     tx.Description,
		Type:            tx.Type,
		Category:        tx.Category,
		Amount:          tx.Amount,
		PaymentMethod:   tx.PaymentMethod,
		Reference:       tx.Reference,
		Account:         tx.Account,
		Notes:           tx.Notes,
		CreatedBy:       tx.CreatedBy,
		IsReconciled:    tx.IsReconciled,
		ReconciledAt:    tx.ReconciledAt,
		ReconciledBy:    tx.ReconciledBy,
		TransactionDate: tx.TransactionDate,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
