package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type classifies what a transaction does to the books.
type Type string

const (
	TypeRevenue   Type = "REVENUE"
	TypeExpense   Type = "EXPENSE"
	TypeAsset     Type = "ASSET"
	TypeLiability Type = "LIABILITY"
	TypeEquity    Type = "EQUITY"
	TypeTransfer  Type = "TRANSFER"
	TypeReversal  Type = "REVERSAL"
	TypeOther     Type = "OTHER"
)

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	switch t {
	case TypeRevenue, TypeExpense, TypeAsset, TypeLiability, TypeEquity,
		TypeTransfer, TypeReversal, TypeOther:
		return true
	}

	return false
}

// PaymentMethod is how the money moved.
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "CASH"
	PaymentBank        PaymentMethod = "BANK"
	PaymentCard        PaymentMethod = "CARD"
	PaymentMobileMoney PaymentMethod = "MOBILE_MONEY"
	PaymentOther       PaymentMethod = "OTHER"
)

// Valid reports whether p is a known payment method.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentBank, PaymentCard, PaymentMobileMoney, PaymentOther:
		return true
	}

	return false
}

// Transaction is a single recorded monetary event. Amount is always >= 0;
// the direction is carried by Type, never by a negative amount.
type Transaction struct {
	ID            uuid.UUID
	TransactionID string // external key, "TXN-" + 8 uppercase alphanumerics
	Description   string
	Type          Type
	Category      string
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	Reference     string
	Account       string
	Notes         string
	CreatedBy     string

	IsReconciled bool
	ReconciledAt *time.Time
	ReconciledBy string

	TransactionDate time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
