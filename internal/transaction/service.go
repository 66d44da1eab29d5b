package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*Transaction, error)
	TransactionIDExists(ctx context.Context, transactionID string) (bool, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ListTransactions(ctx context.Context, filter Filter) ([]*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Description     string
	Type            Type
	Category        string
	Amount          decimal.Decimal
	PaymentMethod   PaymentMethod
	Reference       string
	Account         string
	Notes           string
	CreatedBy       string
	TransactionDate time.Time
}

// Filter narrows ListTransactions. A zero Limit means no limit; report and
// analytics builders rely on that to see the full matching set.
type Filter struct {
	Type          *Type
	PaymentMethod *PaymentMethod
	Search        string
	StartDate     *time.Time
	EndDate       *time.Time
	Skip          int
	Limit         int
}

func (p CreateParams) validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, p.Type)
	}

	if p.PaymentMethod != "" && !p.PaymentMethod.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, p.PaymentMethod)
	}

	if p.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	if p.TransactionDate.IsZero() {
		return ErrMissingDate
	}

	return nil
}

// Create validates the params, assigns a fresh unique transaction id and
// persists the record. Id generation retries on collision, bounded by
// maxIDAttempts; the store's unique constraint closes the remaining race
// between the existence check and the insert.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	method := params.PaymentMethod
	if method == "" {
		method = PaymentCash
	}

	tx := &Transaction{
		Description:     params.Description,
		Type:            params.Type,
		Category:        params.Category,
		Amount:          params.Amount,
		PaymentMethod:   method,
		Reference:       params.Reference,
		Account:         params.Account,
		Notes:           params.Notes,
		CreatedBy:       params.CreatedBy,
		TransactionDate: params.TransactionDate,
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := newTransactionID()
		if err != nil {
			return nil, err
		}

		exists, err := s.repo.TransactionIDExists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("checking transaction id: %w", err)
		}

		if exists {
			continue
		}

		tx.TransactionID = id

		err = s.repo.CreateTransaction(ctx, tx)
		if errors.Is(err, ErrDuplicateID) {
			// Lost the race to a concurrent insert; regenerate.
			continue
		}

		if err != nil {
			return nil, err
		}

		return tx, nil
	}

	return nil, fmt.Errorf("generating transaction id: exhausted %d attempts", maxIDAttempts)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) GetByTransactionID(ctx context.Context, transactionID string) (*Transaction, error) {
	return s.repo.GetByTransactionID(ctx, transactionID)
}

type UpdateParams struct {
	Description     *string
	Type            *Type
	Category        *string
	Amount          *decimal.Decimal
	PaymentMethod   *PaymentMethod
	Reference       *string
	Account         *string
	Notes           *string
	TransactionDate *time.Time
}

// Update merges only the supplied fields into the stored record.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Description != nil {
		tx.Description = *params.Description
	}

	if params.Type != nil {
		if !params.Type.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidType, *params.Type)
		}

		tx.Type = *params.Type
	}

	if params.Category != nil {
		tx.Category = *params.Category
	}

	if params.Amount != nil {
		if params.Amount.IsNegative() {
			return nil, ErrInvalidAmount
		}

		tx.Amount = *params.Amount
	}

	if params.PaymentMethod != nil {
		if !params.PaymentMethod.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, *params.PaymentMethod)
		}

		tx.PaymentMethod = *params.PaymentMethod
	}

	if params.Reference != nil {
		tx.Reference = *params.Reference
	}

	if params.Account != nil {
		tx.Account = *params.Account
	}

	if params.Notes != nil {
		tx.Notes = *params.Notes
	}

	if params.TransactionDate != nil {
		tx.TransactionDate = *params.TransactionDate
	}

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Reconcile marks the transaction as verified against an external statement.
func (s *Service) Reconcile(ctx context.Context, id uuid.UUID, by string) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tx.IsReconciled = true
	tx.ReconciledAt = &now
	tx.ReconciledBy = by

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}
