package transaction

import "errors"

var (
	// ErrNotFound is returned when no transaction matches the given id.
	ErrNotFound = errors.New("transaction not found")

	// ErrDuplicateID is returned by the store when the unique constraint on
	// transaction_id rejects an insert.
	ErrDuplicateID = errors.New("duplicate transaction id")

	// ErrInvalidType is returned for an unknown transaction type.
	ErrInvalidType = errors.New("invalid transaction type")

	// ErrInvalidPaymentMethod is returned for an unknown payment method.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidAmount is returned when the amount is negative.
	ErrInvalidAmount = errors.New("amount must not be negative")

	// ErrMissingDate is returned when the transaction date is absent.
	ErrMissingDate = errors.New("transaction date is required")
)
