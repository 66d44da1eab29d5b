package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	id, transaction_id, description, type, category, amount, payment_method,
	reference, account, notes, created_by,
	is_reconciled, reconciled_at, reconciled_by,
	transaction_date, created_at, updated_at
`

// scanTransaction reads a transaction row in selectTransactionColumns order.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr, methodStr string

	var category, reference, account, notes, createdBy, reconciledBy sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.TransactionID, &tx.Description, &typeStr, &category, &tx.Amount, &methodStr,
		&reference, &account, &notes, &createdBy,
		&tx.IsReconciled, &tx.ReconciledAt, &reconciledBy,
		&tx.TransactionDate, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.PaymentMethod = transaction.PaymentMethod(methodStr)
	tx.Category = category.String
	tx.Reference = reference.String
	tx.Account = account.String
	tx.Notes = notes.String
	tx.CreatedBy = createdBy.String
	tx.ReconciledBy = reconciledBy.String

	return &tx, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (
			transaction_id, description, type, category, amount, payment_method,
			reference, account, notes, created_by, transaction_date, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.TransactionID,
		tx.Description,
		tx.Type,
		tx.Category,
		tx.Amount,
		tx.PaymentMethod,
		tx.Reference,
		tx.Account,
		tx.Notes,
		tx.CreatedBy,
		tx.TransactionDate,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return transaction.ErrDuplicateID
		}

		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) GetByTransactionID(ctx context.Context, transactionID string) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE transaction_id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction by external id: %w", err)
	}

	return tx, nil
}

func (s *Store) TransactionIDExists(ctx context.Context, transactionID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, transactionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking transaction id: %w", err)
	}

	return exists, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.Filter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.PaymentMethod != nil {
		query += fmt.Sprintf(" AND payment_method = $%d", argIdx)

		args = append(args, *filter.PaymentMethod)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(
			" AND (description ILIKE $%d OR reference ILIKE $%d OR category ILIKE $%d)",
			argIdx, argIdx, argIdx,
		)

		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND transaction_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND transaction_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY transaction_date DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
		argIdx++
	}

	if filter.Skip > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)

		args = append(args, filter.Skip)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET description = $1, type = $2, category = $3, amount = $4, payment_method = $5,
			reference = $6, account = $7, notes = $8,
			is_reconciled = $9, reconciled_at = $10, reconciled_by = $11,
			transaction_date = $12, updated_at = NOW()
		WHERE id = $13
	`

	res, err := s.db.ExecContext(ctx, query,
		tx.Description,
		tx.Type,
		tx.Category,
		tx.Amount,
		tx.PaymentMethod,
		tx.Reference,
		tx.Account,
		tx.Notes,
		tx.IsReconciled,
		tx.ReconciledAt,
		tx.ReconciledBy,
		tx.TransactionDate,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if affected == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if affected == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
