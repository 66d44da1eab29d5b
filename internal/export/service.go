package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Service writes transactions out as CSV for accountants and spreadsheets.
type Service struct {
	transactions *transaction.Service
}

func NewService(txService *transaction.Service) *Service {
	return &Service{transactions: txService}
}

var csvHeader = []string{
	"transaction_id", "transaction_date", "type", "category", "amount",
	"payment_method", "description", "reference", "account", "reconciled",
}

// WriteCSV streams all transactions matching the filter to w, ordered the
// way the store returns them (transaction date descending).
func (s *Service) WriteCSV(ctx context.Context, filter transaction.Filter, w io.Writer) error {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		reconciled := "no"
		if tx.IsReconciled {
			reconciled = "yes"
		}

		record := []string{
			tx.TransactionID,
			tx.TransactionDate.Format(time.DateOnly),
			string(tx.Type),
			tx.Category,
			tx.Amount.String(),
			string(tx.PaymentMethod),
			tx.Description,
			tx.Reference,
			tx.Account,
			reconciled,
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.TransactionID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}
