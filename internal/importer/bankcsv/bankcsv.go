package bankcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const (
	colDate      = "Date"
	colDesc      = "Description"
	colAmount    = "Amount"
	colCategory  = "Category"
	colReference = "Reference"
)

var dateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

// Parser reads semicolon-separated bank statement exports. The sheet may
// carry preamble rows before the header, so the header row is located by
// landmark column names rather than assumed to be first.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	idxDate, idxDesc, idxAmount, idxCategory, idxRef := -1, -1, -1, -1, -1
	headerFound := false

	var params []transaction.CreateParams

	for _, row := range rows {
		if !headerFound {
			matches := 0

			for i, col := range row {
				switch strings.TrimSpace(col) {
				case colDate:
					idxDate = i
					matches++
				case colDesc:
					idxDesc = i
					matches++
				case colAmount:
					idxAmount = i
					matches++
				case colCategory:
					idxCategory = i
				case colReference:
					idxRef = i
				}
			}

			// Date and Amount are the landmarks; everything else is optional.
			if matches >= 2 && idxDate != -1 && idxAmount != -1 {
				headerFound = true
			}

			continue
		}

		if len(row) <= idxDate || len(row) <= idxAmount {
			continue
		}

		date, ok := parseDate(strings.TrimSpace(row[idxDate]))
		if !ok {
			// Footer or blank row.
			continue
		}

		amount, err := parseAmount(strings.TrimSpace(row[idxAmount]))
		if err != nil {
			continue
		}

		txType := transaction.TypeRevenue
		if amount.IsNegative() {
			txType = transaction.TypeExpense
			amount = amount.Neg()
		}

		param := transaction.CreateParams{
			Type:            txType,
			Amount:          amount,
			PaymentMethod:   transaction.PaymentBank,
			TransactionDate: date,
		}

		if idxDesc != -1 && len(row) > idxDesc {
			param.Description = strings.TrimSpace(row[idxDesc])
		}

		if idxCategory != -1 && len(row) > idxCategory {
			param.Category = strings.TrimSpace(row[idxCategory])
		}

		if idxRef != -1 && len(row) > idxRef {
			param.Reference = strings.TrimSpace(row[idxRef])
		}

		params = append(params, param)
	}

	if !headerFound {
		return nil, fmt.Errorf("no header row with %q and %q columns found", colDate, colAmount)
	}

	return params, nil
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
