package importer

import (
	"io"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Format identifies a supported statement layout.
type Format string

const (
	FormatBankCSV Format = "bank_csv"
)

// Parser turns a raw statement into transaction create params.
type Parser interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
