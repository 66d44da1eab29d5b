package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/importer/bankcsv"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Service struct {
	bankCSV Parser
}

func NewService() *Service {
	return &Service{
		bankCSV: bankcsv.New(),
	}
}

// Import decodes the upload to UTF-8 and parses it with the parser for the
// given format.
func (s *Service) Import(format Format, r io.Reader) ([]transaction.CreateParams, error) {
	var parser Parser

	switch format {
	case FormatBankCSV:
		parser = s.bankCSV
	default:
		return nil, fmt.Errorf("unknown statement format: %s", format)
	}

	decoded, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding statement: %w", err)
	}

	return parser.Parse(decoded)
}
