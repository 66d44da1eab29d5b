package bankcsv

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount handles both European ("1.234,56") and plain ("-1234.56")
// amount formats. When a comma is present it is the decimal separator and
// dots are thousands separators.
func parseAmount(s string) (decimal.Decimal, error) {
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	return decimal.NewFromString(s)
}
