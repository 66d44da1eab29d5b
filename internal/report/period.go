package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidPeriod is returned when a period token is not a 4-digit year
// followed by a month between 1 and 12.
var ErrInvalidPeriod = errors.New("invalid period, expected YYYY-MM")

// Period is an inclusive calendar-month window.
type Period struct {
	Token string
	Start time.Time
	End   time.Time
}

// ParsePeriod resolves a "YYYY-MM" token to the first and last instant of
// that calendar month in UTC. December rolls into January of the next year.
func ParsePeriod(token string) (Period, error) {
	yearStr, monthStr, ok := strings.Cut(token, "-")
	if !ok || len(yearStr) != 4 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, token)
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, token)
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, token)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes month 13 into January of year+1.
	end := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Second)

	return Period{Token: token, Start: start, End: end}, nil
}
