package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the month/day/year form written to the budget CSV.
const DateLayout = "01/02/2006"

// Transaction is one normalized row of the budget CSV.
type Transaction struct {
	Date        time.Time // zero when RawDate could not be parsed
	RawDate     string    // date text as it appeared in the source file
	Description string
	Amount      decimal.Decimal // negative = outflow, positive = credit
	Category    string
	NeedsReview bool
	Account     string
}

// HasDate reports whether the source date was understood.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// DateString returns the date in DateLayout, or the raw source text when the
// date could not be parsed.
func (t Transaction) DateString() string {
	if t.HasDate() {
		return t.Date.Format(DateLayout)
	}
	return t.RawDate
}

// MonthKey returns the "YYYY-MM" bucket for a date.
func MonthKey(d time.Time) string {
	return d.Format("2006-01")
}
