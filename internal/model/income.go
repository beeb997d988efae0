package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// IncomeLedger accumulates income per month key. It lives for one batch run
// and is never persisted.
type IncomeLedger struct {
	months map[string]decimal.Decimal
}

// NewIncomeLedger returns an empty ledger.
func NewIncomeLedger() *IncomeLedger {
	return &IncomeLedger{months: make(map[string]decimal.Decimal)}
}

// Add credits amount to the month bucket.
func (l *IncomeLedger) Add(month string, amount decimal.Decimal) {
	l.months[month] = l.months[month].Add(amount)
}

// Get returns the total for a month (zero when absent).
func (l *IncomeLedger) Get(month string) decimal.Decimal {
	return l.months[month]
}

// Months returns the month keys in ascending order.
func (l *IncomeLedger) Months() []string {
	keys := make([]string, 0, len(l.months))
	for k := range l.months {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total returns the sum across all months.
func (l *IncomeLedger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range l.months {
		total = total.Add(v)
	}
	return total
}

// Len returns the number of months with income.
func (l *IncomeLedger) Len() int {
	return len(l.months)
}

// Reset empties the ledger.
func (l *IncomeLedger) Reset() {
	l.months = make(map[string]decimal.Decimal)
}
