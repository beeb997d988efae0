package importer

import (
	"fmt"
	"io"

	"github.com/cchawn/toolbox/internal/model"
)

// AmexParser parses card exports with a Date,Description,Amount header, where
// charges are positive and payments or refunds negative.
type AmexParser struct{}

// Format returns the parser name.
func (p *AmexParser) Format() model.Format { return model.FormatAmex }

// Parse reads an Amex CSV, flipping the card's sign convention.
func (p *AmexParser) Parse(r io.Reader, env *Env) (Result, error) {
	recs, err := readRecords(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading Amex CSV: %w", err)
	}
	if len(recs.rows) == 0 {
		return Result{Skipped: recs.malformed}, nil
	}

	idx := headerIndex(recs.rows[0])
	colDate, okDate := column(idx, "date", "transaction date")
	colDesc, okDesc := column(idx, "description")
	colAmount, okAmount := column(idx, "amount")
	if !okDate || !okDesc || !okAmount {
		return Result{}, fmt.Errorf("amex header missing columns: %v", recs.rows[0])
	}

	res := Result{Skipped: recs.malformed}
	for _, rec := range recs.rows[1:] {
		desc := field(rec, colDesc)
		amount, err := parseAmount(field(rec, colAmount))
		if err != nil || desc == "" {
			res.Skipped++
			continue
		}
		if amount.IsNegative() {
			amount = credit(amount)
		} else {
			amount = debit(amount)
		}
		res.Transactions = append(res.Transactions, env.newTransaction(field(rec, colDate), desc, amount))
	}
	return res, nil
}
