package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/cchawn/toolbox/internal/model"
)

// ScotiabankParser parses Scotiabank exports:
// Filter,Date,Description,Sub-description,Status,Type of Transaction,Amount.
// Amounts are already signed.
type ScotiabankParser struct{}

const (
	scotiaColFilter  = 0
	scotiaColDate    = 1
	scotiaColDesc    = 2
	scotiaColSubDesc = 3
	scotiaColAmount  = 6
)

// Format returns the parser name.
func (p *ScotiabankParser) Format() model.Format { return model.FormatScotiabank }

// Parse reads a Scotiabank CSV. The header and any filter summary rows carry
// text in the Filter column and are dropped.
func (p *ScotiabankParser) Parse(r io.Reader, env *Env) (Result, error) {
	recs, err := readRecords(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading Scotiabank CSV: %w", err)
	}

	colDate, colDesc, colSub, colAmount := scotiaColDate, scotiaColDesc, scotiaColSubDesc, scotiaColAmount
	if len(recs.rows) > 0 {
		idx := headerIndex(recs.rows[0])
		if i, ok := column(idx, "date"); ok {
			colDate = i
		}
		if i, ok := column(idx, "description"); ok {
			colDesc = i
		}
		if i, ok := column(idx, "sub-description"); ok {
			colSub = i
		}
		if i, ok := column(idx, "amount"); ok {
			colAmount = i
		}
	}

	res := Result{Skipped: recs.malformed}
	for i, rec := range recs.rows {
		if isFilterRow(rec) {
			if i > 0 {
				res.Skipped++
			}
			continue
		}
		rawDate := field(rec, colDate)
		desc := field(rec, colDesc)
		if sub := field(rec, colSub); sub != "" {
			desc = strings.TrimSpace(desc + " - " + sub)
		}
		amount, err := parseAmount(field(rec, colAmount))
		if err != nil || rawDate == "" || desc == "" {
			res.Skipped++
			continue
		}
		res.Transactions = append(res.Transactions, env.newTransaction(rawDate, desc, amount))
	}
	return res, nil
}

func isFilterRow(rec []string) bool {
	return field(rec, scotiaColFilter) != ""
}
