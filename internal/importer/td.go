package importer

import (
	"fmt"
	"io"

	"github.com/cchawn/toolbox/internal/model"
)

// TDParser parses headerless TD credit card exports:
// date, description, debit, credit[, balance].
type TDParser struct{}

const (
	tdMinFields = 4
	tdColDate   = 0
	tdColDesc   = 1
	tdColDebit  = 2
	tdColCredit = 3
)

// Format returns the parser name.
func (p *TDParser) Format() model.Format { return model.FormatTD }

// Parse reads a TD CSV. Incoming payments from the configured payers are
// dropped.
func (p *TDParser) Parse(r io.Reader, env *Env) (Result, error) {
	recs, err := readRecords(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading TD CSV: %w", err)
	}

	res := Result{Skipped: recs.malformed}
	for _, rec := range recs.rows {
		txn, ok := p.parseRow(rec, env)
		if !ok {
			res.Skipped++
			continue
		}
		res.Transactions = append(res.Transactions, txn)
	}
	return res, nil
}

func (p *TDParser) parseRow(rec []string, env *Env) (model.Transaction, bool) {
	if len(rec) < tdMinFields {
		return model.Transaction{}, false
	}
	desc := field(rec, tdColDesc)
	if desc == "" {
		return model.Transaction{}, false
	}

	if raw := field(rec, tdColDebit); raw != "" {
		amount, err := parseAmount(raw)
		if err != nil {
			return model.Transaction{}, false
		}
		return env.newTransaction(field(rec, tdColDate), desc, debit(amount)), true
	}

	raw := field(rec, tdColCredit)
	if raw == "" || containsFold(desc, env.TDSkipPayers) {
		return model.Transaction{}, false
	}
	amount, err := parseAmount(raw)
	if err != nil {
		return model.Transaction{}, false
	}
	return env.newTransaction(field(rec, tdColDate), desc, credit(amount)), true
}
