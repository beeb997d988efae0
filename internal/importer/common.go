package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cchawn/toolbox/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Layouts tried in order when reading a source date.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"2006/01/02",
	"02 Jan. 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

type records struct {
	rows      [][]string
	malformed int
}

// readRecords tokenizes a whole CSV, tolerating ragged rows and stray
// quotes. Rows the tokenizer rejects are counted, not returned.
func readRecords(r io.Reader) (records, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var out records
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			out.malformed++
			continue
		}
		if err != nil {
			return records{}, fmt.Errorf("reading CSV: %w", err)
		}
		if len(out.rows) == 0 && len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], string(utf8BOM))
		}
		if isBlank(rec) {
			continue
		}
		out.rows = append(out.rows, rec)
	}
	return out, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// headerIndex maps lower-cased, trimmed header names to column positions.
// The first occurrence of a name wins.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

// column returns the position of the first name present in idx.
func column(idx map[string]int, names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := idx[n]; ok {
			return i, true
		}
	}
	return 0, false
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseAmount reads a currency amount such as "$1,234.56", "-5.25" or
// "(12.00)".
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}
	clean = strings.NewReplacer("$", "", ",", "", " ", "").Replace(clean)
	if clean == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// parseDate tries each known layout and returns the calendar day in UTC.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// debit forces amount negative; credit forces it positive.
func debit(amount decimal.Decimal) decimal.Decimal  { return amount.Abs().Neg() }
func credit(amount decimal.Decimal) decimal.Decimal { return amount.Abs() }

// newTransaction builds a categorized Transaction. Unparseable dates are kept
// as raw text.
func (env *Env) newTransaction(rawDate, desc string, amount decimal.Decimal) model.Transaction {
	date, _ := parseDate(rawDate)
	res := env.Categorizer.Categorize(desc)
	return model.Transaction{
		Date:        date,
		RawDate:     strings.TrimSpace(rawDate),
		Description: desc,
		Amount:      amount,
		Category:    res.Category,
		NeedsReview: res.NeedsReview,
		Account:     env.Account,
	}
}

// addIncome credits the ledger bucket for rawDate's month.
func (env *Env) addIncome(rawDate string, amount decimal.Decimal) {
	month := "unknown"
	if d, ok := parseDate(rawDate); ok {
		month = model.MonthKey(d)
	}
	env.Income.Add(month, amount)
}

func containsFold(s string, subs []string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if sub != "" && strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
