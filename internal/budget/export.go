package budget

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cchawn/toolbox/internal/model"
)

// Header is the column layout of the budget CSV.
var Header = []string{"Date", "Description", "Amount", "Category", "Account"}

const (
	numFields   = 5
	colDate     = 0
	colDesc     = 1
	colAmount   = 2
	colCategory = 3
	colAccount  = 4
)

// SortTransactions orders txns by calendar date, oldest first. Rows whose
// date could not be parsed go last. Equal keys keep their input order.
func SortTransactions(txns []model.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		a, b := txns[i], txns[j]
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		return a.Date.Before(b.Date)
	})
}

// MarshalTransaction converts a Transaction to a CSV row. The category is
// left blank for rows that need review so they stand out in a spreadsheet.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colDate] = txn.DateString()
	row[colDesc] = txn.Description
	row[colAmount] = txn.Amount.StringFixed(2)
	if !txn.NeedsReview {
		row[colCategory] = txn.Category
	}
	row[colAccount] = txn.Account
	return row
}

// WriteCSV writes the header and one fully quoted row per transaction.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	bw := bufio.NewWriter(w)

	if err := writeQuoted(bw, Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if err := writeQuoted(bw, MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return bw.Flush()
}

// writeQuoted writes one record with every field quoted. encoding/csv only
// quotes fields that need it.
func writeQuoted(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\n")
	return err
}

// WriteFile sorts txns and writes them to path.
func WriteFile(path string, txns []model.Transaction) error {
	SortTransactions(txns)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := WriteCSV(f, txns); err != nil {
		f.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// DefaultOutputName returns a timestamped output file name.
func DefaultOutputName(now time.Time) string {
	return "budget_" + now.Format("2006-01-02_150405") + ".csv"
}
