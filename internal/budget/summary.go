package budget

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/cchawn/toolbox/internal/model"
)

// Summary aggregates the per-file results of a Run.
type Summary struct {
	RunID        string
	Files        []FileSummary
	Transactions int
	Review       int
	Failed       int
	Income       *model.IncomeLedger
}

// Summary totals the files processed so far.
func (r *Run) Summary() Summary {
	s := Summary{RunID: r.ID, Files: r.Files, Income: r.Income}
	for _, f := range r.Files {
		if f.Err != nil {
			s.Failed++
			continue
		}
		s.Transactions += f.Transactions
		s.Review += f.Review
	}
	return s
}

var (
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
	okColor   = color.New(color.FgGreen)
)

// WriteSummary prints a human-readable report. Batch mode adds the per-file
// table and the monthly income breakdown.
func WriteSummary(w io.Writer, s Summary, batch bool) {
	if batch {
		fmt.Fprintf(w, "Processed %d files\n", len(s.Files))
		for _, f := range s.Files {
			if f.Err != nil {
				failColor.Fprintf(w, "  %-32s FAILED: %v\n", f.Name, f.Err)
				continue
			}
			fmt.Fprintf(w, "  %-32s %-18s %4d transactions, %s\n",
				f.Name, f.Format, f.Transactions, reviewText(f.Review))
		}
	}

	fmt.Fprintf(w, "Total: %d transactions, %s\n", s.Transactions, reviewText(s.Review))
	if s.Failed > 0 {
		failColor.Fprintf(w, "%d file(s) could not be read\n", s.Failed)
	}

	if batch && s.Income != nil && s.Income.Len() > 0 {
		fmt.Fprintln(w, "Monthly income (not in CSV):")
		for _, month := range s.Income.Months() {
			fmt.Fprintf(w, "  %-8s %12s\n", month, s.Income.Get(month).StringFixed(2))
		}
		okColor.Fprintf(w, "  %-8s %12s\n", "total", s.Income.Total().StringFixed(2))
	}
}

func reviewText(n int) string {
	text := fmt.Sprintf("%d need review", n)
	if n > 0 {
		return warnColor.Sprint(text)
	}
	return text
}
