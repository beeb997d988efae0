package workspace

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var statusColors = map[Status]*color.Color{
	StatusUpdated: color.New(color.FgGreen),
	StatusSkipped: color.New(color.FgYellow),
	StatusFailed:  color.New(color.FgRed),
}

// WriteReport prints one line per repo followed by totals.
func WriteReport(w io.Writer, results []Result) {
	counts := make(map[Status]int)
	for _, r := range results {
		counts[r.Status]++
		detail := r.Detail
		if r.Err != nil {
			detail = r.Err.Error()
		}
		status := statusColors[r.Status].Sprintf("%-8s", r.Status)
		fmt.Fprintf(w, "%-30s %s %-8s %s\n", r.Repo, status, r.Branch, detail)
	}
	fmt.Fprintf(w, "%d repos: %d updated, %d skipped, %d failed\n",
		len(results), counts[StatusUpdated], counts[StatusSkipped], counts[StatusFailed])
}
