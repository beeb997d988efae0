package ghstats

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Params scopes a contribution report.
type Params struct {
	User  string
	Since time.Time
	Orgs  []string
}

// Row is one counted metric.
type Row struct {
	Label string
	Count int
}

// Report is the result of Collect.
type Report struct {
	User  string
	Since time.Time
	Rows  []Row
}

type metric struct {
	label string
	kind  Kind
	query string // %[1]s user, %[2]s since date
}

var metrics = []metric{
	{"Pull requests opened", KindIssues, "type:pr author:%[1]s created:>=%[2]s"},
	{"Pull requests merged", KindIssues, "type:pr author:%[1]s is:merged merged:>=%[2]s"},
	{"Pull requests reviewed", KindIssues, "type:pr reviewed-by:%[1]s -author:%[1]s updated:>=%[2]s"},
	{"Issues opened", KindIssues, "type:issue author:%[1]s created:>=%[2]s"},
	{"Commits authored", KindCommits, "author:%[1]s committer-date:>=%[2]s"},
}

// query builds the search string for a metric.
func (p Params) query(m metric) string {
	q := fmt.Sprintf(m.query, p.User, p.Since.Format("2006-01-02"))
	for _, org := range p.Orgs {
		q += " org:" + org
	}
	return q
}

// Collect runs every metric query in turn.
func Collect(ctx context.Context, c *Client, p Params) (Report, error) {
	if p.User == "" {
		return Report{}, fmt.Errorf("github user is required")
	}

	report := Report{User: p.User, Since: p.Since}
	for _, m := range metrics {
		n, err := c.Count(ctx, m.kind, p.query(m))
		if err != nil {
			return Report{}, fmt.Errorf("%s: %w", strings.ToLower(m.label), err)
		}
		report.Rows = append(report.Rows, Row{Label: m.label, Count: n})
	}
	return report, nil
}

// Total sums every row.
func (r Report) Total() int {
	total := 0
	for _, row := range r.Rows {
		total += row.Count
	}
	return total
}

// Write prints the report as an aligned table.
func (r Report) Write(w io.Writer) {
	fmt.Fprintf(w, "GitHub contributions for %s since %s\n", r.User, r.Since.Format("2006-01-02"))
	for _, row := range r.Rows {
		fmt.Fprintf(w, "  %-24s %6d\n", row.Label, row.Count)
	}
	fmt.Fprintf(w, "  %-24s %6d\n", "Total", r.Total())
}
