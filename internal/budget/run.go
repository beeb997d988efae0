// Package budget merges parsed statements into one budgeting CSV.
package budget

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/cchawn/toolbox/internal/categorize"
	"github.com/cchawn/toolbox/internal/config"
	"github.com/cchawn/toolbox/internal/importer"
	"github.com/cchawn/toolbox/internal/logger"
	"github.com/cchawn/toolbox/internal/model"
)

// FileSummary records the outcome of one input file.
type FileSummary struct {
	Name         string
	Format       model.Format
	Transactions int
	Review       int
	Skipped      int
	IncomeRows   int
	Err          error
}

// Options configures a Run.
type Options struct {
	Registry    *importer.Registry
	Categorizer *categorize.Categorizer
	Config      config.BudgetConfig
	// Format skips detection when set.
	Format model.Format
}

// Run is the state of one batch invocation: the merged transactions, the
// income ledger and a summary per file. Files are processed one at a time.
type Run struct {
	ID           string
	Income       *model.IncomeLedger
	Files        []FileSummary
	Transactions []model.Transaction

	opts Options
}

// NewRun creates a Run with an empty ledger.
func NewRun(opts Options) *Run {
	if opts.Registry == nil {
		opts.Registry = importer.DefaultRegistry()
	}
	if opts.Categorizer == nil {
		opts.Categorizer = categorize.New(opts.Config.Merchants, opts.Config.Keywords)
	}
	return &Run{
		ID:     uuid.NewString(),
		Income: model.NewIncomeLedger(),
		opts:   opts,
	}
}

// Reset clears all accumulated state so the Run can be reused.
func (r *Run) Reset() {
	r.ID = uuid.NewString()
	r.Income.Reset()
	r.Files = nil
	r.Transactions = nil
}

// ProcessAll processes files in the given order. A failing file is recorded
// and the batch continues.
func (r *Run) ProcessAll(ctx context.Context, files []importer.FileInfo) {
	for _, f := range files {
		r.ProcessFile(ctx, f)
	}
}

// ProcessFile detects, parses and merges a single file.
func (r *Run) ProcessFile(ctx context.Context, f importer.FileInfo) FileSummary {
	log := logger.FromContext(ctx).With().Str("run_id", r.ID).Str("file", f.Name).Logger()

	sum := FileSummary{Name: f.Name}
	res, format, err := r.parse(ctx, f)
	sum.Format = format
	if err != nil {
		log.Error().Err(err).Msg("skipping file")
		sum.Err = err
		r.Files = append(r.Files, sum)
		return sum
	}

	sum.Transactions = len(res.Transactions)
	sum.Skipped = res.Skipped
	sum.IncomeRows = res.IncomeRows
	for _, txn := range res.Transactions {
		if txn.NeedsReview {
			sum.Review++
		}
	}
	r.Transactions = append(r.Transactions, res.Transactions...)
	r.Files = append(r.Files, sum)

	log.Debug().
		Str("format", string(format)).
		Int("transactions", sum.Transactions).
		Int("review", sum.Review).
		Int("skipped", sum.Skipped).
		Int("income_rows", sum.IncomeRows).
		Msg("parsed file")
	return sum
}

func (r *Run) parse(ctx context.Context, f importer.FileInfo) (importer.Result, model.Format, error) {
	data, err := readFile(ctx, f.Path, r.opts.Config.FileTimeout)
	if err != nil {
		return importer.Result{}, r.opts.Format, err
	}

	format := r.opts.Format
	if format == "" {
		line := importer.FirstLine(data)
		format = importer.Detect(line)
		if format == model.FormatTD && !importer.LooksLikeTD(line) {
			log := logger.FromContext(ctx)
			log.Warn().
				Str("file", f.Name).
				Str("first_line", line).
				Msg("unrecognized layout, parsing as TD")
		}
	}

	p := r.opts.Registry.Get(format)
	if p == nil {
		return importer.Result{}, format, fmt.Errorf("no parser for format %q", format)
	}

	env := &importer.Env{
		Categorizer:    r.opts.Categorizer,
		Income:         r.Income,
		Account:        r.opts.Config.AccountFor(format),
		TDSkipPayers:   r.opts.Config.TDSkipPayers,
		BillPayees:     r.opts.Config.BillPayees,
		PayrollMarkers: r.opts.Config.PayrollMarkers,
	}
	res, err := p.Parse(bytes.NewReader(data), env)
	if err != nil {
		return importer.Result{}, format, fmt.Errorf("parsing %s: %w", f.Name, err)
	}
	return res, format, nil
}

// readFile reads path, giving up once ctx is done or timeout elapses.
// A zero timeout means no limit beyond ctx.
func readFile(ctx context.Context, path string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := os.ReadFile(path)
		done <- result{data, err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("reading file: %w", res.err)
		}
		return res.data, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("reading %s: %w", path, ctx.Err())
	}
}
