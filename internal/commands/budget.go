package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cchawn/toolbox/internal/budget"
	"github.com/cchawn/toolbox/internal/config"
	"github.com/cchawn/toolbox/internal/importer"
	"github.com/cchawn/toolbox/internal/logger"
	"github.com/cchawn/toolbox/internal/model"
)

type budgetOptions struct {
	input    string
	output   string
	forceDir bool
	format   string
}

// NewBudgetCommand creates the budget CLI.
func NewBudgetCommand() *cobra.Command {
	var common commonFlags
	var opts budgetOptions

	cmd := newCommand("budget [flags] <input_path>", "Normalize bank and card CSV exports into one budget CSV")
	cmd.Long = `Reads a statement CSV, or every CSV in a directory, detects the bank
format of each, categorizes every transaction and writes one CSV with the
columns Date, Description, Amount, Category, Account.

Rows the categorizer is unsure about are written with an empty Category.`
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, cfg, err := common.setup(cmd)
		if err != nil {
			return err
		}
		opts.input = args[0]
		return runBudget(ctx, cmd.OutOrStdout(), cfg, opts)
	}

	common.register(cmd)
	cmd.Flags().BoolVarP(&opts.forceDir, "directory", "d", false, "treat input_path as a directory of CSVs")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output CSV (default budget_<timestamp>.csv)")
	cmd.Flags().StringVar(&opts.format, "format", "", "skip detection and parse every file as this format (td, wealthsimple-card, wealthsimple-cash, amex, scotiabank)")

	return cmd
}

func runBudget(ctx context.Context, out io.Writer, cfg *config.Config, opts budgetOptions) error {
	var format model.Format
	if opts.format != "" {
		f, err := model.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		format = f
	}

	files, err := importer.Locate(opts.input, opts.forceDir)
	if err != nil {
		return err
	}
	batch := opts.forceDir || isDir(opts.input)
	if len(files) == 0 {
		return fmt.Errorf("no CSV files found in %s", opts.input)
	}

	run := budget.NewRun(budget.Options{Config: cfg.Budget, Format: format})
	log := logger.FromContext(ctx)
	log.Info().Str("run_id", run.ID).Int("files", len(files)).Msg("processing statements")

	run.ProcessAll(ctx, files)
	if !batch && run.Files[0].Err != nil {
		return run.Files[0].Err
	}

	output := opts.output
	if output == "" {
		output = budget.DefaultOutputName(time.Now())
	}
	if err := budget.WriteFile(output, run.Transactions); err != nil {
		return err
	}

	budget.WriteSummary(out, run.Summary(), batch)
	fmt.Fprintf(out, "Wrote %s\n", output)
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
