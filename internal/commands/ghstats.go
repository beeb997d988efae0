package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cchawn/toolbox/internal/ghstats"
)

// NewGHStatsCommand creates the ghstats CLI.
func NewGHStatsCommand() *cobra.Command {
	var common commonFlags
	var user, since string
	var days int
	var orgs []string

	cmd := newCommand("ghstats", "Count a user's GitHub pull requests, reviews, issues and commits")
	cmd.Long = `Queries the GitHub search API and prints contribution counts.

Set GITHUB_TOKEN to authenticate; unauthenticated searches are heavily
rate limited.`
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, cfg, err := common.setup(cmd)
		if err != nil {
			return err
		}

		params := ghstats.Params{User: cfg.GitHub.User, Orgs: cfg.GitHub.Orgs}
		if user != "" {
			params.User = user
		}
		if len(orgs) > 0 {
			params.Orgs = orgs
		}
		params.Since, err = resolveSince(since, days, time.Now())
		if err != nil {
			return err
		}

		client := ghstats.NewClient(cfg.GitHub.BaseURL, os.Getenv("GITHUB_TOKEN"))
		report, err := ghstats.Collect(ctx, client, params)
		if err != nil {
			return err
		}
		report.Write(cmd.OutOrStdout())
		return nil
	}

	common.register(cmd)
	cmd.Flags().StringVar(&user, "user", "", "GitHub login (default from config)")
	cmd.Flags().StringVar(&since, "since", "", "start date YYYY-MM-DD (overrides --days)")
	cmd.Flags().IntVar(&days, "days", 365, "look back this many days")
	cmd.Flags().StringSliceVar(&orgs, "org", nil, "limit to an organization (repeatable)")

	return cmd
}

func resolveSince(since string, days int, now time.Time) (time.Time, error) {
	if since != "" {
		t, err := time.Parse("2006-01-02", since)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --since %q: %w", since, err)
		}
		return t, nil
	}
	if days <= 0 {
		return time.Time{}, fmt.Errorf("--days must be positive")
	}
	return now.AddDate(0, 0, -days), nil
}
