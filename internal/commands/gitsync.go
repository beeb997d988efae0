package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cchawn/toolbox/internal/logger"
	"github.com/cchawn/toolbox/internal/workspace"
)

// NewGitSyncCommand creates the gitsync CLI.
func NewGitSyncCommand() *cobra.Command {
	var common commonFlags
	var concurrency int
	var timeout time.Duration

	cmd := newCommand("gitsync [root]", "Check out main/master and pull every git repo under a directory")
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, cfg, err := common.setup(cmd)
		if err != nil {
			return err
		}

		root := cfg.GitSync.Root
		if len(args) > 0 {
			root = args[0]
		}
		if root == "" {
			root = "."
		}
		absRoot, err := filepath.Abs(expandHome(root))
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		u := &workspace.Updater{Concurrency: cfg.GitSync.Concurrency, Timeout: cfg.GitSync.Timeout}
		if cmd.Flags().Changed("concurrency") {
			u.Concurrency = concurrency
		}
		if cmd.Flags().Changed("timeout") {
			u.Timeout = timeout
		}

		repos, err := workspace.Discover(absRoot)
		if err != nil {
			return err
		}
		log := logger.FromContext(ctx)
		log.Info().Str("root", absRoot).Int("repos", len(repos)).Msg("updating workspace")

		results := u.UpdateAll(ctx, repos)
		workspace.WriteReport(cmd.OutOrStdout(), results)

		if n := workspace.Failed(results); n > 0 {
			return fmt.Errorf("%d repo(s) failed to update", n)
		}
		return nil
	}

	common.register(cmd)
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "repos updated at once")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "per-repo time limit")

	return cmd
}
