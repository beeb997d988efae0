package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cchawn/toolbox/internal/buildinfo"
	"github.com/cchawn/toolbox/internal/config"
	"github.com/cchawn/toolbox/internal/logger"
)

// newCommand creates a top-level command with the settings shared by every
// toolbox binary.
func newCommand(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Short:   short,
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
}

// commonFlags are registered on every binary.
type commonFlags struct {
	configPath string
	verbose    bool
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", config.DefaultPath(), "config file")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
}

// setup loads the config and attaches a logger to the command context.
func (f *commonFlags) setup(cmd *cobra.Command) (context.Context, *config.Config, error) {
	cfg, err := config.LoadOrDefault(f.configPath)
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.New(f.verbose)
	log.Debug().Str("config", f.configPath).Msg("loaded config")
	return logger.WithContext(ctx, log), cfg, nil
}

// expandHome resolves a leading "~/" against the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
