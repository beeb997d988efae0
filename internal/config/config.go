package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cchawn/toolbox/internal/categorize"
	"github.com/cchawn/toolbox/internal/model"
)

// Config is the shared toolbox configuration file.
type Config struct {
	Budget  BudgetConfig  `yaml:"budget"`
	GitSync GitSyncConfig `yaml:"gitsync"`
	GitHub  GitHubConfig  `yaml:"github"`
}

// BudgetConfig controls the CSV normalization pipeline.
type BudgetConfig struct {
	// Accounts maps a format name to the Account label written on its rows.
	Accounts       map[string]string        `yaml:"accounts"`
	TDSkipPayers   []string                 `yaml:"td_skip_payers"`
	BillPayees     []string                 `yaml:"bill_payees"`
	PayrollMarkers []string                 `yaml:"payroll_markers"`
	Merchants      []categorize.Merchant    `yaml:"merchants,omitempty"`
	Keywords       []categorize.KeywordRule `yaml:"keywords,omitempty"`
	FileTimeout    time.Duration            `yaml:"file_timeout"`
}

// GitSyncConfig controls the workspace updater.
type GitSyncConfig struct {
	Root        string        `yaml:"root,omitempty"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
}

// GitHubConfig controls the contribution reporter.
type GitHubConfig struct {
	User    string   `yaml:"user,omitempty"`
	Orgs    []string `yaml:"orgs,omitempty"`
	BaseURL string   `yaml:"base_url"`
}

// AccountFor returns the configured account label for a format.
func (b BudgetConfig) AccountFor(f model.Format) string {
	if name, ok := b.Accounts[string(f)]; ok && name != "" {
		return name
	}
	return defaultAccounts[string(f)]
}

var defaultAccounts = map[string]string{
	string(model.FormatTD):               "TD Visa",
	string(model.FormatWealthsimpleCard): "Wealthsimple Card",
	string(model.FormatWealthsimpleCash): "Wealthsimple Cash",
	string(model.FormatAmex):             "Amex",
	string(model.FormatScotiabank):       "Scotiabank",
}

// DefaultPath returns $XDG_CONFIG_HOME/toolbox/config.yaml (or the OS
// equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "toolbox.yaml"
	}
	return filepath.Join(dir, "toolbox", "config.yaml")
}

// Load reads a config file from disk. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	accounts := make(map[string]string, len(defaultAccounts))
	for k, v := range defaultAccounts {
		accounts[k] = v
	}
	return &Config{
		Budget: BudgetConfig{
			Accounts:       accounts,
			TDSkipPayers:   []string{"PAYMENT - THANK YOU"},
			BillPayees:     []string{"TD VISA", "AMEX", "AMERICAN EXPRESS", "SCOTIABANK"},
			PayrollMarkers: []string{"Direct deposit from"},
			FileTimeout:    30 * time.Second,
		},
		GitSync: GitSyncConfig{
			Concurrency: 4,
			Timeout:     2 * time.Minute,
		},
		GitHub: GitHubConfig{
			BaseURL: "https://api.github.com",
		},
	}
}
