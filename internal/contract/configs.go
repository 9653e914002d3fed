package contract

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kaihendry/setupdeps/schema"
)

// Default values for configuration.
const (
	DefaultRepo       = "kaihendry/pyunderstand"
	DefaultTargetPath = "pyunderstand"
	DefaultConfigFile = "config.yaml"
	DefaultVersionKey = "version"
	DefaultRefEnv     = "PYUNDERSTAND_REF"
	DefaultLimit      = 20
	MaxLimit          = 1000
)

// DefaultBranches are never treated as a matching branch, even when they exist remotely.
var DefaultBranches = []string{"main", "master"}

// Config holds the runtime configuration for a setup run.
// This struct remains the "final, validated" config.
type Config struct {
	Repo            string
	TargetPath      string
	ConfigFile      string
	VersionKey      string
	RefOverride     string // Snapshot of PYUNDERSTAND_REF or --ref
	Parser          schema.ParserKind
	PackageManager  string
	DefaultBranches []string
	NoSync          bool

	Output     schema.OutputMode
	OutputFile string
	Limit      int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
	TargetVersion    int
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Repo            string `mapstructure:"repo"`
	Path            string `mapstructure:"path"`
	ConfigFile      string `mapstructure:"config-file"`
	VersionKey      string `mapstructure:"version-key"`
	Ref             string `mapstructure:"ref"`
	Parser          string `mapstructure:"parser"`
	PackageManager  string `mapstructure:"package-manager"`
	DefaultBranches string `mapstructure:"default-branches"`
	NoSync          bool   `mapstructure:"no-sync"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Limit      int    `mapstructure:"limit"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	TargetVersion    int    `mapstructure:"target-version"`
}

// Clone returns a copy of the config that can be modified per request.
func (c *Config) Clone() *Config {
	clone := *c
	clone.DefaultBranches = slices.Clone(c.DefaultBranches)
	return &clone
}

// RepoURL returns the clone URL of the configured dependency.
func (c *Config) RepoURL() string {
	return GitHubRepoURL(c.Repo)
}

// ProcessAndValidate reads from input and populates cfg.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateDependencyInputs(cfg, input); err != nil {
		return err
	}
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateRepo checks that repo looks like an owner/name GitHub identifier.
func ValidateRepo(repo string) error {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("repo must be in owner/name form (received %q)", repo)
	}
	if strings.ContainsAny(repo, " \t\n") {
		return fmt.Errorf("repo must not contain whitespace (received %q)", repo)
	}
	return nil
}

// ValidateTargetPath rejects paths that would make the destructive replace
// step touch anything other than a subdirectory of the working directory.
func ValidateTargetPath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("path must be relative to the working directory (received %q)", path)
	}
	clean := filepath.Clean(path)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path must name a subdirectory of the working directory (received %q)", path)
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateDependencyInputs processes everything that drives resolution and install.
func validateDependencyInputs(cfg *Config, input *ConfigRawInput) error {
	if err := ValidateRepo(input.Repo); err != nil {
		return err
	}
	cfg.Repo = input.Repo

	if err := ValidateTargetPath(input.Path); err != nil {
		return err
	}
	cfg.TargetPath = filepath.Clean(input.Path)

	cfg.ConfigFile = input.ConfigFile
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = DefaultConfigFile
	}
	cfg.VersionKey = strings.TrimSpace(input.VersionKey)
	if cfg.VersionKey == "" {
		cfg.VersionKey = DefaultVersionKey
	}
	if strings.Contains(cfg.VersionKey, ":") {
		return fmt.Errorf("version-key must not contain ':' (received %q)", input.VersionKey)
	}

	cfg.RefOverride = input.Ref
	cfg.NoSync = input.NoSync

	cfg.Parser = schema.ParserKind(strings.ToLower(input.Parser))
	if cfg.Parser == "" {
		cfg.Parser = schema.YAMLParser
	}
	if _, ok := schema.ValidParserKinds[cfg.Parser]; !ok {
		return fmt.Errorf("invalid parser '%s'. must be yaml, line", input.Parser)
	}

	cfg.PackageManager = strings.TrimSpace(input.PackageManager)
	if cfg.PackageManager == "" {
		cfg.PackageManager = DefaultPackageManager
	}

	cfg.DefaultBranches = DefaultBranches
	if input.DefaultBranches != "" {
		var branches []string
		for p := range strings.SplitSeq(input.DefaultBranches, ",") {
			if b := strings.TrimSpace(p); b != "" {
				branches = append(branches, b)
			}
		}
		cfg.DefaultBranches = branches
	}
	cfg.DefaultBranches = slices.Clone(cfg.DefaultBranches)

	return nil
}

// validateOutputInputs processes the presentation settings.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}
	return nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}
	cfg.TargetVersion = input.TargetVersion
	return nil
}
