package contract

import (
	"fmt"
	"strings"
	"time"
)

// Default values for configuration.
const (
	// DefaultWorkers bounds concurrent checks. Several checks shell out to
	// CPU-bound compilers and linters, so exceeding available cores degrades
	// wall-clock time rather than helping it.
	DefaultWorkers = 4

	// DefaultCheckTimeout bounds a single check's execution.
	DefaultCheckTimeout = 120 * time.Second

	// DefaultCoverageThreshold is the minimum diff-coverage percentage the
	// coverage-diff check accepts.
	DefaultCoverageThreshold = 80.0

	// DefaultCommitLimit caps how many commit messages the context carries.
	DefaultCommitLimit = 20

	// DefaultCoverageFile is where the test runner emits its report.
	DefaultCoverageFile = "coverage/coverage-final.json"

	// DefaultTaskFile is the machine-readable task descriptor location.
	DefaultTaskFile = ".task.json"
)

// MaxWorkers caps the worker pool; beyond this the pool only adds
// scheduling overhead on CI runners.
const MaxWorkers = 32

// Config holds the runtime configuration for a gate run.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath          string
	BaseRef           string // empty means diff against HEAD (working tree changes)
	Quick             bool
	JSONOutput        bool
	Workers           int
	CheckTimeout      time.Duration
	CoverageFile      string
	TaskFile          string
	CoverageThreshold float64
	CommitLimit       int
	Excludes          []string
	UseColors         bool

	// Commands maps check id to the external tool argument vector it runs,
	// keeping tool invocation syntax out of the orchestration core.
	Commands map[string][]string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	Quick             bool    `mapstructure:"quick"`
	JSON              bool    `mapstructure:"json"`
	Workers           int     `mapstructure:"workers"`
	Timeout           string  `mapstructure:"timeout"`
	BaseRef           string  `mapstructure:"base-ref"`
	CoverageFile      string  `mapstructure:"coverage-file"`
	TaskFile          string  `mapstructure:"task-file"`
	CoverageThreshold float64 `mapstructure:"coverage-threshold"`
	CommitLimit       int     `mapstructure:"commit-limit"`
	Exclude           string  `mapstructure:"exclude"`
	Color             string  `mapstructure:"color"`

	// --- Tool argument vectors from the config file ---
	Commands map[string][]string `mapstructure:"commands"`
}

// DefaultCommands returns the built-in external tool argument vectors.
func DefaultCommands() map[string][]string {
	return map[string][]string{
		"lint":         {"npx", "eslint", "."},
		"typecheck":    {"npx", "tsc", "--noEmit"},
		"unit-tests":   {"npx", "vitest", "run"},
		"api-contract": {"npx", "redocly", "lint"},
	}
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	if c.Commands != nil {
		clone.Commands = make(map[string][]string, len(c.Commands))
		for id, argv := range c.Commands {
			cp := make([]string, len(argv))
			copy(cp, argv)
			clone.Commands[id] = cp
		}
	}
	return &clone
}

// Command returns the argument vector configured for a check id.
func (c *Config) Command(id string) []string {
	return c.Commands[id]
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.RepoPath = input.RepoPathStr
	if cfg.RepoPath == "" {
		cfg.RepoPath = "."
	}
	cfg.Quick = input.Quick
	cfg.JSONOutput = input.JSON
	cfg.BaseRef = input.BaseRef
	cfg.CoverageFile = input.CoverageFile
	cfg.TaskFile = input.TaskFile

	// --- 1. Workers Validation ---
	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. Timeout Validation ---
	timeout, err := time.ParseDuration(input.Timeout)
	if err != nil {
		return fmt.Errorf("invalid --timeout value %q: %w", input.Timeout, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("timeout must be positive (received %s)", timeout)
	}
	cfg.CheckTimeout = timeout

	// --- 3. Coverage Threshold Validation ---
	if input.CoverageThreshold < 0 || input.CoverageThreshold > 100 {
		return fmt.Errorf("coverage-threshold must be between 0 and 100 (received %.1f)", input.CoverageThreshold)
	}
	cfg.CoverageThreshold = input.CoverageThreshold

	// --- 4. Commit Limit Validation ---
	if input.CommitLimit <= 0 {
		return fmt.Errorf("commit-limit must be greater than 0 (received %d)", input.CommitLimit)
	}
	cfg.CommitLimit = input.CommitLimit

	// --- 5. Color Parsing ---
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 6. Excludes Processing ---
	defaults := []string{
		"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "go.sum",
		".min.js", ".min.css",
		".jpg", ".jpeg", ".png", ".gif", ".svg", ".ico", ".pdf", ".webp",
		"dist/", "build/", "out/", "node_modules/", "coverage/",
	}
	cfg.Excludes = defaults // Set defaults first

	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	// --- 7. Tool Commands: defaults overridden per id by config file ---
	cfg.Commands = DefaultCommands()
	for id, argv := range input.Commands {
		if len(argv) == 0 {
			return fmt.Errorf("commands.%s must not be empty", id)
		}
		cp := make([]string, len(argv))
		copy(cp, argv)
		cfg.Commands[id] = cp
	}

	return nil
}
