package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/brightops/prove/core"
	"github.com/brightops/prove/core/checks"
	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/internal/logwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ErrChecksFailed signals a clean run whose gate verdict is failure. The
// report has already been emitted when this is returned; the entry point
// only maps it to a non-zero exit code.
var ErrChecksFailed = errors.New("one or more checks failed")

// ErrGateAborted wraps fatal pre-check failures (context build, mode
// resolution) after they have been written through the run logger, so
// the entry point does not report them a second time.
var ErrGateAborted = errors.New("gate aborted")

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// log is the run logger, constructed after config validation so the
// JSON/color decision is final before the first line is written.
var log *logwriter.Logger

// rootCmd runs the quality gate itself; subcommands cover the
// introspection and diagnostic surfaces.
var rootCmd = &cobra.Command{
	Use:   "prove [repo-path]",
	Short: "Run the quality gate against the current change-set.",
	Long: `Prove runs a set of checks against the changes in a Git repository and
fails with a non-zero exit code when any selected check fails.

The set of checks depends on the profile (--quick or full) and on the
resolved change mode: F (functional) from a task descriptor or a
[MODE:F] commit tag, NF (non-functional) likewise. A change whose mode
cannot be resolved is rejected before any check runs.

Examples:
  # Full gate against the merge base with trunk
  prove --base-ref origin/main

  # Fast pre-commit loop
  prove --quick

  # Machine-readable output for CI log collectors
  PROVE_JSON=1 prove --base-ref origin/main`,
	Version:            version,
	Args:               cobra.MaximumNArgs(1),
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PreRunE:            sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		runner := core.NewRunner(cfg, contract.NewLocalGitClient(), contract.NewExecToolRunner(), log, checks.All())
		report, err := runner.Execute(rootCtx)
		if err != nil {
			// Fatal aborts go through the logger so JSON mode still gets
			// a machine-readable error entry on stdout.
			log.Error(err.Error(), nil)
			return fmt.Errorf("%w: %v", ErrGateAborted, err)
		}
		if !report.Success {
			return ErrChecksFailed
		}
		return nil
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".prove") // Name of config file (without extension)
		viper.SetConfigType("yaml")   // We'll use YAML format
		viper.AddConfigPath(".")      // Look in the current directory
		viper.AddConfigPath("$HOME")  // Look in the home directory
	}

	// Set environment variable prefix, so e.g. PROVE_JSON=1 flips JSON mode
	viper.SetEnvPrefix("PROVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("timeout", contract.DefaultCheckTimeout.String())
	viper.SetDefault("coverage-file", contract.DefaultCoverageFile)
	viper.SetDefault("task-file", contract.DefaultTaskFile)
	viper.SetDefault("coverage-threshold", contract.DefaultCoverageThreshold)
	viper.SetDefault("commit-limit", contract.DefaultCommitLimit)
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config, runs validation, and constructs the logger.
func sharedSetup(_ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if viper.GetString("config") != "" {
				// An explicitly requested config file must be readable.
				return fmt.Errorf("error reading config file: %w", err)
			}
			// A broken discovered config should not block the gate.
			contract.LogWarn("Ignoring unreadable config file", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.RepoPathStr = args[0]
	} else {
		input.RepoPathStr = "."
	}

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	log = logwriter.NewLogger(os.Stdout, cfg.JSONOutput, cfg.UseColors)
	return nil
}

// sharedSetupWrapper adapts sharedSetup to Cobra's PreRunE signature.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
