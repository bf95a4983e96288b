// Package cmd defines the command-line interface for prove.
package cmd

import (
	"github.com/brightops/prove/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(checksCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcpCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().BoolP("quick", "q", false, "Run the quick profile (critical and cheap checks only)")
	rootCmd.PersistentFlags().Bool("json", false, "Emit newline-delimited JSON instead of human output")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent check workers")
	rootCmd.PersistentFlags().String("timeout", contract.DefaultCheckTimeout.String(), "Per-check execution timeout (e.g. 90s, 2m)")
	rootCmd.PersistentFlags().String("base-ref", "", "Base Git reference to diff against (empty = working tree vs HEAD)")
	rootCmd.PersistentFlags().String("coverage-file", contract.DefaultCoverageFile, "Path to the coverage report, relative to the repository root")
	rootCmd.PersistentFlags().String("task-file", contract.DefaultTaskFile, "Path to the task descriptor, relative to the repository root")
	rootCmd.PersistentFlags().Float64("coverage-threshold", contract.DefaultCoverageThreshold, "Minimum diff-coverage percentage")
	rootCmd.PersistentFlags().Int("commit-limit", contract.DefaultCommitLimit, "Maximum commit messages loaded into the run context")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
}
