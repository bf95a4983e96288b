package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/brightops/prove/core"
	"github.com/brightops/prove/core/cover"
	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/schema"
	"github.com/spf13/cobra"
)

// coverageCmd computes diff coverage without running the gate.
var coverageCmd = &cobra.Command{
	Use:   "coverage [repo-path]",
	Short: "Report coverage of the changed lines only.",
	Long: `Compute the diff-scoped coverage number the coverage-diff check gates
on, without running any other check. Useful for answering "what do I
still need to test" before pushing.

Requires a coverage report (see --coverage-file); run your test suite
with coverage enabled first.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		rc, err := core.BuildContext(rootCtx, cfg, contract.NewLocalGitClient())
		if err != nil {
			return err
		}
		if rc.Coverage == nil {
			return fmt.Errorf("coverage report not found at %s", cfg.CoverageFile)
		}

		result := cover.Analyze(rc.Coverage, rc.ChangedLines)
		if cfg.JSONOutput {
			payload, _ := json.Marshal(result)
			fmt.Println(string(payload))
			return nil
		}

		fmt.Printf("Diff coverage: %.1f%% (%d/%d changed lines covered)\n",
			result.Percentage, result.CoveredLines, result.TotalLines)
		for _, cl := range result.UncoveredLines {
			fmt.Printf("  uncovered: %s\n", formatUncovered(cl))
		}
		return nil
	},
}

const maxUncoveredPathWidth = 60

// formatUncovered renders one uncovered line reference for the human
// output, keeping the tail of deep paths visible.
func formatUncovered(cl schema.ChangedLine) string {
	return fmt.Sprintf("%s:%d", contract.TruncatePath(cl.File, maxUncoveredPathWidth), cl.Line)
}
