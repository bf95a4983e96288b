package checks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/brightops/prove/core/cover"
	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/schema"
)

// maxUncoveredShown caps the uncovered-line listing in the failure reason.
const maxUncoveredShown = 5

// runCoverageDiff gates on the coverage of the changed lines only. A
// functional change without a coverage report fails rather than skips:
// missing evidence is indistinguishable from missing tests.
func runCoverageDiff(_ context.Context, rc *schema.Context, deps *contract.CheckDeps) (schema.Outcome, error) {
	if rc.Coverage == nil {
		return schema.Fail(fmt.Sprintf("coverage report not found at %s", deps.Cfg.CoverageFile)), nil
	}

	result := cover.Analyze(rc.Coverage, rc.ChangedLines)
	threshold := deps.Cfg.CoverageThreshold
	if result.Percentage >= threshold {
		return schema.Pass(), nil
	}
	return schema.Fail(fmt.Sprintf("diff coverage %.1f%% is below %.1f%% (%d/%d lines covered; uncovered: %s)",
		result.Percentage, threshold, result.CoveredLines, result.TotalLines,
		summarizeUncovered(result.UncoveredLines))), nil
}

// summarizeUncovered lists the first few uncovered lines as file:line.
func summarizeUncovered(lines []schema.ChangedLine) string {
	refs := make([]string, 0, len(lines))
	for _, cl := range lines {
		refs = append(refs, fmt.Sprintf("%s:%d", cl.File, cl.Line))
	}
	sort.Strings(refs)
	if len(refs) > maxUncoveredShown {
		return fmt.Sprintf("%s, and %d more", strings.Join(refs[:maxUncoveredShown], ", "), len(refs)-maxUncoveredShown)
	}
	return strings.Join(refs, ", ")
}
