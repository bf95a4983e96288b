// Package cover computes diff-scoped coverage: the coverage percentage of
// only the lines changed in the current change-set, so pre-existing
// untested code is never penalized.
package cover

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/brightops/prove/schema"
)

// ParseReport decodes an istanbul-shaped coverage report.
func ParseReport(r io.Reader) (schema.CoverageReport, error) {
	var report schema.CoverageReport
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("cannot parse coverage report: %w", err)
	}
	return report, nil
}

// ParseReportFile reads and decodes a coverage report from disk, keying
// each entry by repository-relative path. Instrumenters typically emit
// absolute paths; changed lines carry repository-relative ones.
func ParseReportFile(path string, repoRoot string) (schema.CoverageReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open coverage report %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	report, err := ParseReport(f)
	if err != nil {
		return nil, err
	}
	return normalizeReportPaths(report, repoRoot), nil
}

// normalizeReportPaths rewrites absolute report keys relative to repoRoot.
func normalizeReportPaths(report schema.CoverageReport, repoRoot string) schema.CoverageReport {
	normalized := make(schema.CoverageReport, len(report))
	for key, cf := range report {
		rel := key
		if filepath.IsAbs(key) {
			if r, err := filepath.Rel(repoRoot, key); err == nil && !strings.HasPrefix(r, "..") {
				rel = r
			}
		}
		rel = filepath.ToSlash(rel)
		cf.Path = rel
		normalized[rel] = cf
	}
	return normalized
}

// Analyze computes the CoverageResult for the changed lines against the
// coverage report:
//   - deleted lines are never coverable in the new tree and are excluded;
//   - lines in files without a coverage entry (excluded from
//     instrumentation) are excluded from both totals;
//   - a line is coverable if at least one instrumented statement spans it;
//   - a line is covered only if ALL statements spanning it have a hit
//     count above zero, since a partially exercised line is still a gap.
//
// Percentage is defined as 100 when no changed line is coverable, so
// doc-only diffs keep the coverage gate passable.
func Analyze(report schema.CoverageReport, changed []schema.ChangedLine) schema.CoverageResult {
	result := schema.CoverageResult{}

	for _, cl := range changed {
		if cl.Type == schema.DeletedChange {
			continue
		}
		cf, ok := report[cl.File]
		if !ok {
			continue
		}

		coverable, covered := lineCoverage(cf, cl.Line)
		if !coverable {
			continue
		}
		result.TotalLines++
		if covered {
			result.CoveredLines++
		} else {
			result.UncoveredLines = append(result.UncoveredLines, cl)
		}
	}

	if result.TotalLines == 0 {
		result.Percentage = 100
		return result
	}
	result.Percentage = float64(result.CoveredLines) / float64(result.TotalLines) * 100
	return result
}

// lineCoverage reports whether any instrumented statement spans the line,
// and whether every spanning statement was hit. A line may contain zero,
// one, or multiple statements (e.g. two chained calls on one line).
func lineCoverage(cf schema.CoverageFile, line int) (coverable bool, covered bool) {
	covered = true
	for id, loc := range cf.StatementMap {
		if !loc.ContainsLine(line) {
			continue
		}
		coverable = true
		if cf.S[id] == 0 {
			covered = false
		}
	}
	if !coverable {
		return false, false
	}
	return true, covered
}
