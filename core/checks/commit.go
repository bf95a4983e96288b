package checks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/schema"
)

// maxSubjectLength keeps commit subjects scannable in one-line log views.
const maxSubjectLength = 72

var (
	conventionalSubjectRegex = regexp.MustCompile(`^(feat|fix|chore|docs|refactor|test|perf|build|ci|style|revert)(\([a-z0-9./-]+\))?!?: \S.*$`)
	mergeSubjectRegex        = regexp.MustCompile(`^Merge (branch|pull request|remote-tracking branch) `)
)

// runCommitConvention validates every commit message under test against
// the conventional-commit subject format. Merge commits are exempt.
func runCommitConvention(_ context.Context, rc *schema.Context, _ *contract.CheckDeps) (schema.Outcome, error) {
	if len(rc.CommitMessages) == 0 {
		return schema.Skip("no commits under test"), nil
	}

	var violations []string
	for _, msg := range rc.CommitMessages {
		subject, _, _ := strings.Cut(msg, "\n")
		subject = strings.TrimSpace(subject)
		// The [MODE:...] tag is resolver metadata, not part of the subject.
		subject = strings.TrimSpace(modeTagSuffixRegex.ReplaceAllString(subject, ""))

		if mergeSubjectRegex.MatchString(subject) {
			continue
		}
		if !conventionalSubjectRegex.MatchString(subject) {
			violations = append(violations, fmt.Sprintf("%q is not a conventional commit subject", subject))
			continue
		}
		if len([]rune(subject)) > maxSubjectLength {
			violations = append(violations, fmt.Sprintf("%q exceeds %d characters", subject, maxSubjectLength))
		}
	}

	if len(violations) > 0 {
		return schema.Fail(summarizeViolations(violations)), nil
	}
	return schema.Pass(), nil
}

var modeTagSuffixRegex = regexp.MustCompile(`\s*\[MODE:(F|NF)\]\s*`)

// summarizeViolations joins violations into one reason, capped so a long
// branch history does not flood the report.
func summarizeViolations(violations []string) string {
	const maxShown = 3
	if len(violations) <= maxShown {
		return strings.Join(violations, "; ")
	}
	shown := strings.Join(violations[:maxShown], "; ")
	return fmt.Sprintf("%s; and %d more", shown, len(violations)-maxShown)
}
