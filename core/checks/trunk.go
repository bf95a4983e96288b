package checks

import (
	"context"
	"fmt"
	"regexp"

	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/schema"
)

// maxCommitsAhead bounds how far a short-lived branch may diverge from
// trunk before integration discipline is considered broken.
const maxCommitsAhead = 15

var (
	trunkBranchRegex      = regexp.MustCompile(`^(main|master|trunk)$`)
	shortLivedBranchRegex = regexp.MustCompile(`^(feat|fix|chore|docs|refactor|test|perf|build|ci)/[a-z0-9._-]+$`)
)

// runTrunkDiscipline enforces trunk-based development: work happens on
// trunk itself or on a short-lived, conventionally named branch that has
// not diverged too far.
func runTrunkDiscipline(_ context.Context, rc *schema.Context, _ *contract.CheckDeps) (schema.Outcome, error) {
	branch := rc.BranchName
	if trunkBranchRegex.MatchString(branch) {
		return schema.Pass(), nil
	}
	if !shortLivedBranchRegex.MatchString(branch) {
		return schema.Fail(fmt.Sprintf("branch %q is not trunk and does not match the short-lived branch convention (e.g. feat/checkout-form)", branch)), nil
	}
	if len(rc.CommitMessages) > maxCommitsAhead {
		return schema.Fail(fmt.Sprintf("branch %q is %d commits ahead of trunk (max %d); integrate earlier", branch, len(rc.CommitMessages), maxCommitsAhead)), nil
	}
	return schema.Pass(), nil
}
