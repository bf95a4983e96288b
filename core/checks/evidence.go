package checks

import (
	"context"
	"regexp"
	"strings"

	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/schema"
)

var (
	testFileRegex  = regexp.MustCompile(`(\.(test|spec)\.[jt]sx?$|_test\.go$|(^|/)(tests?|__tests__)/)`)
	docsFileRegex  = regexp.MustCompile(`(^|/)(docs?|adr)/|\.md$`)
	analysisHeader = regexp.MustCompile(`(?m)^(Problem|Analysis|Measurement|Before/After):`)
)

// runModeEvidence verifies the change carries the artifacts its declared
// mode promises. Functional work must touch tests; non-functional work
// must leave a paper trail, either documentation or an analysis section
// in a commit body.
func runModeEvidence(_ context.Context, rc *schema.Context, _ *contract.CheckDeps) (schema.Outcome, error) {
	if len(rc.ChangedFiles) == 0 {
		return schema.Skip("no changed files"), nil
	}

	switch rc.Mode {
	case schema.FunctionalMode:
		for _, file := range rc.ChangedFiles {
			if testFileRegex.MatchString(file) {
				return schema.Pass(), nil
			}
		}
		return schema.Fail("functional change does not touch any test file"), nil

	case schema.NonFunctionalMode:
		for _, file := range rc.ChangedFiles {
			if docsFileRegex.MatchString(file) {
				return schema.Pass(), nil
			}
		}
		for _, msg := range rc.CommitMessages {
			_, body, _ := strings.Cut(msg, "\n")
			if analysisHeader.MatchString(body) {
				return schema.Pass(), nil
			}
		}
		return schema.Fail("non-functional change has no documentation update and no analysis section in any commit body"), nil
	}

	return schema.Skip("mode carries no evidence requirement"), nil
}
