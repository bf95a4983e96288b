package checks

import (
	"context"
	"regexp"

	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/schema"
)

var apiSpecFileRegex = regexp.MustCompile(`(^|/)(openapi|swagger|api)[^/]*\.(ya?ml|json)$`)

// runAPIContract validates the API specification when the change touches
// one. Changes that leave every spec file alone cannot break the contract,
// so the check skips instead of spending a tool invocation.
func runAPIContract(ctx context.Context, rc *schema.Context, deps *contract.CheckDeps) (schema.Outcome, error) {
	touched := false
	for _, file := range rc.ChangedFiles {
		if apiSpecFileRegex.MatchString(file) {
			touched = true
			break
		}
	}
	if !touched {
		return schema.Skip("no API specification files changed"), nil
	}
	return runConfiguredTool(ctx, deps, APIContractID)
}
