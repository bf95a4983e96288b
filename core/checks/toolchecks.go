package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/schema"
)

// maxToolReason bounds how much tool output lands in a failure reason.
// Full output is the tool's job to persist; the report only needs a hint.
const maxToolReason = 200

func runLint(ctx context.Context, rc *schema.Context, deps *contract.CheckDeps) (schema.Outcome, error) {
	return runConfiguredTool(ctx, deps, LintID)
}

func runTypecheck(ctx context.Context, rc *schema.Context, deps *contract.CheckDeps) (schema.Outcome, error) {
	return runConfiguredTool(ctx, deps, TypecheckID)
}

func runUnitTests(ctx context.Context, rc *schema.Context, deps *contract.CheckDeps) (schema.Outcome, error) {
	return runConfiguredTool(ctx, deps, UnitTestsID)
}

// runConfiguredTool executes the command configured for the check id and
// maps its exit code onto a pass/fail outcome. A non-zero exit is a normal
// failing outcome; only a launch problem (tool missing, context dead)
// surfaces as an error.
func runConfiguredTool(ctx context.Context, deps *contract.CheckDeps, id string) (schema.Outcome, error) {
	argv := deps.Cfg.Command(id)
	if len(argv) == 0 {
		return schema.Skip(fmt.Sprintf("no command configured for %s", id)), nil
	}

	result, err := deps.Tools.Run(ctx, argv[0], argv[1:]...)
	if err != nil {
		return schema.Outcome{}, fmt.Errorf("running %s: %w", strings.Join(argv, " "), err)
	}
	if result.ExitCode == 0 {
		return schema.Pass(), nil
	}
	return schema.Fail(fmt.Sprintf("%s exited %d: %s",
		argv[0], result.ExitCode, summarizeToolOutput(result))), nil
}

// summarizeToolOutput picks the most useful slice of tool output for a
// one-line reason: stderr first, then stdout, trimmed and truncated.
func summarizeToolOutput(result schema.ToolResult) string {
	out := strings.TrimSpace(result.Stderr)
	if out == "" {
		out = strings.TrimSpace(result.Stdout)
	}
	if out == "" {
		return "no output"
	}
	out = strings.Join(strings.Fields(out), " ")
	if len(out) > maxToolReason {
		out = out[:maxToolReason] + "..."
	}
	return out
}
