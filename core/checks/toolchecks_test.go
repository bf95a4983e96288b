package checks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolDeps(results map[string]schema.ToolResult, errs map[string]error) (*contract.CheckDeps, *contract.MockToolRunner) {
	tools := &contract.MockToolRunner{Results: results, Errs: errs}
	cfg := &contract.Config{Commands: contract.DefaultCommands()}
	return &contract.CheckDeps{Cfg: cfg, Tools: tools}, tools
}

func TestRunConfiguredToolExitCodes(t *testing.T) {
	deps, tools := toolDeps(map[string]schema.ToolResult{
		"npx": {ExitCode: 0, Stdout: "clean"},
	}, nil)

	outcome, err := runLint(context.Background(), &schema.Context{}, deps)
	require.NoError(t, err)
	assert.Equal(t, schema.PassStatus, outcome.Status)
	assert.Equal(t, []string{"npx"}, tools.Calls)
}

func TestRunConfiguredToolNonZeroExitFails(t *testing.T) {
	deps, _ := toolDeps(map[string]schema.ToolResult{
		"npx": {ExitCode: 2, Stderr: "src/cart.ts:10:5 no-unused-vars"},
	}, nil)

	outcome, err := runTypecheck(context.Background(), &schema.Context{}, deps)
	require.NoError(t, err)
	assert.Equal(t, schema.FailStatus, outcome.Status)
	assert.Contains(t, outcome.Reason, "exited 2")
	assert.Contains(t, outcome.Reason, "no-unused-vars")
}

func TestRunConfiguredToolLaunchErrorPropagates(t *testing.T) {
	deps, _ := toolDeps(nil, map[string]error{
		"npx": errors.New("executable not found"),
	})

	_, err := runUnitTests(context.Background(), &schema.Context{}, deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executable not found")
}

func TestRunConfiguredToolMissingCommandSkips(t *testing.T) {
	deps, _ := toolDeps(nil, nil)
	deps.Cfg.Commands = map[string][]string{}

	outcome, err := runLint(context.Background(), &schema.Context{}, deps)
	require.NoError(t, err)
	assert.Equal(t, schema.SkipStatus, outcome.Status)
}

func TestSummarizeToolOutput(t *testing.T) {
	assert.Equal(t, "stderr wins", summarizeToolOutput(schema.ToolResult{Stdout: "noise", Stderr: "stderr wins"}))
	assert.Equal(t, "stdout fallback", summarizeToolOutput(schema.ToolResult{Stdout: "stdout fallback"}))
	assert.Equal(t, "no output", summarizeToolOutput(schema.ToolResult{}))

	long := summarizeToolOutput(schema.ToolResult{Stdout: strings.Repeat("e ", 300)})
	assert.LessOrEqual(t, len(long), maxToolReason+3)
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestRunAPIContract(t *testing.T) {
	t.Run("skips when no spec files changed", func(t *testing.T) {
		deps, tools := toolDeps(nil, nil)
		rc := &schema.Context{ChangedFiles: []string{"src/cart.ts", "README.md"}}

		outcome, err := runAPIContract(context.Background(), rc, deps)
		require.NoError(t, err)
		assert.Equal(t, schema.SkipStatus, outcome.Status)
		assert.Empty(t, tools.Calls, "no tool invocation for an untouched contract")
	})

	t.Run("runs the linter when a spec file changed", func(t *testing.T) {
		deps, tools := toolDeps(map[string]schema.ToolResult{
			"npx": {ExitCode: 1, Stderr: "paths./cart.get: missing operationId"},
		}, nil)
		rc := &schema.Context{ChangedFiles: []string{"api/openapi.yaml"}}

		outcome, err := runAPIContract(context.Background(), rc, deps)
		require.NoError(t, err)
		assert.Equal(t, schema.FailStatus, outcome.Status)
		assert.Equal(t, []string{"npx"}, tools.Calls)
	})
}
