//go:build basic

package integration

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/brightops/prove/core"
	"github.com/brightops/prove/core/checks"
	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/internal/logwriter"
	"github.com/brightops/prove/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// git runs a git command in dir and fails the test on error.
func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=prover", "GIT_AUTHOR_EMAIL=prover@example.com",
		"GIT_COMMITTER_NAME=prover", "GIT_COMMITTER_EMAIL=prover@example.com",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

// scratchRepo creates a git repository with one baseline commit on main.
func scratchRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	git(t, dir, "init", "-b", "main")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.ts"), []byte("let x = 1\nlet y = 2\n"), 0o644))
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-m", "chore: baseline")
	return dir
}

func TestLocalGitClientAgainstRealRepo(t *testing.T) {
	dir := scratchRepo(t)
	git(t, dir, "checkout", "-b", "feat/widen")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.ts"), []byte("let x = 10\nlet y = 2\nlet z = 3\n"), 0o644))
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-m", "feat: widen app [MODE:F]")

	client := contract.NewLocalGitClient()
	ctx := context.Background()

	root, err := client.GetRepoRoot(ctx, dir)
	require.NoError(t, err)
	assert.NotEmpty(t, root)

	branch, err := client.GetBranchName(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, "feat/widen", branch)

	files, err := client.GetChangedFiles(ctx, root, "main")
	require.NoError(t, err)
	assert.Equal(t, []string{"app.ts"}, files)

	lines, err := client.GetChangedLines(ctx, root, "main")
	require.NoError(t, err)
	assert.Contains(t, lines, schema.ChangedLine{File: "app.ts", Line: 1, Type: schema.ModifiedChange})
	assert.Contains(t, lines, schema.ChangedLine{File: "app.ts", Line: 3, Type: schema.AddedChange})

	messages, err := client.GetCommitMessages(ctx, root, "main", 20)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "[MODE:F]")
}

func TestGateEndToEndQuickProfile(t *testing.T) {
	dir := scratchRepo(t)
	git(t, dir, "checkout", "-b", "feat/quick-pass")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.ts"), []byte("let x = 1\nlet y = 2\nlet z = 3\n"), 0o644))
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-m", "feat: add z [MODE:F]")

	cfg := &contract.Config{}
	input := &contract.ConfigRawInput{
		RepoPathStr:       dir,
		Quick:             true,
		BaseRef:           "main",
		Workers:           contract.DefaultWorkers,
		Timeout:           "60s",
		CoverageFile:      contract.DefaultCoverageFile,
		TaskFile:          contract.DefaultTaskFile,
		CoverageThreshold: contract.DefaultCoverageThreshold,
		CommitLimit:       contract.DefaultCommitLimit,
		Color:             "no",
	}
	require.NoError(t, contract.ProcessAndValidate(cfg, input))

	// Restrict the registry to checks that need no external tooling so
	// the test stays hermetic apart from git itself.
	var local []contract.CheckDef
	for _, d := range checks.All() {
		switch d.ID {
		case checks.TrunkDisciplineID, checks.CommitConventionID, checks.KillSwitchLintID:
			local = append(local, d)
		}
	}

	var buf bytes.Buffer
	log := logwriter.NewLogger(&buf, true, false)
	runner := core.NewRunner(cfg, contract.NewLocalGitClient(), contract.NewExecToolRunner(), log, local)

	report, err := runner.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Success, "output: %s", buf.String())
	assert.Equal(t, schema.FunctionalMode, report.Mode)
	assert.Len(t, report.Checks, 3)
}

func TestGateEndToEndDefaultBaseRefIgnoresTrunkHistory(t *testing.T) {
	dir := scratchRepo(t)
	for i := 0; i < 16; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "app.ts"), []byte(fmt.Sprintf("let x = %d\n", i)), 0o644))
		git(t, dir, "add", ".")
		git(t, dir, "commit", "-m", fmt.Sprintf("chore: trunk history %d", i))
	}
	git(t, dir, "checkout", "-b", "feat/one-ahead")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.ts"), []byte("let x = 99\n"), 0o644))
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-m", "feat: one commit ahead [MODE:F]")

	// No base ref configured: the 17 commits of trunk history must not be
	// mistaken for commits ahead of trunk, and historical messages must
	// not be linted.
	cfg := &contract.Config{}
	input := &contract.ConfigRawInput{
		RepoPathStr:       dir,
		Quick:             true,
		Workers:           contract.DefaultWorkers,
		Timeout:           "60s",
		CoverageFile:      contract.DefaultCoverageFile,
		TaskFile:          contract.DefaultTaskFile,
		CoverageThreshold: contract.DefaultCoverageThreshold,
		CommitLimit:       contract.DefaultCommitLimit,
		Color:             "no",
	}
	require.NoError(t, contract.ProcessAndValidate(cfg, input))

	var local []contract.CheckDef
	for _, d := range checks.All() {
		if d.ID == checks.TrunkDisciplineID || d.ID == checks.CommitConventionID {
			local = append(local, d)
		}
	}

	var buf bytes.Buffer
	log := logwriter.NewLogger(&buf, true, false)
	runner := core.NewRunner(cfg, contract.NewLocalGitClient(), contract.NewExecToolRunner(), log, local)

	report, err := runner.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Success, "output: %s", buf.String())
	assert.Equal(t, schema.FunctionalMode, report.Mode)
}

func TestGateEndToEndUnresolvedMode(t *testing.T) {
	dir := scratchRepo(t)
	git(t, dir, "checkout", "-b", "feat/no-mode")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.ts"), []byte("let x = 9\n"), 0o644))
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-m", "feat: untagged change")

	cfg := &contract.Config{}
	input := &contract.ConfigRawInput{
		RepoPathStr:       dir,
		BaseRef:           "main",
		Workers:           contract.DefaultWorkers,
		Timeout:           "60s",
		CoverageFile:      contract.DefaultCoverageFile,
		TaskFile:          contract.DefaultTaskFile,
		CoverageThreshold: contract.DefaultCoverageThreshold,
		CommitLimit:       contract.DefaultCommitLimit,
		Color:             "no",
	}
	require.NoError(t, contract.ProcessAndValidate(cfg, input))

	log := logwriter.NewLogger(&bytes.Buffer{}, true, false)
	runner := core.NewRunner(cfg, contract.NewLocalGitClient(), contract.NewExecToolRunner(), log, checks.All())

	_, err := runner.Execute(context.Background())
	require.ErrorIs(t, err, core.ErrModeUnresolved)
	assert.Equal(t, schema.AbortedState, runner.State())
}

func TestGateEndToEndTaskDescriptorWins(t *testing.T) {
	dir := scratchRepo(t)
	git(t, dir, "checkout", "-b", "chore/descriptor")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".task.json"), []byte(`{"id": "SHOP-9", "mode": "NF"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.ts"), []byte("let x = 4\n"), 0o644))
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-m", "chore: untagged but described")

	cfg := &contract.Config{}
	input := &contract.ConfigRawInput{
		RepoPathStr:       dir,
		Quick:             true,
		BaseRef:           "main",
		Workers:           1,
		Timeout:           "60s",
		CoverageFile:      contract.DefaultCoverageFile,
		TaskFile:          contract.DefaultTaskFile,
		CoverageThreshold: contract.DefaultCoverageThreshold,
		CommitLimit:       contract.DefaultCommitLimit,
		Color:             "no",
	}
	require.NoError(t, contract.ProcessAndValidate(cfg, input))

	var local []contract.CheckDef
	for _, d := range checks.All() {
		if d.ID == checks.TrunkDisciplineID || d.ID == checks.CommitConventionID {
			local = append(local, d)
		}
	}

	log := logwriter.NewLogger(&bytes.Buffer{}, true, false)
	runner := core.NewRunner(cfg, contract.NewLocalGitClient(), contract.NewExecToolRunner(), log, local)

	report, err := runner.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schema.NonFunctionalMode, report.Mode)
}
