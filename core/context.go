package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brightops/prove/core/cover"
	"github.com/brightops/prove/internal/contract"
	"github.com/brightops/prove/schema"
)

// BuildContext produces the one Context for this invocation. It is the
// single place that shells out to git and reads the coverage artifact, so
// every check consumes pre-computed, consistent state rather than
// re-deriving it and risking skew if git state changes mid-run.
//
// Failures here are fatal, non-recoverable preconditions for the entire
// run (git unavailable, not a repository) and propagate to the caller.
func BuildContext(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*schema.Context, error) {
	root, err := client.GetRepoRoot(ctx, cfg.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve repository root: %w", err)
	}

	branch, err := client.GetBranchName(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve branch name: %w", err)
	}

	baseRef := cfg.BaseRef
	if baseRef == "" {
		baseRef = "HEAD"
	}

	files, err := client.GetChangedFiles(ctx, root, baseRef)
	if err != nil {
		return nil, fmt.Errorf("cannot list changed files: %w", err)
	}
	files = filterChangedFiles(files, cfg.Excludes)

	lines, err := client.GetChangedLines(ctx, root, baseRef)
	if err != nil {
		return nil, fmt.Errorf("cannot diff changed lines: %w", err)
	}
	lines = filterChangedLines(lines, cfg.Excludes)

	// With no base ref there is no commit range under test: a plain log
	// would pull in unrelated history and distort every commit-based
	// check. Only the HEAD message is loaded then, which is all mode
	// resolution needs.
	limit := cfg.CommitLimit
	if cfg.BaseRef == "" {
		limit = 1
	}
	messages, err := client.GetCommitMessages(ctx, root, cfg.BaseRef, limit)
	if err != nil {
		return nil, fmt.Errorf("cannot read commit messages: %w", err)
	}

	rc := &schema.Context{
		RepoPath:       root,
		BranchName:     branch,
		ChangedFiles:   files,
		ChangedLines:   lines,
		CommitMessages: messages,
	}

	// The coverage artifact is optional; absence simply means no coverage
	// run preceded this invocation.
	coveragePath := filepath.Join(root, cfg.CoverageFile)
	if _, statErr := os.Stat(coveragePath); statErr == nil {
		report, parseErr := cover.ParseReportFile(coveragePath, root)
		if parseErr != nil {
			return nil, parseErr
		}
		rc.Coverage = report
	}

	task, err := readTaskDescriptor(filepath.Join(root, cfg.TaskFile))
	if err != nil {
		return nil, err
	}
	rc.Task = task

	return rc, nil
}

// readTaskDescriptor loads the optional task file. A present but malformed
// descriptor is a hard error: a descriptor the operator wrote must not be
// silently ignored.
func readTaskDescriptor(path string) (*schema.TaskDescriptor, error) {
	payload, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read task descriptor %q: %w", path, err)
	}

	var task schema.TaskDescriptor
	if err := json.Unmarshal(payload, &task); err != nil {
		return nil, fmt.Errorf("cannot parse task descriptor %q: %w", path, err)
	}
	return &task, nil
}

// filterChangedFiles drops excluded paths from the change-set.
func filterChangedFiles(files []string, excludes []string) []string {
	filtered := make([]string, 0, len(files))
	for _, f := range files {
		if !contract.ShouldIgnore(f, excludes) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// filterChangedLines drops lines belonging to excluded paths.
func filterChangedLines(lines []schema.ChangedLine, excludes []string) []schema.ChangedLine {
	filtered := make([]schema.ChangedLine, 0, len(lines))
	for _, l := range lines {
		if !contract.ShouldIgnore(l.File, excludes) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}
