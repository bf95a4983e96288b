package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/brightops/prove/schema"
)

// recordSep separates commit messages in git log output. Messages can span
// multiple lines, so a newline is not a safe delimiter.
const recordSep = "\x1e"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetBranchName implements the GitClient interface.
func (c *LocalGitClient) GetBranchName(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetChangedFiles implements the GitClient interface. It diffs the working
// tree (staged and unstaged) against baseRef.
func (c *LocalGitClient) GetChangedFiles(ctx context.Context, repoPath string, baseRef string) ([]string, error) {
	out, err := c.Run(ctx, repoPath, "diff", "--name-only", baseRef)
	if err != nil {
		return nil, err
	}
	files := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(files) == 1 && files[0] == "" {
		return []string{}, nil
	}
	return files, nil
}

// GetChangedLines implements the GitClient interface. It uses a zero-context
// unified diff so every emitted line belongs to the change-set.
func (c *LocalGitClient) GetChangedLines(ctx context.Context, repoPath string, baseRef string) ([]schema.ChangedLine, error) {
	out, err := c.Run(ctx, repoPath, "diff", "-U0", "--no-color", baseRef)
	if err != nil {
		return nil, err
	}
	return parseUnifiedDiff(string(out)), nil
}

// GetCommitMessages implements the GitClient interface.
func (c *LocalGitClient) GetCommitMessages(ctx context.Context, repoPath string, baseRef string, limit int) ([]string, error) {
	args := []string{
		"log",
		fmt.Sprintf("-n%d", limit),
		"--pretty=format:%B" + recordSep,
	}
	if baseRef != "" {
		args = append(args, baseRef+"..HEAD")
	}
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	var messages []string
	for _, raw := range strings.Split(string(out), recordSep) {
		msg := strings.TrimSpace(raw)
		if msg != "" {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

// parseUnifiedDiff converts `git diff -U0` output into per-line changes.
// Within one hunk, deletions paired with additions become modified lines
// (new-tree numbering); surplus additions are added; surplus deletions are
// deleted (old-tree numbering).
func parseUnifiedDiff(out string) []schema.ChangedLine {
	var lines []schema.ChangedLine
	var file string
	var oldStart, oldCount, newStart, newCount int

	flushHunk := func() {
		if file == "" {
			return
		}
		paired := min(oldCount, newCount)
		for i := range paired {
			lines = append(lines, schema.ChangedLine{File: file, Line: newStart + i, Type: schema.ModifiedChange})
		}
		for i := paired; i < newCount; i++ {
			lines = append(lines, schema.ChangedLine{File: file, Line: newStart + i, Type: schema.AddedChange})
		}
		for i := paired; i < oldCount; i++ {
			lines = append(lines, schema.ChangedLine{File: file, Line: oldStart + i, Type: schema.DeletedChange})
		}
		oldCount, newCount = 0, 0
	}

	for _, l := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(l, "+++ "):
			flushHunk()
			name := strings.TrimPrefix(l, "+++ ")
			if name == "/dev/null" {
				file = ""
				continue
			}
			file = strings.TrimPrefix(name, "b/")
		case strings.HasPrefix(l, "@@ "):
			flushHunk()
			oldStart, oldCount, newStart, newCount = parseHunkHeader(l)
		}
	}
	flushHunk()
	return lines
}

// parseHunkHeader parses a `@@ -l[,n] +l[,n] @@` marker. A missing count
// defaults to 1 per the unified diff format.
func parseHunkHeader(header string) (oldStart, oldCount, newStart, newCount int) {
	fields := strings.Fields(header)
	if len(fields) < 3 {
		return 0, 0, 0, 0
	}
	oldStart, oldCount = parseHunkRange(strings.TrimPrefix(fields[1], "-"))
	newStart, newCount = parseHunkRange(strings.TrimPrefix(fields[2], "+"))
	return oldStart, oldCount, newStart, newCount
}

// parseHunkRange parses "start[,count]" from a hunk header.
func parseHunkRange(s string) (start, count int) {
	count = 1
	if idx := strings.Index(s, ","); idx >= 0 {
		count, _ = strconv.Atoi(s[idx+1:])
		s = s[:idx]
	}
	start, _ = strconv.Atoi(s)
	return start, count
}
