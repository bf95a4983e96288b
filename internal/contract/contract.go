// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/brightops/prove/schema"
)

// GitClient defines the necessary operations for building the run context.
// This allows the orchestration logic to be tested without needing a real
// git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Repository State ---

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetBranchName returns the current branch identifier.
	GetBranchName(ctx context.Context, repoPath string) (string, error)

	// --- Change-Set ---

	// GetChangedFiles returns the repository-relative paths modified between
	// baseRef and the working tree (staged and unstaged).
	GetChangedFiles(ctx context.Context, repoPath string, baseRef string) ([]string, error)

	// GetChangedLines returns the per-line change-set between baseRef and the
	// working tree, ordered by file then line.
	GetChangedLines(ctx context.Context, repoPath string, baseRef string) ([]schema.ChangedLine, error)

	// GetCommitMessages returns up to limit full commit messages reachable
	// from HEAD but not from baseRef, most recent first. An empty baseRef
	// makes the range unbounded history; callers cap limit accordingly.
	GetCommitMessages(ctx context.Context, repoPath string, baseRef string, limit int) ([]string, error)
}

// ToolRunner is the external tool adapter. It keeps the runner's core
// orchestration free of any knowledge of specific tool invocation syntax.
type ToolRunner interface {
	// Run invokes an external tool and returns its exit code and output.
	// A non-zero exit code is not an error; errors are reserved for the
	// tool being missing or killed.
	Run(ctx context.Context, name string, args ...string) (schema.ToolResult, error)
}

// CheckDeps holds the collaborators a check may use besides the Context.
type CheckDeps struct {
	Cfg   *Config
	Tools ToolRunner
}

// CheckFunc is the uniform shape every check must satisfy. It must never
// mutate the Context, and must translate expected failure conditions into
// a failing Outcome; only truly unexpected errors (a missing required tool)
// are returned as errors, which the runner converts into a failing result.
type CheckFunc func(ctx context.Context, rc *schema.Context, deps *CheckDeps) (schema.Outcome, error)

// CheckDef is one registered check. The registry is a start-up-time list of
// these definitions; the runner never hard-codes check identities.
type CheckDef struct {
	ID       string
	Class    schema.CheckClass
	Profiles []schema.Profile // profiles the check belongs to
	Modes    []schema.Mode    // nil means mode-insensitive
	Run      CheckFunc
}

// InProfile reports whether the check belongs to the given profile.
func (d CheckDef) InProfile(p schema.Profile) bool {
	for _, dp := range d.Profiles {
		if dp == p {
			return true
		}
	}
	return false
}

// AppliesTo reports whether the check is applicable to the resolved mode.
func (d CheckDef) AppliesTo(m schema.Mode) bool {
	if len(d.Modes) == 0 {
		return true
	}
	for _, dm := range d.Modes {
		if dm == m {
			return true
		}
	}
	return false
}
