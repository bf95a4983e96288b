// Package schema has configs, models and shared types for all parts of prove.
package schema

// ChangedLine is one line of the change-set under test.
// Deleted lines carry no coverage meaning and are excluded from
// coverage-diff math.
type ChangedLine struct {
	File string     `json:"file"` // repository-relative path
	Line int        `json:"line"` // line number in the new tree (old tree for deletions)
	Type ChangeType `json:"type"`
}

// TaskDescriptor is the machine-readable task file checked into the
// working tree. When present, its mode declaration wins over commit tags.
type TaskDescriptor struct {
	ID   string `json:"id,omitempty"`
	Mode Mode   `json:"mode"`
}

// Context is the immutable snapshot built once per invocation and shared
// read-only with every check. Construction completes when the resolved
// mode is assigned; no field is mutated afterwards.
type Context struct {
	RepoPath       string         // absolute path to the repository root
	BranchName     string         // current branch identifier
	ChangedFiles   []string       // repository-relative paths in the change-set
	ChangedLines   []ChangedLine  // ordered by file, then line
	CommitMessages []string       // full messages, most recent first
	Mode           Mode           // resolved delivery mode
	Coverage       CoverageReport // nil when no coverage run preceded this invocation
	Task           *TaskDescriptor
}

// HasChangedFile reports whether the change-set touches the given path.
func (c *Context) HasChangedFile(path string) bool {
	for _, f := range c.ChangedFiles {
		if f == path {
			return true
		}
	}
	return false
}

// LatestCommitMessage returns the most recent commit message, or an empty
// string when the change-set has no commits.
func (c *Context) LatestCommitMessage() string {
	if len(c.CommitMessages) == 0 {
		return ""
	}
	return c.CommitMessages[0]
}
