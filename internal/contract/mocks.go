package contract

import (
	"context"
	"errors"

	"github.com/brightops/prove/schema"
)

// MockGitClient is a canned-response GitClient for testing orchestration
// logic without a real git executable.
type MockGitClient struct {
	RepoRoot   string
	Branch     string
	Files      []string
	Lines      []schema.ChangedLine
	Messages   []string
	Err        error // returned by every method when set
	RunPayload []byte
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.RunPayload, nil
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(_ context.Context, _ string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.RepoRoot, nil
}

// GetBranchName implements the GitClient interface.
func (m *MockGitClient) GetBranchName(_ context.Context, _ string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Branch, nil
}

// GetChangedFiles implements the GitClient interface.
func (m *MockGitClient) GetChangedFiles(_ context.Context, _ string, _ string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Files, nil
}

// GetChangedLines implements the GitClient interface.
func (m *MockGitClient) GetChangedLines(_ context.Context, _ string, _ string) ([]schema.ChangedLine, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Lines, nil
}

// GetCommitMessages implements the GitClient interface. The limit is
// honored so callers' capping behavior is observable in tests.
func (m *MockGitClient) GetCommitMessages(_ context.Context, _ string, _ string, limit int) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit >= 0 && limit < len(m.Messages) {
		return m.Messages[:limit], nil
	}
	return m.Messages, nil
}

// MockToolRunner is a canned-response ToolRunner keyed by tool name.
type MockToolRunner struct {
	Results map[string]schema.ToolResult
	Errs    map[string]error
	Calls   []string // tool names in invocation order
}

var _ ToolRunner = &MockToolRunner{} // Compile-time check

// Run implements the ToolRunner interface.
func (m *MockToolRunner) Run(_ context.Context, name string, _ ...string) (schema.ToolResult, error) {
	m.Calls = append(m.Calls, name)
	if err, ok := m.Errs[name]; ok {
		return schema.ToolResult{}, err
	}
	if res, ok := m.Results[name]; ok {
		return res, nil
	}
	return schema.ToolResult{}, errors.New("no mock result registered for " + name)
}
