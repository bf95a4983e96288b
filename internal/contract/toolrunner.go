package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/brightops/prove/schema"
)

// ExecToolRunner implements the ToolRunner interface by spawning the tool
// as a subprocess. The context bounds the tool's lifetime; on cancellation
// the subprocess is killed.
type ExecToolRunner struct{}

var _ ToolRunner = &ExecToolRunner{} // Compile-time check

// NewExecToolRunner creates a new instance of the subprocess tool runner.
func NewExecToolRunner() *ExecToolRunner {
	return &ExecToolRunner{}
}

// Run implements the ToolRunner interface. A non-zero exit code is reported
// through the result, not as an error; errors mean the tool could not be
// started or was killed before exiting on its own.
func (r *ExecToolRunner) Run(ctx context.Context, name string, args ...string) (schema.ToolResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return schema.ToolResult{ExitCode: 0, Stdout: string(out)}, nil
	case errors.As(err, &exitErr):
		if ctx.Err() != nil {
			// The subprocess was killed by context cancellation, not a
			// genuine tool verdict.
			return schema.ToolResult{}, ctx.Err()
		}
		return schema.ToolResult{
			ExitCode: exitErr.ExitCode(),
			Stdout:   string(out),
			Stderr:   string(exitErr.Stderr),
		}, nil
	default:
		return schema.ToolResult{}, fmt.Errorf("cannot run %q: %w. Ensure the tool is installed and available on your PATH", name, err)
	}
}
