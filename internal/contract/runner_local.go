package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// CommandResult holds the outcome of a single external process invocation.
type CommandResult struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status zero.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// ProcessFailure is returned when a checked command exits non-zero.
type ProcessFailure struct {
	Args     []string
	ExitCode int
	Stderr   string
}

// Error implements the error interface.
func (e *ProcessFailure) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// LocalRunner implements the CommandRunner interface by executing
// programs installed on the machine.
type LocalRunner struct {
	echo io.Writer
	dir  string
}

var _ CommandRunner = &LocalRunner{} // Compile-time check

// NewLocalRunner creates a runner that echoes each command line to echo.
// A nil echo writer falls back to stdout.
func NewLocalRunner(echo io.Writer) *LocalRunner {
	if echo == nil {
		echo = os.Stdout
	}
	return &LocalRunner{echo: echo}
}

// WithDir returns a copy of the runner that executes commands in dir.
func (r *LocalRunner) WithDir(dir string) *LocalRunner {
	return &LocalRunner{echo: r.echo, dir: dir}
}

// Run implements the CommandRunner interface.
func (r *LocalRunner) Run(ctx context.Context, check bool, name string, args ...string) (CommandResult, error) {
	argv := append([]string{name}, args...)
	_, _ = fmt.Fprintf(r.echo, "+ %s\n", strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{
		Args:   argv,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		if check {
			return result, &ProcessFailure{Args: argv, ExitCode: result.ExitCode, Stderr: result.Stderr}
		}
		return result, nil
	default:
		// The process never started (missing binary, bad dir, cancelled context).
		result.ExitCode = -1
		return result, fmt.Errorf("could not run %s: %w. Ensure it is installed and available on your PATH", name, err)
	}
}
