// Package checker runs the external formatting checker against a file list
// and reports its exit code.
package checker

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/andyballingall/fmtcheck/internal/config"
)

// Invocation is a single checker command line.
type Invocation struct {
	Tool  string
	Flags []string
	Files []string
}

// NewInvocation builds the fixed clang-format invocation for files.
func NewInvocation(files []string) Invocation {
	return Invocation{
		Tool:  config.ToolName,
		Flags: config.ToolFlags(),
		Files: files,
	}
}

// Args returns the arguments following the tool name.
func (i Invocation) Args() []string {
	args := make([]string, 0, len(i.Flags)+len(i.Files))
	args = append(args, i.Flags...)
	return append(args, i.Files...)
}

// Argv returns the full command line, tool name first.
func (i Invocation) Argv() []string {
	return append([]string{i.Tool}, i.Args()...)
}

func (i Invocation) String() string {
	return strings.Join(i.Argv(), " ")
}

// Runner executes an Invocation.
type Runner interface {
	// Run blocks until the checker exits and returns its exit code. A non-nil
	// error means the checker could not be started at all.
	Run(ctx context.Context, inv Invocation) (int, error)
}

// Ensure the interface is satisfied.
var _ Runner = (*ExecRunner)(nil)

// ExecRunner runs the checker as a child process in the current working
// directory. Nil streams are inherited from the current process.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates an ExecRunner that inherits the standard streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts the checker unless ctx is already done. A started checker is
// never killed: cancellation after Start waits for it to exit on its own, so
// its exit code is always the one reported.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, &StartError{Tool: inv.Tool, Wrapped: err}
	}

	//nolint:gosec,noctx // the tool name is fixed; a started check runs to completion
	cmd := exec.Command(inv.Tool, inv.Args()...)
	cmd.Stdin = orReader(r.Stdin, os.Stdin)
	cmd.Stdout = orWriter(r.Stdout, os.Stdout)
	cmd.Stderr = orWriter(r.Stderr, os.Stderr)

	if err := cmd.Start(); err != nil {
		return -1, &StartError{Tool: inv.Tool, Wrapped: err}
	}

	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		// Wait only fails this way on stream copy errors.
		return -1, &StartError{Tool: inv.Tool, Wrapped: err}
	}
	return exitCode(exitErr), nil
}

// exitCode returns the child's exit status. A child killed by a signal has
// none, so it is reported as 128+signal.
func exitCode(exitErr *exec.ExitError) int {
	if code := exitErr.ExitCode(); code >= 0 {
		return code
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return 1
}

func orReader(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
