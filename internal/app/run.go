package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/andyballingall/fmtcheck/internal/checker"
	"github.com/andyballingall/fmtcheck/internal/fs"
	"github.com/andyballingall/fmtcheck/internal/project"
)

// Run executes fmtcheck with the given arguments. A nil envProvider reads the
// process environment; a nil resolver locates the root from the executable.
func Run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	envProvider fs.EnvProvider,
	resolver project.RootResolver,
) error {
	logLevel := &slog.LevelVar{}
	logLevel.Set(slog.LevelWarn)

	// Local lazy instance ensures t.Parallel() safety
	lazy := &LazyManager{}
	defer func() { _ = lazy.Close() }()

	if envProvider == nil {
		envProvider = fs.NewEnvProvider()
	}
	if resolver == nil {
		resolver = project.NewExecutableResolver()
	}

	rootCmd := NewRootCmd(lazy, logLevel, stdout, stderr, envProvider, resolver)
	rootCmd.SetArgs(args[1:]) // Skip the program name
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// The checker has already reported on its own streams.
		var exitErr *checker.ExitCodeError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return err
	}

	return nil
}

// ExitCode maps the result of Run to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *checker.ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
