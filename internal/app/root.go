package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/andyballingall/fmtcheck/internal/checker"
	"github.com/andyballingall/fmtcheck/internal/config"
	"github.com/andyballingall/fmtcheck/internal/fs"
	"github.com/andyballingall/fmtcheck/internal/project"
)

// Version is the current version of fmtcheck, set at build time.
var Version = "dev"

var LongDescription = `
fmtcheck verifies that the C++ headers under include/ and the sources and
headers under tests/ are formatted according to the project's .clang-format.

It runs "clang-format -n -Werror -style=file" over every matching file and
exits with clang-format's exit status. The project root is the parent of the
directory containing the fmtcheck executable, so build it into <root>/bin.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(
	lazy *LazyManager,
	ll *slog.LevelVar,
	stdout, stderr io.Writer,
	envProvider fs.EnvProvider,
	resolver project.RootResolver,
) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "fmtcheck",
		Short:         "Check C++ sources against the project's clang-format style",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          LongDescription,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for help and completion commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) {
				return nil
			}

			if debug {
				ll.Set(slog.LevelDebug)
			}

			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				return nil
			}

			cfg := config.New(envProvider)
			logger, closer, err := setupLogger(stderr, ll, cfg)
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}

			root, err := resolver.Resolve()
			if err != nil {
				if closer != nil {
					_ = closer.Close()
				}
				return err
			}
			logger.Debug("resolved project root", "root", root)

			runner := &checker.ExecRunner{Stdin: os.Stdin, Stdout: stdout, Stderr: stderr}
			mgr := NewCLIManager(logger, root, runner)
			mgr.logCloser = closer
			mgr.reporterWriter = stdout
			mgr.useColour = isTerminal(stdout)
			lazy.SetInner(mgr)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return lazy.Check(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(NewListCmd(lazy))
	rootCmd.AddCommand(NewStyleCmd(lazy))
	rootCmd.AddCommand(NewWatchCmd(lazy, ll))

	return rootCmd
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
