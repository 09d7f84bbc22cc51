package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/andyballingall/fmtcheck/internal/checker"
	"github.com/andyballingall/fmtcheck/internal/discover"
	"github.com/andyballingall/fmtcheck/internal/report"
	"github.com/andyballingall/fmtcheck/internal/style"
	"github.com/andyballingall/fmtcheck/internal/validator"
	"github.com/andyballingall/fmtcheck/internal/watch"
)

// Manager defines the operations behind the fmtcheck commands.
type Manager interface {
	// Check runs the checker over the discovered files. A non-zero checker
	// exit is returned as *checker.ExitCodeError.
	Check(ctx context.Context) error
	List(ctx context.Context, format string, verbose bool) error
	InspectStyle(ctx context.Context) error
	Watch(ctx context.Context, readyChan chan<- struct{}) error
	Root() string
	Close() error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Check(ctx context.Context) error {
	return l.check().Check(ctx)
}

func (l *LazyManager) List(ctx context.Context, format string, verbose bool) error {
	return l.check().List(ctx, format, verbose)
}

func (l *LazyManager) InspectStyle(ctx context.Context) error {
	return l.check().InspectStyle(ctx)
}

func (l *LazyManager) Watch(ctx context.Context, readyChan chan<- struct{}) error {
	return l.check().Watch(ctx, readyChan)
}

func (l *LazyManager) Root() string {
	return l.check().Root()
}

// Close releases the inner manager's resources. It is safe to call before initialization.
func (l *LazyManager) Close() error {
	if l.inner == nil {
		return nil
	}
	return l.inner.Close()
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger         *slog.Logger
	root           string
	runner         checker.Runner
	logCloser      io.Closer
	reporterWriter io.Writer
	useColour      bool
}

func NewCLIManager(l *slog.Logger, root string, r checker.Runner) *CLIManager {
	return &CLIManager{
		logger:         l,
		root:           root,
		runner:         r,
		reporterWriter: os.Stdout,
	}
}

func (m *CLIManager) Root() string {
	return m.root
}

func (m *CLIManager) Close() error {
	if m.logCloser == nil {
		return nil
	}
	return m.logCloser.Close()
}

func (m *CLIManager) Check(ctx context.Context) error {
	files, err := discover.Discover(m.root)
	if err != nil {
		return err
	}

	inv := checker.NewInvocation(files)
	m.logger.Debug("running checker", "root", m.root, "files", len(files), "command", inv.String())

	code, err := m.runner.Run(ctx, inv)
	if err != nil {
		return err
	}

	m.logger.Debug("checker finished", "code", code)
	if code != 0 {
		return &checker.ExitCodeError{Code: code}
	}
	return nil
}

func (m *CLIManager) List(_ context.Context, format string, verbose bool) error {
	m.logger.Debug("listing files", "root", m.root, "format", format, "verbose", verbose)

	expansions, err := discover.ExpandAll(m.root)
	if err != nil {
		return err
	}

	var reporter report.Reporter
	switch format {
	case "json":
		reporter = &report.JSONReporter{}
	default:
		reporter = &report.TextReporter{Verbose: verbose, UseColour: m.useColour}
	}

	return reporter.Write(m.reporterWriter, &report.Listing{Root: m.root, Expansions: expansions})
}

// InspectStyle reports on the project's style file. Problems are written to
// the report and returned as a silent exit status of 1.
func (m *CLIManager) InspectStyle(_ context.Context) error {
	sc, err := style.NewChecker(validator.NewSanthoshCompiler())
	if err != nil {
		return err
	}

	f, inspectErr := sc.Inspect(m.root)

	var missing *style.MissingStyleFileError
	var badYAML *style.InvalidYAMLError
	var badStyle *style.InvalidStyleError
	if inspectErr != nil && !errors.As(inspectErr, &missing) && !errors.As(inspectErr, &badYAML) &&
		!errors.As(inspectErr, &badStyle) {
		return inspectErr
	}

	tr := &report.TextReporter{UseColour: m.useColour}
	if err = tr.WriteStyle(m.reporterWriter, f, inspectErr); err != nil {
		return err
	}

	if inspectErr != nil {
		m.logger.Debug("style inspection failed", "error", inspectErr)
		return &checker.ExitCodeError{Code: 1}
	}
	return nil
}

// Watch runs a check immediately and again after every burst of relevant
// changes, until the context is cancelled. Check results are logged, never returned.
// Pass a non-nil readyChan to be told when the watcher is listening.
func (m *CLIManager) Watch(ctx context.Context, readyChan chan<- struct{}) error {
	m.checkAndLog(ctx, "")

	w := watch.NewWatcher(m.root, m.logger)
	if readyChan != nil {
		go func() {
			select {
			case <-w.Ready:
				close(readyChan)
			case <-ctx.Done():
			}
		}()
	}

	err := w.Watch(ctx, func(ev watch.Event) {
		m.checkAndLog(ctx, ev.Rel)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (m *CLIManager) checkAndLog(ctx context.Context, changed string) {
	if changed != "" {
		m.logger.Info("Change detected, re-checking", "path", changed)
	}

	err := m.Check(ctx)
	var exitErr *checker.ExitCodeError
	switch {
	case err == nil:
		m.logger.Info("All files are formatted")
	case errors.As(err, &exitErr):
		m.logger.Warn("Formatting check failed", "code", exitErr.Code)
	default:
		m.logger.Error("Formatting check could not run", "error", err)
	}
}
