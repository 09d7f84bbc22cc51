package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/fmtcheck/internal/checker"
)

type MockManager struct {
	mock.Mock
	root string
}

func (m *MockManager) Check(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockManager) List(ctx context.Context, format string, verbose bool) error {
	args := m.Called(ctx, format, verbose)
	return args.Error(0)
}

func (m *MockManager) InspectStyle(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockManager) Watch(ctx context.Context, readyChan chan<- struct{}) error {
	args := m.Called(ctx, readyChan)
	return args.Error(0)
}

func (m *MockManager) Root() string {
	return m.root
}

func (m *MockManager) Close() error {
	return nil
}

// mockRunner records invocations instead of spawning a process.
type mockRunner struct {
	mu    sync.Mutex
	code  int
	err   error
	calls []checker.Invocation
}

func (r *mockRunner) Run(_ context.Context, inv checker.Invocation) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, inv)
	return r.code, r.err
}

func (r *mockRunner) Calls() []checker.Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]checker.Invocation(nil), r.calls...)
}

type mockEnvProvider struct {
	values map[string]string
}

func (m *mockEnvProvider) Get(key string) string {
	if m.values == nil {
		return ""
	}
	return m.values[key]
}

type mockResolver struct {
	root string
	err  error
}

func (m *mockResolver) Resolve() (string, error) {
	return m.root, m.err
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// setupProject creates a project tree with the given slash-separated files.
func setupProject(t *testing.T, files ...string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("int x;\n"), 0o600))
	}
	return root
}

// slogTo returns a debug-level text logger writing to w.
func slogTo(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// installFakeTool puts an executable clang-format script first on PATH. The
// script prints its arguments one per line and exits with code.
func installFakeTool(t *testing.T, code int) {
	t.Helper()
	dir := t.TempDir()
	script := fmt.Sprintf("#!/bin/sh\nfor a in \"$@\"; do printf '%%s\\n' \"$a\"; done\nexit %d\n", code)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clang-format"), []byte(script), 0o755)) //nolint:gosec // must be executable
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
