// Package project locates the root of the project being checked.
package project

import (
	"os"
	"path/filepath"

	"github.com/andyballingall/fmtcheck/internal/fs"
)

// RootResolver determines the project root directory.
type RootResolver interface {
	// Resolve returns the absolute path of the project root.
	Resolve() (string, error)
}

// Ensure the interface is satisfied.
var (
	_ RootResolver = (*ExecutableResolver)(nil)
	_ RootResolver = (*DirResolver)(nil)
)

// ExecutableResolver treats the parent of the directory holding the running
// executable as the project root, so a binary built into <root>/bin checks <root>.
type ExecutableResolver struct {
	executable func() (string, error)
	paths      fs.PathResolver
}

// NewExecutableResolver creates an ExecutableResolver for the running process.
func NewExecutableResolver() *ExecutableResolver {
	return &ExecutableResolver{
		executable: os.Executable,
		paths:      fs.NewPathResolver(),
	}
}

// Resolve returns the project root. Symlinks in the executable path are
// resolved first, so a link in a PATH directory still finds the real tree.
func (r *ExecutableResolver) Resolve() (string, error) {
	exe, err := r.executable()
	if err != nil {
		return "", &ResolveError{Wrapped: err}
	}

	canonical, err := r.paths.CanonicalPath(exe)
	if err != nil {
		return "", &ResolveError{Path: exe, Wrapped: err}
	}

	return RootFromExecutable(canonical), nil
}

// RootFromExecutable returns the parent of the directory containing exe.
func RootFromExecutable(exe string) string {
	return filepath.Dir(filepath.Dir(exe))
}

// DirResolver returns a fixed directory as the root.
type DirResolver struct {
	Dir string
}

// NewDirResolver creates a DirResolver for dir.
func NewDirResolver(dir string) *DirResolver {
	return &DirResolver{Dir: dir}
}

// Resolve returns the absolute form of the fixed directory.
func (r *DirResolver) Resolve() (string, error) {
	abs, err := fs.Abs(r.Dir)
	if err != nil {
		return "", &ResolveError{Path: r.Dir, Wrapped: err}
	}
	return abs, nil
}
