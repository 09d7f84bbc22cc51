// Package discover finds the source files that fmtcheck hands to the
// formatting checker.
//
// Discovery is a pure function of the directory tree under the project root:
// it never spawns processes and never modifies files.
package discover

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Pattern is a slash-separated glob, relative to the project root. A "**"
// segment matches zero or more directories.
type Pattern string

func (p Pattern) String() string { return string(p) }

const (
	IncludeHeaders Pattern = "include/**/*.h"
	TestSources    Pattern = "tests/**/*.cpp"
	TestHeaders    Pattern = "tests/**/*.h"
)

// Patterns returns the fixed patterns in expansion order.
func Patterns() []Pattern {
	return []Pattern{IncludeHeaders, TestSources, TestHeaders}
}

// Expansion is the result of expanding one Pattern.
type Expansion struct {
	Pattern Pattern
	Files   []string
}

// Expand returns the files under root matching p, each joined onto root.
// A missing base directory yields no files rather than an error.
func Expand(root string, p Pattern) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), string(p), doublestar.WithFilesOnly())
	if err != nil {
		return nil, &PatternError{Pattern: p, Wrapped: err}
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, filepath.Join(root, filepath.FromSlash(m)))
	}
	return files, nil
}

// ExpandAll expands every fixed pattern against root, in pattern order.
func ExpandAll(root string) ([]Expansion, error) {
	patterns := Patterns()
	out := make([]Expansion, 0, len(patterns))
	for _, p := range patterns {
		files, err := Expand(root, p)
		if err != nil {
			return nil, err
		}
		out = append(out, Expansion{Pattern: p, Files: files})
	}
	return out, nil
}

// Discover returns the flattened file list for root. Pattern order is kept
// and files matched by more than one pattern appear once per match.
func Discover(root string) ([]string, error) {
	expansions, err := ExpandAll(root)
	if err != nil {
		return nil, err
	}
	return Flatten(expansions), nil
}

// Flatten concatenates the files of each expansion in order.
func Flatten(expansions []Expansion) []string {
	files := make([]string, 0)
	for _, e := range expansions {
		files = append(files, e.Files...)
	}
	return files
}

// Match reports whether rel, a path relative to the project root, matches
// any of the fixed patterns.
func Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range Patterns() {
		if ok, _ := doublestar.Match(string(p), rel); ok {
			return true
		}
	}
	return false
}
