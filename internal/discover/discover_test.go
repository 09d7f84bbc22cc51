package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTree creates each slash-separated file under root.
func makeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("// "+f+"\n"), 0o600))
	}
}

func rooted(root string, files ...string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, filepath.Join(root, filepath.FromSlash(f)))
	}
	return out
}

func TestPatterns(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Pattern{"include/**/*.h", "tests/**/*.cpp", "tests/**/*.h"}, Patterns())
	for _, p := range Patterns() {
		assert.True(t, doublestar.ValidatePattern(p.String()), p)
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   []string
		pattern Pattern
		want    []string
	}{
		{
			name:    "header at top of include",
			files:   []string{"include/foo.h"},
			pattern: IncludeHeaders,
			want:    []string{"include/foo.h"},
		},
		{
			name:    "nested headers",
			files:   []string{"include/pool_party/thread_pool.hpp", "include/pool_party/detail/sync.h", "include/a.h"},
			pattern: IncludeHeaders,
			want:    []string{"include/a.h", "include/pool_party/detail/sync.h"},
		},
		{
			name:    "sources only",
			files:   []string{"tests/unit/pool_tests.cpp", "tests/unit/mocks/joinable_mock.h", "tests/CMakeLists.txt"},
			pattern: TestSources,
			want:    []string{"tests/unit/pool_tests.cpp"},
		},
		{
			name:    "missing directory",
			files:   []string{"src/main.cpp"},
			pattern: TestSources,
			want:    []string{},
		},
		{
			name:    "other top level directories ignored",
			files:   []string{"vendor/include/x.h", "include/y.h"},
			pattern: IncludeHeaders,
			want:    []string{"include/y.h"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := t.TempDir()
			makeTree(t, root, tt.files...)

			got, err := Expand(root, tt.pattern)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.ElementsMatch(t, rooted(root, tt.want...), got)
		})
	}
}

func TestExpand_Order(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	makeTree(t, root, "include/b/x.h", "include/a.h", "include/c.h", "include/bb.h", "include/b/y/z.h")

	got, err := Expand(root, IncludeHeaders)
	require.NoError(t, err)
	// Files in a directory come before its subdirectories, each in lexical order.
	assert.Equal(t, rooted(root, "include/a.h", "include/bb.h", "include/c.h", "include/b/x.h", "include/b/y/z.h"), got)

	files, err := Discover(root)
	require.NoError(t, err)
	assert.Equal(t, got, files)
}

func TestExpand_DirectoriesAreNotFiles(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "include", "odd.h"), 0o755))

	got, err := Expand(root, IncludeHeaders)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExpand_BadPattern(t *testing.T) {
	t.Parallel()

	_, err := Expand(t.TempDir(), Pattern("include/[.h"))
	var target *PatternError
	require.ErrorAs(t, err, &target)
	assert.ErrorIs(t, err, doublestar.ErrBadPattern)
	assert.Contains(t, err.Error(), `"include/[.h"`)
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("include before tests", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		makeTree(t, root, "tests/bar.cpp", "include/foo.h")

		got, err := Discover(root)
		require.NoError(t, err)
		assert.Equal(t, rooted(root, "include/foo.h", "tests/bar.cpp"), got)
	})

	t.Run("pattern order is kept", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		makeTree(t, root, "tests/a.h", "tests/b.cpp", "include/c.h")

		got, err := Discover(root)
		require.NoError(t, err)
		assert.Equal(t, rooted(root, "include/c.h", "tests/b.cpp", "tests/a.h"), got)
	})

	t.Run("empty project", func(t *testing.T) {
		t.Parallel()
		got, err := Discover(t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("missing include still discovers tests", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		makeTree(t, root, "tests/unit/sync_tests.cpp", "tests/unit/mocks/joinable_mock.h")

		got, err := Discover(root)
		require.NoError(t, err)
		assert.Equal(t, rooted(root, "tests/unit/sync_tests.cpp", "tests/unit/mocks/joinable_mock.h"), got)
	})

	t.Run("missing root yields nothing", func(t *testing.T) {
		t.Parallel()
		got, err := Discover(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("result equals union of pattern expansions", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		makeTree(t, root,
			"include/pool_party/thread_pool.h",
			"include/pool_party/detail/sync.h",
			"tests/thread_pool_tests.cpp",
			"tests/unit/sync_tests.cpp",
			"tests/unit/mocks/joinable_mock.h",
			"tests/README.md",
		)

		got, err := Discover(root)
		require.NoError(t, err)

		var union []string
		for _, p := range Patterns() {
			files, eErr := Expand(root, p)
			require.NoError(t, eErr)
			union = append(union, files...)
		}
		assert.Equal(t, union, got)
		assert.Len(t, got, 5)
	})
}

func TestExpandAll(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	makeTree(t, root, "include/foo.h", "tests/bar.cpp")

	got, err := ExpandAll(root)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, IncludeHeaders, got[0].Pattern)
	assert.Equal(t, rooted(root, "include/foo.h"), got[0].Files)
	assert.Equal(t, TestSources, got[1].Pattern)
	assert.Equal(t, rooted(root, "tests/bar.cpp"), got[1].Files)
	assert.Equal(t, TestHeaders, got[2].Pattern)
	assert.Empty(t, got[2].Files)
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	got := Flatten([]Expansion{
		{Pattern: IncludeHeaders, Files: []string{"a", "b"}},
		{Pattern: TestSources, Files: nil},
		{Pattern: TestHeaders, Files: []string{"a"}},
	})
	assert.Equal(t, []string{"a", "b", "a"}, got)

	assert.Equal(t, []string{}, Flatten(nil))
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel  string
		want bool
	}{
		{rel: "include/foo.h", want: true},
		{rel: "include/pool_party/detail/sync.h", want: true},
		{rel: "include/pool_party/thread_pool.hpp", want: false},
		{rel: "tests/bar.cpp", want: true},
		{rel: "tests/unit/mocks/joinable_mock.h", want: true},
		{rel: "tests/CMakeLists.txt", want: false},
		{rel: "src/main.cpp", want: false},
		{rel: filepath.Join("tests", "unit", "sync_tests.cpp"), want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.rel, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Match(tt.rel))
		})
	}
}
