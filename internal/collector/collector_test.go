package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahiljhawar/reuseify/internal/types"
)

type fakeLinter struct {
	files []string
	err   error
}

func (f *fakeLinter) ListMissingHeaders(ctx context.Context, dir string) ([]string, error) {
	return f.files, f.err
}

type fakeHistory struct {
	authors map[string][]string
	errors  map[string]error
	ignored map[string]bool
}

func (f *fakeHistory) AuthorsOf(ctx context.Context, dir, path string) ([]string, error) {
	if err := f.errors[path]; err != nil {
		return nil, err
	}
	return f.authors[path], nil
}

func (f *fakeHistory) FilterIgnored(ctx context.Context, dir string, paths []string) ([]string, error) {
	var kept []string
	for _, p := range paths {
		if !f.ignored[p] {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

func runCollector(t *testing.T, linter Linter, history History, opts Options) (*Summary, *types.AuthorMap) {
	t.Helper()
	if opts.Output == "" {
		opts.Output = filepath.Join(t.TempDir(), "authors.json")
	}
	c := &Collector{Linter: linter, History: history, Out: &bytes.Buffer{}}
	summary, err := c.Run(context.Background(), opts)
	require.NoError(t, err)

	authors := types.NewAuthorMap()
	if data, err := os.ReadFile(opts.Output); err == nil {
		require.NoError(t, json.Unmarshal(data, authors))
	}
	return summary, authors
}

func TestCollectorWritesAuthorsInDiscoveryOrder(t *testing.T) {
	linter := &fakeLinter{files: []string{"src/b.py", "src/a.py", "docs/readme.md"}}
	history := &fakeHistory{authors: map[string][]string{
		"src/b.py":       {"Alice", "Bob"},
		"src/a.py":       {"Carol"},
		"docs/readme.md": {"Alice"},
	}}

	summary, authors := runCollector(t, linter, history, Options{})

	assert.Equal(t, 3, summary.Written)
	assert.Equal(t, []string{"src/b.py", "src/a.py", "docs/readme.md"}, authors.Paths())

	got, _ := authors.Get("src/b.py")
	assert.Equal(t, []string{"Alice", "Bob"}, got)
}

func TestCollectorIdempotentOutput(t *testing.T) {
	linter := &fakeLinter{files: []string{"a.py", "b.py"}}
	history := &fakeHistory{authors: map[string][]string{
		"a.py": {"Alice"},
		"b.py": {"Bob"},
	}}

	out1 := filepath.Join(t.TempDir(), "authors.json")
	out2 := filepath.Join(t.TempDir(), "authors.json")
	runCollector(t, linter, history, Options{Output: out1})
	runCollector(t, linter, history, Options{Output: out2})

	data1, err := os.ReadFile(out1)
	require.NoError(t, err)
	data2, err := os.ReadFile(out2)
	require.NoError(t, err)
	assert.Equal(t, data1, data2)
}

func TestCollectorBuiltinExclusions(t *testing.T) {
	linter := &fakeLinter{files: []string{
		"build/output.py",
		"node_modules/pkg/index.js",
		"src/__pycache__/mod.pyc",
		"pkg.egg-info/PKG-INFO",
		"src/keep.py",
	}}
	history := &fakeHistory{authors: map[string][]string{"src/keep.py": {"Alice"}}}

	summary, authors := runCollector(t, linter, history, Options{})

	assert.Equal(t, 4, summary.Excluded)
	assert.Equal(t, []string{"src/keep.py"}, authors.Paths())
	_, ok := authors.Get("build/output.py")
	assert.False(t, ok)
}

func TestCollectorUserExcludePatterns(t *testing.T) {
	linter := &fakeLinter{files: []string{"gen/schema.py", "src/app.py"}}
	history := &fakeHistory{authors: map[string][]string{
		"gen/schema.py": {"Alice"},
		"src/app.py":    {"Bob"},
	}}

	_, authors := runCollector(t, linter, history, Options{Exclude: []string{"gen"}})

	assert.Equal(t, []string{"src/app.py"}, authors.Paths())
}

func TestCollectorDropsGitignoredFiles(t *testing.T) {
	linter := &fakeLinter{files: []string{"secret.env.py", "src/app.py"}}
	history := &fakeHistory{
		authors: map[string][]string{"src/app.py": {"Bob"}},
		ignored: map[string]bool{"secret.env.py": true},
	}

	summary, authors := runCollector(t, linter, history, Options{})

	assert.Equal(t, 1, summary.Excluded)
	assert.Equal(t, []string{"src/app.py"}, authors.Paths())
}

func TestCollectorUntrackedFiles(t *testing.T) {
	linter := &fakeLinter{files: []string{"tracked.py", "new.py"}}
	history := &fakeHistory{authors: map[string][]string{"tracked.py": {"Alice"}}}

	t.Run("omitted by default", func(t *testing.T) {
		summary, authors := runCollector(t, linter, history, Options{})
		assert.Equal(t, 1, summary.NotInGit)
		assert.Equal(t, []string{"tracked.py"}, authors.Paths())
	})

	t.Run("included with flag", func(t *testing.T) {
		summary, authors := runCollector(t, linter, history, Options{IncludeNotInGit: true})
		assert.Equal(t, 2, summary.Written)
		got, ok := authors.Get("new.py")
		require.True(t, ok)
		assert.Empty(t, got)
	})
}

func TestCollectorHistoryFailureTreatedAsUntracked(t *testing.T) {
	linter := &fakeLinter{files: []string{"broken.py", "ok.py"}}
	history := &fakeHistory{
		authors: map[string][]string{"ok.py": {"Alice"}},
		errors:  map[string]error{"broken.py": errors.New("git log exploded")},
	}

	summary, authors := runCollector(t, linter, history, Options{IncludeNotInGit: true})

	assert.Equal(t, 2, summary.Written)
	got, ok := authors.Get("broken.py")
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestCollectorLinterFailureIsFatal(t *testing.T) {
	c := &Collector{
		Linter:  &fakeLinter{err: errors.New("reuse crashed")},
		History: &fakeHistory{},
		Out:     &bytes.Buffer{},
	}
	_, err := c.Run(context.Background(), Options{Output: filepath.Join(t.TempDir(), "a.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "linter invocation failed")
}

func TestCollectorNoFindingsWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "authors.json")
	summary, _ := runCollector(t, &fakeLinter{}, &fakeHistory{}, Options{Output: out})

	assert.Equal(t, 0, summary.Reported)
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestPathExcluded(t *testing.T) {
	patterns := append([]string{}, DefaultExcludePatterns...)

	assert.True(t, pathExcluded("build/output.py", patterns))
	assert.True(t, pathExcluded("src/mod.pyc", patterns))
	assert.True(t, pathExcluded("deep/nested/.git/config", patterns))
	assert.True(t, pathExcluded("thing.egg-info/x", patterns))
	assert.False(t, pathExcluded("src/builder.py", patterns))
	assert.False(t, pathExcluded("rebuild/x.py", patterns))
}
