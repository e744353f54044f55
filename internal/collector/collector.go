// Package collector implements the get-authors pipeline: enumerate
// files missing license headers via the linter, filter exclusions and
// gitignored paths, resolve each file's authors from git history, and
// write the path→authors artifact consumed by the annotator.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/sahiljhawar/reuseify/internal/types"
)

// DefaultExcludePatterns are always applied, matched against every
// path component of each reported file.
var DefaultExcludePatterns = []string{
	"__pycache__",
	".venv",
	"venv",
	".env",
	"env",
	".git",
	".vscode",
	".idea",
	"*.egg-info",
	"*.pyc",
	"dist",
	"build",
	"node_modules",
	".tox",
	".mypy_cache",
	".pytest_cache",
	".ruff_cache",
}

// Linter enumerates files missing license headers.
type Linter interface {
	ListMissingHeaders(ctx context.Context, dir string) ([]string, error)
}

// History answers version-control queries for the collector.
type History interface {
	AuthorsOf(ctx context.Context, dir, path string) ([]string, error)
	FilterIgnored(ctx context.Context, dir string, paths []string) ([]string, error)
}

// Options configures a collector run.
type Options struct {
	// Dir is the repository working directory.
	Dir string
	// Output is the artifact path to write.
	Output string
	// IncludeNotInGit includes files with no git history as entries
	// with an empty author list.
	IncludeNotInGit bool
	// Exclude holds extra glob patterns applied on top of
	// DefaultExcludePatterns.
	Exclude []string
}

// Summary reports what a collector run did.
type Summary struct {
	Reported int // files reported by the linter
	Excluded int // dropped by patterns or gitignore
	NotInGit int // files with no git history
	Written  int // entries written to the artifact
}

// Collector wires the linter and history adapters into the
// get-authors pipeline.
type Collector struct {
	Linter  Linter
	History History
	// Out receives progress output. Defaults to os.Stdout.
	Out io.Writer
}

func (c *Collector) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

// Run executes the pipeline and writes the artifact. It returns an
// error only for fatal conditions: the linter not running at all or
// the artifact being unwritable. Per-file history failures are logged
// and the file is treated as untracked.
func (c *Collector) Run(ctx context.Context, opts Options) (*Summary, error) {
	w := c.out()
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(w, "Running %s...\n", bold("reuse lint"))
	files, err := c.Linter.ListMissingHeaders(ctx, opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("linter invocation failed: %w", err)
	}

	summary := &Summary{Reported: len(files)}
	if len(files) == 0 {
		fmt.Fprintf(w, "%s\n", green("No files with licensing issues found by reuse lint."))
		return summary, nil
	}
	fmt.Fprintf(w, "Found %s file(s) with licensing issues.\n", bold(len(files)))

	patterns := append(append([]string{}, DefaultExcludePatterns...), opts.Exclude...)
	before := len(files)
	files = filterExcluded(files, patterns)

	kept, err := c.History.FilterIgnored(ctx, opts.Dir, files)
	if err != nil {
		// A broken ignore check should not kill the run; the pattern
		// filter already removed the usual offenders.
		slog.Warn("gitignore check failed, keeping all remaining files", "error", err)
	} else {
		files = kept
	}

	summary.Excluded = before - len(files)
	if summary.Excluded > 0 {
		fmt.Fprintf(w, "%s\n", dim(fmt.Sprintf("Excluded %d file(s) via path patterns / .gitignore.", summary.Excluded)))
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "%s\n", green("All remaining files were excluded."))
		return summary, nil
	}

	fmt.Fprintf(w, "Fetching git authors...\n\n")

	authors := types.NewAuthorMap()
	for _, path := range files {
		names, err := c.History.AuthorsOf(ctx, opts.Dir, path)
		if err != nil {
			slog.Warn("history query failed, treating file as untracked", "path", path, "error", err)
			names = nil
		}
		if len(names) == 0 {
			summary.NotInGit++
			if opts.IncludeNotInGit {
				authors.Set(path, []string{})
				fmt.Fprintf(w, "  %s: NOT_IN_GIT (included)\n", yellow(path))
			} else {
				fmt.Fprintf(w, "  %s: NOT_IN_GIT (omitted)\n", dim(path))
			}
			continue
		}
		authors.Set(path, names)
		fmt.Fprintf(w, "  %s: %s\n", cyan(path), strings.Join(names, ", "))
	}

	if summary.NotInGit > 0 && !opts.IncludeNotInGit {
		fmt.Fprintf(w, "\n%s %d file(s) with no git history were omitted. Use %s / %s to include them.\n",
			yellow("Note:"), summary.NotInGit, bold("--include-not-in-git"), bold("-i"))
	}

	if err := writeArtifact(opts.Output, authors); err != nil {
		return nil, err
	}
	summary.Written = authors.Len()

	fmt.Fprintf(w, "\n%s %s\n", green("JSON written to:"), opts.Output)
	fmt.Fprintf(w, "Total entries:  %d\n", summary.Written)
	return summary, nil
}

// filterExcluded drops paths where any path component matches any of
// the glob patterns.
func filterExcluded(paths, patterns []string) []string {
	var kept []string
	for _, p := range paths {
		if !pathExcluded(p, patterns) {
			kept = append(kept, p)
		}
	}
	return kept
}

func pathExcluded(path string, patterns []string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		for _, pattern := range patterns {
			if ok, err := filepath.Match(pattern, part); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func writeArtifact(path string, authors *types.AuthorMap) error {
	data, err := json.MarshalIndent(authors, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode author map: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
