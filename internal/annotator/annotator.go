// Package annotator implements the annotate pipeline: read the author
// artifact, substitute default contributors for untracked files, drive
// the annotation tool once per file, and report grouped outcomes.
package annotator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sahiljhawar/reuseify/internal/types"
)

// Tool applies a license header to a single file.
type Tool interface {
	Annotate(ctx context.Context, dir, path string, contributors, extraArgs []string) types.Outcome
}

// Options configures a driver run.
type Options struct {
	// Dir is the repository working directory.
	Dir string
	// Input is the artifact path written by the collector.
	Input string
	// DefaultContributors substitutes for entries with an empty author
	// list. Entries stay skipped when this is empty.
	DefaultContributors []string
	// Passthrough holds raw flags forwarded verbatim to the tool.
	Passthrough []string
}

// Report groups the outcomes of a driver run.
type Report struct {
	Succeeded []types.Outcome
	Skipped   []types.Outcome
	Failed    []types.Outcome
}

// Total returns the number of processed entries.
func (r *Report) Total() int {
	return len(r.Succeeded) + len(r.Skipped) + len(r.Failed)
}

// Driver wires the annotation tool into the annotate pipeline.
type Driver struct {
	Tool Tool
}

// Run processes every artifact entry exactly once. A failed annotation
// is recorded and processing continues; only an unreadable or
// malformed artifact is an error.
func (d *Driver) Run(ctx context.Context, opts Options) (*Report, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input file %q not found (run get-authors first): %w", opts.Input, err)
		}
		return nil, fmt.Errorf("failed to read %q: %w", opts.Input, err)
	}

	authors := types.NewAuthorMap()
	if err := json.Unmarshal(data, authors); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", opts.Input, err)
	}

	report := &Report{}
	for _, path := range authors.Paths() {
		names, _ := authors.Get(path)
		exists := fileExists(opts.Dir, path)

		switch {
		case len(names) == 0 && (len(opts.DefaultContributors) == 0 || !exists):
			reason := "NOT_IN_GIT"
			if len(opts.DefaultContributors) > 0 {
				reason = "NOT_IN_GIT (file not found)"
			}
			report.Skipped = append(report.Skipped, types.Outcome{
				Path:   path,
				Status: types.StatusSkipped,
				Detail: reason,
			})
			continue
		case len(names) == 0:
			names = opts.DefaultContributors
		case !exists:
			report.Skipped = append(report.Skipped, types.Outcome{
				Path:   path,
				Status: types.StatusSkipped,
				Detail: "file not found",
			})
			continue
		}

		outcome := d.Tool.Annotate(ctx, opts.Dir, path, names, opts.Passthrough)
		switch outcome.Status {
		case types.StatusSuccess:
			report.Succeeded = append(report.Succeeded, outcome)
		case types.StatusSkipped:
			report.Skipped = append(report.Skipped, outcome)
		default:
			report.Failed = append(report.Failed, outcome)
		}
	}

	return report, nil
}

func fileExists(dir, path string) bool {
	info, err := os.Stat(filepath.Join(dir, path))
	return err == nil && info.Mode().IsRegular()
}
