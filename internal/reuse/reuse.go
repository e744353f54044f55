// Package reuse drives the external reuse CLI: lint output parsing for
// files missing license headers, and per-file annotate invocations.
package reuse

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/sahiljhawar/reuseify/internal/types"
)

// Tool invokes the reuse CLI.
type Tool struct {
	// reusePath is the path to the reuse executable
	reusePath string
}

// New creates a new Tool instance.
// It verifies that reuse is available on the system.
func New(ctx context.Context) (*Tool, error) {
	reusePath, err := exec.LookPath("reuse")
	if err != nil {
		return nil, fmt.Errorf("reuse not found in PATH (install with: pip install reuse): %w", err)
	}

	cmd := exec.CommandContext(ctx, reusePath, "--version")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("reuse command failed: %w", err)
	}

	return &Tool{reusePath: reusePath}, nil
}

// ListMissingHeaders runs reuse lint in dir and returns the relative
// paths it reports as lacking license/copyright information.
//
// reuse lint exits non-zero when violations exist, so the exit code is
// not an error signal here; only a failure to start the tool is. File
// paths are the "* path" bullet lines before the "# SUMMARY" section,
// collected from stdout and stderr.
func (t *Tool) ListMissingHeaders(ctx context.Context, dir string) ([]string, error) {
	slog.Debug("running reuse lint", "dir", dir)

	cmd := exec.CommandContext(ctx, t.reusePath, "lint")
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return nil, fmt.Errorf("failed to run reuse lint: %w", err)
		}
	}

	return parseLintOutput(string(output)), nil
}

// parseLintOutput extracts the file paths from reuse lint output: the
// "* path" bullet lines before the "# SUMMARY" section.
func parseLintOutput(output string) []string {
	var files []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "# SUMMARY") {
			break
		}
		if strings.HasPrefix(line, "* ") {
			files = append(files, line[2:])
		}
	}
	return files
}

// Annotate runs reuse annotate for a single file with one
// --contributor flag per name. extraArgs are forwarded verbatim ahead
// of the contributor flags, matching reuse's option-before-path
// calling convention.
//
// Classification: exit 0 is Success; a non-zero exit whose output says
// the file type is not recognised is Skipped; any other non-zero exit
// is Failed with the combined output captured as the detail.
func (t *Tool) Annotate(ctx context.Context, dir, path string, contributors, extraArgs []string) types.Outcome {
	args := []string{"annotate"}
	args = append(args, extraArgs...)
	for _, name := range contributors {
		args = append(args, "--contributor", name)
	}
	args = append(args, path)

	slog.Debug("running reuse annotate", "path", path, "contributors", contributors)

	cmd := exec.CommandContext(ctx, t.reusePath, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err == nil {
		return types.Outcome{Path: path, Status: types.StatusSuccess, Contributors: contributors}
	}

	detail := strings.TrimSpace(string(output))
	if detail == "" {
		detail = err.Error()
	}
	if isUnrecognized(detail) {
		return types.Outcome{Path: path, Status: types.StatusSkipped, Detail: detail, Contributors: contributors}
	}
	return types.Outcome{Path: path, Status: types.StatusFailed, Detail: detail, Contributors: contributors}
}

// isUnrecognized matches reuse's complaint about files it cannot derive
// a comment style for. Both British and American spellings appear
// across reuse versions.
func isUnrecognized(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "not recognised") ||
		strings.Contains(lower, "not recognized") ||
		strings.Contains(lower, "skipped unrecognised") ||
		strings.Contains(lower, "skipped unrecognized")
}
