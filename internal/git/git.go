// Package git drives the git CLI for the history lookups the collector
// needs: per-file author lists and .gitignore filtering.
package git

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Git invokes the git CLI.
type Git struct {
	// gitPath is the path to the git executable
	gitPath string
}

// New creates a new Git instance.
// It verifies that git is available on the system.
func New(ctx context.Context) (*Git, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("git not found in PATH: %w", err)
	}

	// Verify git works
	cmd := exec.CommandContext(ctx, gitPath, "version")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git command failed: %w", err)
	}

	return &Git{gitPath: gitPath}, nil
}

// IsWorkTree reports whether dir is inside a git repository.
func (g *Git) IsWorkTree(ctx context.Context, dir string) bool {
	cmd := exec.CommandContext(ctx, g.gitPath, "-C", dir, "rev-parse", "--git-dir")
	return cmd.Run() == nil
}

// AuthorsOf returns the distinct author display names across all
// commits touching path, in first-appearance order over the git log
// stream (newest commit first), de-duplicated by exact name match.
// A file with no history returns an empty list.
func (g *Git) AuthorsOf(ctx context.Context, dir, path string) ([]string, error) {
	slog.Debug("querying git history", "path", path)

	cmd := exec.CommandContext(ctx, g.gitPath, "-C", dir, "log", "--format=%an", "--", path)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log failed for %s: %w", path, err)
	}

	var authors []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		authors = append(authors, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse git log output for %s: %w", path, err)
	}

	return authors, nil
}

// FilterIgnored removes paths that git check-ignore reports as ignored
// by .gitignore rules. The input order is preserved.
func (g *Git) FilterIgnored(ctx context.Context, dir string, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	slog.Debug("checking gitignore rules", "paths", len(paths))

	cmd := exec.CommandContext(ctx, g.gitPath, "-C", dir, "check-ignore", "--stdin")
	cmd.Stdin = strings.NewReader(strings.Join(paths, "\n"))
	output, err := cmd.Output()
	if err != nil {
		// check-ignore exits 1 when no paths are ignored; anything
		// else is a real failure.
		if exitErr, ok := err.(*exec.ExitError); !ok || exitErr.ExitCode() != 1 {
			return nil, fmt.Errorf("git check-ignore failed: %w", err)
		}
	}

	ignored := make(map[string]bool)
	for _, line := range strings.Split(string(output), "\n") {
		if line != "" {
			ignored[line] = true
		}
	}

	var kept []string
	for _, p := range paths {
		if !ignored[p] {
			kept = append(kept, p)
		}
	}
	return kept, nil
}
