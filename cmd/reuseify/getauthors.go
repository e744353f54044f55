package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sahiljhawar/reuseify/internal/collector"
	"github.com/sahiljhawar/reuseify/internal/config"
	"github.com/sahiljhawar/reuseify/internal/git"
	"github.com/sahiljhawar/reuseify/internal/reuse"
)

var (
	getAuthorsOutput  string
	getAuthorsInclude bool
	getAuthorsExclude []string
)

var getAuthorsCmd = &cobra.Command{
	Use:   "get-authors",
	Short: "Get git authors for files missing REUSE license headers",
	Long: `Get git authors for files missing REUSE license headers.

Runs reuse lint to find non-compliant files, drops build artifacts,
caches and gitignored paths, then queries git history for each
remaining file's authors and writes the path-to-authors mapping as a
JSON file for the annotate command.

Files with no git history are omitted unless --include-not-in-git is
set, in which case they appear with an empty author list and can be
filled in with annotate --default-contributor.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := config.Load(".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !flagChanged(cmd.Flags(), "output") {
			getAuthorsOutput = cfg.Output
		}
		if !flagChanged(cmd.Flags(), "include-not-in-git") {
			getAuthorsInclude = cfg.IncludeNotInGit
		}
		if !flagChanged(cmd.Flags(), "exclude") {
			getAuthorsExclude = cfg.Exclude
		}

		g, err := git.New(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !g.IsWorkTree(ctx, ".") {
			fmt.Fprintf(os.Stderr, "Error: Not in a git repository.\n")
			os.Exit(1)
		}

		tool, err := reuse.New(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		c := &collector.Collector{Linter: tool, History: g}
		if _, err := c.Run(ctx, collector.Options{
			Dir:             ".",
			Output:          getAuthorsOutput,
			IncludeNotInGit: getAuthorsInclude,
			Exclude:         getAuthorsExclude,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(getAuthorsCmd)
	getAuthorsCmd.Flags().StringVarP(&getAuthorsOutput, "output", "o", config.DefaultOutput, "Output JSON file")
	getAuthorsCmd.Flags().BoolVarP(&getAuthorsInclude, "include-not-in-git", "i", false, "Include files with no git history (empty author list)")
	getAuthorsCmd.Flags().StringArrayVarP(&getAuthorsExclude, "exclude", "e", nil, "Glob pattern to exclude, matched against each path component (repeatable)")
}
