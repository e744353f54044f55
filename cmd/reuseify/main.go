// Command reuseify automates REUSE license annotation from git
// history. get-authors resolves the authors of files missing license
// headers into a JSON artifact; annotate replays that artifact through
// reuse annotate with the contributors filled in.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "reuseify",
	Short: "Automate REUSE license annotation from git history",
	Long: `Automate REUSE license annotation from git history.

Two-phase workflow:
  1. reuseify get-authors   finds files missing license headers (reuse lint)
                            and maps each to its git commit authors
  2. reuseify annotate      applies headers (reuse annotate) with the
                            discovered authors as --contributor flags`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(verbose)
	},
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

// flagChanged reports whether the user set the named flag explicitly,
// which decides whether it overrides the config file value.
func flagChanged(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log external tool invocations")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
