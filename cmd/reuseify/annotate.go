package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sahiljhawar/reuseify/internal/annotator"
	"github.com/sahiljhawar/reuseify/internal/config"
	"github.com/sahiljhawar/reuseify/internal/reuse"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [flags] [-- reuse annotate flags...]",
	Short: "Apply REUSE license headers using authors from a JSON file",
	Long: `Apply REUSE license headers using authors from a JSON file.

Runs reuse annotate once per file in the mapping produced by
get-authors, passing one --contributor flag per discovered author.
Files recorded with an empty author list (no git history) are skipped
unless --default-contributor provides fallback names.

Any flag not listed below is forwarded verbatim to reuse annotate
(e.g. --copyright, --license, --year, --style, --skip-unrecognised).

Example:
  reuseify annotate -i authors.json --license GPL-3.0-or-later --year 2026`,
	// Unknown flags are payload here, so cobra must not parse them.
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		parsed, err := parseAnnotateArgs(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if parsed.help {
			_ = cmd.Help()
			return
		}
		if parsed.verbose {
			setupLogging(true)
		}

		cfg, err := config.Load(".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		input := parsed.input
		if input == "" {
			input = cfg.Output
		}
		defaults := parsed.defaults
		if len(defaults) == 0 {
			defaults = cfg.DefaultContributors
		}

		tool, err := reuse.New(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("Reading authors from: %s\n\n", bold(input))

		driver := &annotator.Driver{Tool: tool}
		report, err := driver.Run(ctx, annotator.Options{
			Dir:                 ".",
			Input:               input,
			DefaultContributors: defaults,
			Passthrough:         parsed.passthrough,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		report.Render(os.Stdout)
		if len(report.Failed) > 0 {
			os.Exit(1)
		}
	},
}

// annotateArgs holds the flags annotate understands itself plus the
// raw remainder forwarded to reuse annotate.
type annotateArgs struct {
	input       string
	defaults    []string
	verbose     bool
	help        bool
	passthrough []string
}

// parseAnnotateArgs splits args into known reuseify flags and the
// verbatim passthrough list. Flag parsing is done by hand because
// pflag discards unknown flags instead of capturing them.
func parseAnnotateArgs(args []string) (*annotateArgs, error) {
	parsed := &annotateArgs{}

	takeValue := func(flag string, i *int) (string, error) {
		if eq := strings.IndexByte(args[*i], '='); eq >= 0 {
			return args[*i][eq+1:], nil
		}
		if *i+1 >= len(args) {
			return "", fmt.Errorf("flag needs an argument: %s", flag)
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name := arg
		if eq := strings.IndexByte(arg, '='); eq >= 0 {
			name = arg[:eq]
		}
		switch name {
		case "--input", "-i":
			value, err := takeValue(name, &i)
			if err != nil {
				return nil, err
			}
			parsed.input = value
		case "--default-contributor", "-d":
			value, err := takeValue(name, &i)
			if err != nil {
				return nil, err
			}
			parsed.defaults = append(parsed.defaults, value)
		case "--verbose", "-v":
			parsed.verbose = true
		case "--help", "-h":
			parsed.help = true
		case "--":
			parsed.passthrough = append(parsed.passthrough, args[i+1:]...)
			return parsed, nil
		default:
			parsed.passthrough = append(parsed.passthrough, arg)
		}
	}
	return parsed, nil
}

func init() {
	rootCmd.AddCommand(annotateCmd)
}
