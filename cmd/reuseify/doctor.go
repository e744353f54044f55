package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sahiljhawar/reuseify/internal/config"
	"github.com/sahiljhawar/reuseify/internal/git"
	"github.com/sahiljhawar/reuseify/internal/reuse"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that git and reuse are installed and usable",
	Long: `Run health checks to diagnose common reuseify environment issues.

This command checks for:
- git availability on PATH
- Whether the current directory is inside a git repository
- reuse availability on PATH
- An existing author artifact from a previous get-authors run

Exit codes:
  0 - All checks passed
  1 - One or more checks failed`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Printf("Running reuseify health checks...\n\n")

		failures := 0

		fmt.Printf("%s git\n", cyan("→"))
		g, err := git.New(ctx)
		if err != nil {
			failures++
			fmt.Printf("  %s git not usable: %v\n", red("✗"), err)
		} else {
			fmt.Printf("  %s git found\n", green("✓"))

			fmt.Printf("%s git repository\n", cyan("→"))
			if !g.IsWorkTree(ctx, ".") {
				failures++
				fmt.Printf("  %s current directory is not inside a git repository\n", red("✗"))
			} else {
				fmt.Printf("  %s inside a git work tree\n", green("✓"))
			}
		}

		fmt.Printf("%s reuse\n", cyan("→"))
		if _, err := reuse.New(ctx); err != nil {
			failures++
			fmt.Printf("  %s reuse not usable: %v\n", red("✗"), err)
			fmt.Printf("    Install with: pip install reuse\n")
		} else {
			fmt.Printf("  %s reuse found\n", green("✓"))
		}

		fmt.Printf("%s author artifact\n", cyan("→"))
		cfg, err := config.Load(".")
		if err != nil {
			cfg = config.Default()
		}
		if info, statErr := os.Stat(cfg.Output); statErr != nil {
			fmt.Printf("  %s no artifact at %s (run get-authors to create one)\n", yellow("⚠"), cfg.Output)
		} else {
			fmt.Printf("  %s %s (%d bytes)\n", green("✓"), cfg.Output, info.Size())
		}

		fmt.Println()
		if failures > 0 {
			fmt.Printf("%s %d check(s) failed\n", red("✗"), failures)
			os.Exit(1)
		}
		fmt.Printf("%s All checks passed\n", green("✓"))
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
