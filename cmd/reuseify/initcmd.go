package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sahiljhawar/reuseify/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .reuseify.yaml config file",
	Long: `Write a starter .reuseify.yaml in the current directory.

The config file provides defaults for get-authors and annotate flags:
output path, extra exclusion patterns, default contributors and the
include-not-in-git behavior. Explicit flags always win over the file.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := config.ConfigName + ".yaml"

		if _, err := os.Stat(path); err == nil && !initForce {
			fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", path)
			os.Exit(1)
		}

		data, err := yaml.Marshal(config.Default())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		header := "# reuseify configuration. Flags override these values.\n"
		if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write %s: %v\n", path, err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Wrote %s\n", green("✓"), path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}
