package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sahiljhawar/reuseify/internal/buildmeta"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reuseify %s (commit %s, built %s)\n",
			buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
