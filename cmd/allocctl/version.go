package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/allockit/memory"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildMode() string {
	if memory.DebugBuild {
		return "debug"
	}
	return "release"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("allocctl %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  mode: %s\n", buildMode())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
