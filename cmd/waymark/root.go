package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "waymark",
	Short: "Waymark is a journey graph state-resolution engine",
	Long: `Waymark resolves multi-phase journey definitions against per-user progress
records, deriving an authoritative interaction state for every node.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("definition", "d", "journey.yaml", "Path to the journey definition file")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}
