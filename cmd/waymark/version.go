package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waymarkhq/waymark"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of waymark",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("waymark version %s\n", strings.TrimSpace(waymark.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
