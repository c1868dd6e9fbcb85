package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waymarkhq/waymark/internal/validator"
	"github.com/waymarkhq/waymark/pkg/adapters/file"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a journey definition for authoring problems",
	Long: `Parses the definition file and reports structural problems: dangling
edges, duplicate identifiers, unparseable conditions, phases with no
terminal node. Warnings are survivable at runtime; errors are not.`,
	Run: func(cmd *cobra.Command, args []string) {
		defPath, _ := cmd.Flags().GetString("definition")

		def, err := file.New(defPath).Load(cmd.Context())
		if err != nil {
			fmt.Printf("Error loading definition: %v\n", err)
			os.Exit(1)
		}

		problems := validator.Check(def)
		if len(problems) == 0 {
			fmt.Printf("%s: OK (%d phases, %d nodes)\n", def.ID, len(def.Phases), def.NodeCount())
			return
		}

		for _, p := range problems {
			fmt.Println(p.String())
		}
		if validator.HasErrors(problems) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
