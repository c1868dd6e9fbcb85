package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/waymarkhq/waymark"
	"github.com/waymarkhq/waymark/pkg/adapters/file"
	"github.com/waymarkhq/waymark/pkg/journey"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Render a resolved journey view in the terminal",
	Long: `Loads the definition, resolves it for a fresh user and prints the
phase/node tree with states. With --unlock-all every node is forced
active, which is handy for previewing the full journey while authoring.`,
	Run: func(cmd *cobra.Command, args []string) {
		defPath, _ := cmd.Flags().GetString("definition")
		unlockAll, _ := cmd.Flags().GetBool("unlock-all")

		def, err := file.New(defPath).Load(cmd.Context())
		if err != nil {
			fmt.Printf("Error loading definition: %v\n", err)
			os.Exit(1)
		}

		portal, err := waymark.New(def)
		if err != nil {
			fmt.Printf("Error initializing portal: %v\n", err)
			os.Exit(1)
		}

		vm, diags, err := resolvePreview(cmd, portal, unlockAll)
		if err != nil {
			fmt.Printf("Error resolving view: %v\n", err)
			os.Exit(1)
		}

		printView(def, vm)

		if len(diags) > 0 {
			fmt.Println()
			for _, d := range diags {
				fmt.Println(warn("! " + d.String()))
			}
		}
	},
}

func resolvePreview(cmd *cobra.Command, portal *waymark.Portal, unlockAll bool) (*journey.ViewModel, []journey.Diagnostic, error) {
	if unlockAll {
		return portal.ViewUnlocked(cmd.Context(), "preview")
	}
	return portal.View(cmd.Context(), "preview")
}

func printView(def *journey.Definition, vm *journey.ViewModel) {
	fmt.Printf("%s (%s)\n", def.Title, def.ID)
	for _, phase := range vm.Phases {
		fmt.Println()
		header := fmt.Sprintf("── %s", phase.Title)
		if !phase.Reachable {
			header += "  [gated]"
		}
		if phase.AllDone {
			header += "  [complete]"
		}
		fmt.Println(phaseStyle(header))
		for _, node := range phase.Nodes {
			marker := ""
			if node.IsTerminal {
				marker = " ◆"
			}
			fmt.Printf("   %s %s  %s%s\n",
				stateGlyph(node.State),
				stateStyle(node.State, string(node.State)),
				node.Title,
				marker,
			)
		}
	}
}

func stateGlyph(s journey.State) string {
	switch s {
	case journey.StateDone:
		return "✓"
	case journey.StateActive:
		return "▸"
	case journey.StateLocked:
		return "·"
	default:
		return "○"
	}
}

func stateStyle(s journey.State, text string) termenv.Style {
	p := termenv.ColorProfile()
	str := termenv.String(fmt.Sprintf("%-11s", text))
	switch s {
	case journey.StateDone:
		return str.Foreground(p.Color("#4ade80"))
	case journey.StateActive:
		return str.Foreground(p.Color("#818cf8"))
	case journey.StateSubmitted, journey.StateWaiting:
		return str.Foreground(p.Color("#facc15"))
	case journey.StateNeedsFixes:
		return str.Foreground(p.Color("#fb7185"))
	default:
		return str.Faint()
	}
}

func phaseStyle(text string) termenv.Style {
	p := termenv.ColorProfile()
	return termenv.String(text).Foreground(p.Color("#a78bfa")).Bold()
}

func warn(text string) termenv.Style {
	p := termenv.ColorProfile()
	return termenv.String(text).Foreground(p.Color("#facc15"))
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().Bool("unlock-all", false, "Force every node active for previewing")
}
