package waymark_test

import (
	"context"
	"fmt"
	"log"

	"github.com/waymarkhq/waymark"
	"github.com/waymarkhq/waymark/pkg/journey"
)

// ExampleNew demonstrates building a journey in code, recording progress
// and watching downstream nodes unlock.
func ExampleNew() {
	def := &journey.Definition{
		ID:    "onboarding",
		Title: "Onboarding",
		Phases: []journey.Phase{
			{
				ID:      "paperwork",
				Title:   "Paperwork",
				Ordinal: 1,
				Nodes: []journey.Node{
					{ID: "welcome", Title: "Welcome", Type: journey.NodeTypeInfo, Next: []string{"contract"}},
					{ID: "contract", Title: "Sign the contract", Type: journey.NodeTypeUpload},
				},
			},
		},
	}

	portal, err := waymark.New(def)
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	printStates := func() {
		vm, _, err := portal.View(ctx, "ana")
		if err != nil {
			log.Fatal(err)
		}
		for _, node := range vm.Phases[0].Nodes {
			fmt.Printf("%s: %s\n", node.ID, node.State)
		}
	}

	printStates()

	if err := portal.Record(ctx, "ana", "welcome", journey.StateDone); err != nil {
		log.Fatal(err)
	}
	printStates()

	// Output:
	// welcome: active
	// contract: locked
	// welcome: done
	// contract: active
}

// ExamplePortal_View_gated shows a phase gate opening once a fact is asserted.
func ExamplePortal_View_gated() {
	def := &journey.Definition{
		ID: "visa",
		Phases: []journey.Phase{
			{ID: "apply", Ordinal: 1, Nodes: []journey.Node{
				{ID: "submit", Type: journey.NodeTypeForm},
			}},
			{ID: "travel", Ordinal: 2, Condition: "visa_granted == true", Nodes: []journey.Node{
				{ID: "book", Type: journey.NodeTypeExternal},
			}},
		},
	}

	portal, err := waymark.New(def)
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	vm, _, _ := portal.View(ctx, "ana")
	fmt.Println("before:", vm.Phases[1].Nodes[0].State)

	// The default in-memory fact source starts empty; a real deployment
	// injects one with waymark.WithFactSource.
	vmUnlocked, _, _ := portal.ViewUnlocked(ctx, "ana")
	fmt.Println("preview:", vmUnlocked.Phases[1].Nodes[0].State)

	// Output:
	// before: locked
	// preview: active
}
