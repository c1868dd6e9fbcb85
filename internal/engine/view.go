package engine

import "github.com/waymarkhq/waymark/pkg/journey"

// buildView assembles the immutable output tree. Purely combinational: all
// branching decisions were made upstream, this only shapes data.
func buildView(def *journey.Definition, states map[string]journey.State, terminals map[string]bool, reachable map[string]bool) *journey.ViewModel {
	vm := &journey.ViewModel{
		JourneyID: def.ID,
		Phases:    make([]journey.PhaseVM, 0, len(def.Phases)),
	}

	for pi := range def.Phases {
		phase := &def.Phases[pi]

		pvm := journey.PhaseVM{
			ID:        phase.ID,
			Title:     phase.Title,
			Ordinal:   phase.Ordinal,
			Reachable: reachable[phase.ID],
			Nodes:     make([]journey.NodeVM, 0, len(phase.Nodes)),
		}

		allDone := len(phase.Nodes) > 0
		for ni := range phase.Nodes {
			n := &phase.Nodes[ni]
			st := states[n.ID]
			if st != journey.StateDone {
				allDone = false
			}

			pvm.Nodes = append(pvm.Nodes, journey.NodeVM{
				ID:           n.ID,
				Title:        n.Title,
				Type:         n.Type,
				Description:  n.Description,
				State:        st,
				ActionKind:   Dominant(n),
				Kinds:        Classify(n),
				IsTerminal:   terminals[n.ID],
				Requirements: n.Requirements,
				Outcomes:     n.Outcomes,
			})
		}
		pvm.AllDone = allDone

		vm.Phases = append(vm.Phases, pvm)
	}

	return vm
}
