package engine

import "github.com/waymarkhq/waymark/pkg/journey"

// terminalNodes computes, per phase, the set of nodes that end the phase.
//
// A node is terminal iff its within-phase out-degree is zero or it is
// explicitly marked phase-ending. Edges pointing into another phase do not
// count as outgoing; their source remains terminal for its own phase. The
// computation is O(nodes + edges) over the prebuilt index and runs once per
// resolution pass.
//
// A phase with nodes but no terminal node is a definition error (e.g. a
// cycle covering the whole phase); it is reported but resolution proceeds.
func terminalNodes(def *journey.Definition, idx *graphIndex, diags *[]journey.Diagnostic) map[string]bool {
	terminal := make(map[string]bool, len(idx.nodes))

	for pi := range def.Phases {
		phase := &def.Phases[pi]
		found := false

		for ni := range phase.Nodes {
			n := &phase.Nodes[ni]
			if n.EndsPhase {
				terminal[n.ID] = true
				found = true
				continue
			}

			inPhaseOut := 0
			for _, ed := range idx.out[n.ID] {
				if idx.phaseOf[ed.to] == phase.ID {
					inPhaseOut++
				}
			}
			if inPhaseOut == 0 {
				terminal[n.ID] = true
				found = true
			}
		}

		if !found && len(phase.Nodes) > 0 {
			*diags = append(*diags, journey.Diagnostic{
				Code:    journey.DiagNoTerminalNodes,
				PhaseID: phase.ID,
				Detail:  "every node has within-phase successors; the phase can never complete",
			})
		}
	}

	return terminal
}
