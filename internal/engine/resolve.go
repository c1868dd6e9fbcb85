package engine

import (
	"fmt"
	"sort"

	"github.com/waymarkhq/waymark/pkg/condition"
	"github.com/waymarkhq/waymark/pkg/journey"
)

// resolveStates computes the resolved state of every node. Phases are
// processed in declared order; within a phase only locked/active are ever
// inferred, everything else comes verbatim from the override record.
func (e *Engine) resolveStates(in Input, idx *graphIndex, diags *[]journey.Diagnostic) map[string]journey.State {
	states := make(map[string]journey.State, len(idx.nodes))

	// Orphan overrides never affect resolution; report them once per pass,
	// in sorted order so repeated passes yield identical output.
	orphans := make([]string, 0)
	for nodeID := range in.Overrides {
		if _, ok := idx.nodes[nodeID]; !ok {
			orphans = append(orphans, nodeID)
		}
	}
	sort.Strings(orphans)
	for _, nodeID := range orphans {
		*diags = append(*diags, journey.Diagnostic{
			Code:   journey.DiagOrphanOverride,
			NodeID: nodeID,
			Detail: "override for node not present in definition",
		})
	}

	for pi := range e.def.Phases {
		phase := &e.def.Phases[pi]

		// Step 1: debug unlock-all wins over everything, overrides included.
		if in.UnlockAll {
			for ni := range phase.Nodes {
				states[phase.Nodes[ni].ID] = journey.StateActive
			}
			continue
		}

		// Step 2: a failed phase gate locks the whole phase. A recorded
		// done survives the gate; a user who finished work before the gate
		// was re-evaluated must not lose that record.
		if !e.phaseOpen(phase, in.Facts, diags) {
			for ni := range phase.Nodes {
				id := phase.Nodes[ni].ID
				if in.Overrides[id] == journey.StateDone {
					states[id] = journey.StateDone
				} else {
					states[id] = journey.StateLocked
				}
			}
			continue
		}

		for ni := range phase.Nodes {
			n := &phase.Nodes[ni]

			// Step 4: overrides are used verbatim.
			if st, ok := in.Overrides[n.ID]; ok && journey.ValidState(st) {
				states[n.ID] = st
				continue
			}

			// Step 3: locked unless all structural predecessors are done.
			if e.unlocked(n.ID, in, idx, diags) {
				states[n.ID] = journey.StateActive
			} else {
				states[n.ID] = journey.StateLocked
			}
		}
	}

	return states
}

// unlocked reports whether every incoming edge of the node is satisfied.
// A node with no predecessors is a phase entry node and unlocks as soon as
// its phase gate passes.
//
// Done-ness is strictly override-sourced, so a single pass over the nodes
// suffices: no inferred state can cascade into another node's predecessor
// check, and cyclic definitions cannot loop the resolver.
func (e *Engine) unlocked(nodeID string, in Input, idx *graphIndex, diags *[]journey.Diagnostic) bool {
	incoming := idx.in[nodeID]
	if len(incoming) == 0 {
		return true
	}

	for _, ed := range incoming {
		if in.Overrides[ed.from] != journey.StateDone {
			return false
		}
		// Step 5: an outcome edge only counts when its branch was the one
		// selected on the completed source node.
		if ed.kind == edgeOutcome {
			src := idx.nodes[ed.from]
			if e.selectedOutcome(src, in.Facts, diags) != ed.outcomeIdx {
				return false
			}
		}
	}
	return true
}

// selectedOutcome picks the branch taken on a completed decision node:
// guards are evaluated in declared order, first match wins. When no guard
// matches, the first outcome is used as a conservative default. That
// first-outcome fallback is documented, possibly accidental, product
// behavior; do not change it without product confirmation.
func (e *Engine) selectedOutcome(n *journey.Node, facts journey.Facts, diags *[]journey.Diagnostic) int {
	for oi := range n.Outcomes {
		ok, err := condition.Evaluate(n.Outcomes[oi].When, facts)
		if err != nil {
			*diags = append(*diags, journey.Diagnostic{
				Code:   journey.DiagBadCondition,
				NodeID: n.ID,
				Detail: err.Error(),
			})
		}
		if ok {
			return oi
		}
	}
	return 0
}

// phaseOpen evaluates a phase's gating condition against the user's facts.
// Malformed gates fail open with a diagnostic.
func (e *Engine) phaseOpen(phase *journey.Phase, facts journey.Facts, diags *[]journey.Diagnostic) bool {
	open, err := condition.Evaluate(phase.Condition, facts)
	if err != nil {
		*diags = append(*diags, journey.Diagnostic{
			Code:    journey.DiagBadCondition,
			PhaseID: phase.ID,
			Detail:  err.Error(),
		})
	}
	return open
}

// reachablePhases evaluates every phase gate once for the view model.
// Unlock-all does not override gating flags on phases, only node states;
// the presentation layer still dims unreachable phases.
func (e *Engine) reachablePhases(in Input, diags *[]journey.Diagnostic) map[string]bool {
	reachable := make(map[string]bool, len(e.def.Phases))
	for pi := range e.def.Phases {
		phase := &e.def.Phases[pi]
		// Gate defects were already reported by resolveStates; evaluate
		// silently here to avoid duplicate diagnostics.
		open, _ := condition.Evaluate(phase.Condition, in.Facts)
		reachable[phase.ID] = open || in.UnlockAll
	}
	return reachable
}

// checkUnknownTypes reports nodes typed outside the closed set. They still
// resolve and classify (as gateways); authoring should fix them.
func checkUnknownTypes(def *journey.Definition, diags *[]journey.Diagnostic) {
	for pi := range def.Phases {
		for ni := range def.Phases[pi].Nodes {
			n := &def.Phases[pi].Nodes[ni]
			if !journey.KnownNodeType(n.Type) {
				*diags = append(*diags, journey.Diagnostic{
					Code:   journey.DiagUnknownNodeType,
					NodeID: n.ID,
					Detail: fmt.Sprintf("unknown node type %q, classified as gateway", n.Type),
				})
			}
		}
	}
}
