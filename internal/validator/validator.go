// Package validator performs authoring-time checks on a journey definition.
//
// The engine itself only degrades gracefully around definition defects; this
// package is where they are reported precisely, for `waymark validate` and
// for a warning sweep at serve startup.
package validator

import (
	"fmt"

	"github.com/waymarkhq/waymark/pkg/condition"
	"github.com/waymarkhq/waymark/pkg/journey"
)

// Severity classifies how a problem affects resolution.
type Severity string

const (
	// SeverityError marks defects that corrupt graph semantics (dangling
	// edges, duplicate ids, phases that can never complete).
	SeverityError Severity = "error"
	// SeverityWarning marks defects the engine papers over at runtime
	// (unknown types, unparseable gates that will fail open).
	SeverityWarning Severity = "warning"
)

// Problem is one finding against the definition.
type Problem struct {
	Severity Severity
	PhaseID  string
	NodeID   string
	Message  string
}

func (p Problem) String() string {
	where := p.NodeID
	if where == "" {
		where = p.PhaseID
	}
	return fmt.Sprintf("[%s] %s: %s", p.Severity, where, p.Message)
}

// Check inspects the whole definition and returns every problem found.
// An empty result means the definition is sound.
func Check(def *journey.Definition) []Problem {
	var problems []Problem

	seen := make(map[string]string) // node id -> phase id
	for pi := range def.Phases {
		phase := &def.Phases[pi]
		for ni := range phase.Nodes {
			n := &phase.Nodes[ni]
			if prev, dup := seen[n.ID]; dup {
				problems = append(problems, Problem{
					Severity: SeverityError,
					PhaseID:  phase.ID,
					NodeID:   n.ID,
					Message:  fmt.Sprintf("node id already declared in phase %q; every node must belong to exactly one phase", prev),
				})
				continue
			}
			seen[n.ID] = phase.ID
		}
	}

	for pi := range def.Phases {
		phase := &def.Phases[pi]

		if err := condition.MustParse(phase.Condition); err != nil {
			problems = append(problems, Problem{
				Severity: SeverityWarning,
				PhaseID:  phase.ID,
				Message:  fmt.Sprintf("unparseable gate (will fail open): %v", err),
			})
		}

		terminalSeen := false
		for ni := range phase.Nodes {
			n := &phase.Nodes[ni]
			problems = append(problems, checkNode(phase, n, seen)...)

			if n.EndsPhase || withinPhaseOutDegree(n, seen, phase.ID) == 0 {
				terminalSeen = true
			}
		}

		if !terminalSeen && len(phase.Nodes) > 0 {
			problems = append(problems, Problem{
				Severity: SeverityError,
				PhaseID:  phase.ID,
				Message:  "phase has no terminal node and can never complete",
			})
		}
	}

	return problems
}

func checkNode(phase *journey.Phase, n *journey.Node, seen map[string]string) []Problem {
	var problems []Problem

	if !journey.KnownNodeType(n.Type) {
		problems = append(problems, Problem{
			Severity: SeverityWarning,
			PhaseID:  phase.ID,
			NodeID:   n.ID,
			Message:  fmt.Sprintf("unknown type %q (will classify as gateway)", n.Type),
		})
	}

	for _, to := range n.Next {
		if _, ok := seen[to]; !ok {
			problems = append(problems, Problem{
				Severity: SeverityError,
				PhaseID:  phase.ID,
				NodeID:   n.ID,
				Message:  fmt.Sprintf("next points at missing node %q", to),
			})
		}
	}

	for oi := range n.Outcomes {
		o := &n.Outcomes[oi]
		if err := condition.MustParse(o.When); err != nil {
			problems = append(problems, Problem{
				Severity: SeverityWarning,
				PhaseID:  phase.ID,
				NodeID:   n.ID,
				Message:  fmt.Sprintf("outcome %q has an unparseable guard (will fail open): %v", o.ID, err),
			})
		}
		if len(o.Next) == 0 {
			problems = append(problems, Problem{
				Severity: SeverityWarning,
				PhaseID:  phase.ID,
				NodeID:   n.ID,
				Message:  fmt.Sprintf("outcome %q has no successor", o.ID),
			})
		}
		for _, to := range o.Next {
			if _, ok := seen[to]; !ok {
				problems = append(problems, Problem{
					Severity: SeverityError,
					PhaseID:  phase.ID,
					NodeID:   n.ID,
					Message:  fmt.Sprintf("outcome %q points at missing node %q", o.ID, to),
				})
			}
		}
	}

	return problems
}

func withinPhaseOutDegree(n *journey.Node, seen map[string]string, phaseID string) int {
	degree := 0
	for _, to := range n.Next {
		if seen[to] == phaseID {
			degree++
		}
	}
	for oi := range n.Outcomes {
		for _, to := range n.Outcomes[oi].Next {
			if seen[to] == phaseID {
				degree++
			}
		}
	}
	return degree
}

// HasErrors reports whether any problem is severity error.
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}
