package engine

import (
	"fmt"

	"github.com/waymarkhq/waymark/pkg/journey"
)

// edgeKind distinguishes how an edge was declared.
type edgeKind int

const (
	edgeDefault edgeKind = iota // from a node's next list
	edgeOutcome                 // from an outcome's next list
)

// edge is one directed link, materialized from the scattered next and
// outcome.next fields of the definition.
type edge struct {
	from, to string
	kind     edgeKind

	// outcomeIdx is the declaration index of the owning outcome on the
	// source node. Only meaningful when kind == edgeOutcome.
	outcomeIdx int
}

// graphIndex is the per-pass adjacency index. It is built once per
// resolution and discarded afterwards; nothing is cached across calls.
type graphIndex struct {
	nodes   map[string]*journey.Node
	phaseOf map[string]string // node id -> owning phase id

	out map[string][]edge // within full graph, including cross-phase
	in  map[string][]edge

	diags []journey.Diagnostic
}

// buildIndex materializes the directed graph implied by next/outcome.next.
// Edges referencing non-existent node ids are excluded and reported; they
// must not take part in predecessor computation.
func buildIndex(def *journey.Definition) *graphIndex {
	idx := &graphIndex{
		nodes:   make(map[string]*journey.Node, def.NodeCount()),
		phaseOf: make(map[string]string, def.NodeCount()),
		out:     make(map[string][]edge),
		in:      make(map[string][]edge),
	}

	for pi := range def.Phases {
		phase := &def.Phases[pi]
		for ni := range phase.Nodes {
			n := &phase.Nodes[ni]
			idx.nodes[n.ID] = n
			idx.phaseOf[n.ID] = phase.ID
		}
	}

	addEdge := func(ed edge) {
		if _, ok := idx.nodes[ed.to]; !ok {
			idx.diags = append(idx.diags, journey.Diagnostic{
				Code:   journey.DiagDanglingEdge,
				NodeID: ed.from,
				Detail: fmt.Sprintf("edge target %q does not exist", ed.to),
			})
			return
		}
		idx.out[ed.from] = append(idx.out[ed.from], ed)
		idx.in[ed.to] = append(idx.in[ed.to], ed)
	}

	for pi := range def.Phases {
		phase := &def.Phases[pi]
		for ni := range phase.Nodes {
			n := &phase.Nodes[ni]
			for _, to := range n.Next {
				addEdge(edge{from: n.ID, to: to, kind: edgeDefault})
			}
			for oi := range n.Outcomes {
				for _, to := range n.Outcomes[oi].Next {
					addEdge(edge{from: n.ID, to: to, kind: edgeOutcome, outcomeIdx: oi})
				}
			}
		}
	}

	return idx
}
