package journey

// Phase is an ordered grouping of nodes representing one stage of the
// journey. The original product called these "worlds".
type Phase struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Ordinal int    `json:"ordinal" yaml:"ordinal"`

	// Condition gates the whole phase. An empty expression means the
	// phase is always reachable.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`

	// Nodes holds the phase's nodes in declared order.
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// Definition is the immutable static description of a journey. It is loaded
// once and must never be mutated after load; resolution passes only read it.
type Definition struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Phases []Phase `json:"phases" yaml:"phases"`
}

// NodeCount returns the total number of nodes across all phases.
func (d *Definition) NodeCount() int {
	n := 0
	for i := range d.Phases {
		n += len(d.Phases[i].Nodes)
	}
	return n
}

// FindNode returns the node with the given id and the phase owning it.
// Every node belongs to exactly one phase; the first match wins if the
// definition violates that invariant.
func (d *Definition) FindNode(id string) (*Node, *Phase, bool) {
	for pi := range d.Phases {
		phase := &d.Phases[pi]
		for ni := range phase.Nodes {
			if phase.Nodes[ni].ID == id {
				return &phase.Nodes[ni], phase, true
			}
		}
	}
	return nil, nil, false
}
