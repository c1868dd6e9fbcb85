package journey

// NodeVM is the resolved, read-only view of a single node. It is rebuilt on
// every resolution pass and never mutated in place.
type NodeVM struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`

	State      State        `json:"state"`
	ActionKind ActionKind   `json:"action_kind"`
	Kinds      []ActionKind `json:"kinds,omitempty"`
	IsTerminal bool         `json:"is_terminal"`

	// Pass-through authoring data needed by presentation layers.
	Requirements *Requirements `json:"requirements,omitempty"`
	Outcomes     []Outcome     `json:"outcomes,omitempty"`
}

// PhaseVM is the resolved view of a phase and its ordered nodes.
type PhaseVM struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Ordinal int    `json:"ordinal"`

	// Reachable is false when the phase's gating condition failed.
	Reachable bool `json:"reachable"`

	// AllDone is true when every node in the phase resolved to done.
	// An empty phase is not considered done.
	AllDone bool `json:"all_done"`

	Nodes []NodeVM `json:"nodes"`
}

// ViewModel is the immutable output tree of one resolution pass.
type ViewModel struct {
	JourneyID string    `json:"journey_id"`
	Phases    []PhaseVM `json:"phases"`
}

// Node returns the view of the node with the given id.
func (vm *ViewModel) Node(id string) (*NodeVM, bool) {
	for pi := range vm.Phases {
		for ni := range vm.Phases[pi].Nodes {
			if vm.Phases[pi].Nodes[ni].ID == id {
				return &vm.Phases[pi].Nodes[ni], true
			}
		}
	}
	return nil, false
}
