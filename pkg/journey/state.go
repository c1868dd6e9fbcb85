package journey

// State is the resolved interaction state of a node.
//
// Only StateLocked and StateActive are ever inferred structurally by the
// resolver; the remaining four states always originate from the override
// record supplied by the progress store.
type State string

const (
	StateLocked     State = "locked"
	StateActive     State = "active"
	StateSubmitted  State = "submitted"
	StateWaiting    State = "waiting"
	StateNeedsFixes State = "needs_fixes"
	StateDone       State = "done"
)

// ValidState reports whether s is one of the six closed state values.
func ValidState(s State) bool {
	switch s {
	case StateLocked, StateActive, StateSubmitted, StateWaiting, StateNeedsFixes, StateDone:
		return true
	}
	return false
}

// OverrideSourced reports whether s may only come from a persisted override.
func OverrideSourced(s State) bool {
	switch s {
	case StateSubmitted, StateWaiting, StateNeedsFixes, StateDone:
		return true
	}
	return false
}

// ActionKind is the category of interaction a node demands from the user.
type ActionKind string

const (
	ActionUpload   ActionKind = "upload"
	ActionForm     ActionKind = "form"
	ActionOutcome  ActionKind = "outcome"
	ActionExternal ActionKind = "external"
	ActionGateway  ActionKind = "gateway"
)

// Overrides maps node ids to externally persisted states for one user.
// It always wins over any state the resolver would infer structurally.
type Overrides map[string]State

// Facts is the set of fact names currently true for one user. It drives
// phase gating and conditional outcome branches.
type Facts map[string]bool

// Has reports whether the named fact is present and true.
func (f Facts) Has(name string) bool {
	return f[name]
}
