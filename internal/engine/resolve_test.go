package engine

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waymarkhq/waymark/pkg/journey"
)

// linearDef builds a single phase with nodes A -> B -> C.
func linearDef() *journey.Definition {
	return &journey.Definition{
		ID: "test",
		Phases: []journey.Phase{
			{
				ID:      "p1",
				Title:   "Phase One",
				Ordinal: 1,
				Nodes: []journey.Node{
					{ID: "a", Type: journey.NodeTypeForm, Next: []string{"b"}},
					{ID: "b", Type: journey.NodeTypeForm, Next: []string{"c"}},
					{ID: "c", Type: journey.NodeTypeForm},
				},
			},
		},
	}
}

func stateOf(t *testing.T, vm *journey.ViewModel, id string) journey.State {
	t.Helper()
	n, ok := vm.Node(id)
	require.True(t, ok, "node %s missing from view", id)
	return n.State
}

func TestResolve_LinearUnlock(t *testing.T) {
	e := New(linearDef())

	vm, diags := e.Resolve(Input{})
	assert.Empty(t, diags)
	assert.Equal(t, journey.StateActive, stateOf(t, vm, "a"))
	assert.Equal(t, journey.StateLocked, stateOf(t, vm, "b"))
	assert.Equal(t, journey.StateLocked, stateOf(t, vm, "c"))

	vm, _ = e.Resolve(Input{Overrides: journey.Overrides{"a": journey.StateDone}})
	assert.Equal(t, journey.StateDone, stateOf(t, vm, "a"))
	assert.Equal(t, journey.StateActive, stateOf(t, vm, "b"))
	assert.Equal(t, journey.StateLocked, stateOf(t, vm, "c"))
}

func TestResolve_OverridesAreVerbatim(t *testing.T) {
	e := New(linearDef())

	vm, _ := e.Resolve(Input{Overrides: journey.Overrides{
		"a": journey.StateDone,
		"b": journey.StateNeedsFixes,
	}})
	assert.Equal(t, journey.StateNeedsFixes, stateOf(t, vm, "b"))
	assert.Equal(t, journey.StateLocked, stateOf(t, vm, "c"),
		"needs_fixes predecessor must not unlock a successor")

	vm, _ = e.Resolve(Input{Overrides: journey.Overrides{
		"b": journey.StateSubmitted,
	}})
	assert.Equal(t, journey.StateSubmitted, stateOf(t, vm, "b"),
		"overrides win even when structure alone would keep the node locked")
}

func TestResolve_Determinism(t *testing.T) {
	e := New(linearDef())
	in := Input{
		Overrides: journey.Overrides{"a": journey.StateDone},
		Facts:     journey.Facts{"flag_x": true},
	}

	first, firstDiags := e.Resolve(in)
	for i := 0; i < 5; i++ {
		vm, diags := e.Resolve(in)
		require.True(t, reflect.DeepEqual(first, vm), "repeated resolution must be identical")
		require.True(t, reflect.DeepEqual(firstDiags, diags))
	}
}

func TestResolve_GatedPhase(t *testing.T) {
	def := linearDef()
	def.Phases[0].Condition = "flag_x == true"
	e := New(def)

	t.Run("closed gate locks everything", func(t *testing.T) {
		vm, _ := e.Resolve(Input{})
		for _, id := range []string{"a", "b", "c"} {
			assert.Equal(t, journey.StateLocked, stateOf(t, vm, id))
		}
		assert.False(t, vm.Phases[0].Reachable)
	})

	t.Run("gate beats a non-done override", func(t *testing.T) {
		vm, _ := e.Resolve(Input{Overrides: journey.Overrides{"b": journey.StateActive}})
		assert.Equal(t, journey.StateLocked, stateOf(t, vm, "b"))
	})

	t.Run("done survives the gate", func(t *testing.T) {
		vm, _ := e.Resolve(Input{Overrides: journey.Overrides{"b": journey.StateDone}})
		assert.Equal(t, journey.StateDone, stateOf(t, vm, "b"))
		assert.Equal(t, journey.StateLocked, stateOf(t, vm, "a"))
	})

	t.Run("open gate resolves normally", func(t *testing.T) {
		vm, _ := e.Resolve(Input{Facts: journey.Facts{"flag_x": true}})
		assert.Equal(t, journey.StateActive, stateOf(t, vm, "a"))
		assert.True(t, vm.Phases[0].Reachable)
	})
}

func TestResolve_MalformedGateFailsOpen(t *testing.T) {
	def := linearDef()
	def.Phases[0].Condition = "flag_x == && garbage"
	e := New(def)

	vm, diags := e.Resolve(Input{})
	assert.Equal(t, journey.StateActive, stateOf(t, vm, "a"),
		"unparseable gate must not block the phase")

	var codes []journey.DiagnosticCode
	for _, d := range diags {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, journey.DiagBadCondition)
}

func TestResolve_UnlockAll(t *testing.T) {
	e := New(linearDef())

	vm, _ := e.Resolve(Input{
		UnlockAll: true,
		Overrides: journey.Overrides{"a": journey.StateDone},
	})
	for _, id := range []string{"a", "b", "c"} {
		assert.Equal(t, journey.StateActive, stateOf(t, vm, id),
			"unlock-all forces active regardless of overrides")
	}
}

func TestResolve_OutcomeBranchSelection(t *testing.T) {
	def := &journey.Definition{
		ID: "test",
		Phases: []journey.Phase{
			{
				ID: "p1",
				Nodes: []journey.Node{
					{
						ID:   "d",
						Type: journey.NodeTypeDecision,
						Outcomes: []journey.Outcome{
							{ID: "yes", When: "x == true", Next: []string{"e"}},
							{ID: "no", When: "x == false", Next: []string{"f"}},
						},
					},
					{ID: "e", Type: journey.NodeTypeForm},
					{ID: "f", Type: journey.NodeTypeForm},
				},
			},
		},
	}
	e := New(def)
	done := journey.Overrides{"d": journey.StateDone}

	t.Run("matching guard picks its branch", func(t *testing.T) {
		vm, _ := e.Resolve(Input{Overrides: done, Facts: journey.Facts{"x": true}})
		assert.Equal(t, journey.StateActive, stateOf(t, vm, "e"))
		assert.Equal(t, journey.StateLocked, stateOf(t, vm, "f"))
	})

	t.Run("second guard wins when first fails", func(t *testing.T) {
		vm, _ := e.Resolve(Input{Overrides: done, Facts: journey.Facts{"x": false}})
		assert.Equal(t, journey.StateLocked, stateOf(t, vm, "e"))
		assert.Equal(t, journey.StateActive, stateOf(t, vm, "f"))
	})

	t.Run("branch stays shut until the decision is done", func(t *testing.T) {
		vm, _ := e.Resolve(Input{Facts: journey.Facts{"x": true}})
		assert.Equal(t, journey.StateLocked, stateOf(t, vm, "e"))
		assert.Equal(t, journey.StateLocked, stateOf(t, vm, "f"))
	})
}

func TestResolve_FirstOutcomeDefault(t *testing.T) {
	// No guard matches: the first outcome's target is chosen. Documented,
	// possibly accidental, product behavior.
	def := &journey.Definition{
		ID: "test",
		Phases: []journey.Phase{
			{
				ID: "p1",
				Nodes: []journey.Node{
					{
						ID:   "d",
						Type: journey.NodeTypeDecision,
						Outcomes: []journey.Outcome{
							{ID: "left", When: "x == true", Next: []string{"e"}},
							{ID: "right", When: "y == true", Next: []string{"f"}},
						},
					},
					{ID: "e", Type: journey.NodeTypeForm},
					{ID: "f", Type: journey.NodeTypeForm},
				},
			},
		},
	}
	e := New(def)

	vm, _ := e.Resolve(Input{Overrides: journey.Overrides{"d": journey.StateDone}})
	assert.Equal(t, journey.StateActive, stateOf(t, vm, "e"))
	assert.Equal(t, journey.StateLocked, stateOf(t, vm, "f"))
}

func TestResolve_DanglingEdgeIsExcluded(t *testing.T) {
	def := linearDef()
	def.Phases[0].Nodes[0].Next = append(def.Phases[0].Nodes[0].Next, "ghost")
	e := New(def)

	vm, diags := e.Resolve(Input{Overrides: journey.Overrides{"a": journey.StateDone}})
	assert.Equal(t, journey.StateActive, stateOf(t, vm, "b"),
		"dangling edge must not poison predecessor computation")

	require.NotEmpty(t, diags)
	assert.Equal(t, journey.DiagDanglingEdge, diags[0].Code)
	assert.Equal(t, "a", diags[0].NodeID)
}

func TestResolve_OrphanOverrideIgnored(t *testing.T) {
	e := New(linearDef())

	vm, diags := e.Resolve(Input{Overrides: journey.Overrides{"nope": journey.StateDone}})
	assert.Equal(t, journey.StateActive, stateOf(t, vm, "a"))

	var found bool
	for _, d := range diags {
		if d.Code == journey.DiagOrphanOverride && d.NodeID == "nope" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestResolve_EmptyPhaseIsValid(t *testing.T) {
	def := linearDef()
	def.Phases = append(def.Phases, journey.Phase{ID: "future", Ordinal: 2})
	e := New(def)

	vm, diags := e.Resolve(Input{})
	assert.Empty(t, diags)
	require.Len(t, vm.Phases, 2)
	assert.Empty(t, vm.Phases[1].Nodes)
	assert.False(t, vm.Phases[1].AllDone, "an empty phase is never done")
}

func TestResolve_CrossPhasePredecessor(t *testing.T) {
	def := &journey.Definition{
		ID: "test",
		Phases: []journey.Phase{
			{ID: "p1", Ordinal: 1, Nodes: []journey.Node{
				{ID: "a", Type: journey.NodeTypeForm, Next: []string{"b"}},
			}},
			{ID: "p2", Ordinal: 2, Nodes: []journey.Node{
				{ID: "b", Type: journey.NodeTypeForm},
			}},
		},
	}
	e := New(def)

	vm, _ := e.Resolve(Input{})
	assert.Equal(t, journey.StateLocked, stateOf(t, vm, "b"),
		"a cross-phase edge still counts as a predecessor")

	vm, _ = e.Resolve(Input{Overrides: journey.Overrides{"a": journey.StateDone}})
	assert.Equal(t, journey.StateActive, stateOf(t, vm, "b"))
}

func TestResolve_EveryNodeGetsAState(t *testing.T) {
	def := linearDef()
	def.Phases[0].Nodes = append(def.Phases[0].Nodes, journey.Node{ID: "x", Type: "mystery"})
	e := New(def)

	vm, diags := e.Resolve(Input{})
	for _, p := range vm.Phases {
		for _, n := range p.Nodes {
			assert.True(t, journey.ValidState(n.State), "node %s left unresolved", n.ID)
		}
	}

	var codes []journey.DiagnosticCode
	for _, d := range diags {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, journey.DiagUnknownNodeType)
}
