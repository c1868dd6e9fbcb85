package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waymarkhq/waymark/pkg/journey"
)

func TestBuildView_AllDone(t *testing.T) {
	e := New(linearDef())

	vm, _ := e.Resolve(Input{Overrides: journey.Overrides{
		"a": journey.StateDone,
		"b": journey.StateDone,
	}})
	assert.False(t, vm.Phases[0].AllDone)

	vm, _ = e.Resolve(Input{Overrides: journey.Overrides{
		"a": journey.StateDone,
		"b": journey.StateDone,
		"c": journey.StateDone,
	}})
	assert.True(t, vm.Phases[0].AllDone)
}

func TestBuildView_PassThroughFields(t *testing.T) {
	reqs := &journey.Requirements{Fields: []journey.Field{{Name: "essay", Required: true}}}
	def := &journey.Definition{
		ID: "test",
		Phases: []journey.Phase{
			{ID: "p1", Title: "Arrival", Ordinal: 3, Nodes: []journey.Node{
				{
					ID:           "a",
					Title:        "Write your essay",
					Type:         journey.NodeTypeForm,
					Description:  "Tell us why.",
					Requirements: reqs,
				},
			}},
		},
	}

	vm, _ := New(def).Resolve(Input{})

	require.Len(t, vm.Phases, 1)
	assert.Equal(t, "Arrival", vm.Phases[0].Title)
	assert.Equal(t, 3, vm.Phases[0].Ordinal)

	n, ok := vm.Node("a")
	require.True(t, ok)
	assert.Equal(t, "Write your essay", n.Title)
	assert.Equal(t, "Tell us why.", n.Description)
	assert.Equal(t, reqs, n.Requirements)
	assert.Equal(t, journey.ActionForm, n.ActionKind)
}

func TestBuildView_FreshTreeEachPass(t *testing.T) {
	e := New(linearDef())

	first, _ := e.Resolve(Input{})
	second, _ := e.Resolve(Input{})
	require.NotSame(t, first, second)

	// Mutating one output must not leak into the next pass.
	first.Phases[0].Nodes[0].State = journey.StateDone
	third, _ := e.Resolve(Input{})
	assert.Equal(t, journey.StateActive, third.Phases[0].Nodes[0].State)
}
