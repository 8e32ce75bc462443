package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/ctrltz/meegsim/core"
	"github.com/ctrltz/meegsim/graph"
)

// edge builds a coupling edge with a trivial generator; Resolve only looks
// at the endpoints.
func edge(from, to string) core.Edge {
	return core.Edge{From: from, To: to, Couple: func(parent []float64, _ float64, _ rand.Source) ([]float64, error) {
		return parent, nil
	}}
}

// position returns index of name in the plan or -1 if not found.
func position(p graph.Plan, name string) int {
	for i, step := range p {
		if step.Name == name {
			return i
		}
	}

	return -1
}

// TestResolve_NoEdges verifies that without coupling every source is
// independent and the order equals registration order.
func TestResolve_NoEdges(t *testing.T) {
	plan, err := graph.Resolve([]string{"n1", "s2", "a3"}, nil)
	require.NoError(t, err)
	require.Len(t, plan, 3)
	for i, name := range []string{"n1", "s2", "a3"} {
		assert.Equal(t, name, plan[i].Name)
		assert.True(t, plan[i].Independent())
	}
}

// TestResolve_Chain verifies a chain A→B→C yields [A,B,C] with parents set.
func TestResolve_Chain(t *testing.T) {
	plan, err := graph.Resolve(
		[]string{"C", "B", "A"},
		[]core.Edge{edge("A", "B"), edge("B", "C")},
	)
	require.NoError(t, err)
	require.Len(t, plan, 3)
	assert.Equal(t, graph.Plan{
		{Name: "A"},
		{Name: "B", Parent: "A"},
		{Name: "C", Parent: "B"},
	}, plan)
}

// TestResolve_FanOut allows one parent to drive several children.
func TestResolve_FanOut(t *testing.T) {
	plan, err := graph.Resolve(
		[]string{"A", "B", "C"},
		[]core.Edge{edge("A", "B"), edge("A", "C")},
	)
	require.NoError(t, err)
	assert.Less(t, position(plan, "A"), position(plan, "B"))
	assert.Less(t, position(plan, "A"), position(plan, "C"))
}

// TestResolve_MixedRoots checks that independent roots interleave in
// registration order around coupled sources.
func TestResolve_MixedRoots(t *testing.T) {
	plan, err := graph.Resolve(
		[]string{"noise1", "s1", "noise2", "s2"},
		[]core.Edge{edge("s1", "s2")},
	)
	require.NoError(t, err)
	// Roots keep registration order; s2 follows once s1 is emitted.
	assert.Equal(t, []string{"noise1", "s1", "noise2", "s2"},
		[]string{plan[0].Name, plan[1].Name, plan[2].Name, plan[3].Name})
	assert.Less(t, position(plan, "s1"), position(plan, "s2"))
}

// TestResolve_Deterministic repeats resolution on identical input and
// expects bit-identical plans (ties broken by registration order, never by
// map iteration).
func TestResolve_Deterministic(t *testing.T) {
	names := []string{"z", "y", "x", "w", "v"}
	edges := []core.Edge{edge("z", "x"), edge("y", "w")}

	first, err := graph.Resolve(names, edges)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := graph.Resolve(names, edges)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// TestResolve_Cycle ensures A→B→C→A fails with ErrCycleDetected and that the
// error names at least one source on the cycle.
func TestResolve_Cycle(t *testing.T) {
	plan, err := graph.Resolve(
		[]string{"A", "B", "C", "D"},
		[]core.Edge{edge("A", "B"), edge("B", "C"), edge("C", "A")},
	)
	assert.Nil(t, plan)
	require.ErrorIs(t, err, graph.ErrCycleDetected)
	assert.Contains(t, err.Error(), "A")
}

// TestResolve_TwoNodeCycle covers the minimal cycle A→B→A.
func TestResolve_TwoNodeCycle(t *testing.T) {
	plan, err := graph.Resolve(
		[]string{"A", "B"},
		[]core.Edge{edge("A", "B"), edge("B", "A")},
	)
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, graph.ErrCycleDetected)
}

// TestResolve_FanIn rejects two incoming edges for one child.
func TestResolve_FanIn(t *testing.T) {
	plan, err := graph.Resolve(
		[]string{"A", "B", "C"},
		[]core.Edge{edge("A", "C"), edge("B", "C")},
	)
	assert.Nil(t, plan)
	require.ErrorIs(t, err, graph.ErrMultipleParents)
	assert.Contains(t, err.Error(), `"C"`)
	assert.Contains(t, err.Error(), `"A"`)
	assert.Contains(t, err.Error(), `"B"`)
}

// TestResolve_SelfCoupling rejects A→A.
func TestResolve_SelfCoupling(t *testing.T) {
	_, err := graph.Resolve([]string{"A"}, []core.Edge{edge("A", "A")})
	assert.ErrorIs(t, err, graph.ErrSelfCoupling)
}

// TestResolve_UnknownSource rejects edges with unregistered endpoints.
func TestResolve_UnknownSource(t *testing.T) {
	_, err := graph.Resolve([]string{"A"}, []core.Edge{edge("A", "ghost")})
	assert.ErrorIs(t, err, graph.ErrUnknownSource)

	_, err = graph.Resolve([]string{"A"}, []core.Edge{edge("ghost", "A")})
	assert.ErrorIs(t, err, graph.ErrUnknownSource)
}

// TestResolve_DuplicateName rejects repeated source names.
func TestResolve_DuplicateName(t *testing.T) {
	_, err := graph.Resolve([]string{"A", "A"}, nil)
	assert.ErrorIs(t, err, graph.ErrDuplicateName)
}

// TestResolve_Empty covers the degenerate empty input.
func TestResolve_Empty(t *testing.T) {
	plan, err := graph.Resolve(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, plan)
}
