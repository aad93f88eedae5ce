package aig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/toymap/aig"
)

// TestFrontierIndex_NoCollisionOnOverlappingLifetimes checks the frontier
// invariant: nodes with overlapping live intervals never share an fid.
// We approximate "overlapping" conservatively by checking no fid repeats
// among the set of a chain's intermediate nodes at any one time using the
// frontier size as an upper bound on concurrently live nodes, and directly
// verify the reported peak is sane (>=1, <= node count) and that two
// primary inputs feeding the same gate (therefore simultaneously live at
// that gate's visit) get distinct fids.
func TestFrontierIndex_NoCollisionOnOverlappingLifetimes(t *testing.T) {
	g := aig.NewGraph()
	a := g.AddPI("a")
	b := g.AddPI("b")
	and := g.AddAnd(aig.Edge{Target: a}, aig.Edge{Target: b}, "y")
	g.AddPO("y", aig.Edge{Target: and})

	fid, peak, err := g.FrontierIndex()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, peak, 1)
	assert.LessOrEqual(t, peak, g.NumNodes())
	assert.NotEqual(t, fid[a], fid[b], "a and b are simultaneously live at the AND gate")
}

func TestFrontierIndex_EmptyGraph(t *testing.T) {
	g := aig.NewGraph()
	fid, peak, err := g.FrontierIndex()
	require.NoError(t, err)
	// Each constant has no consumers: it goes live at its own visit and is
	// recycled immediately, so one slot serves all three in turn.
	assert.Equal(t, 1, peak)
	assert.Len(t, fid, 3)
}

func TestTopoSort_CycleInZeroLagProjection(t *testing.T) {
	g := aig.NewGraph()
	a := g.AddPI("a")
	// Build n1 = AND(n2, a), n2 = AND(n1, a) — a genuine zero-lag cycle.
	// We have to construct it via SetInput since AddAnd needs both edges
	// up front; wire a placeholder first then patch it.
	n1 := g.AddAnd(aig.Edge{Target: a}, aig.Edge{Target: a}, "n1")
	n2 := g.AddAnd(aig.Edge{Target: n1}, aig.Edge{Target: a}, "n2")
	g.SetInput(n1, 0, aig.Edge{Target: n2})

	_, err := g.TopoSort()
	assert.ErrorIs(t, err, aig.ErrCycleDetected)
}

func TestTopoSort_RegisterLagDoesNotCountAsCycle(t *testing.T) {
	g := aig.NewGraph()
	a := g.AddPI("a")
	n1 := g.AddAnd(aig.Edge{Target: a}, aig.Edge{Target: a}, "n1") // placeholder input, patched below
	n2 := g.AddAnd(aig.Edge{Target: n1}, aig.Edge{Target: a}, "n2")
	// n1 now depends on n2 only through a register (lag=1): a legitimate
	// sequential feedback loop, invisible to the zero-lag projection, and
	// must not be reported as a cycle.
	g.SetInput(n1, 0, aig.Edge{Target: n2, Lag: 1, InitVals: []aig.TriState{aig.X}})
	g.AddPO("y", aig.Edge{Target: n2})

	_, err := g.TopoSort()
	assert.NoError(t, err)
}
