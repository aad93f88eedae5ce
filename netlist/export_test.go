package netlist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/toymap/aig"
	"github.com/lvlath-labs/toymap/cutmap"
	"github.com/lvlath-labs/toymap/lutnet"
	"github.com/lvlath-labs/toymap/netlist"
)

func andModule() *netlist.Module {
	return &netlist.Module{
		Inputs: []string{"a", "b"},
		Cells: []netlist.Cell{
			{Kind: netlist.KindAnd, Inputs: []string{"a", "b"}, Output: "y"},
		},
		Outputs: []string{"y"},
	}
}

func TestExportAIG_RoundTrip_PreservesFunction(t *testing.T) {
	m := andModule()
	g, err := netlist.Import(m)
	require.NoError(t, err)

	out, err := netlist.ExportAIG(g)
	require.NoError(t, err)
	assert.ElementsMatch(t, m.Inputs, out.Inputs)
	require.Len(t, out.Outputs, 1)

	g2, err := netlist.Import(out)
	require.NoError(t, err)
	require.NoError(t, g2.CheckInvariants())

	// Re-importing the exported module must yield an AIG computing the
	// same function: a&b for every input combination.
	for _, av := range []bool{false, true} {
		for _, bv := range []bool{false, true} {
			assert.Equal(t, av && bv, evalSingleOutput(t, g2, av, bv))
		}
	}
}

// evalSingleOutput simulates a single-PO, two-PI graph by walking its
// topological order, mirroring the evaluation aig/testutil would do for a
// random graph.
func evalSingleOutput(t *testing.T, g *aig.Graph, a, b bool) bool {
	t.Helper()
	vals := map[aig.ID]bool{aig.Const0: false, aig.Const1: true}
	pis := g.PIs()
	require.Len(t, pis, 2)
	vals[pis[0]] = a
	vals[pis[1]] = b

	order, err := g.TopoSort()
	require.NoError(t, err)
	for _, id := range order {
		n := g.Node(id)
		if n.Kind != aig.KindAnd {
			continue
		}
		v0 := vals[n.Ins[0].Target] != n.Ins[0].Negated
		v1 := vals[n.Ins[1].Target] != n.Ins[1].Negated
		vals[id] = v0 && v1
	}

	pos := g.POs()
	require.Len(t, pos, 1)

	return vals[pos[0]]
}

func TestExportLUTs_ConstantDrivenOutput_NoLUTEmitted(t *testing.T) {
	m := &netlist.Module{
		Cells: []netlist.Cell{
			{Kind: netlist.KindAnd, Inputs: []string{"$const1", "$const1"}, Output: "y"},
		},
		Outputs: []string{"y"},
	}
	g, err := netlist.Import(m)
	require.NoError(t, err)
	_, err = g.Compact()
	require.NoError(t, err)

	lib := lutnet.AcademicLibrary(4)
	st, _, err := cutmap.Map(context.Background(), g, lib)
	require.NoError(t, err)

	out, err := netlist.ExportLUTs(g, st)
	require.NoError(t, err)
	for _, c := range out.Cells {
		assert.NotEqual(t, netlist.KindLUT, c.Kind)
	}
}

func TestExportLUTs_And_ProducesOneLUTWithCorrectTable(t *testing.T) {
	m := andModule()
	g, err := netlist.Import(m)
	require.NoError(t, err)

	lib := lutnet.AcademicLibrary(4)
	st, _, err := cutmap.Map(context.Background(), g, lib, cutmap.WithTrivialCuts())
	require.NoError(t, err)

	out, err := netlist.ExportLUTs(g, st)
	require.NoError(t, err)

	var lut *netlist.Cell
	for i := range out.Cells {
		if out.Cells[i].Kind == netlist.KindLUT {
			lut = &out.Cells[i]
		}
	}
	require.NotNil(t, lut)
	assert.Equal(t, 2, lut.Width)
	// AND's truth table: only row 3 (both inputs 1) is 1.
	assert.Equal(t, []netlist.Bit{netlist.Bit0, netlist.Bit0, netlist.Bit0, netlist.Bit1}, lut.Table)
}

func TestExportGate2_ClassifiesAND(t *testing.T) {
	m := andModule()
	g, err := netlist.Import(m)
	require.NoError(t, err)

	lib := lutnet.AcademicLibrary(2)
	st, _, err := cutmap.Map(context.Background(), g, lib, cutmap.WithMaxCutSize(2), cutmap.WithTrivialCuts())
	require.NoError(t, err)

	out, err := netlist.ExportGate2(g, st)
	require.NoError(t, err)

	var gate *netlist.Cell
	for i := range out.Cells {
		if out.Cells[i].Kind == netlist.KindGate2 {
			gate = &out.Cells[i]
		}
	}
	require.NotNil(t, gate)
	assert.Equal(t, "AND", gate.Gate2Kind)
}

func TestExportGate2_RejectsWidthAboveTwo(t *testing.T) {
	m := &netlist.Module{
		Inputs: []string{"a", "b", "c"},
		Cells: []netlist.Cell{
			{Kind: netlist.KindAnd, Inputs: []string{"a", "b"}, Output: "ab"},
			{Kind: netlist.KindAnd, Inputs: []string{"ab", "c"}, Output: "y"},
		},
		Outputs: []string{"y"},
	}
	g, err := netlist.Import(m)
	require.NoError(t, err)
	lib := lutnet.AcademicLibrary(3)
	st, _, err := cutmap.Map(context.Background(), g, lib, cutmap.WithMaxCutSize(3))
	require.NoError(t, err)

	_, err = netlist.ExportGate2(g, st)
	assert.Error(t, err)
}

func TestImportExportLUTNetwork_RoundTrip(t *testing.T) {
	m := andModule()
	g, err := netlist.Import(m)
	require.NoError(t, err)
	lib := lutnet.AcademicLibrary(4)
	st, _, err := cutmap.Map(context.Background(), g, lib, cutmap.WithTrivialCuts())
	require.NoError(t, err)
	lutMod, err := netlist.ExportLUTs(g, st)
	require.NoError(t, err)

	net, leaves, err := netlist.ImportLUTNetwork(lutMod)
	require.NoError(t, err)
	require.Equal(t, 2, net.NumLeaves)

	out, err := netlist.ExportLUTNetwork(net, leaves)
	require.NoError(t, err)
	assert.Equal(t, leaves, out.Inputs)
	assert.Len(t, out.Cells, len(net.LUTs))
}

func TestExportAIG_NilGraph(t *testing.T) {
	_, err := netlist.ExportAIG(nil)
	assert.ErrorIs(t, err, netlist.ErrNetworkNil)
}

func TestImportLUTNetwork_RejectsNonLUTCell(t *testing.T) {
	m := &netlist.Module{
		Inputs: []string{"a", "b"},
		Cells: []netlist.Cell{
			{Kind: netlist.KindAnd, Inputs: []string{"a", "b"}, Output: "y"},
		},
		Outputs: []string{"y"},
	}
	_, _, err := netlist.ImportLUTNetwork(m)
	assert.ErrorIs(t, err, netlist.ErrBadCell)
}

func TestImportLUTNetwork_NotCellBecomesInverterLUT(t *testing.T) {
	m := &netlist.Module{
		Inputs: []string{"a"},
		Cells: []netlist.Cell{
			{Kind: netlist.KindNot, Inputs: []string{"a"}, Output: "y"},
		},
		Outputs: []string{"y"},
	}
	net, _, err := netlist.ImportLUTNetwork(m)
	require.NoError(t, err)
	require.Len(t, net.LUTs, 1)
	assert.True(t, net.Simulate([]bool{false})[0])
	assert.False(t, net.Simulate([]bool{true})[0])
}

// An asymmetric table (a AND NOT b) must survive the Module->lutnet->Module
// bridge with both its LSB-first wire encoding and its Boolean function
// intact; a verbatim row copy would silently reverse input significance.
func TestImportExportLUTNetwork_AsymmetricTablePreservesFunction(t *testing.T) {
	// Wire encoding, Inputs[0]="a" as LSB: a=1,b=0 is row 0b01.
	m := &netlist.Module{
		Inputs: []string{"a", "b"},
		Cells: []netlist.Cell{
			{
				Kind: netlist.KindLUT, Name: "lut",
				Inputs: []string{"a", "b"}, Width: 2,
				Table:  []netlist.Bit{netlist.Bit0, netlist.Bit1, netlist.Bit0, netlist.Bit0},
				Output: "y",
			},
		},
		Outputs: []string{"y"},
	}
	net, leaves, err := netlist.ImportLUTNetwork(m)
	require.NoError(t, err)

	for _, av := range []bool{false, true} {
		for _, bv := range []bool{false, true} {
			got := net.Simulate([]bool{av, bv})[0]
			assert.Equal(t, av && !bv, got, "a=%v b=%v", av, bv)
		}
	}

	out, err := netlist.ExportLUTNetwork(net, leaves)
	require.NoError(t, err)
	require.Len(t, out.Cells, 1)
	assert.Equal(t, m.Cells[0].Table, out.Cells[0].Table)
}

// TestExportAIG_RegisterRoundTrip: a register surviving import must export
// back as a DFF cell with its initial value intact.
func TestExportAIG_RegisterRoundTrip(t *testing.T) {
	m := &netlist.Module{
		Inputs: []string{"en"},
		Cells: []netlist.Cell{
			{Kind: netlist.KindAnd, Inputs: []string{"en", "q"}, Output: "d"},
			{Kind: netlist.KindDFF, Inputs: []string{"d"}, Output: "q", Init: netlist.Bit1},
		},
		Outputs: []string{"q"},
	}
	g, err := netlist.Import(m)
	require.NoError(t, err)

	out, err := netlist.ExportAIG(g)
	require.NoError(t, err)

	var dff *netlist.Cell
	for i := range out.Cells {
		if out.Cells[i].Kind == netlist.KindDFF {
			dff = &out.Cells[i]
		}
	}
	require.NotNil(t, dff)
	assert.Equal(t, netlist.Bit1, dff.Init)
}
