// Package netlist — export.go reverses Import, exports a cutmap mapping
// as LUT or Gate2 cells, and bridges a lutnet.Network to/from Module for
// the lutdepth/lutnot/lutrewrite passes.
package netlist

import (
	"fmt"

	"github.com/lvlath-labs/toymap/aig"
	"github.com/lvlath-labs/toymap/cutmap"
	"github.com/lvlath-labs/toymap/lutnet"
)

// Reserved net names Import recognizes as the two AIG constants, so a
// round trip through ExportAIG/Import preserves constant-driven logic
// instead of treating "$const0"/"$const1" as undriven external inputs.
const (
	constZeroNet = "$const0"
	constOneNet  = "$const1"
)

// ExportAIG reverses Import: every AND node becomes an AND cell (its two
// edges' negation folded into InNeg, its lag realized as a synthesized
// chain of DFF cells carrying the edge's recorded InitVals), every PI
// becomes a declared input, and every PO's driver edge becomes an output
// net — a bare wire connection, not a gate, when the edge is already a
// plain reference to another net: constant-driven outputs emit direct
// wire connections, not zero-input cells, and the same holds for every
// unit edge.
func ExportAIG(g *aig.Graph) (*Module, error) {
	if g == nil {
		return nil, ErrNetworkNil
	}
	order, err := g.TopoSort()
	if err != nil {
		return nil, err
	}

	ex := &aigExporter{g: g, m: &Module{}, netName: map[aig.ID]string{}}
	for _, id := range g.PIs() {
		name := g.Node(id).Label
		ex.netName[id] = name
		ex.m.Inputs = append(ex.m.Inputs, name)
	}
	ex.netName[aig.Const0] = constZeroNet
	ex.netName[aig.Const1] = constOneNet

	for _, id := range order {
		n := g.Node(id)
		if n.Kind != aig.KindAnd || n.PO {
			continue
		}
		name := fmt.Sprintf("n%d", id)
		ex.netName[id] = name
		net0, neg0 := ex.edgeNet(n.Ins[0])
		net1, neg1 := ex.edgeNet(n.Ins[1])
		ex.m.Cells = append(ex.m.Cells, Cell{
			Kind:   KindAnd,
			Name:   "and",
			Inputs: []string{net0, net1},
			InNeg:  []bool{neg0, neg1},
			Output: name,
		})
	}

	for _, id := range g.POs() {
		n := g.Node(id)
		net, neg := ex.edgeNet(n.Ins[0])
		if neg {
			invName := n.Label + "$inv"
			ex.m.Cells = append(ex.m.Cells, Cell{
				Kind: KindNot, Name: "not",
				Inputs: []string{net}, Output: invName,
			})
			net = invName
		}
		ex.m.Outputs = append(ex.m.Outputs, net)
	}

	return ex.m, nil
}

type aigExporter struct {
	g       *aig.Graph
	m       *Module
	netName map[aig.ID]string
	fresh   int
}

func (ex *aigExporter) freshName() string {
	ex.fresh++

	return fmt.Sprintf("$reg%d", ex.fresh)
}

// edgeNet returns the net carrying e's pre-negation value (synthesizing a
// DFF chain for e.Lag > 0, in e.InitVals order — nearest-to-driver first)
// and e's own Negated flag, left for the caller to apply via InNeg or an
// explicit NOT cell.
func (ex *aigExporter) edgeNet(e aig.Edge) (net string, neg bool) {
	net = ex.netName[e.Target]
	for i := 0; i < e.Lag; i++ {
		next := ex.freshName()
		ex.m.Cells = append(ex.m.Cells, Cell{
			Kind: KindDFF, Name: "dff",
			Inputs: []string{net}, Output: next,
			Init: biFromTri(e.InitVals[i]),
		})
		net = next
	}

	return net, e.Negated
}

func biFromTri(v aig.TriState) Bit {
	switch v {
	case aig.One:
		return Bit1
	case aig.Zero:
		return Bit0
	default:
		return BitX
	}
}

// ExportLUTs exports a completed cutmap mapping as LUT cells: one LUT
// per mapped AND node, its truth table computed by evaluating the node's
// Boolean function over its selected cut's leaves. A leaf at nonzero lag
// is realized the same way ExportAIG realizes register lag — a synthesized
// DFF chain off the leaf node's own net — except the concrete initial
// value cannot be recovered (the mapping layer operates under
// all-undefined initial values) and is conservatively exported as 'x' —
// by the time a cut is selected there is no concrete value left to
// restore. See DESIGN.md.
func ExportLUTs(g *aig.Graph, st *cutmap.State) (*Module, error) {
	if g == nil || st == nil {
		return nil, ErrNetworkNil
	}
	order, err := g.TopoSort()
	if err != nil {
		return nil, err
	}

	ex := &aigExporter{g: g, m: &Module{}, netName: map[aig.ID]string{}}
	for _, id := range g.PIs() {
		name := g.Node(id).Label
		ex.netName[id] = name
		ex.m.Inputs = append(ex.m.Inputs, name)
	}
	ex.netName[aig.Const0] = constZeroNet
	ex.netName[aig.Const1] = constOneNet

	for _, id := range order {
		n := g.Node(id)
		if n.Kind != aig.KindAnd || n.PO {
			continue
		}
		s := st.Scratch[id]
		if s == nil || s.MapFanouts <= 0 {
			continue // not reachable from any PO; dropped by the mapping
		}
		cut := s.SelectedCut()
		name := fmt.Sprintf("n%d", id)
		ex.netName[id] = name

		if len(cut) == 0 {
			// A constant-driven node: no LUT, just alias the net to the
			// constant, the same direct-wire treatment constant-driven
			// outputs get.
			ex.netName[id] = constNetName(g, id)

			continue
		}

		inputs := make([]string, len(cut))
		for i, cn := range cut {
			inputs[i] = ex.leafNet(cn)
		}
		table, err := lutTableFor(g, cut, id)
		if err != nil {
			return nil, err
		}
		ex.m.Cells = append(ex.m.Cells, Cell{
			Kind: KindLUT, Name: "lut",
			Inputs: inputs, Width: len(cut), Table: table, Output: name,
		})
	}

	for _, id := range g.POs() {
		n := g.Node(id)
		e := n.Ins[0]
		net := ex.netName[e.Target]
		if net == "" {
			net = fmt.Sprintf("n%d", e.Target)
		}
		for i := 0; i < e.Lag; i++ {
			next := ex.freshName()
			ex.m.Cells = append(ex.m.Cells, Cell{Kind: KindDFF, Name: "dff", Inputs: []string{net}, Output: next, Init: BitX})
			net = next
		}
		if e.Negated {
			invName := n.Label + "$inv"
			ex.m.Cells = append(ex.m.Cells, Cell{Kind: KindNot, Name: "not", Inputs: []string{net}, Output: invName})
			net = invName
		}
		ex.m.Outputs = append(ex.m.Outputs, net)
	}

	return ex.m, nil
}

func constNetName(g *aig.Graph, id aig.ID) string {
	if id == aig.Const1 {
		return constOneNet
	}

	return constZeroNet
}

// leafNet returns the net name carrying cn's value, synthesizing a DFF
// chain for cn.Lag as needed.
func (ex *aigExporter) leafNet(cn aig.CoverNode) string {
	net := ex.netName[cn.Node]
	if net == "" {
		net = fmt.Sprintf("n%d", cn.Node)
	}
	for i := 0; i < cn.Lag; i++ {
		next := ex.freshName()
		ex.m.Cells = append(ex.m.Cells, Cell{Kind: KindDFF, Name: "dff", Inputs: []string{net}, Output: next, Init: BitX})
		net = next
	}

	return net
}

// lutTableFor computes root's Boolean function restricted to cut, as a
// wire-encoded table: Table[i]'s bit holds the output for assignment i
// with cut[0] as the LSB.
func lutTableFor(g *aig.Graph, cut cutmap.Cut, root aig.ID) ([]Bit, error) {
	width := cut.Width()
	n := 1 << uint(width)
	table := make([]Bit, n)
	leaf := make(map[aig.CoverNode]bool, width)
	for row := 0; row < n; row++ {
		for i, cn := range cut {
			leaf[cn] = (row>>uint(i))&1 != 0
		}
		v, err := coneEval(g, root, 0, leaf)
		if err != nil {
			return nil, err
		}
		if v {
			table[row] = Bit1
		} else {
			table[row] = Bit0
		}
	}

	return table, nil
}

// coneEval evaluates the node at (lag, id) given boolean assignments for
// every cut leaf it might hit, following the cover-node fanin rule: a
// fanin's effective lag is the sum of the edge's own lag and the
// accumulated lag reaching its parent.
func coneEval(g *aig.Graph, id aig.ID, lag int, leaf map[aig.CoverNode]bool) (bool, error) {
	cn := aig.CoverNode{Lag: lag, Node: id}
	if v, ok := leaf[cn]; ok {
		return v, nil
	}
	n := g.Node(id)
	switch n.Kind {
	case aig.KindConst:
		return id == aig.Const1, nil
	case aig.KindPI:
		return false, fmt.Errorf("netlist: cut does not cover PI %d at lag %d", id, lag)
	default:
		va, err := coneEval(g, n.Ins[0].Target, lag+n.Ins[0].Lag, leaf)
		if err != nil {
			return false, err
		}
		if n.Ins[0].Negated {
			va = !va
		}
		vb, err := coneEval(g, n.Ins[1].Target, lag+n.Ins[1].Lag, leaf)
		if err != nil {
			return false, err
		}
		if n.Ins[1].Negated {
			vb = !vb
		}

		return va && vb, nil
	}
}

// ExportGate2 exports a K=2 mapping as 2-input gate cells instead of LUT
// cells: a width-2 LUT whose table matches one of the eight shapes in
// gate2Table, or a width-1 inverter, becomes a Gate2 cell; every other
// LUT cell is kept as a LUT cell.
func ExportGate2(g *aig.Graph, st *cutmap.State) (*Module, error) {
	m, err := ExportLUTs(g, st)
	if err != nil {
		return nil, err
	}
	for i, c := range m.Cells {
		if c.Kind != KindLUT {
			continue
		}
		if c.Width > 2 {
			return nil, fmt.Errorf("netlist: ExportGate2 requires K<=2, got width %d", c.Width)
		}
		m.Cells[i] = gate2From(c)
	}

	return m, nil
}

// gate2Table maps the 4-bit table of each named 2-input function (rows 0
// to 3, with in0 = A[0] as the row's LSB) to the Gate2Kind it realizes.
// Functions with fewer than 2 live inputs (constant, buffer, single-input
// NOT) and the second orientation of ANDNOT/ORNOT are not listed and stay
// LUT cells; at width 1 only the inverter becomes a NOT gate (gate2From).
// Cut enumeration should not normally produce width<2 cuts once the graph
// is normalized, but LUT cells of width 0/1 are still handled defensively.
var gate2Table = map[string]string{
	"0001": "AND",
	"0111": "OR",
	"0110": "XOR",
	"1110": "NAND",
	"1000": "NOR",
	"1001": "XNOR",
	"0010": "ANDNOT", // one input AND the complement of the other
	"1101": "ORNOT",  // one input OR the complement of the other
}

func gate2From(c Cell) Cell {
	if c.Width == 1 {
		// Only the inverting one-input function has a dedicated Gate2Kind
		// (there is a NOT gate but no buffer); a one-input buffer is left as a
		// width-1 LUT.
		if c.Table[0] == Bit1 && c.Table[1] == Bit0 {
			return Cell{Kind: KindGate2, Name: "gate2", Inputs: c.Inputs, Output: c.Output, Gate2Kind: "NOT"}
		}

		return c
	}
	if c.Width != 2 {
		return c
	}

	key := ""
	for i := 0; i < 4; i++ {
		key += string(c.Table[i])
	}
	if kind, ok := gate2Table[key]; ok {
		return Cell{Kind: KindGate2, Name: "gate2", Inputs: c.Inputs, Output: c.Output, Gate2Kind: kind}
	}
	// Table didn't match a named shape exactly (e.g. a don't-care-bearing
	// or degenerate function) — fall back to carrying it as a LUT so no
	// information is lost.
	return c
}

// reverseRowBits maps a Module-encoded table row index to its lutnet row
// (and back — the permutation is an involution). The wire format indexes
// a LUT cell's table with input A[0] as the LSB of the assignment;
// lutnet.LUT addresses
// rows with Inputs[0] as the MSB. Both bridges below apply this per-row so
// the same Inputs order means the same function on both sides.
func reverseRowBits(row, width int) int {
	out := 0
	for i := 0; i < width; i++ {
		out = out<<1 | (row>>uint(i))&1
	}

	return out
}

// ImportLUTNetwork bridges a Module whose cells are LUTs (plus bare NOT
// cells, which import as width-1 inverter LUTs so lutnot can absorb
// them) into a lutnet.Network for the lutdepth/lutnot/lutrewrite passes,
// which operate on lutnet.Network rather than Module directly.
func ImportLUTNetwork(m *Module) (*lutnet.Network, []string, error) {
	if m == nil {
		return nil, nil, ErrModuleNil
	}
	leafIndex := make(map[string]int, len(m.Inputs))
	for i, name := range m.Inputs {
		leafIndex[name] = i
	}
	net := lutnet.NewNetwork(len(m.Inputs))

	lutIndex := make(map[string]int, len(m.Cells))
	for i, c := range m.Cells {
		if c.Kind != KindLUT && c.Kind != KindNot {
			return nil, nil, fmt.Errorf("%w: ImportLUTNetwork requires LUT or NOT cells, got %s", ErrBadCell, c.Kind)
		}
		lutIndex[c.Output] = i
	}

	resolve := func(name string) (lutnet.Input, error) {
		if idx, ok := leafIndex[name]; ok {
			return lutnet.Input{Leaf: true, Index: idx}, nil
		}
		if idx, ok := lutIndex[name]; ok {
			return lutnet.Input{Leaf: false, Index: idx}, nil
		}

		return lutnet.Input{}, fmt.Errorf("%w: %s", ErrUnknownNet, name)
	}

	for _, c := range m.Cells {
		inputs := make([]lutnet.Input, len(c.Inputs))
		for i, name := range c.Inputs {
			in, err := resolve(name)
			if err != nil {
				return nil, nil, err
			}
			inputs[i] = in
		}
		if c.Kind == KindNot {
			lut, err := lutnet.NewLUT(1, inputs)
			if err != nil {
				return nil, nil, err
			}
			lut.Set(0, lutnet.One)
			lut.Set(1, lutnet.Zero)
			net.AddLUT(*lut)

			continue
		}
		lut, err := lutnet.NewLUT(c.Width, inputs)
		if err != nil {
			return nil, nil, err
		}
		for row := 0; row < len(c.Table); row++ {
			lut.Set(reverseRowBits(row, c.Width), triFromWireBit(c.Table[row]))
		}
		net.AddLUT(*lut)
	}

	for _, name := range m.Outputs {
		in, err := resolve(name)
		if err != nil {
			return nil, nil, err
		}
		net.Outputs = append(net.Outputs, in)
	}

	return net, m.Inputs, nil
}

func triFromWireBit(b Bit) lutnet.TriState {
	switch b {
	case Bit1:
		return lutnet.One
	case BitX:
		return lutnet.X
	default:
		return lutnet.Zero
	}
}

// ExportLUTNetwork reverses ImportLUTNetwork, using leafNames for the
// Module's declared inputs (must match net.NumLeaves in length and order).
func ExportLUTNetwork(net *lutnet.Network, leafNames []string) (*Module, error) {
	if net == nil {
		return nil, ErrNetworkNil
	}
	if len(leafNames) != net.NumLeaves {
		return nil, fmt.Errorf("%w: got %d leaf names for %d leaves", ErrBadCell, len(leafNames), net.NumLeaves)
	}
	m := &Module{Inputs: append([]string(nil), leafNames...)}

	netName := func(in lutnet.Input) string {
		if in.Leaf {
			return leafNames[in.Index]
		}

		return fmt.Sprintf("lut%d", in.Index)
	}

	for i, l := range net.LUTs {
		inputs := make([]string, len(l.Inputs))
		for j, in := range l.Inputs {
			inputs[j] = netName(in)
		}
		table := make([]Bit, 1<<uint(l.Width))
		for row := range table {
			switch l.Get(reverseRowBits(row, l.Width)) {
			case lutnet.One:
				table[row] = Bit1
			case lutnet.X:
				table[row] = BitX
			default:
				table[row] = Bit0
			}
		}
		m.Cells = append(m.Cells, Cell{
			Kind: KindLUT, Name: "lut",
			Inputs: inputs, Width: l.Width, Table: table,
			Output: fmt.Sprintf("lut%d", i),
		})
	}

	for _, o := range net.Outputs {
		m.Outputs = append(m.Outputs, netName(o))
	}

	return m, nil
}
