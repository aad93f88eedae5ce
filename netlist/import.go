// Package netlist — import.go implements Import: build an aig.Graph from
// a Module's AND/NOT/DFF primitives, folding inverters and registers
// directly into edge attributes rather than materializing nodes for them,
// and flagging any unrecognized cell as foreign input.
package netlist

import (
	"fmt"

	"github.com/lvlath-labs/toymap/aig"
)

// driver records how a net is produced, resolved once up front so Import
// never has to search Module.Cells by output name.
type driver struct {
	cell *Cell
	idx  int
}

// importer holds the working state of one Import call.
type importer struct {
	m        *Module
	g        *aig.Graph
	drivers  map[string]driver
	pis      map[string]aig.ID // net -> PI node, for declared PIs and foreign-cell outputs
	andNode  map[string]aig.ID // net -> reserved AND node, for AND-cell outputs
	resolved map[string]bool   // AND nodes whose SetInput has already run
	visiting map[string]bool   // in-progress resolveEdge calls, for cycle detection
	observed map[string]bool   // nets a foreign cell reads — must become POs
}

// Import builds an aig.Graph from m. AND/NOT/DFF cells become edge
// attributes on the AIG they feed; any other cell kind is treated as
// foreign: its output net becomes a PI for AIG consumers, and every net it
// reads becomes an additional PO-alias so the foreign cell's view of the
// signal is preserved. Graph.Impure and Graph.ForeignCells record
// which cells triggered this.
func Import(m *Module, opts ...aig.GraphOption) (*aig.Graph, error) {
	if m == nil {
		return nil, ErrModuleNil
	}

	im := &importer{
		m:        m,
		g:        aig.NewGraph(opts...),
		drivers:  map[string]driver{},
		pis:      map[string]aig.ID{},
		andNode:  map[string]aig.ID{},
		resolved: map[string]bool{},
		visiting: map[string]bool{},
		observed: map[string]bool{},
	}

	for i := range m.Cells {
		c := &m.Cells[i]
		if c.Output == "" {
			return nil, fmt.Errorf("%w: cell %d (%s) has no output", ErrBadCell, i, c.Kind)
		}
		switch {
		case c.Kind == KindAnd && len(c.Inputs) != 2,
			(c.Kind == KindNot || c.Kind == KindDFF) && len(c.Inputs) != 1:
			return nil, fmt.Errorf("%w: cell %d (%s) has %d inputs", ErrBadCell, i, c.Kind, len(c.Inputs))
		}
		if _, dup := im.drivers[c.Output]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDriver, c.Output)
		}
		im.drivers[c.Output] = driver{cell: c, idx: i}
	}

	for _, name := range m.Inputs {
		im.pis[name] = im.g.AddPI(name)
	}

	// Reserve AND nodes up front so a DFF feedback loop (q's driver chain
	// passing back through an AND gate that itself — indirectly — reads
	// q) can resolve by ID lookup instead of recursion.
	for i := range m.Cells {
		c := &m.Cells[i]
		if c.Kind == KindAnd {
			im.andNode[c.Output] = im.g.ReserveAnd(c.Output)
		}
	}

	// Mark foreign-cell reads before resolving anything, so resolveEdge
	// knows which nets must surface as POs regardless of AIG fanout.
	for i := range m.Cells {
		c := &m.Cells[i]
		if isForeign(c.Kind) {
			im.g.Impure = true
			im.g.ForeignCells = append(im.g.ForeignCells, c.Name)
			for _, in := range c.Inputs {
				im.observed[in] = true
			}
		}
	}

	for i := range m.Cells {
		c := &m.Cells[i]
		if c.Kind != KindAnd {
			continue
		}
		a, err := im.resolveEdge(c.Inputs[0])
		if err != nil {
			return nil, err
		}
		b, err := im.resolveEdge(c.Inputs[1])
		if err != nil {
			return nil, err
		}
		a, b = applyCellNeg(c, 0, a), applyCellNeg(c, 1, b)
		id := im.andNode[c.Output]
		im.g.SetInput(id, 0, a)
		im.g.SetInput(id, 1, b)
		im.resolved[c.Output] = true
	}

	for _, name := range m.Outputs {
		e, err := im.resolveEdge(name)
		if err != nil {
			return nil, err
		}
		im.g.AddPO(name, e)
	}
	for net := range im.observed {
		if contains(m.Outputs, net) {
			continue // already exported as a primary output
		}
		e, err := im.resolveEdge(net)
		if err != nil {
			return nil, err
		}
		im.g.AddPO("$observed$"+net, e)
	}

	return im.g, nil
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}

	return false
}

func isForeign(k CellKind) bool {
	return k != KindAnd && k != KindNot && k != KindDFF
}

func applyCellNeg(c *Cell, i int, e aig.Edge) aig.Edge {
	if i < len(c.InNeg) && c.InNeg[i] {
		e.Negated = !e.Negated
	}

	return e
}

func triFromBit(b Bit) aig.TriState {
	switch b {
	case Bit1:
		return aig.One
	case BitX, 0:
		return aig.X
	default:
		return aig.Zero
	}
}

// resolveEdge returns the Edge that a consumer of net should carry,
// folding through NOT (flip Negated) and DFF (increment lag, append the
// initial value) until it lands on a PI, a constant, or
// an already-reserved AND node.
func (im *importer) resolveEdge(net string) (aig.Edge, error) {
	switch net {
	case constZeroNet:
		return aig.Edge{Target: aig.Const0}, nil
	case constOneNet:
		return aig.Edge{Target: aig.Const1}, nil
	}
	if id, ok := im.pis[net]; ok {
		return aig.Edge{Target: id}, nil
	}
	if id, ok := im.andNode[net]; ok {
		return aig.Edge{Target: id}, nil
	}

	d, ok := im.drivers[net]
	if !ok {
		// Undriven wire: treat as an implicit external input, the same way
		// a wire driven by a non-AIG cell becomes a PI.
		im.pis[net] = im.g.AddPI(net)

		return aig.Edge{Target: im.pis[net]}, nil
	}

	if im.visiting[net] {
		return aig.Edge{}, fmt.Errorf("%w: net %s", ErrCombinationalCycle, net)
	}
	im.visiting[net] = true
	defer delete(im.visiting, net)

	switch d.cell.Kind {
	case KindNot:
		e, err := im.resolveEdge(d.cell.Inputs[0])
		if err != nil {
			return aig.Edge{}, err
		}
		e.Negated = !e.Negated

		return e, nil
	case KindDFF:
		e, err := im.resolveEdge(d.cell.Inputs[0])
		if err != nil {
			return aig.Edge{}, err
		}
		e.Lag++
		e.InitVals = append(append([]aig.TriState{}, e.InitVals...), triFromBit(d.cell.Init))

		return e, nil
	default:
		// Foreign cell output: an AIG consumer sees this as an external
		// input it cannot see through.
		if _, ok := im.pis[net]; !ok {
			im.pis[net] = im.g.AddPI(net)
		}

		return aig.Edge{Target: im.pis[net]}, nil
	}
}
