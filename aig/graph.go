// SPDX-License-Identifier: MIT
package aig

import "fmt"

// Well-known constant node IDs, allocated once by NewGraph. The three
// constants 0, 1, x each receive a dedicated node: target==Const0
// with Negated==false is the constant 0, target==Const1 with Negated==false
// is the constant 1, and negating either yields the other value; a
// negated ConstX is still x. Compact's folding rules emit references to
// Const0, Const1 or ConstX according to the folded value. Import never
// creates ConstX references: an undriven wire becomes a PI.
const (
	Const0 ID = 0
	Const1 ID = 1
	ConstX ID = 2
)

// GraphOption configures a Graph at construction time.
type GraphOption func(*Graph)

// WithUniquing enables structural hashing: AddAnd dedupes AND nodes by
// the (target, negation, lag) of both inputs so that building the same
// sub-expression twice returns the same ID. Nodes created by ReserveAnd
// are not hashed. Backs the toymap `-unique` flag.
func WithUniquing() GraphOption {
	return func(g *Graph) { g.uniquing = true }
}

// Graph is the AIG node store. It owns every Node; Edge.Target references
// are non-owning indices into nodes. There is no internal locking — per the
// locking discipline, a Graph is mutated exclusively by whichever single
// pass currently holds it.
type Graph struct {
	nodes    []Node
	poOrder  []ID // PO-alias node IDs in insertion order
	piOrder  []ID // PI node IDs in insertion order
	uniquing bool
	andKey   map[andKey]ID // populated only when uniquing is enabled

	// Impure / ForeignCells record ill-formed-input handling: an
	// unrecognized primitive cell encountered during import does not abort,
	// it flags the graph and records the offending cell.
	Impure       bool
	ForeignCells []string
}

type andKey struct {
	aTarget ID
	aNeg    bool
	aLag    int
	bTarget ID
	bNeg    bool
	bLag    int
}

// NewGraph constructs an empty Graph with its three constant nodes
// pre-allocated at Const0, Const1, ConstX.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		nodes: make([]Node, 3, 64),
	}
	g.nodes[Const0] = Node{Kind: KindConst, Label: "$const0"}
	g.nodes[Const1] = Node{Kind: KindConst, Label: "$const1"}
	g.nodes[ConstX] = Node{Kind: KindConst, Label: "$constx"}
	for _, opt := range opts {
		opt(g)
	}
	if g.uniquing {
		g.andKey = make(map[andKey]ID)
	}

	return g
}

// NumNodes returns the number of nodes currently in the slab, including the
// three constants.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// Node returns the Node stored at id. Panics (via invariant-style bounds
// check) if id is out of range, since a caller holding a valid ID from this
// same Graph can never pass an out-of-range one without a prior bug.
func (g *Graph) Node(id ID) Node {
	return g.nodes[id]
}

// PIs returns primary-input node IDs in insertion order.
func (g *Graph) PIs() []ID { return append([]ID(nil), g.piOrder...) }

// POs returns primary-output-alias node IDs in insertion order.
func (g *Graph) POs() []ID { return append([]ID(nil), g.poOrder...) }

// IsPO reports whether id names a primary-output alias node.
func (g *Graph) IsPO(id ID) bool {
	return g.nodes[id].Kind == KindAnd && g.nodes[id].PO
}

// AddPI appends a fresh primary input with the given best-effort label.
func (g *Graph) AddPI(label string) ID {
	id := ID(len(g.nodes))
	g.nodes = append(g.nodes, Node{Kind: KindPI, Label: label})
	g.piOrder = append(g.piOrder, id)

	return id
}

// AddAnd appends (or, under WithUniquing, returns an existing) AND node
// with the two given input edges. Edge slices in ins are copied; callers
// retain ownership of the slices they pass in.
func (g *Graph) AddAnd(a, b Edge, label string) ID {
	a = cloneEdge(a)
	b = cloneEdge(b)
	if g.uniquing {
		key := andKey{a.Target, a.Negated, a.Lag, b.Target, b.Negated, b.Lag}
		if id, ok := g.andKey[key]; ok {
			return id
		}
		id := g.appendAnd(a, b, label, false)
		g.andKey[key] = id

		return id
	}

	return g.appendAnd(a, b, label, false)
}

// AddPO appends a PO-alias node whose first input is driver and whose
// second input is tied to the constant 1.
func (g *Graph) AddPO(label string, driver Edge) ID {
	id := g.appendAnd(cloneEdge(driver), trivialEdge(Const1), label, true)
	g.poOrder = append(g.poOrder, id)

	return id
}

// ReserveAnd appends a placeholder AND node (both inputs tied to the
// constant 0) and returns its ID immediately, before its real inputs are
// known. Used by netlist.Import to break the self-reference a register
// feedback loop would otherwise create: a net's consumers can capture the
// node's ID up front, and SetInput fills in the real edges once the
// cell's own inputs have been resolved. Uniquing is bypassed for reserved
// nodes, since their key is not yet determined.
func (g *Graph) ReserveAnd(label string) ID {
	return g.appendAnd(trivialEdge(Const0), trivialEdge(Const0), label, false)
}

func (g *Graph) appendAnd(a, b Edge, label string, po bool) ID {
	id := ID(len(g.nodes))
	g.nodes = append(g.nodes, Node{Kind: KindAnd, Ins: [2]Edge{a, b}, PO: po, Label: label})

	return id
}

func cloneEdge(e Edge) Edge {
	e.InitVals = append([]TriState(nil), e.InitVals...)

	return e
}

// SetInput replaces node id's i-th input edge. Used by Compact's
// simplification rules to rewrite edges in place.
func (g *Graph) SetInput(id ID, i int, e Edge) {
	g.nodes[id].Ins[i] = cloneEdge(e)
}

// checkEdge validates the core invariant len(e.InitVals) == e.Lag.
func checkEdge(e Edge) error {
	if len(e.InitVals) != e.Lag {
		return ErrLagInitMismatch
	}
	for _, v := range e.InitVals {
		if v != Zero && v != One && v != X {
			return ErrBadInitVal
		}
	}

	return nil
}

// CheckInvariants validates the lag/initvals length agreement
// across every AND node's inputs. Returns the first violation found, wrapped
// with the offending node ID.
func (g *Graph) CheckInvariants() error {
	for id, n := range g.nodes {
		if n.Kind != KindAnd {
			continue
		}
		for i, e := range n.Ins {
			if err := checkEdge(e); err != nil {
				return fmt.Errorf("node %d input %d: %w", id, i, err)
			}
		}
	}

	return nil
}
