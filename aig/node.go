package aig

import "fmt"

// ID identifies a Node within a Graph's slab. IDs are stable for the
// lifetime of a Graph between two calls to Clean; Clean may renumber nodes,
// invalidating any ID held across it.
type ID int32

// NodeKind distinguishes the three node shapes the data model allows.
type NodeKind uint8

const (
	// KindConst marks one of the three dedicated constant nodes (0, 1, x).
	KindConst NodeKind = iota
	// KindPI marks a primary input: no inputs, driven from outside the AIG.
	KindPI
	// KindAnd marks a two-input AND gate. A PO is an AND node with PO set
	// and Ins[1] tied to the constant 1.
	KindAnd
)

func (k NodeKind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindPI:
		return "pi"
	case KindAnd:
		return "and"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

// TriState is a ternary initial-value bit: 0, 1, or don't-care.
type TriState uint8

const (
	Zero TriState = iota
	One
	X
)

func (t TriState) String() string {
	switch t {
	case Zero:
		return "0"
	case One:
		return "1"
	default:
		return "x"
	}
}

// Edge is an edge-attribute record: a reference to Target carrying a
// negation flag and a register lag with its per-stage initial values.
//
// Invariant: len(InitVals) == Lag (checked by Graph.checkEdge).
type Edge struct {
	Target   ID         // node this edge points to
	Negated  bool       // inverted on this edge
	Lag      int        // number of unit-delay register stages
	InitVals []TriState // ordered, length == Lag; nearest-to-driver first
}

// trivialEdge returns a zero-lag, non-negated edge to target — the common
// case when building fresh combinational logic.
func trivialEdge(target ID) Edge {
	return Edge{Target: target}
}

// initvalsUndef reports whether every entry of vs is X. The mapping and
// rewrite layers operate exclusively under this condition; concrete
// initial values are only live during import and export.
func initvalsUndef(vs []TriState) bool {
	for _, v := range vs {
		if v != X {
			return false
		}
	}
	return true
}

// composeEdge absorbs the inner (driver-side) edge into the outer
// (load-side) one when an intermediate node is eliminated.
//
//	outer.negated ^= inner.negated
//	outer.initvals = flip(outer.initvals if inner.negated) ++ inner.initvals
//	outer.lag += inner.lag
//
// Flipping the outer initvals bit-by-bit (x stays x) only applies when the
// inner edge is negated: the inversion moves across the outer register
// stages, so their recorded initial values invert with it.
func composeEdge(outer, inner Edge) Edge {
	result := outer
	if inner.Negated {
		result.Negated = !result.Negated
		for i, v := range result.InitVals {
			result.InitVals[i] = flipTriState(v)
		}
	}
	result.Target = inner.Target
	result.InitVals = append(append([]TriState{}, result.InitVals...), inner.InitVals...)
	result.Lag += inner.Lag

	return result
}

func flipTriState(v TriState) TriState {
	switch v {
	case Zero:
		return One
	case One:
		return Zero
	default:
		return X
	}
}

// Node is an AIG node: a primary input, a PO-marked AND, or a plain AND.
// Ins is only meaningful for KindAnd; PIs and constants carry no inputs.
type Node struct {
	Kind  NodeKind
	Ins   [2]Edge
	PO    bool   // true iff this AND node is a primary-output alias
	Label string // best-effort human-readable identifier
}

// CoverNode is a (lag, node) pair used to traverse the cyclic register graph
// as if it were a time-shifted tree. Lag accumulates as fanin edges
// are summed into a parent's lag during cut enumeration; Lag==0 means "at
// the current time step."
//
// Ordering and equality are lexicographic over (Lag, Node) — not pointer
// identity, since Node is already a plain integer index.
type CoverNode struct {
	Lag  int
	Node ID
}

// Less implements the lexicographic (lag, node-id) order CoverNode equality
// and set membership rely on throughout cut enumeration.
func (c CoverNode) Less(o CoverNode) bool {
	if c.Lag != o.Lag {
		return c.Lag < o.Lag
	}
	return c.Node < o.Node
}
