// Package aig — tsort.go implements topological ordering over the zero-lag
// projection of the graph: a three-color DFS restricted to zero-lag fanin
// edges. Nonzero-lag edges may close cycles through registers and are
// invisible to this sweep.
package aig

// visitState is the usual white/gray/black three-color marking.
type visitState uint8

const (
	white visitState = iota
	gray
	black
)

// TopoSort returns node IDs ordered so that every AND node appears after
// both of its zero-lag fanins. PIs and constants have no inputs and may
// appear anywhere consistent with that constraint;
// this implementation emits them in ID order as they become available.
//
// Returns ErrCycleDetected if the zero-lag projection contains a cycle,
// which would violate the invariant that registers (Lag>0) are the only
// source of cycles in the graph.
func (g *Graph) TopoSort() ([]ID, error) {
	state := make([]visitState, len(g.nodes))
	order := make([]ID, 0, len(g.nodes))

	var visit func(id ID) error
	visit = func(id ID) error {
		switch state[id] {
		case black:
			return nil
		case gray:
			return ErrCycleDetected
		}
		state[id] = gray

		n := g.nodes[id]
		if n.Kind == KindAnd {
			for _, e := range n.Ins {
				if e.Lag != 0 {
					continue // registers are invisible to the zero-lag projection
				}
				if err := visit(e.Target); err != nil {
					return err
				}
			}
		}

		state[id] = black
		order = append(order, id)

		return nil
	}

	for id := range g.nodes {
		if state[id] == white {
			if err := visit(ID(id)); err != nil {
				return nil, err
			}
		}
	}

	return order, nil
}

// ReverseTopoSweep calls visit(id) for every node in reverse topological
// order (sinks to sources), the traversal direction depth-limit and
// envelope propagation both use. visit may return a non-nil error to
// abort the sweep early; that error is propagated to the caller.
func (g *Graph) ReverseTopoSweep(visit func(id ID) error) error {
	order, err := g.TopoSort()
	if err != nil {
		return err
	}
	for i := len(order) - 1; i >= 0; i-- {
		if err := visit(order[i]); err != nil {
			return err
		}
	}

	return nil
}
