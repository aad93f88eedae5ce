// Package aig — compact.go: structural simplification of edges to fixpoint
// (constant-lag cropping, expand-through-constant-input, assume) followed
// by dead-node removal.
package aig

// cropConstLag: if the trailing run of InitVals (the stages furthest from
// the driver) is entirely {0, x}, those
// entries carry no information — a register that is initially zero and
// never loaded from a live value reduces to zero — so they are dropped and
// Lag is reduced to match.
func cropConstLag(e Edge) Edge {
	keep := len(e.InitVals)
	for keep > 0 && e.InitVals[keep-1] != One {
		keep--
	}
	if keep == len(e.InitVals) {
		return e
	}
	e.InitVals = append([]TriState{}, e.InitVals[:keep]...)
	e.Lag = keep

	return e
}

// edgeConstValue reports the constant value a zero-lag edge evaluates to,
// if its target is one of the three dedicated constant nodes.
func edgeConstValue(e Edge) (TriState, bool) {
	if e.Lag != 0 {
		return X, false
	}
	var v TriState
	switch e.Target {
	case Const0:
		v = Zero
	case Const1:
		v = One
	case ConstX:
		v = X
	default:
		return X, false
	}
	if e.Negated {
		v = flipTriState(v)
	}

	return v, true
}

func constEdge(v TriState) Edge {
	switch v {
	case Zero:
		return Edge{Target: Const0}
	case One:
		return Edge{Target: Const1}
	default:
		return Edge{Target: ConstX}
	}
}

func edgesEqual(a, b Edge) bool {
	if a.Target != b.Target || a.Negated != b.Negated || a.Lag != b.Lag {
		return false
	}
	if len(a.InitVals) != len(b.InitVals) {
		return false
	}
	for i := range a.InitVals {
		if a.InitVals[i] != b.InitVals[i] {
			return false
		}
	}

	return true
}

// resolveEdge composes e through subst (a table of already-fully-resolved
// replacement edges for folded nodes) and crops any now-constant tail.
func resolveEdge(subst map[ID]Edge, e Edge) Edge {
	e = cropConstLag(e)
	if e.Lag == 0 {
		if repl, ok := subst[e.Target]; ok {
			e = cropConstLag(composeEdge(e, repl))
		}
	}

	return e
}

// tryAssume: a is one of n's two resolved input edges, b is the other. If
// a is zero-lag and targets an AND node P with exactly one structural
// fanout (this graph's only consumer of P is the edge a itself — required
// for soundness, since the fold only holds in the context of being ANDed
// with b), and one of P's own inputs x is
// tied to the same (target, lag) as b, x can be folded to the constant
// determined by relative polarity: a ∧ (a ∧ y) ≡ a ∧ y.
func (g *Graph) tryAssume(a, b Edge, fanoutCounts []int) (p ID, idx int, replacement Edge, ok bool) {
	if a.Lag != 0 {
		return 0, 0, Edge{}, false
	}
	p = a.Target
	node := g.nodes[p]
	if node.Kind != KindAnd {
		return 0, 0, Edge{}, false
	}
	if fanoutCounts[p] != 1 {
		return 0, 0, Edge{}, false
	}
	for i, x := range node.Ins {
		if x.Target == b.Target && x.Lag == b.Lag {
			v := Zero
			if x.Negated == b.Negated {
				v = One
			}

			return p, i, constEdge(v), true
		}
	}

	return 0, 0, Edge{}, false
}

// simplifyOnePass runs one topological sweep of crop/expand/assume and
// reports whether anything changed.
func (g *Graph) simplifyOnePass() (bool, error) {
	order, err := g.TopoSort()
	if err != nil {
		return false, err
	}
	fanoutCounts := g.FanoutCounts()
	subst := make(map[ID]Edge)
	changed := false

	for _, id := range order {
		n := g.nodes[id]
		if n.Kind != KindAnd {
			continue
		}

		a := resolveEdge(subst, n.Ins[0])
		b := resolveEdge(subst, n.Ins[1])
		if !edgesEqual(a, n.Ins[0]) || !edgesEqual(b, n.Ins[1]) {
			g.SetInput(id, 0, a)
			g.SetInput(id, 1, b)
			changed = true
		}
		if n.PO {
			continue // a PO-alias node keeps its own identity; only its driver edge folds
		}

		va, constA := edgeConstValue(a)
		vb, constB := edgeConstValue(b)
		switch {
		case constA && va == One:
			subst[id] = b
			changed = true
		case constB && vb == One:
			subst[id] = a
			changed = true
		case (constA && va == Zero) || (constB && vb == Zero):
			subst[id] = Edge{Target: Const0}
			changed = true
		default:
			if p, idx, ce, ok := g.tryAssume(a, b, fanoutCounts); ok {
				g.SetInput(p, idx, ce)
				changed = true
			} else if p, idx, ce, ok := g.tryAssume(b, a, fanoutCounts); ok {
				g.SetInput(p, idx, ce)
				changed = true
			}
		}
	}

	return changed, nil
}

// Compact repeatedly applies crop_const_lag / expand-through-constant /
// assume to every edge until fixpoint, then Cleans. Returns the number of
// nodes deleted by the final Clean.
func (g *Graph) Compact() (int, error) {
	for {
		changed, err := g.simplifyOnePass()
		if err != nil {
			return 0, err
		}
		if !changed {
			break
		}
	}

	return g.Clean(), nil
}

// Clean traverses backward from the PO ∪ PI roots via fanin, marks the
// reachable set, and deletes everything else, renumbering IDs to stay
// dense. Returns the number of nodes deleted.
func (g *Graph) Clean() int {
	marked := make([]bool, len(g.nodes))
	marked[Const0], marked[Const1], marked[ConstX] = true, true, true
	for _, id := range g.piOrder {
		marked[id] = true
	}

	queue := append([]ID{}, g.poOrder...)
	for _, id := range queue {
		marked[id] = true
	}
	for i := 0; i < len(queue); i++ {
		n := g.nodes[queue[i]]
		if n.Kind != KindAnd {
			continue
		}
		for _, e := range n.Ins {
			if !marked[e.Target] {
				marked[e.Target] = true
				queue = append(queue, e.Target)
			}
		}
	}

	remap := make([]ID, len(g.nodes))
	newNodes := make([]Node, 0, len(g.nodes))
	deleted := 0
	for old := 0; old < len(g.nodes); old++ {
		if !marked[old] {
			deleted++
			continue
		}
		remap[old] = ID(len(newNodes))
		newNodes = append(newNodes, g.nodes[old])
	}
	for i := range newNodes {
		if newNodes[i].Kind == KindAnd {
			newNodes[i].Ins[0].Target = remap[newNodes[i].Ins[0].Target]
			newNodes[i].Ins[1].Target = remap[newNodes[i].Ins[1].Target]
		}
	}
	g.nodes = newNodes
	for i, id := range g.piOrder {
		g.piOrder[i] = remap[id]
	}
	for i, id := range g.poOrder {
		g.poOrder[i] = remap[id]
	}
	if g.uniquing {
		newKey := make(map[andKey]ID, len(g.andKey))
		for k, id := range g.andKey {
			if !marked[id] {
				continue
			}
			k.aTarget = remap[k.aTarget]
			k.bTarget = remap[k.bTarget]
			newKey[k] = remap[id]
		}
		g.andKey = newKey
	}

	return deleted
}
