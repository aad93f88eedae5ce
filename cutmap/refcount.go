// Package cutmap — refcount.go implements the mapping reference counts:
// refCut/derefCut recursively adjust map_fanouts over a node's selected
// cut, and WalkMapping recomputes the whole reference-count table from the
// POs outward.
package cutmap

import "github.com/lvlath-labs/toymap/aig"

// State is the live mapping: the graph being mapped, the library driving
// area costs, and the per-node scratch table.
type State struct {
	Graph     *aig.Graph
	Library   libraryCost
	Scratch   map[aig.ID]*Scratch
	Fanouts   []int // aig.Graph.FanoutCounts(), indexed by aig.ID
	MaxCut    int
	NPriority int
}

// libraryCost is the minimal surface cutmap needs from a lutnet.Library —
// kept as a narrow interface so this package does not need to import
// lutnet just to call Cost.
type libraryCost interface {
	Cost(width int) int
}

// isGate reports whether id is a plain AND gate — the only node shape
// whose cut the reference-count recursion may descend into. A PI's cache
// holds the trivial self-cut; recursing into it would self-increment
// the PI's own count and never release it.
func (st *State) isGate(id aig.ID) bool {
	n := st.Graph.Node(id)

	return n.Kind == aig.KindAnd && !n.PO
}

// refCut recursively increments map_fanouts over n's currently selected
// cut. When a gate member's count crosses 0->1, the recursion propagates
// into that member's own selected cut.
func (st *State) refCut(id aig.ID) {
	s := st.Scratch[id]
	cut := s.SelectedCut()
	for _, cn := range cut {
		ms := st.Scratch[cn.Node]
		ms.MapFanouts++
		if ms.MapFanouts == 1 && st.isGate(cn.Node) {
			st.refCut(cn.Node)
		}
	}
}

// derefCut recursively decrements map_fanouts over n's currently selected
// cut, propagating into a gate member when its count crosses 1->0.
func (st *State) derefCut(id aig.ID) error {
	s := st.Scratch[id]
	cut := s.SelectedCut()
	for _, cn := range cut {
		ms := st.Scratch[cn.Node]
		if ms.MapFanouts == 0 {
			return ErrRefCountUnderflow
		}
		ms.MapFanouts--
		if ms.MapFanouts == 0 && st.isGate(cn.Node) {
			if err := st.derefCut(cn.Node); err != nil {
				return err
			}
		}
	}

	return nil
}

// WalkMapping resets every node's map_fanouts to 0 (plus 1 for POs), then
// refs every PO's selected cut, returning the total area — sum of
// lib.Cost(|cut(n)|) over every AND node reached. PO aliases are in the
// mapping but carry no area: they export as wire connections, not LUTs.
func (st *State) WalkMapping() (area int, err error) {
	for _, s := range st.Scratch {
		s.MapFanouts = 0
	}
	for _, po := range st.Graph.POs() {
		s := st.Scratch[po]
		s.MapFanouts++
		st.refCut(po)
	}

	for id := aig.ID(0); int(id) < st.Graph.NumNodes(); id++ {
		s := st.Scratch[id]
		if s.MapFanouts == 0 {
			continue
		}
		n := st.Graph.Node(id)
		if n.Kind != aig.KindAnd || n.PO {
			continue
		}
		cut := s.SelectedCut()
		if cut == nil {
			return 0, ErrNoCut
		}
		area += st.Library.Cost(cut.Width())
	}

	return area, nil
}

// refValue is like refCut but roots the recursion at an explicit candidate
// cut rather than a node's currently-selected one, returning every gate ID
// whose map_fanouts crossed 0->1 as a side effect. Used by exactArea's
// counterfactual evaluation to cost a cut that has not been committed to
// any node yet.
func (st *State) refValue(cut Cut) []aig.ID {
	var activated []aig.ID
	for _, cn := range cut {
		ms := st.Scratch[cn.Node]
		ms.MapFanouts++
		if ms.MapFanouts == 1 && st.isGate(cn.Node) {
			activated = append(activated, cn.Node)
			activated = append(activated, st.refCutCollect(cn.Node)...)
		}
	}

	return activated
}

// refCutCollect is refCut's counterpart that also reports newly-activated
// gate IDs, used internally by refValue's recursion into already-settled
// descendant cuts.
func (st *State) refCutCollect(id aig.ID) []aig.ID {
	var activated []aig.ID
	for _, cn := range st.Scratch[id].SelectedCut() {
		ms := st.Scratch[cn.Node]
		ms.MapFanouts++
		if ms.MapFanouts == 1 && st.isGate(cn.Node) {
			activated = append(activated, cn.Node)
			activated = append(activated, st.refCutCollect(cn.Node)...)
		}
	}

	return activated
}

// derefValue is derefCut's counterpart rooted at an explicit cut value.
func (st *State) derefValue(cut Cut) {
	for _, cn := range cut {
		ms := st.Scratch[cn.Node]
		ms.MapFanouts--
		if ms.MapFanouts == 0 && st.isGate(cn.Node) {
			_ = st.derefCut(cn.Node)
		}
	}
}

// exactArea computes the true marginal LUT count introduced if candidate
// were selected at n: counterfactually deref n's current cut, ref
// candidate, sum the cost of every newly-activated node plus candidate's
// own cost, then undo both steps so the live mapping is left unchanged.
//
// old and wasMapped describe the node's cut as it stood when the stage
// began: runStage clears the node's leaderboard before enumerating, so the
// previous selection has to travel here by value rather than be read back
// out of scratch.
func (st *State) exactArea(candidate, old Cut, wasMapped bool) int {
	if wasMapped && old != nil {
		st.derefValue(old)
	}

	activated := st.refValue(candidate)
	cost := st.Library.Cost(candidate.Width())
	for _, aid := range activated {
		cost += st.Library.Cost(st.Scratch[aid].SelectedCut().Width())
	}

	st.derefValue(candidate)
	if wasMapped && old != nil {
		st.refValue(old)
	}

	return cost
}
