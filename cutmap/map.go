// Package cutmap — map.go implements the top-level Map entry point: the
// five-(six-)stage evaluator pipeline, one cut-enumeration pass per stage,
// bounded by the depth envelope propagated between stages.
package cutmap

import (
	"context"
	"fmt"

	"github.com/lvlath-labs/toymap/aig"
)

// Result summarizes a completed mapping: the total area (sum of LUT costs
// over mapped nodes) and the attained LUT-network depth.
type Result struct {
	Area      int
	MaxDepth  int
	EnvelopeT int
}

// Map runs the priority-cut mapping pipeline over g using lib's LUT
// costs, returning the live mapping State (whose per-node SelectedCut is
// consulted by netlist export) and a Result summary.
func Map(ctx context.Context, g *aig.Graph, lib libraryCost, opts ...Option) (*State, *Result, error) {
	if g == nil {
		return nil, nil, ErrGraphNil
	}
	if lib == nil {
		return nil, nil, ErrLibraryNil
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	order, err := g.TopoSort()
	if err != nil {
		return nil, nil, err
	}

	st := &State{
		Graph:     g,
		Library:   lib,
		Scratch:   make(map[aig.ID]*Scratch, g.NumNodes()),
		Fanouts:   g.FanoutCounts(),
		MaxCut:    cfg.MaxCutSize,
		NPriority: cfg.NPriorityCuts,
	}
	for id := aig.ID(0); int(id) < g.NumNodes(); id++ {
		st.Scratch[id] = newScratch()
	}

	if cfg.TrivialCuts {
		if err := st.mapTrivial(order); err != nil {
			return nil, nil, err
		}
		area, err := st.WalkMapping()
		if err != nil {
			return nil, nil, err
		}

		return st, &Result{Area: area, MaxDepth: st.networkDepth()}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	pipeline := Pipeline()
	depthOf := func(id aig.ID) int { return st.Scratch[id].Depth }

	// Stage 1: depth-only, no reject, no previous-cut seeding (nothing to
	// seed from yet).
	if err := st.runStage(pipeline[0], 0, order, depthOf, false); err != nil {
		return nil, nil, err
	}

	target := st.maxPODepth()
	if cfg.TargetDepth > 0 {
		if cfg.TargetDepth < target {
			cfg.Logger.Warn("cutmap: target depth below attainable depth, falling back",
				"target", cfg.TargetDepth, "attainable", target)
		} else {
			target = cfg.TargetDepth
		}
	}
	if err := st.spreadDepthLimit(target); err != nil {
		return nil, nil, err
	}
	if _, err := st.WalkMapping(); err != nil {
		return nil, nil, err
	}

	// Stages 2 onward run under the depth envelope; limits are re-spread
	// after every stage since a changed cut selection shifts which edges
	// the envelope propagates across.
	lastStage := len(pipeline)
	if cfg.DepthCutsOnly {
		lastStage = 2
	} else if !cfg.ExactArea {
		lastStage = 4
	}
	for i := 1; i < lastStage; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if err := st.runStage(pipeline[i], i, order, depthOf, cfg.PreviousCutConsideration); err != nil {
			return nil, nil, err
		}
		if err := st.spreadDepthLimit(target); err != nil {
			return nil, nil, err
		}
	}

	area, err := st.WalkMapping()
	if err != nil {
		return nil, nil, err
	}

	return st, &Result{Area: area, MaxDepth: st.networkDepth(), EnvelopeT: target}, nil
}

// maxPODepth is the internal depth-envelope anchor: a PO alias counts as a
// level of its own (its cut is its single driver), so this exceeds the LUT
// depth of the mapped network by one whenever any PO has a non-constant
// driver. spreadDepthLimit's T is defined in terms of this value.
func (st *State) maxPODepth() int {
	max := 0
	for _, po := range st.Graph.POs() {
		if d := st.Scratch[po].Depth; d > max {
			max = d
		}
	}

	return max
}

// networkDepth is the depth reported to callers: the maximum depth of any
// PO's driver, i.e. the logic depth of the emitted LUT network.
func (st *State) networkDepth() int {
	d := st.maxPODepth()
	if d > 0 {
		d--
	}

	return d
}

// poCut is the trivial single-fanin cut a PO-alias node always stores:
// its driver at the driver edge's lag. A PO never enumerates
// merged cuts — it is a wire alias, not a LUT, and its cut exists only so
// reference counting and depth-limit propagation reach the driver.
func poCut(n aig.Node) Cut {
	return Cut{{Lag: n.Ins[0].Lag, Node: n.Ins[0].Target}}
}

// mapTrivial implements `-trivial_cuts`: every AND node's cut is exactly
// its two direct fanins (deduped, lag-injected), skipping enumeration
// entirely.
func (st *State) mapTrivial(order []aig.ID) error {
	for _, id := range order {
		n := st.Graph.Node(id)
		s := st.Scratch[id]
		switch {
		case n.Kind == aig.KindConst:
			s.Leaderboard = []candidate{{cut: Cut{}}}
		case n.Kind == aig.KindPI:
			s.Leaderboard = []candidate{{cut: trivialCut(id)}}
		case n.PO:
			s.Leaderboard = []candidate{{cut: poCut(n)}}
		default:
			a, b := n.Ins[0], n.Ins[1]
			merged := union(trivialCut(a.Target).injectLag(a.Lag), trivialCut(b.Target).injectLag(b.Lag))
			s.Leaderboard = []candidate{{cut: merged}}
		}
		s.Selected = 0
		s.Depth = s.SelectedCut().depth(func(x aig.ID) int { return st.Scratch[x].Depth })
	}

	return nil
}

// runStage performs one full pass of the pipeline: rebuild each
// node's leaderboard under ev in topological order, select the best
// candidate, and — for stages past the first — incrementally ref/deref the
// live mapping when a node's selected cut actually changes.
func (st *State) runStage(ev Evaluator, stageIdx int, order []aig.ID, depthOf func(aig.ID) int, prevCutFlag bool) error {
	_, isExact := ev.(exactAreaEval)

	for _, id := range order {
		n := st.Graph.Node(id)
		s := st.Scratch[id]
		oldCut := s.SelectedCut()
		oldMapped := s.MapFanouts > 0
		s.resetForStage()

		switch {
		case n.Kind == aig.KindConst:
			s.insert(ev, candidate{cut: Cut{}}, st.NPriority)
		case n.Kind == aig.KindPI:
			c := trivialCut(id)
			m := st.evalMetrics(id, c, stageIdx, depthOf)
			s.insert(ev, candidate{cut: c, metrics: m, hash: c.hash()}, st.NPriority)
		case n.PO:
			// A PO stores the trivial single-fanin cut, never an
			// enumerated one — choosing a deeper cut here would drop the
			// driver itself out of the mapping.
			c := poCut(n)
			m := st.evalMetrics(id, c, stageIdx, depthOf)
			s.insert(ev, candidate{cut: c, metrics: m, hash: c.hash()}, st.NPriority)
		default:
			st.enumerateAnd(ev, stageIdx, id, n, isExact, depthOf, s, oldCut, oldMapped)
		}

		if prevCutFlag && oldCut != nil {
			m := st.evalMetrics(id, oldCut, stageIdx, depthOf)
			if isExact {
				m.ExactArea = st.exactArea(oldCut, oldCut, oldMapped)
			}
			if !ev.Reject(s, m) {
				s.insert(ev, candidate{cut: oldCut, metrics: m, hash: ^uint64(0)}, st.NPriority)
			}
		}

		if len(s.Leaderboard) == 0 {
			return fmt.Errorf("cutmap: node %d produced no feasible cut under stage %s", id, ev.Name())
		}

		best := s.Leaderboard[0].cut
		if stageIdx > 0 && s.MapFanouts > 0 && !cutsEqual(oldCut, best) {
			if oldCut != nil {
				st.derefValue(oldCut)
			}
			st.refValue(best)
		}

		s.Selected = 0
		s.Depth = s.Leaderboard[0].metrics.Depth
		s.AreaFlow = s.Leaderboard[0].metrics.AreaFlow
		s.EdgeFlow = s.Leaderboard[0].metrics.EdgeFlow
	}

	return nil
}

func (st *State) enumerateAnd(ev Evaluator, stageIdx int, id aig.ID, n aig.Node, isExact bool, depthOf func(aig.ID) int, s *Scratch, oldCut Cut, oldMapped bool) {
	a, b := n.Ins[0], n.Ins[1]
	aCands := append([]candidate{{cut: trivialCut(a.Target)}}, st.Scratch[a.Target].Leaderboard...)
	bCands := append([]candidate{{cut: trivialCut(b.Target)}}, st.Scratch[b.Target].Leaderboard...)

	for _, ca := range aCands {
		for _, cb := range bCands {
			merged := union(ca.cut.injectLag(a.Lag), cb.cut.injectLag(b.Lag))
			if merged.Width() > st.MaxCut {
				continue
			}
			m := st.evalMetrics(id, merged, stageIdx, depthOf)
			if isExact {
				m.ExactArea = st.exactArea(merged, oldCut, oldMapped)
			}
			if ev.Reject(s, m) {
				continue
			}
			s.insert(ev, candidate{cut: merged, metrics: m, hash: merged.hash()}, st.NPriority)
		}
	}
}

// evalMetrics computes every Metrics field except ExactArea (computed
// separately, only by the exact-area stages, since it requires the
// expensive counterfactual ref/deref walk).
//
// The fanout denominator is split by stage: structural fanouts(n) at
// stage 1 (index 0), map_fanouts(n) afterward — map_fanouts does not
// exist until a mapping has been walked. area_flow's denominator follows
// the same split.
func (st *State) evalMetrics(id aig.ID, cut Cut, stageIdx int, depthOf func(aig.ID) int) Metrics {
	width := cut.Width()
	depth := cut.depth(depthOf)

	var areaSum, edgeSum float64
	for _, cn := range cut {
		cs := st.Scratch[cn.Node]
		areaSum += cs.AreaFlow
		edgeSum += cs.EdgeFlow
	}

	fc := st.Fanouts[id]
	if stageIdx > 0 {
		fc = st.Scratch[id].MapFanouts
	}
	if fc < 1 {
		fc = 1
	}

	areaFlow := (float64(st.Library.Cost(width)) + areaSum) / float64(fc)
	edgeFlow := (100*float64(width) + edgeSum) / float64(fc)

	return Metrics{Depth: depth, CutWidth: width, AreaFlow: areaFlow, EdgeFlow: edgeFlow}
}
