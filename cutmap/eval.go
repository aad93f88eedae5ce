// Package cutmap — eval.go implements the five cut evaluators. Each shares
// the same shape (compare two candidates, veto a candidate against its
// node) but differs in comparison order; rather than dynamic dispatch
// inside the hot enumeration loop, each stage is a concrete comparator
// selected once per pipeline stage by the caller (map.go).
package cutmap

// Metrics holds every value a cut evaluator might need to compare two
// candidates, computed once per candidate cut and reused across stages.
type Metrics struct {
	Depth     int
	CutWidth  int
	AreaFlow  float64
	EdgeFlow  float64
	ExactArea int
}

// Evaluator is one pipeline stage: Less orders two candidates (true if a
// should be preferred over b), Reject vetoes a candidate outright before it
// is even compared, keyed on the node it would be assigned to.
type Evaluator interface {
	Name() string
	Less(a, b Metrics) bool
	Reject(node *Scratch, m Metrics) bool
}

// depthEvalInitial is stage 1: key (depth, cut_width,
// area_flow, edge_flow), no rejection. Used on the very first pass, before
// any depth_limit has been established.
type depthEvalInitial struct{}

func (depthEvalInitial) Name() string                  { return "depth-initial" }
func (depthEvalInitial) Reject(*Scratch, Metrics) bool { return false }
func (depthEvalInitial) Less(a, b Metrics) bool {
	if a.Depth != b.Depth {
		return a.Depth < b.Depth
	}
	if a.CutWidth != b.CutWidth {
		return a.CutWidth < b.CutWidth
	}
	if a.AreaFlow != b.AreaFlow {
		return a.AreaFlow < b.AreaFlow
	}

	return a.EdgeFlow < b.EdgeFlow
}

// depthEvalInitial2 is stage 2: key (depth, area_flow, edge_flow,
// cut_width), rejects depth > node.depth_limit.
type depthEvalInitial2 struct{}

func (depthEvalInitial2) Name() string                      { return "depth-initial2" }
func (depthEvalInitial2) Reject(s *Scratch, m Metrics) bool { return m.Depth > s.DepthLimit }
func (depthEvalInitial2) Less(a, b Metrics) bool {
	if a.Depth != b.Depth {
		return a.Depth < b.Depth
	}
	if a.AreaFlow != b.AreaFlow {
		return a.AreaFlow < b.AreaFlow
	}
	if a.EdgeFlow != b.EdgeFlow {
		return a.EdgeFlow < b.EdgeFlow
	}

	return a.CutWidth < b.CutWidth
}

// areaEvalInitial is stage 3: key (area_flow, edge_flow, cut_width, depth),
// rejects depth > depth_limit.
type areaEvalInitial struct{}

func (areaEvalInitial) Name() string                      { return "area-initial" }
func (areaEvalInitial) Reject(s *Scratch, m Metrics) bool { return m.Depth > s.DepthLimit }
func (areaEvalInitial) Less(a, b Metrics) bool            { return areaKeyLess(a, b) }

// areaFlowEval is stage 4: same key as stage 3, run again after map_fanouts
// has stabilized from the first area pass, refining the flow estimate.
type areaFlowEval struct{}

func (areaFlowEval) Name() string                      { return "area-flow" }
func (areaFlowEval) Reject(s *Scratch, m Metrics) bool { return m.Depth > s.DepthLimit }
func (areaFlowEval) Less(a, b Metrics) bool            { return areaKeyLess(a, b) }

func areaKeyLess(a, b Metrics) bool {
	if a.AreaFlow != b.AreaFlow {
		return a.AreaFlow < b.AreaFlow
	}
	if a.EdgeFlow != b.EdgeFlow {
		return a.EdgeFlow < b.EdgeFlow
	}
	if a.CutWidth != b.CutWidth {
		return a.CutWidth < b.CutWidth
	}

	return a.Depth < b.Depth
}

// exactAreaEval is stage 5 (run twice): key (exact_area, cut_width,
// depth), rejects depth > depth_limit. ExactArea is computed counterfactually
// by the caller (map.go's exact-area pass) before Less is invoked.
type exactAreaEval struct{}

func (exactAreaEval) Name() string                      { return "exact-area" }
func (exactAreaEval) Reject(s *Scratch, m Metrics) bool { return m.Depth > s.DepthLimit }
func (exactAreaEval) Less(a, b Metrics) bool {
	if a.ExactArea != b.ExactArea {
		return a.ExactArea < b.ExactArea
	}
	if a.CutWidth != b.CutWidth {
		return a.CutWidth < b.CutWidth
	}

	return a.Depth < b.Depth
}

// Pipeline returns the evaluators in stage order.
func Pipeline() []Evaluator {
	return []Evaluator{
		depthEvalInitial{},
		depthEvalInitial2{},
		areaEvalInitial{},
		areaFlowEval{},
		exactAreaEval{},
		exactAreaEval{}, // the exact-area stage runs twice
	}
}
