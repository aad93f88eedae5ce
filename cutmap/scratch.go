// Package cutmap — scratch.go implements the per-node mapping scratch side
// table and the bounded priority-cut leaderboard.
package cutmap

// candidate is one leaderboard entry: a cut paired with its metrics under
// the currently active evaluator, and its disambiguation hash.
type candidate struct {
	cut     Cut
	metrics Metrics
	hash    uint64
}

// Scratch is one node's mapping working state — every field the five
// evaluator stages and the reference-counting pass need, kept disjoint
// from aig.Node per the scratch-field union design note.
type Scratch struct {
	Leaderboard []candidate
	Selected    int // index into Leaderboard of the node's current cut, -1 if none

	Depth      int
	DepthLimit int
	MapFanouts int
	AreaFlow   float64
	EdgeFlow   float64
}

// newScratch returns a fresh Scratch with no selected cut and an unbounded
// depth_limit (set by spread_depth_limit before it matters).
func newScratch() *Scratch {
	return &Scratch{Selected: -1, DepthLimit: maxDepthLimit}
}

// maxDepthLimit stands in for the infinite depth limit spread to
// every non-PO node before the first spread_depth_limit sweep.
const maxDepthLimit = 1 << 30

// SelectedCut returns the node's currently chosen cut, or nil if none has
// been selected yet.
func (s *Scratch) SelectedCut() Cut {
	if s.Selected < 0 {
		return nil
	}

	return s.Leaderboard[s.Selected].cut
}

// insert places a candidate cut into the bounded leaderboard, keyed by
// (metrics, hash) under the active evaluator; when the leaderboard
// overflows nPriority entries the worst is evicted.
func (s *Scratch) insert(ev Evaluator, cand candidate, nPriority int) {
	for _, existing := range s.Leaderboard {
		if existing.hash == cand.hash && cutsEqual(existing.cut, cand.cut) {
			return // already present under this metric
		}
	}
	s.Leaderboard = append(s.Leaderboard, cand)
	less := func(i, j int) bool {
		a, b := s.Leaderboard[i], s.Leaderboard[j]
		if ev.Less(a.metrics, b.metrics) {
			return true
		}
		if ev.Less(b.metrics, a.metrics) {
			return false
		}

		return a.hash < b.hash
	}
	insertionSort(s.Leaderboard, less)
	if len(s.Leaderboard) > nPriority {
		s.Leaderboard = s.Leaderboard[:nPriority]
	}
}

func insertionSort(c []candidate, less func(i, j int) bool) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}

func cutsEqual(a, b Cut) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// resetForStage clears the leaderboard ahead of a new evaluation stage,
// preserving DepthLimit/MapFanouts/Depth (those persist across stages) but
// discarding cached cuts and re-seeding Selected so the stage rebuilds its
// own leaderboard from scratch.
func (s *Scratch) resetForStage() {
	s.Leaderboard = nil
	s.Selected = -1
}
