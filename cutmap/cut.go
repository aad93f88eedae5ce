// Package cutmap — cut.go implements Cut: an ordered, set-semantic array
// of up to K_max cover nodes such that every path back from the root
// through the AIG passes through some cut member.
package cutmap

import (
	"sort"

	"github.com/lvlath-labs/toymap/aig"
)

// MaxCutSize is K_max: the hard ceiling on cut width regardless of
// the configured mapping K.
const MaxCutSize = 6

// DefaultNPriorityCuts is the default leaderboard depth.
const DefaultNPriorityCuts = 8

// Cut is a sorted, duplicate-free slice of aig.CoverNode: set semantics
// on (lag, node).
type Cut []aig.CoverNode

// trivialCut returns the single-member self-cut {id}, a PI's trivial cut
// (a PO's cut is its driver, see poCut).
func trivialCut(id aig.ID) Cut {
	return Cut{{Lag: 0, Node: id}}
}

// Width returns |cut|.
func (c Cut) Width() int { return len(c) }

// Contains reports whether c includes the given cover node.
func (c Cut) Contains(cn aig.CoverNode) bool {
	i := sort.Search(len(c), func(i int) bool { return !c[i].Less(cn) })

	return i < len(c) && c[i] == cn
}

// injectLag returns a copy of c with lag added to every member's Lag, so
// a fanin's cached cut can be merged through an edge carrying registers.
func (c Cut) injectLag(lag int) Cut {
	if lag == 0 {
		return c
	}
	out := make(Cut, len(c))
	for i, cn := range c {
		out[i] = aig.CoverNode{Lag: cn.Lag + lag, Node: cn.Node}
	}

	return out
}

// union returns the sorted, deduplicated merge of two cuts under
// CoverNode set-union.
func union(a, b Cut) Cut {
	out := make(Cut, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i].Less(b[j]):
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)

	return out
}

// hash folds a cut's member identities into a disambiguation key for the
// leaderboard; it only breaks ties between equal-metric cuts. A fixed
// deterministic multiplier rather than a randomized seed, so runs are
// reproducible.
func (c Cut) hash() uint64 {
	const (
		fnvOffset = 14695981039346656037
		fnvPrime  = 1099511628211
	)
	h := uint64(fnvOffset)
	for _, cn := range c {
		h ^= uint64(cn.Node)
		h *= fnvPrime
		h ^= uint64(cn.Lag)
		h *= fnvPrime
	}

	return h
}

// depth returns 1 + max(depth of cut members), 0 for an empty cut, using
// the node-depth side table supplied by the caller.
func (c Cut) depth(depthOf func(aig.ID) int) int {
	if len(c) == 0 {
		return 0
	}
	max := 0
	for _, cn := range c {
		if d := depthOf(cn.Node); d > max {
			max = d
		}
	}

	return max + 1
}
