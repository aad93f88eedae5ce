// Package patterns — enumerate.go implements the subgraph enumerator
// behind local rewriting. Cuts are grown backward from a root
// LUT by repeatedly absorbing a non-leaf predecessor into the cut's member
// set, the same "cone growth by backward absorption" shape as cutmap's
// trivial-cut fallback (cutmap/map.go's mapTrivial), generalized from
// single-node AIG cones to multi-LUT subgraphs with an outer-fanout bound.
//
// Member indices are reported sorted ascending for determinism only;
// nothing here or downstream requires slab index order to be topological
// (lutnet evaluates networks topologically).
package patterns

import "github.com/lvlath-labs/toymap/lutnet"

// Cut is one subgraph rooted at Root satisfying the caller's bounds:
// Members (LUT indices, ascending), Leaves (external inputs,
// deduplicated), and OuterFans (members other than Root whose LUT output
// is consumed somewhere outside Members).
type Cut struct {
	Root      int
	Members   []int
	Leaves    []lutnet.Input
	OuterFans []int
}

// Limits bounds cut growth: LUT count, external fanouts, and leaves.
type Limits struct {
	MaxNLuts     int
	MaxOuterFans int
	MaxNLeaves   int
}

// globalFanout counts, for every LUT index in net, how many internal LUT
// inputs plus network outputs reference it.
func globalFanout(net *lutnet.Network) []int {
	count := make([]int, len(net.LUTs))
	for _, l := range net.LUTs {
		for _, in := range l.Inputs {
			if !in.Leaf {
				count[in.Index]++
			}
		}
	}
	for _, o := range net.Outputs {
		if !o.Leaf {
			count[o.Index]++
		}
	}

	return count
}

// Enumerate yields, via yield, every cut rooted at root that fits limits
// and contains no blacklisted member, stopping early if yield returns
// false. blacklist may be nil.
func Enumerate(net *lutnet.Network, root int, limits Limits, blacklist map[int]bool, yield func(Cut) bool) {
	if blacklist != nil && blacklist[root] {
		return
	}
	fanout := globalFanout(net)

	members := map[int]bool{root: true}
	leaves := dedupInputs(net.LUTs[root].Inputs)

	seen := map[string]bool{}
	var grow func(members map[int]bool, leaves []lutnet.Input) bool
	grow = func(members map[int]bool, leaves []lutnet.Input) bool {
		key := cutKey(members)
		if seen[key] {
			return true
		}
		seen[key] = true

		if cut, ok := buildCut(net, root, members, leaves, fanout, limits, blacklist); ok {
			if !yield(cut) {
				return false
			}
		}

		if len(members) >= limits.MaxNLuts {
			return true
		}

		for _, in := range leaves {
			if in.Leaf || members[in.Index] || (blacklist != nil && blacklist[in.Index]) {
				continue
			}
			nextMembers := cloneMemberSet(members)
			nextMembers[in.Index] = true
			nextLeaves := absorb(leaves, in.Index, net.LUTs[in.Index].Inputs)
			if len(nextMembers) > limits.MaxNLuts || len(nextLeaves) > limits.MaxNLeaves {
				continue
			}
			if !grow(nextMembers, nextLeaves) {
				return false
			}
		}

		return true
	}

	grow(members, leaves)
}

func buildCut(net *lutnet.Network, root int, members map[int]bool, leaves []lutnet.Input, fanout []int, limits Limits, blacklist map[int]bool) (Cut, bool) {
	if len(leaves) > limits.MaxNLeaves {
		return Cut{}, false
	}

	var outerFans []int
	for m := range members {
		if m == root {
			continue
		}
		external := fanout[m] - internalConsumers(net, m, members)
		if external > 0 {
			outerFans = append(outerFans, m)
		}
	}
	if len(outerFans) > limits.MaxOuterFans {
		return Cut{}, false
	}

	idx := make([]int, 0, len(members))
	for m := range members {
		idx = append(idx, m)
	}
	sortInts(idx)
	sortInts(outerFans)

	return Cut{Root: root, Members: idx, Leaves: leaves, OuterFans: outerFans}, true
}

func internalConsumers(net *lutnet.Network, m int, members map[int]bool) int {
	count := 0
	for mi := range members {
		for _, in := range net.LUTs[mi].Inputs {
			if !in.Leaf && in.Index == m {
				count++
			}
		}
	}

	return count
}

func dedupInputs(inputs []lutnet.Input) []lutnet.Input {
	return absorb(nil, -1, inputs)
}

// absorb removes the leaf entry pointing at absorbedIndex (if any — pass -1
// to absorb nothing, used by dedupInputs to just dedupe a fresh list) and
// merges in newInputs, deduplicating against the remaining leaves.
func absorb(leaves []lutnet.Input, absorbedIndex int, newInputs []lutnet.Input) []lutnet.Input {
	out := make([]lutnet.Input, 0, len(leaves)+len(newInputs))
	seen := map[lutnet.Input]bool{}
	add := func(in lutnet.Input) {
		if seen[in] {
			return
		}
		seen[in] = true
		out = append(out, in)
	}
	for _, l := range leaves {
		if !l.Leaf && l.Index == absorbedIndex {
			continue
		}
		add(l)
	}
	for _, n := range newInputs {
		add(n)
	}

	return out
}

func cloneMemberSet(m map[int]bool) map[int]bool {
	n := make(map[int]bool, len(m)+1)
	for k := range m {
		n[k] = true
	}

	return n
}

func cutKey(members map[int]bool) string {
	idx := make([]int, 0, len(members))
	for m := range members {
		idx = append(idx, m)
	}
	sortInts(idx)
	key := make([]byte, 0, len(idx)*4)
	for _, i := range idx {
		key = append(key, byte(i), byte(i>>8), byte(i>>16), byte(i>>24))
	}

	return string(key)
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
