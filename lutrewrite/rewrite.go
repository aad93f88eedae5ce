// Package lutrewrite — rewrite.go implements the local LUT-network
// rewriting pass (lutrewrite_once) and the top-level fixpoint loop
// (lutrewrite): recompute depth annotations, search, apply, sweep dead
// cells, repeat until nothing fires.
package lutrewrite

import (
	"log/slog"

	"github.com/lvlath-labs/toymap/internal/invariant"
	"github.com/lvlath-labs/toymap/lutnet"
	"github.com/lvlath-labs/toymap/lutrewrite/patterns"
)

// Stats reports one lutrewrite_once pass's outcome.
type Stats struct {
	CutsConsidered int
	CutsApplied    int
	DidSomething   bool
}

// weightGate: weight = (nluts - nouterfans + 1) / minNLuts(nleaves,
// lutSize); the cut is worth decomposing only if weight >= cutoff.
func weightGate(nluts, nouterfans, nleaves, lutSize int, cutoff float64) bool {
	denom := minNLuts(nleaves, lutSize)
	if denom == 0 {
		return false
	}
	weight := float64(nluts-nouterfans+1) / float64(denom)

	return weight >= cutoff
}

// importCut builds a standalone lutnet.Network for cut: one leaf per
// cut.Leaves entry (in order), one LUT per cut.Members entry, with every
// Input rewritten to point at the new leaf/LUT indices, and a single
// output at the cut's root. Member order inside the sub-network is
// immaterial: lutnet evaluates topologically, not by slab index.
func importCut(net *lutnet.Network, cut patterns.Cut) *lutnet.Network {
	leafIndex := make(map[lutnet.Input]int, len(cut.Leaves))
	for i, l := range cut.Leaves {
		leafIndex[l] = i
	}
	memberIndex := make(map[int]int, len(cut.Members))
	for i, m := range cut.Members {
		memberIndex[m] = i
	}

	remap := func(in lutnet.Input) lutnet.Input {
		if idx, ok := memberIndex[in.Index]; !in.Leaf && ok {
			return lutnet.Input{Leaf: false, Index: idx}
		}

		return lutnet.Input{Leaf: true, Index: leafIndex[in]}
	}

	sub := &lutnet.Network{NumLeaves: len(cut.Leaves)}
	rootSubIdx := -1
	for _, m := range cut.Members {
		orig := net.LUTs[m]
		inputs := make([]lutnet.Input, len(orig.Inputs))
		for i, in := range orig.Inputs {
			inputs[i] = remap(in)
		}
		lut := lutnet.LUT{Width: orig.Width, Values: cloneBitsOf(orig.Values), DontCares: cloneBitsOf(orig.DontCares), Inputs: inputs}
		idx := sub.AddLUT(lut)
		if m == cut.Root {
			rootSubIdx = idx
		}
	}
	sub.Outputs = []lutnet.Input{{Leaf: false, Index: rootSubIdx}}

	return sub
}

func cloneBitsOf(b lutnet.Bits) lutnet.Bits {
	out := make(lutnet.Bits, len(b))
	copy(out, b)

	return out
}

// rewriteOnce attempts one rewrite pass over net, using depth for the
// per-root envelope check, and returns whether any cut was applied.
func rewriteOnce(net *lutnet.Network, depth *DepthReport, cfg Options) (Stats, error) {
	var stats Stats
	order, err := net.TopoSort()
	if err != nil {
		return stats, err
	}

	blacklist := map[int]bool{}
	leafDepth := make([]int, net.NumLeaves)

	for _, root := range order {
		if blacklist[root] {
			continue
		}

		var applied bool
		patterns.Enumerate(net, root, patterns.Limits{
			MaxNLuts:     cfg.MaxNLuts,
			MaxOuterFans: cfg.MaxOuterFans,
			MaxNLeaves:   cfg.MaxNLeaves,
		}, blacklist, func(cut patterns.Cut) bool {
			stats.CutsConsidered++
			if len(cut.Members) <= 1 {
				return true // nothing to decompose
			}
			if !weightGate(len(cut.Members), len(cut.OuterFans), len(cut.Leaves), cfg.LutSize, cfg.WeightCutoff) {
				return true
			}

			sub := importCut(net, cut)
			table, err := sub.TruthTable()
			if err != nil {
				return true
			}

			nextID := len(cut.Leaves)
			plan, err := ExploreVarChoices(table, len(cut.Members)-1, cfg.LutSize, cfg.LutMin, &nextID, cfg.SearchShared)
			if err != nil {
				return true // no decomposition beats the existing cut
			}

			leafOf := func(v lutnet.VarID) lutnet.Input {
				return cut.Leaves[int(v)]
			}
			newSub, err := implementVarChoices(plan, len(cut.Leaves), leafOf)
			if err != nil {
				return true
			}

			cellDepth, _, err := net.Depth(leafDepth)
			if err != nil {
				return true
			}
			_, outDepth, err := newSub.Depth(leafDepthFor(cut.Leaves, leafDepth, cellDepth))
			if err != nil {
				return true
			}
			if outDepth > depth.Cells[root].Envelope {
				return true // would violate the root's depth envelope
			}

			newTable, err := newSub.TruthTable()
			if err != nil {
				return true
			}
			invariant.Check(table.Equal(newTable), "lutrewrite: substitution changed truth table at root %d", root)

			applyCut(net, cut, newSub, blacklist)
			stats.CutsApplied++
			applied = true

			return false // root consumed; stop enumerating further cuts for it
		})

		if applied {
			stats.DidSomething = true
		}
	}

	return stats, nil
}

// leafDepthFor gives every cut leaf its current depth in the network: a
// network leaf takes its networkLeafDepth entry, and a leaf that is itself
// an internal LUT (outer-fan predecessor) takes that LUT's cellDepth entry.
func leafDepthFor(leaves []lutnet.Input, networkLeafDepth, cellDepth []int) []int {
	out := make([]int, len(leaves))
	for i, l := range leaves {
		if l.Leaf {
			out[i] = networkLeafDepth[l.Index]
		} else {
			out[i] = cellDepth[l.Index]
		}
	}

	return out
}

// applyCut splices newSub (whose output is a single Input) into net in
// place of cut.Root: newSub's LUTs are appended to net.LUTs with inputs
// remapped from its internal leaf indices back to cut.Leaves, every
// existing consumer of cut.Root is redirected to the new output, and every
// original cut member is blacklisted so later enumeration in this pass
// skips it.
func applyCut(net *lutnet.Network, cut patterns.Cut, newSub *lutnet.Network, blacklist map[int]bool) {
	offset := len(net.LUTs)
	for _, l := range newSub.LUTs {
		inputs := make([]lutnet.Input, len(l.Inputs))
		for i, in := range l.Inputs {
			if in.Leaf {
				inputs[i] = cut.Leaves[in.Index]
			} else {
				inputs[i] = lutnet.Input{Leaf: false, Index: in.Index + offset}
			}
		}
		net.AddLUT(lutnet.LUT{Width: l.Width, Values: l.Values, DontCares: l.DontCares, Inputs: inputs})
	}
	newRoot := lutnet.Input{Leaf: false, Index: newSub.Outputs[0].Index + offset}

	redirect := func(in lutnet.Input) lutnet.Input {
		if !in.Leaf && in.Index == cut.Root {
			return newRoot
		}

		return in
	}
	for i := range net.LUTs {
		if i >= offset {
			continue // freshly added LUTs never reference the old root
		}
		for j, in := range net.LUTs[i].Inputs {
			net.LUTs[i].Inputs[j] = redirect(in)
		}
	}
	for i, o := range net.Outputs {
		net.Outputs[i] = redirect(o)
	}

	for _, m := range cut.Members {
		blacklist[m] = true
	}
}

// RewriteOnce exports rewriteOnce for callers that want the
// lutrewrite_once pass rather than LutRewrite's run-to-fixpoint loop: one
// cut-pattern-enumeration-and-decomposition sweep against depth, no
// repeat.
func RewriteOnce(net *lutnet.Network, depth *DepthReport, cfg Options) (Stats, error) {
	return rewriteOnce(net, depth, cfg)
}

// LutRewrite implements the top-level fixpoint: recompute lutdepth,
// attempt one rewrite pass, sweep dead cells, repeat while anything fired
// — the lutdepth / lutrewrite_once / opt_clean interleaving, with
// lutnet.Network.Clean standing in for the host's opt_clean.
func LutRewrite(net *lutnet.Network, cfg Options) (int, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	rounds := 0
	for {
		depth, err := ComputeDepth(net, cfg.TargetDepth, cfg.Logger)
		if err != nil {
			return rounds, err
		}
		stats, err := rewriteOnce(net, depth, cfg)
		if err != nil {
			return rounds, err
		}
		rounds++
		if !stats.DidSomething {
			return rounds, nil
		}
		swept := net.Clean()
		cfg.Logger.Debug("lutrewrite: pass applied",
			"round", rounds, "cuts", stats.CutsApplied, "swept", swept)
	}
}
