// Package lutrewrite — varchoice.go implements the variable-choice search:
// branch-and-bound over which variables become the bound set at each
// decomposition level, bounded by an integer LUT budget and pruned via the
// minNLuts admissible lower bound.
package lutrewrite

import (
	mathbits "math/bits"

	"github.com/lvlath-labs/toymap/lutnet"
)

// levelPlan is one level of a variable-choice decomposition: either a base
// case (Bn == 0, the remaining vars fit in one final LUT) or a bound-set
// split producing SelVars synthetic selector variables that feed Next's
// table.
type levelPlan struct {
	Vars      []lutnet.VarID // this level's full variable order; Vars[:Bn] is the bound set
	Bn        int
	Table     *lutnet.TruthTable // this level's table (base case: the final LUT's table)
	Fragments []*Fragment        // only set when Bn > 0
	BSToFrag  []int              // per bound-set assignment, the selector code a selector LUT must emit
	SelVars   []lutnet.VarID     // synthetic selector variable IDs, len == ceil(log2(|Fragments|)) minus one if Shared
	Shared    bool               // true if a shared variable was extracted at this level
	SharedIdx int                // bit position of the shared variable within the bound-set assignment (bit s addresses Vars[Bn-1-s]); only meaningful if Shared
	Next      *levelPlan
	NLuts     int // total LUTs: this level's selector LUTs (0 if base) + Next.NLuts (1 if base)
}

// minNLuts is the information-theoretic minimum number of a-input LUTs
// needed to realize a v-variable function: ceil((v-1)/(a-1)).
func minNLuts(v, a int) int {
	if v <= a {
		return 1
	}
	if a <= 1 {
		return v // degenerate; never hit with real LUT sizes
	}

	return (v - 1 + a - 2) / (a - 1)
}

func log2Ceil(n int) int {
	if n <= 1 {
		return 0
	}

	return mathbits.Len(uint(n - 1))
}

// ExploreVarChoices recursively searches for the variable ordering that
// realizes table in the fewest LUTs of width <=
// lutSize, trying every bound-set size in [lutMin, lutSize] and every
// placement (subset of that size) at each level, pruned by budget via the
// min_nluts lower bound. nextID supplies fresh synthetic variable IDs for
// selector outputs, shared across the whole recursive search so no two
// levels' synthetic variables collide. searchShared enables
// shared-variable extraction at every level (toymap/lutrewrite -shared).
func ExploreVarChoices(table *lutnet.TruthTable, budget, lutSize, lutMin int, nextID *int, searchShared bool) (*levelPlan, error) {
	nv := table.NumVars()
	if nv <= lutSize {
		return &levelPlan{Vars: append([]lutnet.VarID(nil), table.Vars...), Table: table, NLuts: 1}, nil
	}

	var best *levelPlan
	bestCost := budget + 1

	maxBn := lutSize
	if maxBn > nv {
		maxBn = nv
	}
	for bn := lutMin; bn <= maxBn; bn++ {
		lb := minNLuts(nv, lutSize) // crude admissible lower bound shared across placements at this bn
		if lb > budget {
			continue
		}
		forEachCombination(nv, bn, func(placement []int) bool {
			cand := tryPlacement(table, placement, bn, budget, lutSize, lutMin, nextID, searchShared)
			if cand != nil && cand.NLuts < bestCost {
				best = cand
				bestCost = cand.NLuts
			}

			return true // keep searching all placements; ties keep the first found
		})
	}

	if best == nil {
		return nil, ErrBudgetExceeded
	}

	return best, nil
}

// tryPlacement evaluates one specific choice of bn variables (given as
// indices into table.Vars) as the bound set, returning nil if it cannot
// beat budget. When searchShared is set, the shared-variable search
// runs against the resulting fragments and, if one is found, builds one
// selector LUT fewer by wiring the shared variable straight into the
// continuation table instead of folding it into the selector code.
func tryPlacement(table *lutnet.TruthTable, placement []int, bn, budget, lutSize, lutMin int, nextID *int, searchShared bool) *levelPlan {
	work := table.Clone()
	// Bring the chosen variables to the front (positions 0..bn), preserving
	// their relative order, via repeated SwapVars. Reusing the same table
	// in place across iterations is correct because the search only
	// depends on fragment shape, not absolute variable index.
	remaining := append([]int(nil), placement...)
	for dest := 0; dest < bn; dest++ {
		src := indexOfVar(work, table.Vars[remaining[dest]])
		if src != dest {
			work.SwapVars(dest, src)
		}
	}

	frags, bsToFrag := findFragments(work, bn)
	nv := work.NumVars()
	if len(frags) > (1 << uint(bn)) {
		return nil // more fragments than bound-set assignments: infeasible
	}
	nluts := log2Ceil(len(frags))
	if nluts > budget {
		return nil
	}

	shared, sharedIdx := false, -1
	if searchShared {
		if s, ok := findSharedVariable(frags, bn, nluts); ok {
			shared, sharedIdx = true, s
			nluts--
		}
	}

	sharedCost := 0
	if shared {
		sharedCost = 1
	}
	lowerBound := nluts + minNLuts(nv-bn+nluts+sharedCost, lutSize)
	if lowerBound > budget {
		return nil
	}

	selVars := make([]lutnet.VarID, nluts)
	for i := range selVars {
		selVars[i] = lutnet.VarID(*nextID)
		*nextID++
	}

	var reduced *lutnet.TruthTable
	var code []int
	if shared {
		reduced, code = buildReducedTableShared(work, bn, frags, bsToFrag, selVars, sharedIdx)
	} else {
		reduced, code = buildReducedTable(work, bn, frags, selVars), bsToFrag
	}

	var next *levelPlan
	var err error
	if nluts == 0 {
		// Bound set was redundant: recurse directly, no selector LUTs spent.
		next, err = ExploreVarChoices(reduced, budget, lutSize, lutMin, nextID, searchShared)
	} else {
		next, err = ExploreVarChoices(reduced, budget-nluts, lutSize, lutMin, nextID, searchShared)
	}
	if err != nil {
		return nil
	}

	return &levelPlan{
		Vars:      append([]lutnet.VarID(nil), work.Vars...),
		Bn:        bn,
		Table:     work,
		Fragments: frags,
		BSToFrag:  code,
		SelVars:   selVars,
		Shared:    shared,
		SharedIdx: sharedIdx,
		Next:      next,
		NLuts:     nluts + next.NLuts,
	}
}

func indexOfVar(t *lutnet.TruthTable, v lutnet.VarID) int {
	return t.VarIndex(v)
}

// buildReducedTable constructs the level's recursive continuation table:
// variables are the free (non-bound-set) vars of work followed by selVars,
// and each row's value comes from the fragment the corresponding selector
// code maps to (don't-care where a selector code has no mapped fragment,
// i.e. |frags| is not an exact power of two).
//
// Row addressing follows the same vars[0]-is-most-significant convention
// TruthTable.Get/SwapVars and lutnet.LUT.Eval all assume: the free block
// (listed first in vars) occupies the table's high bits and the selector
// block (listed last) occupies the low bits, so `lo` — itself already a
// free-variable assignment in that same MSB-first order, per findFragments
// — is shifted left past the selector width rather than the other way
// around.
func buildReducedTable(work *lutnet.TruthTable, bn int, frags []*Fragment, selVars []lutnet.VarID) *lutnet.TruthTable {
	freeVars := append([]lutnet.VarID(nil), work.Vars[bn:]...)
	vars := append(append([]lutnet.VarID(nil), freeVars...), selVars...)
	t, _ := lutnet.NewTruthTable(vars)

	selWidth := len(selVars)
	selSize := 1 << uint(selWidth)
	freeSize := 1 << uint(len(freeVars))

	for lo := 0; lo < freeSize; lo++ {
		for sel := 0; sel < selSize; sel++ {
			row := lo<<uint(selWidth) | sel
			if sel >= len(frags) {
				// len(frags) not a power of two: unused selector codes are don't-care.
				t.Set(row, lutnet.X)

				continue
			}
			t.Set(row, frags[sel].get(lo))
		}
	}

	return t
}

// buildReducedTableShared is buildReducedTable's shared-variable
// counterpart: the bound-set variable at assignment-bit sharedIdx is
// pulled out of the
// selector code and appended as the continuation table's own
// least-significant variable instead, so the fragments split into a "low"
// half (BSLow bit sharedIdx set) and a "high" half (BSHigh bit sharedIdx
// set), each addressed by its own code one bit narrower than the
// non-shared case. Returns the reduced table plus, per original bound-set
// assignment, the code (within its half) selector LUTs must emit —
// findSharedVariable's caller guarantees both halves fit in len(selVars)
// bits.
//
// sharedIdx lives in assignment-bit space, where findFragments recorded
// BSHigh/BSLow: bit s of a bound-set assignment carries the value of
// work.Vars[bn-1-s], since Vars[0] is the table's most significant bit.
func buildReducedTableShared(work *lutnet.TruthTable, bn int, frags []*Fragment, bsToFrag []int, selVars []lutnet.VarID, sharedIdx int) (*lutnet.TruthTable, []int) {
	sharedBit := 1 << uint(sharedIdx)

	var lowGroup, highGroup []int // fragment indices, in first-seen order
	lowPos := make(map[int]int)
	highPos := make(map[int]int)
	for idx, f := range frags {
		if f.BSLow&sharedBit != 0 {
			lowPos[idx] = len(lowGroup)
			lowGroup = append(lowGroup, idx)
		}
		if f.BSHigh&sharedBit != 0 {
			highPos[idx] = len(highGroup)
			highGroup = append(highGroup, idx)
		}
	}

	code := make([]int, len(bsToFrag))
	for bs, f := range bsToFrag {
		if bs&sharedBit != 0 {
			code[bs] = highPos[f]
		} else {
			code[bs] = lowPos[f]
		}
	}

	freeVars := append([]lutnet.VarID(nil), work.Vars[bn:]...)
	sharedVarID := work.Vars[bn-1-sharedIdx]
	vars := append(append(append([]lutnet.VarID(nil), freeVars...), selVars...), sharedVarID)
	t, _ := lutnet.NewTruthTable(vars)

	selWidth := len(selVars)
	selSize := 1 << uint(selWidth)
	freeSize := 1 << uint(len(freeVars))

	for lo := 0; lo < freeSize; lo++ {
		for shVal := 0; shVal < 2; shVal++ {
			group := lowGroup
			if shVal == 1 {
				group = highGroup
			}
			for sel := 0; sel < selSize; sel++ {
				row := (lo<<uint(selWidth)|sel)<<1 | shVal
				if sel >= len(group) {
					t.Set(row, lutnet.X)

					continue
				}
				t.Set(row, frags[group[sel]].get(lo))
			}
		}
	}

	return t, code
}

// forEachCombination calls yield once per bn-subset of [0, nv), as an
// ascending sorted index slice, stopping early if yield returns false.
func forEachCombination(nv, bn int, yield func([]int) bool) {
	if bn > nv {
		return
	}
	idx := make([]int, bn)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !yield(append([]int(nil), idx...)) {
			return
		}
		i := bn - 1
		for i >= 0 && idx[i] == nv-bn+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < bn; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
