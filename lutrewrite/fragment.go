// Package lutrewrite — fragment.go implements fragment enumeration:
// splitting a truth table into 2^bn bound-set cofactors and collapsing
// them into equivalence classes under don't-care-aware comparison.
//
// Fragments tighten only their own don't-cares, never their
// already-settled values, and earlier fragments are preferred greedily in
// bs-assignment (input) order — a fresh cofactor joins the first
// compatible existing fragment it finds, scanning in the order fragments
// were created.
package lutrewrite

import "github.com/lvlath-labs/toymap/lutnet"

// Fragment is one equivalence class of bound-set cofactors: a partial
// sub-table (values/dontcares over the "free" — non-bound-set —
// variables) plus the set of bound-set assignments (bs) that mapped to it,
// tracked as two bn-bit masks: BSHigh has bit s set if some mapping bs had
// bit s = 1, BSLow has bit s set if some mapping bs had bit s = 0.
type Fragment struct {
	Values    bits
	DontCares bits
	BSHigh    int
	BSLow     int
}

func (f *Fragment) get(i int) lutnet.TriState {
	if f.DontCares.get(i) {
		return lutnet.X
	}
	if f.Values.get(i) {
		return lutnet.One
	}

	return lutnet.Zero
}

// matches reports whether candidate (vals/dcs, freeSize rows) is
// don't-care-compatible with f: every row where both sides are concrete
// must agree.
func matches(f *Fragment, vals, dcs bits, freeSize int) bool {
	for i := 0; i < freeSize; i++ {
		if f.DontCares.get(i) || dcs.get(i) {
			continue
		}
		if f.Values.get(i) != vals.get(i) {
			return false
		}
	}

	return true
}

// adjust tightens f in place: wherever f was don't-care and candidate is
// concrete, f adopts candidate's value and clears its own don't-care bit.
// f's already-concrete rows are never touched.
func adjust(f *Fragment, vals, dcs bits, freeSize int) {
	for i := 0; i < freeSize; i++ {
		if f.DontCares.get(i) && !dcs.get(i) {
			f.DontCares.set(i, false)
			f.Values.set(i, vals.get(i))
		}
	}
}

// findFragments expects table to already be arranged so that its first bn
// variables (the most significant bn bits of each row) are
// the bound set. Returns the fragment list (in creation order) and, for
// every bound-set assignment bs in [0, 2^bn), the index of the fragment it
// mapped to.
func findFragments(table *lutnet.TruthTable, bn int) (frags []*Fragment, bsToFrag []int) {
	n := table.NumVars()
	freeWidth := n - bn
	freeSize := 1 << uint(freeWidth)
	bsCount := 1 << uint(bn)

	bsToFrag = make([]int, bsCount)

	for bs := 0; bs < bsCount; bs++ {
		vals := newBits(freeSize)
		dcs := newBits(freeSize)
		base := bs << uint(freeWidth)
		for lo := 0; lo < freeSize; lo++ {
			switch table.Get(base | lo) {
			case lutnet.One:
				vals.set(lo, true)
			case lutnet.X:
				dcs.set(lo, true)
			}
		}

		matched := -1
		for idx, f := range frags {
			if matches(f, vals, dcs, freeSize) {
				matched = idx

				break
			}
		}
		if matched == -1 {
			frags = append(frags, &Fragment{Values: vals, DontCares: dcs})
			matched = len(frags) - 1
		} else {
			adjust(frags[matched], vals, dcs, freeSize)
		}

		bsToFrag[bs] = matched
		mask := bsCount - 1
		frags[matched].BSHigh |= bs
		frags[matched].BSLow |= (^bs) & mask
	}

	return frags, bsToFrag
}
