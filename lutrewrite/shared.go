// Package lutrewrite — shared.go implements shared-variable detection: a
// bound-set variable that, if pulled out of the selector and wired
// directly into the output stage instead, saves one selector LUT (each
// half of the fragments needs one selector code bit fewer).
//
// findSharedVariable's result is wired into tryPlacement (varchoice.go),
// gated by Options.SearchShared: when a shared variable is found, the
// bound set still has bn variables but only nluts-1 selector LUTs are
// built, because a plain bn-1-sized bound set cannot reproduce a
// decomposition where one variable appears in both the upper and lower
// partitions simultaneously — exploring every bn in
// [lut_min, lut_size] does not substitute for it.
package lutrewrite

// findSharedVariable: variable s in [0, bn) is shared iff at most
// 2^(nluts-1) fragments have BSHigh bit s set AND at most
// 2^(nluts-1) have BSLow bit s set. s is an assignment-bit position, the
// space BSHigh/BSLow are recorded in by findFragments (bit s carries the
// value of the table's Vars[bn-1-s]).
func findSharedVariable(frags []*Fragment, bn, nluts int) (s int, ok bool) {
	if nluts == 0 {
		return 0, false
	}
	threshold := 1 << uint(nluts-1)
	for cand := 0; cand < bn; cand++ {
		bit := 1 << uint(cand)
		highCount, lowCount := 0, 0
		for _, f := range frags {
			if f.BSHigh&bit != 0 {
				highCount++
			}
			if f.BSLow&bit != 0 {
				lowCount++
			}
		}
		if highCount <= threshold && lowCount <= threshold {
			return cand, true
		}
	}

	return 0, false
}
