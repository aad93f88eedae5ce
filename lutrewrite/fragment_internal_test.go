package lutrewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/toymap/lutnet"
)

// muxTable builds a 3-variable table over [sel, a, b] computing
// sel ? a : b, whose two bound-set cofactors (sel=0, sel=1) are genuinely
// distinct fragments.
func muxTable(t *testing.T) *lutnet.TruthTable {
	t.Helper()
	tt, err := lutnet.NewTruthTable([]lutnet.VarID{0, 1, 2})
	require.NoError(t, err)
	for row := 0; row < 8; row++ {
		sel := (row >> 2) & 1
		a := (row >> 1) & 1
		b := row & 1
		var out lutnet.TriState
		if sel == 1 {
			if a == 1 {
				out = lutnet.One
			}
		} else if b == 1 {
			out = lutnet.One
		}
		tt.Set(row, out)
	}

	return tt
}

func TestFindFragments_Mux_TwoDistinctFragments(t *testing.T) {
	tt := muxTable(t)
	frags, bsToFrag := findFragments(tt, 1)
	assert.Len(t, frags, 2)
	assert.NotEqual(t, bsToFrag[0], bsToFrag[1])
}

// constTable never depends on its bound-set variable: every cofactor must
// collapse into the same single fragment.
func TestFindFragments_ConstantInBoundSet_OneFragment(t *testing.T) {
	tt, err := lutnet.NewTruthTable([]lutnet.VarID{0, 1})
	require.NoError(t, err)
	tt.Set(0b01, lutnet.One)
	tt.Set(0b11, lutnet.One)
	frags, bsToFrag := findFragments(tt, 1)
	assert.Len(t, frags, 1)
	assert.Equal(t, bsToFrag[0], bsToFrag[1])
}

func TestFragment_MatchesAndAdjust(t *testing.T) {
	dcs := newBits(2)
	dcs.set(0, true)
	dcs.set(1, true)
	f := &Fragment{Values: newBits(2), DontCares: dcs}

	vals := newBits(2)
	vals.set(0, true)
	concreteDCs := newBits(2)
	concreteDCs.set(1, true) // row 1 stays don't-care in the candidate too
	assert.True(t, matches(f, vals, concreteDCs, 2))
	adjust(f, vals, concreteDCs, 2)
	assert.Equal(t, lutnet.One, f.get(0))
	assert.Equal(t, lutnet.X, f.get(1))

	conflicting := newBits(2)
	conflictingDCs := newBits(2)
	conflictingDCs.set(1, true)
	// row 0 now concrete 1 in f (after adjust f.get(0)==One), so a candidate
	// with row0 concrete 0 must NOT match.
	assert.False(t, matches(f, conflicting, conflictingDCs, 2))
}

func TestMinNLuts(t *testing.T) {
	assert.Equal(t, 1, minNLuts(4, 4))
	assert.Equal(t, 1, minNLuts(3, 4))
	assert.Equal(t, 2, minNLuts(7, 4))
	assert.Equal(t, 1, minNLuts(5, 6))
}

func TestLog2Ceil(t *testing.T) {
	assert.Equal(t, 0, log2Ceil(1))
	assert.Equal(t, 1, log2Ceil(2))
	assert.Equal(t, 2, log2Ceil(3))
	assert.Equal(t, 2, log2Ceil(4))
	assert.Equal(t, 3, log2Ceil(5))
}

func TestFindSharedVariable_NoneWhenAllFragmentsTouchAllVars(t *testing.T) {
	frags := []*Fragment{
		{BSHigh: 0b11, BSLow: 0b11},
		{BSHigh: 0b11, BSLow: 0b11},
	}
	_, ok := findSharedVariable(frags, 2, 1)
	assert.False(t, ok)
}

func TestFindSharedVariable_FindsSeparatingBit(t *testing.T) {
	// bit 0 splits the fragments: assignments 00 and 10 map to the first,
	// 01 and 11 to the second, so each half of bit 0 holds one fragment.
	frags := []*Fragment{
		{BSHigh: 0b10, BSLow: 0b11},
		{BSHigh: 0b11, BSLow: 0b10},
	}
	s, ok := findSharedVariable(frags, 2, 1)
	require.True(t, ok)
	assert.Equal(t, 0, s)
}

func TestExploreVarChoices_SmallTableIsBaseCase(t *testing.T) {
	tt, _ := lutnet.NewTruthTable([]lutnet.VarID{0, 1})
	nextID := 2
	plan, err := ExploreVarChoices(tt, 4, 4, 3, &nextID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Bn)
	assert.Equal(t, 1, plan.NLuts)
}

func TestExploreVarChoices_BudgetExceeded(t *testing.T) {
	vars := make([]lutnet.VarID, 10)
	for i := range vars {
		vars[i] = lutnet.VarID(i)
	}
	tt, _ := lutnet.NewTruthTable(vars)
	nextID := 10
	_, err := ExploreVarChoices(tt, 0, 4, 3, &nextID, false)
	assert.ErrorIs(t, err, ErrBudgetExceeded)
}

func TestForEachCombination_EnumeratesAllSubsets(t *testing.T) {
	var got [][]int
	forEachCombination(4, 2, func(c []int) bool {
		got = append(got, append([]int(nil), c...))

		return true
	})
	assert.Len(t, got, 6) // C(4,2)
	assert.Equal(t, []int{0, 1}, got[0])
	assert.Equal(t, []int{2, 3}, got[len(got)-1])
}
