package lutnet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/toymap/lutnet"
)

func TestNewTruthTable_AllDontCare(t *testing.T) {
	tt, err := lutnet.NewTruthTable([]lutnet.VarID{0, 1})
	require.NoError(t, err)
	for row := 0; row < tt.Size(); row++ {
		assert.Equal(t, lutnet.X, tt.Get(row))
	}
}

func TestNewTruthTable_DuplicateVar(t *testing.T) {
	_, err := lutnet.NewTruthTable([]lutnet.VarID{0, 0})
	assert.ErrorIs(t, err, lutnet.ErrDuplicateVar)
}

func TestNewTruthTable_TooWide(t *testing.T) {
	vars := make([]lutnet.VarID, 21)
	for i := range vars {
		vars[i] = lutnet.VarID(i)
	}
	_, err := lutnet.NewTruthTable(vars)
	assert.ErrorIs(t, err, lutnet.ErrWidthTooLarge)
}

func TestTruthTable_SetGet(t *testing.T) {
	tt, err := lutnet.NewTruthTable([]lutnet.VarID{0, 1})
	require.NoError(t, err)
	tt.Set(0, lutnet.Zero)
	tt.Set(1, lutnet.One)
	assert.Equal(t, lutnet.Zero, tt.Get(0))
	assert.Equal(t, lutnet.One, tt.Get(1))
	assert.Equal(t, lutnet.X, tt.Get(2))
}

func TestTruthTable_Clone_Independent(t *testing.T) {
	tt, _ := lutnet.NewTruthTable([]lutnet.VarID{0})
	tt.Set(0, lutnet.One)
	clone := tt.Clone()
	clone.Set(0, lutnet.Zero)
	assert.Equal(t, lutnet.One, tt.Get(0))
	assert.Equal(t, lutnet.Zero, clone.Get(0))
}

func TestTruthTable_Equal(t *testing.T) {
	a, _ := lutnet.NewTruthTable([]lutnet.VarID{0, 1})
	b, _ := lutnet.NewTruthTable([]lutnet.VarID{0, 1})
	a.Set(2, lutnet.One)
	b.Set(2, lutnet.One)
	assert.True(t, a.Equal(b))
	b.Set(2, lutnet.Zero)
	assert.False(t, a.Equal(b))
}

// SwapVars on an AND-like table (row 11 is 1, all else don't-care) must
// keep the function's value under a relabeled input order: swapping the
// two variables of symmetric AND leaves every row unchanged (Equal itself
// reports false here, since the Vars order differs).
func TestTruthTable_SwapVars_Symmetric(t *testing.T) {
	tt, _ := lutnet.NewTruthTable([]lutnet.VarID{0, 1})
	tt.Set(0b11, lutnet.One)
	before := tt.Clone()
	tt.SwapVars(0, 1)
	for row := 0; row < tt.Size(); row++ {
		assert.Equal(t, before.Get(row), tt.Get(row), "row %d", row)
	}
	assert.Equal(t, []lutnet.VarID{1, 0}, tt.Vars)
}

// An asymmetric function (row where var0=0,var1=1 differs from var0=1,var1=0)
// must actually change after SwapVars.
func TestTruthTable_SwapVars_Asymmetric(t *testing.T) {
	tt, _ := lutnet.NewTruthTable([]lutnet.VarID{0, 1})
	tt.Set(0b01, lutnet.One) // var0=0, var1=1
	before := tt.Clone()
	tt.SwapVars(0, 1)
	assert.False(t, tt.Equal(before))
	assert.Equal(t, lutnet.One, tt.Get(0b10))
}

func TestTruthTable_VarIndex(t *testing.T) {
	tt, _ := lutnet.NewTruthTable([]lutnet.VarID{5, 7, 9})
	assert.Equal(t, 1, tt.VarIndex(7))
	assert.Equal(t, -1, tt.VarIndex(42))
}
