package lutnet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/toymap/lutnet"
)

func and2LUT(t *testing.T) *lutnet.LUT {
	t.Helper()
	tt, err := lutnet.NewTruthTable([]lutnet.VarID{0, 1})
	require.NoError(t, err)
	tt.Set(0b11, lutnet.One)
	tt.Set(0b00, lutnet.Zero)
	tt.Set(0b01, lutnet.Zero)
	tt.Set(0b10, lutnet.Zero)
	lut, err := lutnet.LUTFromTable(tt, []lutnet.Input{{Leaf: true, Index: 0}, {Leaf: true, Index: 1}})
	require.NoError(t, err)

	return lut
}

func TestLUT_Eval_And(t *testing.T) {
	lut := and2LUT(t)
	assert.True(t, lut.Eval([]bool{true, true}))
	assert.False(t, lut.Eval([]bool{true, false}))
	assert.False(t, lut.Eval([]bool{false, false}))
}

func TestLUT_FlipOutput(t *testing.T) {
	lut := and2LUT(t)
	lut.FlipOutput()
	assert.False(t, lut.Eval([]bool{true, true}))
	assert.True(t, lut.Eval([]bool{true, false}))
}

func TestLUT_PermuteInputMask(t *testing.T) {
	tt, _ := lutnet.NewTruthTable([]lutnet.VarID{0, 1})
	tt.Set(0b01, lutnet.One) // f(0,1)=1, everything else 0
	lut, err := lutnet.LUTFromTable(tt, []lutnet.Input{{Leaf: true, Index: 0}, {Leaf: true, Index: 1}})
	require.NoError(t, err)

	lut.PermuteInputMask(0) // bit 0 = LSB = Inputs[1]
	// The input-1 half should now be swapped: f(0,0)=1 instead of f(0,1)=1.
	assert.True(t, lut.Eval([]bool{false, false}))
	assert.False(t, lut.Eval([]bool{false, true}))
}

func TestNewLUT_WidthMismatch(t *testing.T) {
	_, err := lutnet.NewLUT(2, []lutnet.Input{{Leaf: true, Index: 0}})
	assert.ErrorIs(t, err, lutnet.ErrWidthMismatch)
}
