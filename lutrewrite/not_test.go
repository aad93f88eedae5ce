package lutrewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/toymap/lutnet"
	"github.com/lvlath-labs/toymap/lutrewrite"
)

func inverterLUT(t *testing.T, in lutnet.Input) lutnet.LUT {
	t.Helper()
	tt, err := lutnet.NewTruthTable([]lutnet.VarID{0})
	require.NoError(t, err)
	tt.Set(0, lutnet.One)
	tt.Set(1, lutnet.Zero)
	lut, err := lutnet.LUTFromTable(tt, []lutnet.Input{in})
	require.NoError(t, err)

	return *lut
}

func TestLutNot_AbsorbsIntoSingleFanoutDriver(t *testing.T) {
	net := lutnet.NewNetwork(2)
	andTable, _ := lutnet.NewTruthTable([]lutnet.VarID{0, 1})
	andTable.Set(0b11, lutnet.One)
	andLUT, err := lutnet.LUTFromTable(andTable, []lutnet.Input{{Leaf: true, Index: 0}, {Leaf: true, Index: 1}})
	require.NoError(t, err)
	andIdx := net.AddLUT(*andLUT)

	invIdx := net.AddLUT(inverterLUT(t, lutnet.Input{Leaf: false, Index: andIdx}))
	net.Outputs = []lutnet.Input{{Leaf: false, Index: invIdx}}

	before11 := net.Simulate([]bool{true, true})
	before10 := net.Simulate([]bool{true, false})

	absorbed := lutrewrite.LutNot(net)
	assert.Equal(t, 1, absorbed)

	assert.Equal(t, before11, net.Simulate([]bool{true, true}))
	assert.Equal(t, before10, net.Simulate([]bool{true, false}))
}

func TestLutNot_NoInverterIsNoOp(t *testing.T) {
	net := lutnet.NewNetwork(1)
	buf, _ := lutnet.NewTruthTable([]lutnet.VarID{0})
	buf.Set(1, lutnet.One)
	lut, _ := lutnet.LUTFromTable(buf, []lutnet.Input{{Leaf: true, Index: 0}})
	idx := net.AddLUT(*lut)
	net.Outputs = []lutnet.Input{{Leaf: false, Index: idx}}

	assert.Equal(t, 0, lutrewrite.LutNot(net))
}
