package lutrewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/toymap/lutnet"
	"github.com/lvlath-labs/toymap/lutrewrite"
)

// chain builds a straight-line network of n width-1 buffer LUTs, leaf ->
// lut0 -> lut1 -> ... -> lut(n-1) -> output, so depth(i) == i+1 exactly.
func chain(t *testing.T, n int) *lutnet.Network {
	t.Helper()
	net := lutnet.NewNetwork(1)
	buf, _ := lutnet.NewTruthTable([]lutnet.VarID{0})
	buf.Set(1, lutnet.One)

	prev := lutnet.Input{Leaf: true, Index: 0}
	for i := 0; i < n; i++ {
		lut, err := lutnet.LUTFromTable(buf, []lutnet.Input{prev})
		require.NoError(t, err)
		idx := net.AddLUT(*lut)
		prev = lutnet.Input{Leaf: false, Index: idx}
	}
	net.Outputs = []lutnet.Input{prev}

	return net
}

func TestComputeDepth_Chain(t *testing.T) {
	net := chain(t, 3)
	report, err := lutrewrite.ComputeDepth(net, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, report.MaxD)
	assert.Equal(t, 3, report.Target)
	for i, cell := range report.Cells {
		assert.Equal(t, i+1, cell.Depth)
		assert.True(t, cell.Critical)
	}
}

func TestComputeDepth_TargetOverrideBelowAttained_FallsBack(t *testing.T) {
	net := chain(t, 3)
	report, err := lutrewrite.ComputeDepth(net, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Target)
}

func TestComputeDepth_TargetOverrideAboveAttained_RelaxesEnvelope(t *testing.T) {
	net := chain(t, 2)
	report, err := lutrewrite.ComputeDepth(net, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Target)
	assert.False(t, report.Cells[0].Critical)
}

func TestComputeDepth_NilNetwork(t *testing.T) {
	_, err := lutrewrite.ComputeDepth(nil, 0, nil)
	assert.ErrorIs(t, err, lutrewrite.ErrNetworkNil)
}
