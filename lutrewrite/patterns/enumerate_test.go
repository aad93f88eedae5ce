package patterns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/toymap/lutnet"
	"github.com/lvlath-labs/toymap/lutrewrite/patterns"
)

// buildChain builds leaf -> lut0 -> lut1 -> lut2 (three width-1 buffers).
func buildChain(t *testing.T) *lutnet.Network {
	t.Helper()
	net := lutnet.NewNetwork(1)
	buf, _ := lutnet.NewTruthTable([]lutnet.VarID{0})
	buf.Set(1, lutnet.One)

	prev := lutnet.Input{Leaf: true, Index: 0}
	for i := 0; i < 3; i++ {
		lut, err := lutnet.LUTFromTable(buf, []lutnet.Input{prev})
		require.NoError(t, err)
		idx := net.AddLUT(*lut)
		prev = lutnet.Input{Leaf: false, Index: idx}
	}
	net.Outputs = []lutnet.Input{prev}

	return net
}

func TestEnumerate_GrowsFromRootBackward(t *testing.T) {
	net := buildChain(t)
	var cuts []patterns.Cut
	patterns.Enumerate(net, 2, patterns.Limits{MaxNLuts: 3, MaxOuterFans: 1, MaxNLeaves: 9}, nil, func(c patterns.Cut) bool {
		cuts = append(cuts, c)

		return true
	})

	require.NotEmpty(t, cuts)
	// The trivial single-member cut {2} must appear.
	foundTrivial := false
	foundFull := false
	for _, c := range cuts {
		if len(c.Members) == 1 && c.Members[0] == 2 {
			foundTrivial = true
		}
		if len(c.Members) == 3 {
			foundFull = true
			assert.Equal(t, []int{0, 1, 2}, c.Members)
			assert.Len(t, c.Leaves, 1)
			assert.True(t, c.Leaves[0].Leaf)
		}
	}
	assert.True(t, foundTrivial)
	assert.True(t, foundFull)
}

func TestEnumerate_RespectsMaxNLuts(t *testing.T) {
	net := buildChain(t)
	var maxSeen int
	patterns.Enumerate(net, 2, patterns.Limits{MaxNLuts: 2, MaxOuterFans: 1, MaxNLeaves: 9}, nil, func(c patterns.Cut) bool {
		if len(c.Members) > maxSeen {
			maxSeen = len(c.Members)
		}

		return true
	})
	assert.LessOrEqual(t, maxSeen, 2)
}

func TestEnumerate_SkipsBlacklistedRoot(t *testing.T) {
	net := buildChain(t)
	called := false
	patterns.Enumerate(net, 2, patterns.Limits{MaxNLuts: 3, MaxOuterFans: 1, MaxNLeaves: 9}, map[int]bool{2: true}, func(c patterns.Cut) bool {
		called = true

		return true
	})
	assert.False(t, called)
}

func TestEnumerate_OuterFanoutDetected(t *testing.T) {
	// lut0 feeds both lut1 and the network output directly: absorbing lut0
	// into a cut rooted at lut1 gives lut0 an outer fanout (the output).
	net := lutnet.NewNetwork(1)
	buf, _ := lutnet.NewTruthTable([]lutnet.VarID{0})
	buf.Set(1, lutnet.One)
	lut0, _ := lutnet.LUTFromTable(buf, []lutnet.Input{{Leaf: true, Index: 0}})
	idx0 := net.AddLUT(*lut0)
	lut1, _ := lutnet.LUTFromTable(buf, []lutnet.Input{{Leaf: false, Index: idx0}})
	idx1 := net.AddLUT(*lut1)
	net.Outputs = []lutnet.Input{{Leaf: false, Index: idx1}, {Leaf: false, Index: idx0}}

	var sawOuterFan bool
	patterns.Enumerate(net, idx1, patterns.Limits{MaxNLuts: 2, MaxOuterFans: 1, MaxNLeaves: 9}, nil, func(c patterns.Cut) bool {
		if len(c.Members) == 2 && len(c.OuterFans) == 1 {
			sawOuterFan = true
		}

		return true
	})
	assert.True(t, sawOuterFan)
}
