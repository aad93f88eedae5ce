package lutnet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath-labs/toymap/lutnet"
)

func TestAcademicLibrary_Lookup(t *testing.T) {
	lib := lutnet.AcademicLibrary(4)
	v, err := lib.Lookup(3)
	require.NoError(t, err)
	assert.Equal(t, 4, v.Width)
	assert.Equal(t, 1, v.Cost)

	_, err = lib.Lookup(5)
	assert.ErrorIs(t, err, lutnet.ErrNoVariety)
}

func TestCommercialLibrary_GraduatedCost(t *testing.T) {
	lib := lutnet.CommercialLibrary(6)
	small, err := lib.Lookup(2)
	require.NoError(t, err)
	large, err := lib.Lookup(6)
	require.NoError(t, err)
	assert.Less(t, small.Cost, large.Cost)
	assert.Equal(t, 6, lib.MaxWidth())
}

func TestLibrary_Cost_UnsatisfiableIsSentinel(t *testing.T) {
	lib := lutnet.AcademicLibrary(3)
	assert.Equal(t, 1<<30, lib.Cost(10))
}
