package cutmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipeline_HasSixStagesWithExactAreaRepeated(t *testing.T) {
	p := Pipeline()
	assert.Len(t, p, 6)
	assert.Equal(t, "exact-area", p[4].Name())
	assert.Equal(t, "exact-area", p[5].Name())
}

func TestDepthEvalInitial_OrdersByDepthThenWidth(t *testing.T) {
	var ev depthEvalInitial
	a := Metrics{Depth: 1, CutWidth: 3}
	b := Metrics{Depth: 1, CutWidth: 2}
	assert.True(t, ev.Less(b, a))
	assert.False(t, ev.Less(a, b))
	assert.False(t, ev.Reject(&Scratch{}, Metrics{Depth: 1000}))
}

func TestDepthEvalInitial2_RejectsOverLimit(t *testing.T) {
	var ev depthEvalInitial2
	s := &Scratch{DepthLimit: 3}
	assert.True(t, ev.Reject(s, Metrics{Depth: 4}))
	assert.False(t, ev.Reject(s, Metrics{Depth: 3}))
}

func TestAreaEval_OrdersByAreaFlowFirst(t *testing.T) {
	var ev areaEvalInitial
	a := Metrics{AreaFlow: 1.0, EdgeFlow: 5}
	b := Metrics{AreaFlow: 2.0, EdgeFlow: 0}
	assert.True(t, ev.Less(a, b))
}

func TestExactAreaEval_OrdersByExactAreaFirst(t *testing.T) {
	var ev exactAreaEval
	a := Metrics{ExactArea: 2, CutWidth: 5}
	b := Metrics{ExactArea: 3, CutWidth: 1}
	assert.True(t, ev.Less(a, b))
}
