package hittest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/dropzone/layout"
	"github.com/lixenwraith/dropzone/vmath"
)

func twoZones() *layout.Registry {
	reg := layout.NewRegistry()
	reg.Register("A", vmath.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	reg.Register("B", vmath.Rect{X: 0, Y: 200, Width: 100, Height: 100})
	return reg
}

func TestResolveWorkedExample(t *testing.T) {
	reg := twoZones()

	res := Resolve(vmath.Point{X: 40, Y: 40}, reg, 50)
	require.True(t, res.Found)
	assert.Equal(t, layout.TargetID("A"), res.Target)
	assert.True(t, res.Contains)
	assert.InDelta(t, 14.14, res.Distance, 0.01)

	res = Resolve(vmath.Point{X: 40, Y: 180}, reg, 50)
	assert.False(t, res.Found)
}

func TestResolveNearestCandidateBeatsContainment(t *testing.T) {
	reg := layout.NewRegistry()
	// Large zone whose center is far from the release point
	reg.Register("wide", vmath.Rect{X: 0, Y: 0, Width: 400, Height: 100})
	// Small zone just outside the point but with a close center
	reg.Register("near", vmath.Rect{X: 360, Y: 100, Width: 20, Height: 20})

	res := Resolve(vmath.Point{X: 370, Y: 95}, reg, 30)
	require.True(t, res.Found)
	assert.Equal(t, layout.TargetID("near"), res.Target)
	assert.False(t, res.Contains)
}

func TestResolveContainmentAdmitsFarCenter(t *testing.T) {
	reg := layout.NewRegistry()
	reg.Register("wide", vmath.Rect{X: 0, Y: 0, Width: 400, Height: 100})

	res := Resolve(vmath.Point{X: 5, Y: 5}, reg, 10)
	require.True(t, res.Found)
	assert.Equal(t, layout.TargetID("wide"), res.Target)
	assert.Greater(t, res.Distance, 10.0)
}

func TestResolveTieKeepsRegistryOrder(t *testing.T) {
	reg := layout.NewRegistry()
	reg.Register("left", vmath.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	reg.Register("right", vmath.Rect{X: 20, Y: 0, Width: 10, Height: 10})

	for i := 0; i < 10; i++ {
		res := Resolve(vmath.Point{X: 15, Y: 5}, reg, 20)
		require.True(t, res.Found)
		assert.Equal(t, layout.TargetID("left"), res.Target)
	}
}

func TestResolveIgnoresUnmeasured(t *testing.T) {
	reg := layout.NewRegistry()
	res := Resolve(vmath.Point{}, reg, 1000)
	assert.False(t, res.Found)

	res = ResolveNearest(vmath.Point{}, reg)
	assert.False(t, res.Found)
}

func TestResolveNearestNoThreshold(t *testing.T) {
	reg := twoZones()
	res := ResolveNearest(vmath.Point{X: 40, Y: 180}, reg)
	require.True(t, res.Found)
	assert.Equal(t, layout.TargetID("B"), res.Target)
}

func TestThreshold(t *testing.T) {
	assert.InDelta(t, 70.0, Threshold(100, DefaultThresholdRatio), 1e-9)
	assert.Zero(t, Threshold(0, 0.7))
	assert.Zero(t, Threshold(10, -1))
}

func TestCandidates(t *testing.T) {
	cs := Candidates(vmath.Point{X: 40, Y: 40}, twoZones())
	require.Len(t, cs, 2)
	assert.True(t, cs[0].Contains)
	assert.False(t, cs[1].Contains)
	assert.InDelta(t, 210.24, cs[1].Distance, 0.01)
}
