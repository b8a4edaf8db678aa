package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp01(t *testing.T) {
	assert.Equal(t, float32(0), Clamp01(-0.5))
	assert.Equal(t, float32(1), Clamp01(1.5))
	assert.Equal(t, float32(0.25), Clamp01(0.25))
}

func TestRampMonotonicAndBounded(t *testing.T) {
	for _, v := range []float32{0, 0.1, 0.5, 0.99, 1} {
		prev := Ramp(v, -300)
		for p := float32(-300); p <= 300; p += 0.5 {
			got := Ramp(v, p)
			assert.GreaterOrEqual(t, got, float32(0))
			assert.LessOrEqual(t, got, float32(1))
			assert.GreaterOrEqual(t, got, prev, "v=%v p=%v", v, p)
			prev = got
		}
	}
}

func TestRampRoundTrip(t *testing.T) {
	// +100 then -100 lands on 0 from anywhere: the first step saturates at 1.
	for _, v := range []float32{0, 0.3, 1} {
		assert.Equal(t, float32(0), Ramp(Ramp(v, 100), -100))
		assert.Equal(t, float32(1), Ramp(Ramp(v, -100), 100))
	}
	// Away from the bounds small steps undo each other.
	assert.InDelta(t, 0.5, Ramp(Ramp(0.5, 10), -10), 1e-6)
}

func TestSwitchesRampPerFrame(t *testing.T) {
	s := NewSwitches(1)
	for i := 0; i < 50; i++ {
		s.SwitchPoint(-1)
	}
	assert.InDelta(t, 0.5, s.Point, 1e-4)
	assert.Equal(t, float32(1), s.Directional)
	assert.Equal(t, float32(1), s.Spot)

	for i := 0; i < 200; i++ {
		s.SwitchPoint(-1)
		s.SwitchSpot(-1)
		s.SwitchDirectional(1)
	}
	assert.Equal(t, float32(0), s.Point)
	assert.Equal(t, float32(0), s.Spot)
	assert.Equal(t, float32(1), s.Directional)
}

func TestADSInstantToggle(t *testing.T) {
	a := NewADS(1)
	a.SwitchAmbient(-100)
	a.SwitchDiffuse(-100)
	assert.Equal(t, ADS{Ambient: 0, Diffuse: 0, Specular: 1}, a)

	a.SwitchAmbient(100)
	a.SwitchSpecular(-50)
	assert.Equal(t, float32(1), a.Ambient)
	assert.Equal(t, float32(0), a.Diffuse)
	assert.InDelta(t, 0.5, a.Specular, 1e-6)
}

func TestSyncUniformNames(t *testing.T) {
	rec := newRecorder()
	NewSwitches(0.25).Sync(rec)
	ADS{Ambient: 1, Diffuse: 0.5, Specular: 0}.Sync(rec)

	assert.Equal(t, map[string]float32{
		"switches.directional": 0.25,
		"switches.point":       0.25,
		"switches.spot":        0.25,
		"ads.ambient":          1,
		"ads.diffuse":          0.5,
		"ads.specular":         0,
	}, rec.floats)
}
