package camera

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func assertOrthonormal(t *testing.T, c *Camera) {
	t.Helper()
	assert.InDelta(t, 1, c.Front.Len(), tol)
	assert.InDelta(t, 1, c.Right.Len(), tol)
	assert.InDelta(t, 1, c.Up.Len(), tol)
	assert.InDelta(t, 0, c.Front.Dot(c.Right), tol)
	assert.InDelta(t, 0, c.Front.Dot(c.Up), tol)
	assert.InDelta(t, 0, c.Right.Dot(c.Up), tol)
}

// float32 trig leaves ~4e-8 where exact zeros are expected, so compare with an absolute tolerance
func assertVec3Near(t *testing.T, want, got mgl32.Vec3, name string) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "%s[%d] = %v", name, i, got)
	}
}

func assertMat4Near(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "element %d\n%v\nwant\n%v", i, got, want)
	}
}

func TestNewLooksDownNegativeZ(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 3})
	assertVec3Near(t, mgl32.Vec3{0, 0, -1}, c.Front, "front")
	assertVec3Near(t, mgl32.Vec3{0, 1, 0}, c.Up, "up")
	assertVec3Near(t, mgl32.Vec3{1, 0, 0}, c.Right, "right")
	assertOrthonormal(t, c)
}

func TestViewMatrixIsTranslatedIdentity(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 3})
	want := mgl32.Translate3D(0, 0, -3)
	assertMat4Near(t, want, c.ViewMatrix())

	// Same result from an explicit position/front/up triple
	explicit := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 1, 0})
	assertMat4Near(t, want, explicit)
}

func TestProcessKeyboard(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 3})
	c.ProcessKeyboard(Forward, 1)
	assert.InDelta(t, 3-DefaultSpeed, c.Position.Z(), tol)

	c.ProcessKeyboard(Backward, 1)
	assert.InDelta(t, 3, c.Position.Z(), tol)

	c.ProcessKeyboard(Right, 0.5)
	assert.InDelta(t, DefaultSpeed*0.5, c.Position.X(), tol)

	c.ProcessKeyboard(Left, 0.5)
	assert.InDelta(t, 0, c.Position.X(), tol)
}

func TestPitchStaysConstrained(t *testing.T) {
	c := New(mgl32.Vec3{})
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		dx := (rng.Float32() - 0.5) * 4000
		dy := (rng.Float32() - 0.5) * 4000
		c.ProcessMouseMovement(dx, dy, true)
		assert.Less(t, c.Pitch, float32(MaxPitch))
		assert.Greater(t, c.Pitch, float32(-MaxPitch))
	}
	assertOrthonormal(t, c)

	c.ProcessMouseMovement(0, 10000, true)
	assert.Less(t, c.Pitch, float32(MaxPitch))
	assert.InDelta(t, MaxPitch, c.Pitch, 1e-3)
	assertOrthonormal(t, c)

	c.ProcessMouseMovement(0, -1e6, true)
	assert.Greater(t, c.Pitch, float32(-MaxPitch))
	assert.InDelta(t, -MaxPitch, c.Pitch, 1e-3)
}

func TestPitchUnconstrained(t *testing.T) {
	c := New(mgl32.Vec3{})
	c.ProcessMouseMovement(0, 1000, false)
	assert.InDelta(t, 100, c.Pitch, tol)
}

func TestZoomStaysInRange(t *testing.T) {
	c := New(mgl32.Vec3{})
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		c.ProcessMouseScroll((rng.Float32() - 0.5) * 20)
		assert.GreaterOrEqual(t, c.Zoom, float32(MinZoom))
		assert.LessOrEqual(t, c.Zoom, float32(MaxZoom))
	}

	c.ProcessMouseScroll(100)
	assert.Equal(t, float32(MinZoom), c.Zoom)
	c.ProcessMouseScroll(-100)
	assert.Equal(t, float32(MaxZoom), c.Zoom)
}

func TestMouseTracker(t *testing.T) {
	m := NewMouseTracker(400, 300)

	dx, dy := m.Offset(500, 100)
	assert.Zero(t, dx, "first sample is swallowed")
	assert.Zero(t, dy)

	dx, dy = m.Offset(510, 90)
	assert.Equal(t, float32(10), dx)
	assert.Equal(t, float32(10), dy, "y is reversed")

	m.Reset()
	dx, dy = m.Offset(0, 0)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}
