package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a keyboard movement intent
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

// Defaults match the classic fly-through camera.
const (
	DefaultYaw         = -90.0
	DefaultPitch       = 0.0
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
	DefaultZoom        = 45.0

	MaxPitch = 89.0
	MinZoom  = 1.0
	MaxZoom  = 45.0

	NearPlane = 0.1
	FarPlane  = 100.0
)

// pitchLimit is the largest float32 below MaxPitch; constrained pitch stays inside the open interval.
var pitchLimit = math.Nextafter32(MaxPitch, 0)

// Camera is a yaw/pitch fly camera. Front, Right and Up are derived from
// Yaw and Pitch and are kept orthonormal after every mutation.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3

	// Euler angles in degrees
	Yaw   float32
	Pitch float32

	MovementSpeed    float32
	MouseSensitivity float32
	// Zoom is the vertical field of view in degrees
	Zoom float32
}

// New creates a camera at position looking down -Z.
func New(position mgl32.Vec3) *Camera {
	c := &Camera{
		Position:         position,
		WorldUp:          mgl32.Vec3{0, 1, 0},
		Yaw:              DefaultYaw,
		Pitch:            DefaultPitch,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		Zoom:             DefaultZoom,
	}
	c.updateVectors()
	return c
}

// ViewMatrix returns the look-at matrix for the current position and front vector.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// ProjectionMatrix uses Zoom as the vertical field of view.
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, NearPlane, FarPlane)
}

// ProcessKeyboard moves the camera along its basis, scaled by frame time.
func (c *Camera) ProcessKeyboard(dir Movement, dt float32) {
	velocity := c.MovementSpeed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
}

// ProcessMouseMovement applies mouse pixel offsets to yaw and pitch.
func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	c.Yaw += xoffset * c.MouseSensitivity
	c.Pitch += yoffset * c.MouseSensitivity

	// Constrain pitch so the view never flips over the pole
	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -pitchLimit, pitchLimit)
	}
	c.updateVectors()
}

// ProcessMouseScroll narrows or widens the field of view.
func (c *Camera) ProcessMouseScroll(yoffset float32) {
	c.Zoom = mgl32.Clamp(c.Zoom-yoffset, MinZoom, MaxZoom)
}

func (c *Camera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
