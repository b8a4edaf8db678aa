package lighting

import "github.com/go-gl/mathgl/mgl32"

// Uniforms is the subset of a shader program that lighting state is pushed into.
// Implementations must treat unknown names as a no-op.
type Uniforms interface {
	SetFloat(name string, value float32)
	SetVec3(name string, v mgl32.Vec3)
}
