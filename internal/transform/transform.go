// Package transform holds the small set of model-matrix helpers shared by
// scenes and the algebra smoke test.
package transform

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
)

// Model builds translate * rotate * scale. A zero axis or angle skips the rotation.
func Model(translate, axis mgl32.Vec3, angleDeg float32, scale mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.Translate3D(translate[0], translate[1], translate[2])
	if angleDeg != 0 && axis.Len() > 0 {
		m = m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(angleDeg), axis.Normalize()))
	}
	return m.Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// Apply transforms a point (w = 1).
func Apply(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// SmokeTest prints a few transform results, the classic transformations
// lesson as a command-line check that the math library links and behaves.
func SmokeTest(w io.Writer) error {
	vec := mgl32.Vec4{1, 0, 0, 1}
	trans := mgl32.Translate3D(1, 1, 0)
	moved := trans.Mul4x1(vec)
	if _, err := fmt.Fprintf(w, "translate (1,1,0) of %v = (%.1f, %.1f, %.1f)\n", vec.Vec3(), moved[0], moved[1], moved[2]); err != nil {
		return err
	}

	rs := Model(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 90, mgl32.Vec3{0.5, 0.5, 0.5})
	rotated := Apply(rs, mgl32.Vec3{1, 0, 0})
	if _, err := fmt.Fprintf(w, "rotate 90° about z, scale 0.5 of (1,0,0) = (%.1f, %.1f, %.1f)\n", rotated[0], rotated[1], rotated[2]); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "model matrix:\n%v", rs)
	return err
}
