package demo

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"learngl/internal/graphics"
)

var hudColor = mgl32.Vec3{0.9, 0.9, 0.6}

// hudLines describes the toggle coefficients and camera for the overlay.
func hudLines(c *Controls) []string {
	pct := func(v float32) int { return int(v*100 + 0.5) }
	p := c.Camera.Position
	return []string{
		fmt.Sprintf("[I] dir %3d%%  [O] point %3d%%  [P] spot %3d%%",
			pct(c.Switches.Directional), pct(c.Switches.Point), pct(c.Switches.Spot)),
		fmt.Sprintf("[J] ambient %3d%%  [K] diffuse %3d%%  [L] specular %3d%%",
			pct(c.ADS.Ambient), pct(c.ADS.Diffuse), pct(c.ADS.Specular)),
		fmt.Sprintf("pos %.1f %.1f %.1f  yaw %.0f  pitch %.0f  fov %.0f",
			p.X(), p.Y(), p.Z(), c.Camera.Yaw, c.Camera.Pitch, c.Camera.Zoom),
	}
}

// newHUD builds a text renderer from the built-in mono face.
func newHUD(width, height int) (*graphics.TextRenderer, error) {
	face, err := graphics.DefaultFace(16)
	if err != nil {
		return nil, err
	}
	defer face.Close()
	return graphics.NewTextRenderer(graphics.BakeAtlas(face, 512), width, height)
}
