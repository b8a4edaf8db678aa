package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHUDLines(t *testing.T) {
	c := newControls()
	c.Switches.Point = 0.5
	c.ADS.Specular = 0

	lines := hudLines(c)
	require.Len(t, lines, 3)
	assert.Equal(t, "[I] dir 100%  [O] point  50%  [P] spot 100%", lines[0])
	assert.Equal(t, "[J] ambient 100%  [K] diffuse 100%  [L] specular   0%", lines[1])
	assert.Equal(t, "pos 0.0 0.0 3.0  yaw -90  pitch 0  fov 45", lines[2])
}
