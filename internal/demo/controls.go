package demo

import (
	"learngl/internal/camera"
	"learngl/internal/input"
	"learngl/internal/lighting"
	"learngl/internal/scene"
)

// actionState is the part of the input manager the controls read
type actionState interface {
	IsActive(action input.Action) bool
}

// Controls is the per-frame mutable demo state driven by input.
type Controls struct {
	Camera   *camera.Camera
	Switches lighting.Switches
	ADS      lighting.ADS
	Ramps    scene.Ramps
}

var movement = []struct {
	action input.Action
	dir    camera.Movement
}{
	{input.ActionMoveForward, camera.Forward},
	{input.ActionMoveBackward, camera.Backward},
	{input.ActionMoveLeft, camera.Left},
	{input.ActionMoveRight, camera.Right},
}

// Apply runs once per frame: it moves the camera for held movement keys and
// ramps every toggle coefficient down while its key is held and back up
// otherwise. It reports whether quit was requested.
func (c *Controls) Apply(in actionState, dt float32) bool {
	if in.IsActive(input.ActionQuit) {
		return true
	}

	for _, m := range movement {
		if in.IsActive(m.action) {
			c.Camera.ProcessKeyboard(m.dir, dt)
		}
	}

	light := c.Ramps.LightType
	term := c.Ramps.Term
	c.Switches.SwitchDirectional(rampStep(in, input.ActionDimDirectional, light))
	c.Switches.SwitchPoint(rampStep(in, input.ActionDimPoint, light))
	c.Switches.SwitchSpot(rampStep(in, input.ActionDimSpot, light))
	c.ADS.SwitchAmbient(rampStep(in, input.ActionDimAmbient, term))
	c.ADS.SwitchDiffuse(rampStep(in, input.ActionDimDiffuse, term))
	c.ADS.SwitchSpecular(rampStep(in, input.ActionDimSpecular, term))
	return false
}

func rampStep(in actionState, action input.Action, rate float32) float32 {
	if in.IsActive(action) {
		return -rate
	}
	return rate
}
