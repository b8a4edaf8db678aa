package lighting

// Clamp01 clamps v to [0, 1].
func Clamp01(v float32) float32 {
	return max(0, min(1, v))
}

// Ramp moves a toggle coefficient by percent/100 and clamps the result.
// Called once per frame, it fades a lighting term in or out over several frames.
func Ramp(v, percent float32) float32 {
	// explicit conversion prevents a fused multiply-add
	step := float32(percent * 0.01)
	return Clamp01(v + step)
}

// Switches blends each light type in or out of the final color.
type Switches struct {
	Directional float32
	Point       float32
	Spot        float32
}

// NewSwitches returns switches with every light type set to all.
func NewSwitches(all float32) Switches {
	return Switches{Directional: all, Point: all, Spot: all}
}

func (s *Switches) SwitchDirectional(percent float32) { s.Directional = Ramp(s.Directional, percent) }
func (s *Switches) SwitchPoint(percent float32)       { s.Point = Ramp(s.Point, percent) }
func (s *Switches) SwitchSpot(percent float32)        { s.Spot = Ramp(s.Spot, percent) }

// Sync pushes the switches to the active program.
func (s Switches) Sync(u Uniforms) {
	u.SetFloat("switches.directional", s.Directional)
	u.SetFloat("switches.point", s.Point)
	u.SetFloat("switches.spot", s.Spot)
}

// ADS scales the ambient, diffuse and specular Phong terms.
type ADS struct {
	Ambient  float32
	Diffuse  float32
	Specular float32
}

// NewADS returns coefficients with every term set to all.
func NewADS(all float32) ADS {
	return ADS{Ambient: all, Diffuse: all, Specular: all}
}

func (a *ADS) SwitchAmbient(percent float32)  { a.Ambient = Ramp(a.Ambient, percent) }
func (a *ADS) SwitchDiffuse(percent float32)  { a.Diffuse = Ramp(a.Diffuse, percent) }
func (a *ADS) SwitchSpecular(percent float32) { a.Specular = Ramp(a.Specular, percent) }

// Sync pushes the coefficients to the active program.
func (a ADS) Sync(u Uniforms) {
	u.SetFloat("ads.ambient", a.Ambient)
	u.SetFloat("ads.diffuse", a.Diffuse)
	u.SetFloat("ads.specular", a.Specular)
}
