package lighting

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Phong holds the color of each lighting term.
type Phong struct {
	Ambient  mgl32.Vec3 `yaml:"ambient" toml:"ambient"`
	Diffuse  mgl32.Vec3 `yaml:"diffuse" toml:"diffuse"`
	Specular mgl32.Vec3 `yaml:"specular" toml:"specular"`
}

func (p Phong) sync(u Uniforms, prefix string) {
	u.SetVec3(prefix+".ambient", p.Ambient)
	u.SetVec3(prefix+".diffuse", p.Diffuse)
	u.SetVec3(prefix+".specular", p.Specular)
}

// Attenuation is the distance falloff 1/(constant + linear*d + quadratic*d^2).
type Attenuation struct {
	Constant  float32 `yaml:"constant" toml:"constant"`
	Linear    float32 `yaml:"linear" toml:"linear"`
	Quadratic float32 `yaml:"quadratic" toml:"quadratic"`
}

// Factor returns the intensity multiplier at distance d.
func (a Attenuation) Factor(d float32) float32 {
	return 1 / (a.Constant + a.Linear*d + a.Quadratic*d*d)
}

func (a Attenuation) sync(u Uniforms, prefix string) {
	u.SetFloat(prefix+".constant", a.Constant)
	u.SetFloat(prefix+".linear", a.Linear)
	u.SetFloat(prefix+".quadratic", a.Quadratic)
}

// DirLight is a light infinitely far away, e.g. the sun.
type DirLight struct {
	Direction mgl32.Vec3 `yaml:"direction" toml:"direction"`
	Phong     `yaml:",inline"`
}

// PointLight shines in every direction from a position.
type PointLight struct {
	Position    mgl32.Vec3 `yaml:"position" toml:"position"`
	Phong       `yaml:",inline"`
	Attenuation `yaml:",inline"`
}

// SpotLight is a cone of light. Cut-off angles are in degrees.
type SpotLight struct {
	Position    mgl32.Vec3 `yaml:"-" toml:"-"`
	Direction   mgl32.Vec3 `yaml:"-" toml:"-"`
	Phong       `yaml:",inline"`
	Attenuation `yaml:",inline"`
	CutOff      float32 `yaml:"cut_off" toml:"cut_off"`
	OuterCutOff float32 `yaml:"outer_cut_off" toml:"outer_cut_off"`
}

// MaxPointLights is the size of the pointLights array in the lighting shader.
const MaxPointLights = 4

// Rig is the full light configuration of a scene.
type Rig struct {
	Dir       DirLight     `yaml:"directional" toml:"directional"`
	Points    []PointLight `yaml:"points" toml:"points"`
	Spot      SpotLight    `yaml:"spot" toml:"spot"`
	Shininess float32      `yaml:"shininess" toml:"shininess"`
}

// DefaultRig is the classic multiple-lights setup: a dim sun, four white
// point lights and a flashlight attached to the camera.
func DefaultRig() Rig {
	pointPhong := Phong{
		Ambient:  mgl32.Vec3{0.05, 0.05, 0.05},
		Diffuse:  mgl32.Vec3{0.8, 0.8, 0.8},
		Specular: mgl32.Vec3{1, 1, 1},
	}
	att := Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032}

	positions := []mgl32.Vec3{
		{0.7, 0.2, 2.0},
		{2.3, -3.3, -4.0},
		{-4.0, 2.0, -12.0},
		{0.0, 0.0, -3.0},
	}
	points := make([]PointLight, len(positions))
	for i, p := range positions {
		points[i] = PointLight{Position: p, Phong: pointPhong, Attenuation: att}
	}

	return Rig{
		Dir: DirLight{
			Direction: mgl32.Vec3{-0.2, -1.0, -0.3},
			Phong: Phong{
				Ambient:  mgl32.Vec3{0.05, 0.05, 0.05},
				Diffuse:  mgl32.Vec3{0.4, 0.4, 0.4},
				Specular: mgl32.Vec3{0.5, 0.5, 0.5},
			},
		},
		Points: points,
		Spot: SpotLight{
			Phong: Phong{
				Ambient:  mgl32.Vec3{0, 0, 0},
				Diffuse:  mgl32.Vec3{1, 1, 1},
				Specular: mgl32.Vec3{1, 1, 1},
			},
			Attenuation: att,
			CutOff:      12.5,
			OuterCutOff: 15.0,
		},
		Shininess: 32,
	}
}

// Configure pushes every static light uniform. The spotlight pose is pushed
// as well so the first frame is correct before TrackCamera runs.
func (r Rig) Configure(u Uniforms) {
	u.SetVec3("dirLight.direction", r.Dir.Direction)
	r.Dir.Phong.sync(u, "dirLight")

	for i, p := range r.Points {
		prefix := fmt.Sprintf("pointLights[%d]", i)
		u.SetVec3(prefix+".position", p.Position)
		p.Phong.sync(u, prefix)
		p.Attenuation.sync(u, prefix)
	}

	r.updateSpot(u)
	r.Spot.Phong.sync(u, "spotLight")
	r.Spot.Attenuation.sync(u, "spotLight")
	u.SetFloat("spotLight.cutOff", cosDeg(r.Spot.CutOff))
	u.SetFloat("spotLight.outerCutOff", cosDeg(r.Spot.OuterCutOff))

	u.SetFloat("material.shininess", r.Shininess)
}

// TrackCamera attaches the spotlight to the camera and pushes its new pose.
func (r *Rig) TrackCamera(u Uniforms, position, front mgl32.Vec3) {
	r.Spot.Position = position
	r.Spot.Direction = front
	r.updateSpot(u)
}

func (r Rig) updateSpot(u Uniforms) {
	u.SetVec3("spotLight.position", r.Spot.Position)
	u.SetVec3("spotLight.direction", r.Spot.Direction)
}

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(deg))))
}
