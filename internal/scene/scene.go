// Package scene describes what a demo draws: shader program, objects with
// their instances, the light rig and the toggle ramp rates.
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"learngl/internal/config"
	"learngl/internal/lighting"
	"learngl/internal/transform"
)

// BuiltinCube is the only builtin mesh
const BuiltinCube = "cube"

var (
	ErrNoObjects      = errors.New("scene has no objects")
	ErrAmbiguousMesh  = errors.New("object must set exactly one of model or builtin")
	ErrUnknownBuiltin = errors.New("unknown builtin mesh")
	ErrTooManyLights  = fmt.Errorf("more than %d point lights", lighting.MaxPointLights)
	ErrSpotCone       = errors.New("spot outer_cut_off must be wider than cut_off")
)

// Descriptor is a complete scene
type Descriptor struct {
	Name       string          `yaml:"name" toml:"name"`
	ClearColor mgl32.Vec4      `yaml:"clear_color" toml:"clear_color"`
	Shader     ShaderPaths     `yaml:"shader" toml:"shader"`
	FlipUV     bool            `yaml:"flip_textures" toml:"flip_textures"`
	Objects    []Object        `yaml:"objects" toml:"objects"`
	Lights     *lighting.Rig   `yaml:"lights" toml:"lights"`
	Ramps      Ramps           `yaml:"ramps" toml:"ramps"`
	Camera     CameraPlacement `yaml:"camera" toml:"camera"`
}

// ShaderPaths locates the lighting program sources
type ShaderPaths struct {
	Vertex   string `yaml:"vertex" toml:"vertex"`
	Fragment string `yaml:"fragment" toml:"fragment"`
}

// CameraPlacement is the starting camera position
type CameraPlacement struct {
	Position *mgl32.Vec3 `yaml:"position" toml:"position"`
}

// Ramps are the per-frame percent steps applied while a toggle key is held or released.
type Ramps struct {
	// LightType applies to the directional/point/spot switches.
	LightType float32 `yaml:"light_type" toml:"light_type"`
	// Term applies to the ambient/diffuse/specular coefficients.
	Term float32 `yaml:"term" toml:"term"`
}

// Object is a mesh source drawn once per instance
type Object struct {
	Name      string     `yaml:"name" toml:"name"`
	Model     string     `yaml:"model" toml:"model"`
	Builtin   string     `yaml:"builtin" toml:"builtin"`
	Diffuse   string     `yaml:"diffuse" toml:"diffuse"`
	Specular  string     `yaml:"specular" toml:"specular"`
	Instances []Instance `yaml:"instances" toml:"instances"`
}

// Instance places one copy of an object in the world
type Instance struct {
	Translate  mgl32.Vec3  `yaml:"translate" toml:"translate"`
	RotateAxis mgl32.Vec3  `yaml:"rotate_axis" toml:"rotate_axis"`
	RotateDeg  float32     `yaml:"rotate_deg" toml:"rotate_deg"`
	Scale      *mgl32.Vec3 `yaml:"scale" toml:"scale"`
}

// ModelMatrix returns translate * rotate * scale. A missing scale means 1.
func (in Instance) ModelMatrix() mgl32.Mat4 {
	scale := mgl32.Vec3{1, 1, 1}
	if in.Scale != nil {
		scale = *in.Scale
	}
	return transform.Model(in.Translate, in.RotateAxis, in.RotateDeg, scale)
}

// Default is the multiple-lights lesson: the backpack model at the origin
// lit by the default rig.
func Default() *Descriptor {
	rig := lighting.DefaultRig()
	d := &Descriptor{
		Name:       "multiple-lights",
		ClearColor: mgl32.Vec4{0.05, 0.05, 0.05, 1},
		Shader: ShaderPaths{
			Vertex:   "shaders/multiple-lights/vertex.glsl",
			Fragment: "shaders/multiple-lights/fragment.glsl",
		},
		FlipUV: true,
		Objects: []Object{{
			Name:      "backpack",
			Model:     "backpack/backpack.obj",
			Instances: []Instance{{}},
		}},
		Lights: &rig,
	}
	d.applyDefaults()
	return d
}

// Load reads a YAML or TOML descriptor. Unset sections and unset light
// fields fall back to the defaults.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	// Decode over the default rig so a partial lights section keeps the rest.
	// Points are seeded afterwards: a points list in the file replaces them
	// as a whole.
	rig := lighting.DefaultRig()
	defaultPoints := rig.Points
	rig.Points = nil
	d := Descriptor{Lights: &rig}
	if err := config.Decode(path, data, &d); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if d.Lights != nil && d.Lights.Points == nil {
		d.Lights.Points = defaultPoints
	}
	d.applyDefaults()
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return &d, nil
}

// ForSettings loads the configured scene, or the default scene if none is set.
// Asset paths in the result are resolved against the settings' asset root.
func ForSettings(s config.Settings) (*Descriptor, error) {
	var d *Descriptor
	if s.Scene == "" {
		d = Default()
	} else {
		var err error
		if d, err = Load(s.Resolve(s.Scene)); err != nil {
			return nil, err
		}
	}
	d.ResolvePaths(s.Resolve)
	return d, nil
}

// Validate checks each object names exactly one mesh source, the rig fits
// the shader's point light array and the spot cone has a soft edge.
func (d *Descriptor) Validate() error {
	if len(d.Objects) == 0 {
		return ErrNoObjects
	}
	if d.Lights != nil {
		if len(d.Lights.Points) > lighting.MaxPointLights {
			return ErrTooManyLights
		}
		if d.Lights.Spot.OuterCutOff <= d.Lights.Spot.CutOff {
			return fmt.Errorf("%w (%g <= %g)", ErrSpotCone, d.Lights.Spot.OuterCutOff, d.Lights.Spot.CutOff)
		}
	}
	for i, o := range d.Objects {
		if (o.Model == "") == (o.Builtin == "") {
			return fmt.Errorf("object %d (%s): %w", i, o.Name, ErrAmbiguousMesh)
		}
		if o.Builtin != "" && o.Builtin != BuiltinCube {
			return fmt.Errorf("object %d (%s): %w %q", i, o.Name, ErrUnknownBuiltin, o.Builtin)
		}
	}
	return nil
}

// ResolvePaths rewrites every file reference through resolve.
func (d *Descriptor) ResolvePaths(resolve func(string) string) {
	d.Shader.Vertex = resolve(d.Shader.Vertex)
	d.Shader.Fragment = resolve(d.Shader.Fragment)
	for i := range d.Objects {
		o := &d.Objects[i]
		o.Model = resolve(o.Model)
		o.Diffuse = resolve(o.Diffuse)
		o.Specular = resolve(o.Specular)
	}
}

// ShaderDir is the directory holding the lighting program sources.
func (d *Descriptor) ShaderDir() string {
	return filepath.Dir(d.Shader.Fragment)
}

// StartPosition is where the camera starts.
func (d *Descriptor) StartPosition() mgl32.Vec3 {
	if d.Camera.Position != nil {
		return *d.Camera.Position
	}
	return mgl32.Vec3{0, 0, 3}
}

func (d *Descriptor) applyDefaults() {
	if d.Shader.Vertex == "" {
		d.Shader.Vertex = "shaders/multiple-lights/vertex.glsl"
	}
	if d.Shader.Fragment == "" {
		d.Shader.Fragment = "shaders/multiple-lights/fragment.glsl"
	}
	if d.ClearColor == (mgl32.Vec4{}) {
		d.ClearColor = mgl32.Vec4{0.05, 0.05, 0.05, 1}
	}
	if d.Lights == nil {
		rig := lighting.DefaultRig()
		d.Lights = &rig
	}
	if d.Ramps.LightType == 0 {
		d.Ramps.LightType = 1
	}
	if d.Ramps.Term == 0 {
		d.Ramps.Term = 100
	}
	for i := range d.Objects {
		if len(d.Objects[i].Instances) == 0 {
			d.Objects[i].Instances = []Instance{{}}
		}
	}
}
