package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learngl/internal/config"
	"learngl/internal/lighting"
)

func TestDefault(t *testing.T) {
	d := Default()
	require.NoError(t, d.Validate())
	require.Len(t, d.Objects, 1)
	assert.Equal(t, "backpack/backpack.obj", d.Objects[0].Model)
	require.Len(t, d.Objects[0].Instances, 1)
	assert.True(t, d.Objects[0].Instances[0].ModelMatrix().ApproxEqual(mgl32.Ident4()))
	assert.Equal(t, lighting.DefaultRig(), *d.Lights)
	assert.Equal(t, Ramps{LightType: 1, Term: 100}, d.Ramps)
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, d.StartPosition())
}

func TestLoadYAML(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "containers.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "containers", d.Name)
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, d.StartPosition())
	assert.Equal(t, Ramps{LightType: 2, Term: 100}, d.Ramps)
	assert.Equal(t, mgl32.Vec4{0.05, 0.05, 0.05, 1}, d.ClearColor)

	require.Len(t, d.Objects, 1)
	box := d.Objects[0]
	assert.Equal(t, BuiltinCube, box.Builtin)
	require.Len(t, box.Instances, 3)
	assert.Equal(t, float32(20), box.Instances[1].RotateDeg)
	assert.Equal(t, mgl32.Vec3{1, 0.3, 0.5}, box.Instances[1].RotateAxis)

	scaled := box.Instances[2].ModelMatrix()
	got := scaled.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.True(t, got.ApproxEqual(mgl32.Vec3{-1.0, -2.2, -2.5}), "got %v", got)

	require.NotNil(t, d.Lights)
	assert.Equal(t, float32(64), d.Lights.Shininess)
	require.Len(t, d.Lights.Points, 1)
	assert.Equal(t, float32(0.032), d.Lights.Points[0].Quadratic)
	assert.Equal(t, mgl32.Vec3{0.8, 0.8, 0.8}, d.Lights.Points[0].Diffuse)
	assert.Equal(t, float32(10), d.Lights.Spot.CutOff)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, d.Lights.Dir.Direction)
}

func TestLoadTOML(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "backpack.toml"))
	require.NoError(t, err)

	assert.True(t, d.FlipUV)
	assert.Equal(t, "shaders/custom.vert", d.Shader.Vertex)
	require.Len(t, d.Objects, 1)
	require.Len(t, d.Objects[0].Instances, 1)
	in := d.Objects[0].Instances[0]
	require.NotNil(t, in.Scale)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, *in.Scale)
	assert.Equal(t, lighting.DefaultRig(), *d.Lights, "missing lights fall back to the default rig")
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, (&Descriptor{}).Validate(), ErrNoObjects)

	both := &Descriptor{Objects: []Object{{Model: "a.obj", Builtin: BuiltinCube}}}
	assert.ErrorIs(t, both.Validate(), ErrAmbiguousMesh)

	neither := &Descriptor{Objects: []Object{{Name: "ghost"}}}
	assert.ErrorIs(t, neither.Validate(), ErrAmbiguousMesh)

	sphere := &Descriptor{Objects: []Object{{Builtin: "sphere"}}}
	assert.ErrorIs(t, sphere.Validate(), ErrUnknownBuiltin)

	rig := lighting.DefaultRig()
	rig.Points = append(rig.Points, lighting.PointLight{})
	crowded := &Descriptor{Objects: []Object{{Builtin: BuiltinCube}}, Lights: &rig}
	assert.ErrorIs(t, crowded.Validate(), ErrTooManyLights)

	hard := lighting.DefaultRig()
	hard.Spot.OuterCutOff = hard.Spot.CutOff
	sharp := &Descriptor{Objects: []Object{{Builtin: BuiltinCube}}, Lights: &hard}
	assert.ErrorIs(t, sharp.Validate(), ErrSpotCone)
}

func TestLoadPartialLightsKeepsDefaults(t *testing.T) {
	def := lighting.DefaultRig()
	for _, tc := range []struct {
		name, body string
	}{
		{"partial.yaml", "objects:\n  - builtin: cube\nlights:\n  shininess: 64\n  spot:\n    cut_off: 10\n"},
		{"partial.toml", "[[objects]]\nbuiltin = \"cube\"\n\n[lights]\nshininess = 64.0\n\n[lights.spot]\ncut_off = 10.0\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.name)
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o644))

			d, err := Load(path)
			require.NoError(t, err)
			require.NotNil(t, d.Lights)

			assert.Equal(t, float32(64), d.Lights.Shininess)
			assert.Equal(t, float32(10), d.Lights.Spot.CutOff)
			assert.Equal(t, def.Spot.OuterCutOff, d.Lights.Spot.OuterCutOff)
			assert.Equal(t, def.Spot.Attenuation, d.Lights.Spot.Attenuation)
			assert.Equal(t, def.Spot.Diffuse, d.Lights.Spot.Diffuse)
			assert.Equal(t, def.Dir, d.Lights.Dir)
			assert.Equal(t, def.Points, d.Lights.Points)
		})
	}
}

func TestLoadPointsReplaceDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.yaml")
	body := "objects:\n  - builtin: cube\nlights:\n  points:\n    - position: [1, 2, 3]\n      constant: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	require.Len(t, d.Lights.Points, 1)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, d.Lights.Points[0].Position)
	assert.Equal(t, float32(32), d.Lights.Shininess)
}

func TestLoadInvalidScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: empty\n"), 0o644))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrNoObjects)
}

func TestForSettingsResolvesPaths(t *testing.T) {
	s := config.Default()
	s.AssetRoot = "/data"

	d, err := ForSettings(s)
	require.NoError(t, err)
	assert.Equal(t, "/data/backpack/backpack.obj", d.Objects[0].Model)
	assert.Equal(t, "/data/shaders/multiple-lights/fragment.glsl", d.Shader.Fragment)
	assert.Equal(t, "/data/shaders/multiple-lights", d.ShaderDir())
	assert.Empty(t, d.Objects[0].Diffuse, "empty paths stay empty")

	s.AssetRoot = "testdata"
	s.Scene = "containers.yaml"
	d, err = ForSettings(s)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "textures", "container2.png"), d.Objects[0].Diffuse)
}

func TestShippedSceneAssetsExist(t *testing.T) {
	t.Setenv(config.EnvAssetRoot, "")
	t.Setenv(config.EnvScene, "")

	root := filepath.Join("..", "..")
	s, err := config.Load(filepath.Join(root, "learngl.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, s.Scene, "shipped config selects a scene")
	s.AssetRoot = filepath.Join(root, s.AssetRoot)

	d, err := ForSettings(s)
	require.NoError(t, err)
	require.NoError(t, d.Validate())

	files := []string{d.Shader.Vertex, d.Shader.Fragment}
	for _, o := range d.Objects {
		for _, f := range []string{o.Model, o.Diffuse, o.Specular} {
			if f != "" {
				files = append(files, f)
			}
		}
	}
	for _, f := range files {
		_, err := os.Stat(f)
		assert.NoError(t, err, "missing asset %s", f)
	}
}
