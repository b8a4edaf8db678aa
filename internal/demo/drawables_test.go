package demo

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learngl/internal/scene"
)

func TestObjectMeshesBuiltinCube(t *testing.T) {
	meshes, err := objectMeshes(scene.Object{
		Name:     "crate",
		Builtin:  scene.BuiltinCube,
		Diffuse:  "textures/container2.png",
		Specular: "textures/container2_specular.png",
	})
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	assert.Len(t, meshes[0].Indices, 36)
	assert.Equal(t, "textures/container2.png", meshes[0].Material.DiffuseMap)
	assert.Equal(t, "textures/container2_specular.png", meshes[0].Material.SpecularMap)
}

func TestObjectMeshesOverridesModelMaterial(t *testing.T) {
	obj := filepath.Join("..", "model", "testdata", "quad.obj")

	meshes, err := objectMeshes(scene.Object{Model: obj})
	require.NoError(t, err)
	require.NotEmpty(t, meshes)
	original := meshes[0].Material.SpecularMap

	meshes, err = objectMeshes(scene.Object{Model: obj, Diffuse: "other.png"})
	require.NoError(t, err)
	assert.Equal(t, "other.png", meshes[0].Material.DiffuseMap)
	assert.Equal(t, original, meshes[0].Material.SpecularMap)
}

func TestObjectMeshesMissingModel(t *testing.T) {
	_, err := objectMeshes(scene.Object{Model: filepath.Join(t.TempDir(), "missing.obj")})
	assert.Error(t, err)
}

func TestInstanceMatrices(t *testing.T) {
	assert.Equal(t, []mgl32.Mat4{mgl32.Ident4()}, instanceMatrices(scene.Object{}))

	ms := instanceMatrices(scene.Object{Instances: []scene.Instance{
		{Translate: mgl32.Vec3{1, 2, 3}},
		{Translate: mgl32.Vec3{-1, 0, 0}},
	}})
	require.Len(t, ms, 2)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, ms[0].Col(3).Vec3())
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, ms[1].Col(3).Vec3())
}
