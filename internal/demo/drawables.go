package demo

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"learngl/internal/graphics"
	"learngl/internal/model"
	"learngl/internal/scene"
)

// drawable is one uploaded object and the model matrix of each instance.
type drawable struct {
	name      string
	model     *model.Model
	instances []mgl32.Mat4
}

// objectMeshes returns the CPU meshes for o with its texture overrides applied.
func objectMeshes(o scene.Object) ([]*model.MeshData, error) {
	var meshes []*model.MeshData
	if o.Builtin == scene.BuiltinCube {
		meshes = []*model.MeshData{model.Cube(model.Material{Name: o.Name})}
	} else {
		var err error
		if meshes, err = model.LoadOBJ(o.Model); err != nil {
			return nil, fmt.Errorf("load model %s: %w", o.Model, err)
		}
	}
	for _, m := range meshes {
		if o.Diffuse != "" {
			m.Material.DiffuseMap = o.Diffuse
		}
		if o.Specular != "" {
			m.Material.SpecularMap = o.Specular
		}
	}
	return meshes, nil
}

func instanceMatrices(o scene.Object) []mgl32.Mat4 {
	if len(o.Instances) == 0 {
		return []mgl32.Mat4{mgl32.Ident4()}
	}
	out := make([]mgl32.Mat4, len(o.Instances))
	for i, in := range o.Instances {
		out[i] = in.ModelMatrix()
	}
	return out
}

// loadDrawables uploads every object of d. An object whose model fails to
// load is logged and skipped.
func loadDrawables(d *scene.Descriptor, textures *graphics.TextureCache) []drawable {
	var out []drawable
	for _, o := range d.Objects {
		meshes, err := objectMeshes(o)
		if err != nil {
			log.Printf("Skipping object %q: %v", o.Name, err)
			continue
		}
		out = append(out, drawable{
			name:      o.Name,
			model:     model.Upload(meshes, textures),
			instances: instanceMatrices(o),
		})
	}
	return out
}
