package model

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"learngl/internal/graphics"
)

// Mesh is a MeshData uploaded to the GPU
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
	diffuse       uint32
	specular      uint32
}

// Texture units the lighting shader samples from
const (
	DiffuseUnit  = 0
	SpecularUnit = 1
)

// NewMesh uploads vertex and index data and resolves the material's textures through textures.
func NewMesh(data *MeshData, textures *graphics.TextureCache) *Mesh {
	m := &Mesh{count: int32(len(data.Indices))}
	if data.Material.DiffuseMap != "" {
		m.diffuse = textures.Get(data.Material.DiffuseMap)
	}
	if data.Material.SpecularMap != "" {
		m.specular = textures.Get(data.Material.SpecularMap)
	}

	stride := int32(unsafe.Sizeof(Vertex{}))

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(data.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*int(stride), gl.Ptr(data.Vertices), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(data.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)
	}

	// position
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(Vertex{}.Position))
	// normal
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(Vertex{}.Normal))
	// texture coords
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, unsafe.Offsetof(Vertex{}.TexCoord))

	gl.BindVertexArray(0)
	return m
}

// Draw binds the mesh textures to the material samplers and issues one draw call.
func (m *Mesh) Draw(s *graphics.Shader) {
	s.SetInt("material.diffuse", DiffuseUnit)
	s.SetInt("material.specular", SpecularUnit)

	gl.ActiveTexture(gl.TEXTURE0 + DiffuseUnit)
	gl.BindTexture(gl.TEXTURE_2D, m.diffuse)
	gl.ActiveTexture(gl.TEXTURE0 + SpecularUnit)
	gl.BindTexture(gl.TEXTURE_2D, m.specular)

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

// Delete releases the buffers. Textures belong to the cache.
func (m *Mesh) Delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}

// Model is a set of meshes drawn together
type Model struct {
	Meshes []*Mesh
}

// Upload turns parsed mesh data into a drawable model.
func Upload(data []*MeshData, textures *graphics.TextureCache) *Model {
	m := &Model{Meshes: make([]*Mesh, 0, len(data))}
	for _, d := range data {
		m.Meshes = append(m.Meshes, NewMesh(d, textures))
	}
	return m
}

// Draw draws every mesh
func (m *Model) Draw(s *graphics.Shader) {
	for _, mesh := range m.Meshes {
		mesh.Draw(s)
	}
}

// Delete releases every mesh
func (m *Model) Delete() {
	for _, mesh := range m.Meshes {
		mesh.Delete()
	}
}
