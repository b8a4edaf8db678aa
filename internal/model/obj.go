package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved layout uploaded to the GPU: position, normal, uv.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// MeshData is a CPU-side triangle mesh with one material.
type MeshData struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material Material
}

// Material names the texture maps of a mesh. Paths are already resolved
// relative to the directory of the .mtl file.
type Material struct {
	Name        string
	DiffuseMap  string
	SpecularMap string
}

type faceKey struct{ v, t, n int }

type objParser struct {
	dir       string
	positions []mgl32.Vec3
	texcoords []mgl32.Vec2
	normals   []mgl32.Vec3
	materials map[string]Material
	object    string

	meshes  []*MeshData
	current *MeshData
	lookup  map[faceKey]uint32
}

// LoadOBJ parses a Wavefront OBJ file and any material libraries it references.
func LoadOBJ(path string) ([]*MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()
	meshes, err := ParseOBJ(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return meshes, nil
}

// ParseOBJ parses OBJ text. dir is used to locate mtllib files and texture maps.
// Faces are fan-triangulated and grouped into one mesh per usemtl section.
func ParseOBJ(r io.Reader, dir string) ([]*MeshData, error) {
	p := &objParser{dir: dir, materials: map[string]Material{}}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		if err := p.handle(fields); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	out := p.meshes[:0]
	for _, m := range p.meshes {
		if len(m.Indices) > 0 {
			out = append(out, m)
		}
	}
	return out, nil
}

func (p *objParser) handle(fields []string) error {
	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, mgl32.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return err
		}
		p.texcoords = append(p.texcoords, mgl32.Vec2{v[0], v[1]})
	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, mgl32.Vec3{v[0], v[1], v[2]}.Normalize())
	case "f":
		return p.face(fields[1:])
	case "usemtl":
		name := strings.Join(fields[1:], " ")
		p.startMesh(name)
		p.current.Material = p.materials[name]
		if p.current.Material.Name == "" {
			p.current.Material.Name = name
		}
	case "mtllib":
		for _, lib := range fields[1:] {
			mats, err := LoadMTL(filepath.Join(p.dir, lib))
			if err != nil {
				return err
			}
			for k, v := range mats {
				p.materials[k] = v
			}
		}
	case "o", "g":
		if len(fields) > 1 {
			p.object = fields[1]
			if p.current != nil && len(p.current.Indices) == 0 {
				p.current.Name = p.object
			}
		}
	}
	return nil
}

func (p *objParser) startMesh(material string) {
	name := p.object
	if name == "" {
		name = material
	}
	p.current = &MeshData{Name: name}
	p.meshes = append(p.meshes, p.current)
	p.lookup = make(map[faceKey]uint32)
}

func (p *objParser) face(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("face with %d vertices", len(refs))
	}
	if p.current == nil {
		p.startMesh("")
	}
	idx := make([]uint32, len(refs))
	for i, ref := range refs {
		key, err := p.parseRef(ref)
		if err != nil {
			return err
		}
		id, ok := p.lookup[key]
		if !ok {
			id = uint32(len(p.current.Vertices))
			p.current.Vertices = append(p.current.Vertices, p.vertex(key))
			p.lookup[key] = id
		}
		idx[i] = id
	}
	for i := 1; i+1 < len(idx); i++ {
		p.current.Indices = append(p.current.Indices, idx[0], idx[i], idx[i+1])
	}
	return nil
}

func (p *objParser) vertex(k faceKey) Vertex {
	var v Vertex
	v.Position = p.positions[k.v]
	if k.t >= 0 {
		v.TexCoord = p.texcoords[k.t]
	}
	if k.n >= 0 {
		v.Normal = p.normals[k.n]
	}
	return v
}

// parseRef parses v, v/t, v//n or v/t/n with 1-based or negative indices.
func (p *objParser) parseRef(ref string) (faceKey, error) {
	parts := strings.Split(ref, "/")
	key := faceKey{-1, -1, -1}
	var err error
	if key.v, err = resolveIndex(parts[0], len(p.positions)); err != nil {
		return key, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if key.t, err = resolveIndex(parts[1], len(p.texcoords)); err != nil {
			return key, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if key.n, err = resolveIndex(parts[2], len(p.normals)); err != nil {
			return key, err
		}
	}
	return key, nil
}

func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	if i < 0 {
		i = n + i
	} else {
		i--
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %s out of range (%d elements)", s, n)
	}
	return i, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func stripComment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return s
}
