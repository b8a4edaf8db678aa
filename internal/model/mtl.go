package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadMTL reads a material library. Texture map paths are resolved against
// the library's directory.
func LoadMTL(path string) (map[string]Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open material library: %w", err)
	}
	defer f.Close()
	return ParseMTL(f, filepath.Dir(path))
}

// ParseMTL parses material library text. Only the diffuse (map_Kd) and
// specular (map_Ks) maps are kept.
func ParseMTL(r io.Reader, dir string) (map[string]Material, error) {
	mats := map[string]Material{}
	var cur *Material
	flush := func() {
		if cur != nil {
			mats[cur.Name] = *cur
		}
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			flush()
			cur = &Material{Name: strings.Join(fields[1:], " ")}
		case "map_Kd":
			if cur != nil {
				cur.DiffuseMap = texturePath(dir, fields)
			}
		case "map_Ks":
			if cur != nil {
				cur.SpecularMap = texturePath(dir, fields)
			}
		}
	}
	flush()
	return mats, sc.Err()
}

// texturePath takes the last field, skipping map options like -bm 1.
func texturePath(dir string, fields []string) string {
	name := filepath.FromSlash(strings.ReplaceAll(fields[len(fields)-1], `\`, "/"))
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
