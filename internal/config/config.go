package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment overrides applied after the config file is read.
const (
	EnvAssetRoot = "LEARNGL_ASSETS"
	EnvScene     = "LEARNGL_SCENE"
)

// DefaultFiles are probed in order by LoadDefault.
var DefaultFiles = []string{"learngl.yaml", "learngl.yml", "learngl.toml"}

// Settings holds process-wide window and runtime options
type Settings struct {
	Window WindowSettings `yaml:"window" toml:"window"`

	// AssetRoot is prepended to every relative shader, texture and model path.
	AssetRoot string `yaml:"asset_root" toml:"asset_root"`
	// Scene is a scene descriptor file relative to AssetRoot. Empty selects the built-in scene.
	Scene string `yaml:"scene" toml:"scene"`

	// FPSLimit caps the frame rate; 0 disables limiting.
	FPSLimit     int  `yaml:"fps_limit" toml:"fps_limit"`
	WatchShaders bool `yaml:"watch_shaders" toml:"watch_shaders"`
	HUD          bool `yaml:"hud" toml:"hud"`
	Verbose      bool `yaml:"verbose" toml:"verbose"`
}

// WindowSettings describes the initial window
type WindowSettings struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`
	VSync  bool   `yaml:"vsync" toml:"vsync"`
}

// Default returns the settings used when no config file exists.
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  800,
			Height: 600,
			Title:  "LearnOpenGL",
			VSync:  true,
		},
		AssetRoot: "assets",
		HUD:       true,
	}
}

// Load reads settings from a YAML or TOML file, chosen by extension.
// Fields missing from the file keep their defaults.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := decode(path, data, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	s.applyEnv()
	s.normalize()
	return s, nil
}

// LoadDefault loads the first of DefaultFiles found in dir, or the defaults if none exist.
func LoadDefault(dir string) (Settings, error) {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	s := Default()
	s.applyEnv()
	s.normalize()
	return s, nil
}

// Resolve joins a relative asset path onto AssetRoot.
func (s Settings) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.AssetRoot, path)
}

// AspectRatio of the initial window
func (s Settings) AspectRatio() float32 {
	return float32(s.Window.Width) / float32(s.Window.Height)
}

func (s *Settings) applyEnv() {
	if v := os.Getenv(EnvAssetRoot); v != "" {
		s.AssetRoot = v
	}
	if v := os.Getenv(EnvScene); v != "" {
		s.Scene = v
	}
}

func (s *Settings) normalize() {
	d := Default()
	if s.Window.Width <= 0 {
		s.Window.Width = d.Window.Width
	}
	if s.Window.Height <= 0 {
		s.Window.Height = d.Window.Height
	}
	if s.Window.Title == "" {
		s.Window.Title = d.Window.Title
	}
	if s.FPSLimit < 0 {
		s.FPSLimit = 0
	}
}

// decode unmarshals YAML or TOML into v based on the file extension.
func decode(path string, data []byte, v any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.NewDecoder(bytes.NewReader(data)).Decode(v)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// Decode is the shared YAML/TOML decoder used for scene descriptors as well.
func Decode(path string, data []byte, v any) error {
	return decode(path, data, v)
}
