package graphics

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader represents an OpenGL shader program
type Shader struct {
	ID uint32

	vertexPath   string
	fragmentPath string
	uniforms     *uniformCache
}

// NewShader creates a new shader program from vertex and fragment shader source files
func NewShader(vertexPath, fragmentPath string) (*Shader, error) {
	program, err := loadProgram(vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	s := &Shader{
		ID:           program,
		vertexPath:   vertexPath,
		fragmentPath: fragmentPath,
	}
	s.uniforms = newUniformCache(s.location, log.Printf)
	return s, nil
}

// NewShaderFromSource compiles a program from in-memory sources. Reload is a no-op for it.
func NewShaderFromSource(vertexSrc, fragmentSrc string) (*Shader, error) {
	program, err := compileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	s := &Shader{ID: program}
	s.uniforms = newUniformCache(s.location, log.Printf)
	return s, nil
}

// Paths returns the source files the program was built from.
func (s *Shader) Paths() (vertex, fragment string) {
	return s.vertexPath, s.fragmentPath
}

// Use activates the shader program
func (s *Shader) Use() {
	gl.UseProgram(s.ID)
}

// Reload recompiles the program from its source files. On failure the
// current program is kept and the error returned.
func (s *Shader) Reload() error {
	if s.vertexPath == "" {
		return nil
	}
	program, err := loadProgram(s.vertexPath, s.fragmentPath)
	if err != nil {
		return err
	}
	gl.DeleteProgram(s.ID)
	s.ID = program
	s.uniforms.reset()
	return nil
}

// Delete releases the GL program
func (s *Shader) Delete() {
	if s.ID != 0 {
		gl.DeleteProgram(s.ID)
		s.ID = 0
	}
}

// SetVerbose makes lookups of unknown uniform names log once per name.
func (s *Shader) SetVerbose(v bool) {
	s.uniforms.verbose = v
}

// SetBool sets a boolean uniform
func (s *Shader) SetBool(name string, value bool) {
	var intValue int32
	if value {
		intValue = 1
	}
	s.SetInt(name, intValue)
}

// SetInt sets an integer uniform
func (s *Shader) SetInt(name string, value int32) {
	if loc, ok := s.uniforms.get(name); ok {
		gl.Uniform1i(loc, value)
	}
}

// SetFloat sets a float uniform
func (s *Shader) SetFloat(name string, value float32) {
	if loc, ok := s.uniforms.get(name); ok {
		gl.Uniform1f(loc, value)
	}
}

// SetVector3 sets a vector3 uniform
func (s *Shader) SetVector3(name string, x, y, z float32) {
	if loc, ok := s.uniforms.get(name); ok {
		gl.Uniform3f(loc, x, y, z)
	}
}

// SetVec3 sets a vector3 uniform from a mgl32 vector
func (s *Shader) SetVec3(name string, v mgl32.Vec3) {
	s.SetVector3(name, v[0], v[1], v[2])
}

// SetMatrix4 sets a 4x4 matrix uniform
func (s *Shader) SetMatrix4(name string, m mgl32.Mat4) {
	if loc, ok := s.uniforms.get(name); ok {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func (s *Shader) location(name string) int32 {
	return gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
}

func loadProgram(vertexPath, fragmentPath string) (uint32, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return 0, fmt.Errorf("could not read vertex shader file: %w", err)
	}

	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return 0, fmt.Errorf("could not read fragment shader file: %w", err)
	}

	program, err := compileProgram(string(vertexSource), string(fragmentSource))
	if err != nil {
		return 0, fmt.Errorf("%s, %s: %w", vertexPath, fragmentPath, err)
	}
	return program, nil
}

// Helper functions
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
