package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"

	"github.com/hubastard/ember/engine/assets"
)

// Shader wraps a linked GL program.
type Shader struct {
	program uint32
}

// NewShader compiles and links a program from GLSL sources. Sources must be
// null-terminated (assets.LoadShader does this; embedded sources append it).
func NewShader(vsSrc, fsSrc string) (*Shader, error) {
	prog, err := makeProgram(vsSrc, fsSrc)
	if err != nil {
		return nil, err
	}
	return &Shader{program: prog}, nil
}

// NewShaderFromAssets compiles a program from GLSL files under
// assets/shaders.
func NewShaderFromAssets(vsName, fsName string) (*Shader, error) {
	vs, err := assets.LoadShader(vsName)
	if err != nil {
		return nil, err
	}
	fs, err := assets.LoadShader(fsName)
	if err != nil {
		return nil, err
	}
	return NewShader(vs, fs)
}

func (s *Shader) Bind()      { gl.UseProgram(s.program) }
func (s *Shader) ID() uint32 { return s.program }

// SetIntArray uploads an int uniform array, e.g. the sampler table indices.
func (s *Shader) SetIntArray(name string, values []int32) {
	if len(values) == 0 {
		return
	}
	loc := gl.GetUniformLocation(s.program, gl.Str(name+"\x00"))
	gl.Uniform1iv(loc, int32(len(values)), &values[0])
}

func (s *Shader) Delete() {
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
