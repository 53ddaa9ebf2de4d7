// Package shader provides OpenGL shader programs with named uniform upload.
package shader

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/wonderland/internal/logger"
)

// Program is a linked shader program. It implements render.Program.
type Program struct {
	name      string
	id        uint32
	locations map[string]int32
	// warned holds names already reported as missing or unsupported.
	warned map[string]bool
}

// Load compiles and links a program from GLSL sources.
func Load(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := compileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", name, err)
	}
	logger.Debug("shader program created", zap.String("name", name), zap.Uint32("program", id))
	return &Program{
		name:      name,
		id:        id,
		locations: make(map[string]int32),
		warned:    make(map[string]bool),
	}, nil
}

// LoadFiles reads vertex and fragment sources from disk and calls Load.
func LoadFiles(name, vertexPath, fragmentPath string) (*Program, error) {
	vert, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("shader %s: reading vertex source: %w", name, err)
	}
	frag, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("shader %s: reading fragment source: %w", name, err)
	}
	return Load(name, string(vert), string(frag))
}

// Name returns the program's name.
func (p *Program) Name() string { return p.name }

// ID returns the GL program object.
func (p *Program) ID() uint32 { return p.id }

// Bind makes the program current.
func (p *Program) Bind() {
	gl.UseProgram(p.id)
}

// Delete releases the GL program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// Set uploads value to the uniform called name on the bound program.
// Unknown names and unsupported types are ignored; each is logged once at debug level.
func (p *Program) Set(name string, value any) {
	loc := p.location(name)
	if loc < 0 {
		return
	}

	switch v := value.(type) {
	case bool:
		var i int32
		if v {
			i = 1
		}
		gl.Uniform1i(loc, i)
	case int:
		gl.Uniform1i(loc, int32(v))
	case int32:
		gl.Uniform1i(loc, v)
	case float32:
		gl.Uniform1f(loc, v)
	case float64:
		gl.Uniform1f(loc, float32(v))
	case mgl32.Vec2:
		gl.Uniform2fv(loc, 1, &v[0])
	case mgl32.Vec3:
		gl.Uniform3fv(loc, 1, &v[0])
	case mgl32.Vec4:
		gl.Uniform4fv(loc, 1, &v[0])
	case mgl32.Mat2:
		gl.UniformMatrix2fv(loc, 1, false, &v[0])
	case mgl32.Mat3:
		gl.UniformMatrix3fv(loc, 1, false, &v[0])
	case mgl32.Mat4:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	default:
		p.warnOnce(name, "unsupported uniform type", zap.String("type", fmt.Sprintf("%T", value)))
	}
}

// location returns the cached uniform location, or -1 if the program has no such uniform.
func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	if loc < 0 {
		p.warnOnce(name, "uniform not found")
	}
	return loc
}

func (p *Program) warnOnce(name, msg string, fields ...zap.Field) {
	if p.warned[name] || !logger.Enabled(zap.DebugLevel) {
		return
	}
	p.warned[name] = true
	logger.Debug(msg, append(fields, zap.String("program", p.name), zap.String("uniform", name))...)
}

// compileProgram compiles vertex and fragment shaders and links them into a program.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}
