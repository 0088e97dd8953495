package cube

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
)

// Attrib is a vertex attribute slot of a linked program.
type Attrib int32

// Uniform is a uniform location of a linked program.
type Uniform int32

const (
	NoAttrib  Attrib  = -1
	NoUniform Uniform = -1
)

type Program struct {
	s  *State
	id uint32

	attribs  map[string]Attrib
	uniforms map[string]Uniform
}

// LinkProgram links a vertex and a fragment shader into a program. The
// shaders are detached afterwards and remain owned by the caller.
func LinkProgram(s *State, vs, fs *Shader) (*Program, error) {
	if vs == nil || fs == nil || vs.id == 0 || fs.id == 0 {
		return nil, ErrReleased
	}
	if vs.stage != VertexStage {
		return nil, fmt.Errorf("%w: got %s, want vertex", ErrShaderStage, vs.stage)
	}
	if fs.stage != FragmentStage {
		return nil, fmt.Errorf("%w: got %s, want fragment", ErrShaderStage, fs.stage)
	}

	ctx := s.ctx
	id := ctx.CreateProgram()
	ctx.AttachShader(id, vs.id)
	ctx.AttachShader(id, fs.id)
	ctx.LinkProgram(id)
	ctx.DetachShader(id, vs.id)
	ctx.DetachShader(id, fs.id)
	if !ctx.ProgramLinked(id) {
		log := ctx.ProgramInfoLog(id)
		ctx.DeleteProgram(id)
		return nil, &ProgramLinkError{Log: log}
	}
	slog.Debug("linked program", "id", id)
	return &Program{
		s:        s,
		id:       id,
		attribs:  make(map[string]Attrib),
		uniforms: make(map[string]Uniform),
	}, nil
}

// AttribLocation looks up an attribute slot by name. Attributes that do not
// exist, or that the compiler optimized away, give NoAttrib and false.
func (p *Program) AttribLocation(name string) (Attrib, bool) {
	if a, ok := p.attribs[name]; ok {
		return a, a >= 0
	}
	a := Attrib(p.s.ctx.GetAttribLocation(p.id, name))
	if a < 0 {
		a = NoAttrib
	}
	p.attribs[name] = a
	return a, a >= 0
}

// UniformLocation looks up a uniform by name, giving NoUniform and false
// when it is absent.
func (p *Program) UniformLocation(name string) (Uniform, bool) {
	if u, ok := p.uniforms[name]; ok {
		return u, u >= 0
	}
	u := Uniform(p.s.ctx.GetUniformLocation(p.id, name))
	if u < 0 {
		u = NoUniform
	}
	p.uniforms[name] = u
	return u, u >= 0
}

// Use makes p the current program.
func (p *Program) Use() {
	p.s.UseProgram(p.id)
}

// SetUniforms takes struct fields with a "uniform" tag and assigns their
// values to the program's uniform variables. p must be current. Uniforms the
// program does not have are skipped, the same as GL does for location -1.
func (p *Program) SetUniforms(data interface{}) error {
	val := reflect.Indirect(reflect.ValueOf(data))
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("cube: SetUniforms wants a struct, got %s", val.Kind())
	}
	if p.s.program != p.id {
		return fmt.Errorf("cube: program %d is not current", p.id)
	}
	typ := val.Type()
	ctx := p.s.ctx
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		name := f.Tag.Get("uniform")
		if name == "" || !f.IsExported() {
			continue
		}
		u, ok := p.UniformLocation(name)
		if !ok {
			slog.Debug("uniform not in program", "program", p.id, "name", name)
			continue
		}
		switch v := val.Field(i).Interface().(type) {
		case float32:
			ctx.Uniform1f(int32(u), v)
		case mgl32.Mat3:
			m := [9]float32(v)
			ctx.UniformMatrix3fv(int32(u), false, &m)
		case mgl32.Mat4:
			m := [16]float32(v)
			ctx.UniformMatrix4fv(int32(u), false, &m)
		case [16]float32:
			ctx.UniformMatrix4fv(int32(u), false, &v)
		default:
			return fmt.Errorf("cube: uniform %q has unsupported type %T", name, v)
		}
	}
	return nil
}

func (p *Program) Release() {
	if p.id == 0 {
		return
	}
	p.s.ctx.DeleteProgram(p.id)
	p.s.forget(p.id, programObject)
	p.id = 0
}
