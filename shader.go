package cube

import (
	"log/slog"
)

// Stage is a programmable pipeline stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

func (s Stage) gl() Enum {
	if s == FragmentStage {
		return FragmentShaderType
	}
	return VertexShaderType
}

type ShaderSource interface {
	Stage() Stage
	Source() string
}

type VertexShader string
type FragmentShader string

func (v VertexShader) Stage() Stage {
	return VertexStage
}

func (v VertexShader) Source() string {
	return string(v)
}

func (f FragmentShader) Stage() Stage {
	return FragmentStage
}

func (f FragmentShader) Source() string {
	return string(f)
}

// Shader is a compiled shader object. It is never mutated after compilation.
type Shader struct {
	s     *State
	id    uint32
	stage Stage
}

// CompileShader compiles src for its stage. On failure the shader object is
// deleted and a *ShaderCompilationError is returned.
func CompileShader(s *State, src ShaderSource) (*Shader, error) {
	ctx := s.ctx
	id := ctx.CreateShader(src.Stage().gl())
	ctx.ShaderSource(id, src.Source())
	ctx.CompileShader(id)
	if !ctx.ShaderCompiled(id) {
		log := ctx.ShaderInfoLog(id)
		ctx.DeleteShader(id)
		return nil, &ShaderCompilationError{Stage: src.Stage(), Log: log}
	}
	slog.Debug("compiled shader", "stage", src.Stage(), "id", id)
	return &Shader{s: s, id: id, stage: src.Stage()}, nil
}

func (sh *Shader) Stage() Stage {
	return sh.stage
}

// Release deletes the shader object. A program that was linked against it
// stays valid.
func (sh *Shader) Release() {
	if sh.id == 0 {
		return
	}
	sh.s.ctx.DeleteShader(sh.id)
	sh.id = 0
}
