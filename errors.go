package cube

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSurfaceNotFound             = errors.New("cube: rendering surface not found")
	ErrContextUnavailable          = errors.New("cube: rendering context unavailable")
	ErrInvalidProjectionParameters = errors.New("cube: invalid projection parameters")
	ErrDegenerateCamera            = errors.New("cube: degenerate camera")

	ErrShaderStage         = errors.New("cube: shader has wrong stage")
	ErrReleased            = errors.New("cube: object already released")
	ErrEmptyBuffer         = errors.New("cube: empty buffer data")
	ErrIndexRange          = errors.New("cube: index out of range")
	ErrAttribNotFound      = errors.New("cube: attribute not found")
	ErrComponents          = errors.New("cube: bad component count")
	ErrBindBeforeEnable    = errors.New("cube: attribute bound before being enabled")
	ErrUnboundAttrib       = errors.New("cube: attribute enabled but never bound")
	ErrNoIndexBuffer       = errors.New("cube: no index buffer recorded")
	ErrVertexCountMismatch = errors.New("cube: attribute buffers disagree on vertex count")
	ErrNotRecorded         = errors.New("cube: vertex array not recorded")
	ErrRecording           = errors.New("cube: vertex array already recorded")
	ErrRecorderDone        = errors.New("cube: recorder used after Record returned")
)

// ShaderCompilationError carries the failing stage and the compiler log.
type ShaderCompilationError struct {
	Stage Stage
	Log   string
}

func (e *ShaderCompilationError) Error() string {
	return fmt.Sprintf("cube: %s shader compilation failed: %s", e.Stage, strings.TrimSpace(e.Log))
}

// ProgramLinkError carries the linker log.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return "cube: program link failed: " + strings.TrimSpace(e.Log)
}
