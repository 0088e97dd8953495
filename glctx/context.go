// Package glctx provides the OpenGL 4.1 core profile implementation of
// cube.Context and a GLFW window to draw into.
package glctx

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"j4k.co/cube"
)

// Context forwards every call to the GL context current on the calling
// thread. The zero value is ready to use once gl.Init has succeeded.
type Context struct{}

var _ cube.Context = Context{}

// cstr returns s with a single NUL terminator, as the gl package expects.
func cstr(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func (Context) CreateShader(typ cube.Enum) uint32 {
	return gl.CreateShader(uint32(typ))
}

func (Context) ShaderSource(id uint32, src string) {
	csources, free := gl.Strs(cstr(src))
	gl.ShaderSource(id, 1, csources, nil)
	free()
}

func (Context) CompileShader(id uint32) {
	gl.CompileShader(id)
}

func (Context) ShaderCompiled(id uint32) bool {
	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (Context) ShaderInfoLog(id uint32) string {
	var n int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(id, n, nil, gl.Str(msg))
	return strings.TrimRight(msg, "\x00")
}

func (Context) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (Context) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (Context) AttachShader(prog, sh uint32) {
	gl.AttachShader(prog, sh)
}

func (Context) DetachShader(prog, sh uint32) {
	gl.DetachShader(prog, sh)
}

func (Context) LinkProgram(prog uint32) {
	gl.LinkProgram(prog)
}

func (Context) ProgramLinked(prog uint32) bool {
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (Context) ProgramInfoLog(prog uint32) string {
	var n int32
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(prog, n, nil, gl.Str(msg))
	return strings.TrimRight(msg, "\x00")
}

func (Context) UseProgram(prog uint32) {
	gl.UseProgram(prog)
}

func (Context) DeleteProgram(prog uint32) {
	gl.DeleteProgram(prog)
}

func (Context) GetAttribLocation(prog uint32, name string) int32 {
	return gl.GetAttribLocation(prog, gl.Str(cstr(name)))
}

func (Context) GetUniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(cstr(name)))
}

func (Context) Uniform1f(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

func (Context) UniformMatrix3fv(loc int32, transpose bool, m *[9]float32) {
	gl.UniformMatrix3fv(loc, 1, transpose, &m[0])
}

func (Context) UniformMatrix4fv(loc int32, transpose bool, m *[16]float32) {
	gl.UniformMatrix4fv(loc, 1, transpose, &m[0])
}

func (Context) CreateBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (Context) BindBuffer(target cube.Enum, buf uint32) {
	gl.BindBuffer(uint32(target), buf)
}

func (Context) BufferData(target cube.Enum, data []byte, usage cube.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data), gl.Ptr(data), uint32(usage))
}

func (Context) GetBufferSubData(target cube.Enum, offset int, dst []byte) {
	if len(dst) == 0 {
		return
	}
	gl.GetBufferSubData(uint32(target), offset, len(dst), gl.Ptr(dst))
}

func (Context) DeleteBuffer(buf uint32) {
	gl.DeleteBuffers(1, &buf)
}

func (Context) CreateVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (Context) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (Context) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (Context) VertexAttribPointer(index uint32, size int32, typ cube.Enum, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, uint32(typ), normalized, stride, offset)
}

func (Context) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (Context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (Context) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (Context) Clear(mask cube.Enum) {
	gl.Clear(uint32(mask))
}

func (Context) DrawElements(mode cube.Enum, count int32, typ cube.Enum, offset uintptr) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(typ), offset)
}
