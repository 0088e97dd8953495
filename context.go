package cube

// Enum mirrors a GLenum. The values are the ones defined by the OpenGL
// headers so a Context backed by a real driver can pass them through.
type Enum uint32

const (
	Triangles Enum = 0x0004

	UnsignedShort Enum = 0x1403
	Float         Enum = 0x1406

	ColorBufferBit Enum = 0x4000

	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893

	glStreamDraw  Enum = 0x88E0
	glStreamCopy  Enum = 0x88E2
	glStaticDraw  Enum = 0x88E4
	glStaticCopy  Enum = 0x88E6
	glDynamicDraw Enum = 0x88E8
	glDynamicCopy Enum = 0x88EA

	FragmentShaderType Enum = 0x8B30
	VertexShaderType   Enum = 0x8B31
)

// Context is the low-level graphics API everything in this package talks to.
// Object names are uint32 with zero meaning "none", like GL. Locations are
// int32 with -1 meaning "not found".
//
// A Context is bound to one thread. None of its methods may be called
// concurrently.
type Context interface {
	CreateShader(typ Enum) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	UniformMatrix3fv(location int32, transpose bool, m *[9]float32)
	UniformMatrix4fv(location int32, transpose bool, m *[16]float32)

	CreateBuffer() uint32
	BindBuffer(target Enum, buffer uint32)
	BufferData(target Enum, data []byte, usage Enum)
	GetBufferSubData(target Enum, offset int, dst []byte)
	DeleteBuffer(buffer uint32)

	CreateVertexArray() uint32
	BindVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride int32, offset uintptr)
	DeleteVertexArray(array uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	DrawElements(mode Enum, count int32, typ Enum, offset uintptr)
}
