package cube

// State wraps a Context and keeps track of what is currently bound to it.
// GL keeps this state globally per context; routing every bind through State
// makes it visible to callers and tests.
//
// ELEMENT_ARRAY_BUFFER is part of vertex array state in GL, so its binding is
// remembered per vertex array. Array 0 stands for "no vertex array bound".
type State struct {
	ctx Context

	program     uint32
	vertexArray uint32
	arrayBuffer uint32
	elements    map[uint32]uint32
}

// Bindings is a snapshot of the bound objects of a State.
type Bindings struct {
	Program            uint32
	VertexArray        uint32
	ArrayBuffer        uint32
	ElementArrayBuffer uint32
}

func NewState(ctx Context) *State {
	return &State{
		ctx:      ctx,
		elements: make(map[uint32]uint32),
	}
}

// Context returns the wrapped context for calls that do not touch bindings.
func (s *State) Context() Context {
	return s.ctx
}

func (s *State) Bindings() Bindings {
	return Bindings{
		Program:            s.program,
		VertexArray:        s.vertexArray,
		ArrayBuffer:        s.arrayBuffer,
		ElementArrayBuffer: s.elements[s.vertexArray],
	}
}

func (s *State) UseProgram(program uint32) {
	s.ctx.UseProgram(program)
	s.program = program
}

func (s *State) BindVertexArray(array uint32) {
	s.ctx.BindVertexArray(array)
	s.vertexArray = array
}

func (s *State) BindBuffer(target Enum, buffer uint32) {
	s.ctx.BindBuffer(target, buffer)
	switch target {
	case ArrayBuffer:
		s.arrayBuffer = buffer
	case ElementArrayBuffer:
		s.elements[s.vertexArray] = buffer
	}
}

// forget drops any binding of a deleted object, matching what GL does when
// a bound name is deleted.
func (s *State) forget(name uint32, kind objectKind) {
	switch kind {
	case programObject:
		if s.program == name {
			s.program = 0
		}
	case vertexArrayObject:
		delete(s.elements, name)
		if s.vertexArray == name {
			s.vertexArray = 0
		}
	case bufferObject:
		if s.arrayBuffer == name {
			s.arrayBuffer = 0
		}
		// only the bound vertex array lets go of a deleted index buffer
		if s.elements[s.vertexArray] == name {
			s.elements[s.vertexArray] = 0
		}
	}
}

type objectKind int

const (
	programObject objectKind = iota
	vertexArrayObject
	bufferObject
)
