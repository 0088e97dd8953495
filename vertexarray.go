package cube

import (
	"fmt"
	"log/slog"
)

// BindAttribute points attribute slot a at buf, read as tightly packed
// float32 values, components per vertex. It rebinds ARRAY_BUFFER to buf for
// the call and unbinds it afterwards; the vertex array bound at the time
// keeps the association.
func BindAttribute(s *State, a Attrib, components int, buf *VertexBuffer) error {
	if a < 0 {
		return ErrAttribNotFound
	}
	if components < 1 || components > 4 {
		return fmt.Errorf("%w: %d", ErrComponents, components)
	}
	if buf == nil || buf.id == 0 {
		return ErrReleased
	}
	if buf.count%components != 0 {
		return fmt.Errorf("%w: %d floats is not a multiple of %d", ErrComponents, buf.count, components)
	}
	s.BindBuffer(ArrayBuffer, buf.id)
	s.ctx.VertexAttribPointer(uint32(a), int32(components), Float, false, 0, 0)
	s.BindBuffer(ArrayBuffer, 0)
	return nil
}

type attribBinding struct {
	attrib     Attrib
	components int
	buffer     *VertexBuffer
}

// VertexArray captures attribute-to-buffer wiring and an index buffer so
// that binding it alone restores all of them.
type VertexArray struct {
	s        *State
	id       uint32
	recorded bool

	bindings []attribBinding
	indices  *IndexBuffer
}

func NewVertexArray(s *State) *VertexArray {
	return &VertexArray{s: s, id: s.ctx.CreateVertexArray()}
}

// Recorder is handed to the Record callback. Each attribute must be enabled
// before it is bound. It stops working once Record returns.
type Recorder struct {
	va      *VertexArray
	enabled map[Attrib]bool
	bound   map[Attrib]bool
	done    bool
}

func (r *Recorder) Enable(a Attrib) error {
	if r.done {
		return ErrRecorderDone
	}
	if a < 0 {
		return ErrAttribNotFound
	}
	r.va.s.ctx.EnableVertexAttribArray(uint32(a))
	r.enabled[a] = true
	return nil
}

func (r *Recorder) Bind(a Attrib, components int, buf *VertexBuffer) error {
	if r.done {
		return ErrRecorderDone
	}
	if a >= 0 && !r.enabled[a] {
		return fmt.Errorf("%w: slot %d", ErrBindBeforeEnable, a)
	}
	if err := BindAttribute(r.va.s, a, components, buf); err != nil {
		return err
	}
	r.bound[a] = true
	r.va.bindings = append(r.va.bindings, attribBinding{attrib: a, components: components, buffer: buf})
	return nil
}

func (r *Recorder) Indices(ib *IndexBuffer) error {
	if r.done {
		return ErrRecorderDone
	}
	if ib == nil || ib.id == 0 {
		return ErrReleased
	}
	r.va.s.BindBuffer(ElementArrayBuffer, ib.id)
	r.va.indices = ib
	return nil
}

func (r *Recorder) validate() error {
	for a := range r.enabled {
		if !r.bound[a] {
			return fmt.Errorf("%w: slot %d", ErrUnboundAttrib, a)
		}
	}
	if r.va.indices == nil {
		return ErrNoIndexBuffer
	}
	if n := r.va.indices.Count(); n%3 != 0 {
		return fmt.Errorf("%w: %d indices do not form triangles", ErrIndexRange, n)
	}
	vertices := -1
	for _, b := range r.va.bindings {
		n := b.buffer.count / b.components
		if vertices >= 0 && n != vertices {
			return fmt.Errorf("%w: slot %d has %d vertices, want %d", ErrVertexCountMismatch, b.attrib, n, vertices)
		}
		vertices = n
	}
	if vertices >= 0 && r.va.indices.MaxIndex() >= vertices {
		return fmt.Errorf("%w: index %d with %d vertices", ErrIndexRange, r.va.indices.MaxIndex(), vertices)
	}
	return nil
}

// Record binds the vertex array, runs fn to capture the wiring and unbinds it
// again, whether or not fn succeeds. A vertex array can only be recorded once.
// If recording fails the GL object is replaced by a fresh one, so a later
// Record starts from no enabled attributes.
func (va *VertexArray) Record(fn func(r *Recorder) error) error {
	if va.id == 0 {
		return ErrReleased
	}
	if va.recorded {
		return ErrRecording
	}
	r := &Recorder{
		va:      va,
		enabled: make(map[Attrib]bool),
		bound:   make(map[Attrib]bool),
	}
	va.s.BindVertexArray(va.id)
	err := fn(r)
	r.done = true
	if err == nil {
		err = r.validate()
	}
	va.s.BindVertexArray(0)
	if err != nil {
		va.bindings = nil
		va.indices = nil
		va.s.ctx.DeleteVertexArray(va.id)
		va.s.forget(va.id, vertexArrayObject)
		va.id = va.s.ctx.CreateVertexArray()
		return err
	}
	va.recorded = true
	slog.Debug("recorded vertex array", "id", va.id, "attribs", len(va.bindings), "indices", va.indices.Count())
	return nil
}

// Bind makes va the current vertex array.
func (va *VertexArray) Bind() error {
	if err := va.ready(); err != nil {
		return err
	}
	va.s.BindVertexArray(va.id)
	return nil
}

func (va *VertexArray) ready() error {
	if va == nil {
		return ErrNotRecorded
	}
	if va.id == 0 {
		return ErrReleased
	}
	if !va.recorded {
		return ErrNotRecorded
	}
	return nil
}

// IndexCount returns the number of recorded indices, 0 before recording.
func (va *VertexArray) IndexCount() int {
	if va.indices == nil {
		return 0
	}
	return va.indices.Count()
}

// Release deletes the vertex array object. Buffers it references are owned
// by whoever created them.
func (va *VertexArray) Release() {
	if va.id == 0 {
		return
	}
	va.s.ctx.DeleteVertexArray(va.id)
	va.s.forget(va.id, vertexArrayObject)
	va.id = 0
	va.recorded = false
}
