package cube

import (
	"fmt"
	"log/slog"
	"math"
	"unsafe"
)

type Usage uint16

const (
	StaticDraw Usage = iota
	DynamicDraw
	StreamDraw
	StaticCopy
	DynamicCopy
	StreamCopy
)

func (u Usage) gl() Enum {
	switch u {
	case StaticDraw:
		return glStaticDraw
	case DynamicDraw:
		return glDynamicDraw
	case StreamDraw:
		return glStreamDraw
	case StaticCopy:
		return glStaticCopy
	case DynamicCopy:
		return glDynamicCopy
	case StreamCopy:
		return glStreamCopy
	default:
		return glStaticDraw
	}
}

type VertexFormat uint32

const (
	VertexPosition VertexFormat = 1 << iota
	VertexColor
	VertexNormal
	VertexTexcoord
	MaxVertexFormat = VertexTexcoord
)

// Components gives the number of float32 values per vertex for a specific
// piece of vertex data.
func (v VertexFormat) Components() int {
	switch v {
	case VertexTexcoord:
		return 2
	default:
		return 3
	}
}

func (v VertexFormat) String() string {
	switch v {
	case VertexPosition:
		return "position"
	case VertexColor:
		return "color"
	case VertexNormal:
		return "normal"
	case VertexTexcoord:
		return "texcoord"
	default:
		return fmt.Sprintf("VertexFormat(%#x)", uint32(v))
	}
}

// VertexAttributes maps specific vertex data to shader attributes by name.
type VertexAttributes map[VertexFormat]string

var DefaultVertexAttributes = VertexAttributes{
	VertexPosition: "vertexPosition",
	VertexColor:    "vertexColor",
}

// Format returns a VertexFormat bitmask determined by the mapped attributes.
func (v VertexAttributes) Format() VertexFormat {
	var mask VertexFormat
	for k := range v {
		mask |= k
	}
	return mask
}

// VertexBuffer holds one tightly packed float32 vertex attribute stream.
type VertexBuffer struct {
	s     *State
	id    uint32
	count int
}

// NewVertexBuffer uploads data into a new ARRAY_BUFFER. The buffer is left
// unbound afterwards.
func NewVertexBuffer(s *State, data []float32, usage Usage) (*VertexBuffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyBuffer
	}
	b := &VertexBuffer{s: s, id: s.ctx.CreateBuffer(), count: len(data)}
	s.BindBuffer(ArrayBuffer, b.id)
	s.ctx.BufferData(ArrayBuffer, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), 4*len(data)), usage.gl())
	s.BindBuffer(ArrayBuffer, 0)
	slog.Debug("uploaded vertex buffer", "id", b.id, "floats", len(data))
	return b, nil
}

// Len returns the number of float32 values in the buffer.
func (b *VertexBuffer) Len() int {
	return b.count
}

// Floats reads the buffer contents back from the context.
func (b *VertexBuffer) Floats() ([]float32, error) {
	if b.id == 0 {
		return nil, ErrReleased
	}
	out := make([]float32, b.count)
	b.s.BindBuffer(ArrayBuffer, b.id)
	b.s.ctx.GetBufferSubData(ArrayBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), 4*len(out)))
	b.s.BindBuffer(ArrayBuffer, 0)
	return out, nil
}

func (b *VertexBuffer) Release() {
	if b.id == 0 {
		return
	}
	b.s.ctx.DeleteBuffer(b.id)
	b.s.forget(b.id, bufferObject)
	b.id = 0
}

// IndexBuffer holds unsigned 16-bit triangle indices.
type IndexBuffer struct {
	s     *State
	id    uint32
	count int
	max   uint16
}

// NewIndexBuffer uploads indices into a new ELEMENT_ARRAY_BUFFER. No vertex
// array is bound during the upload so none picks up the binding.
func NewIndexBuffer(s *State, indices []uint16, usage Usage) (*IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, ErrEmptyBuffer
	}
	b := &IndexBuffer{s: s, id: s.ctx.CreateBuffer(), count: len(indices)}
	for _, i := range indices {
		if i > b.max {
			b.max = i
		}
	}
	prev := s.vertexArray
	if prev != 0 {
		s.BindVertexArray(0)
	}
	s.BindBuffer(ElementArrayBuffer, b.id)
	s.ctx.BufferData(ElementArrayBuffer, unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), 2*len(indices)), usage.gl())
	s.BindBuffer(ElementArrayBuffer, 0)
	if prev != 0 {
		s.BindVertexArray(prev)
	}
	slog.Debug("uploaded index buffer", "id", b.id, "indices", len(indices))
	return b, nil
}

func (b *IndexBuffer) Count() int {
	return b.count
}

// MaxIndex returns the largest index stored in the buffer.
func (b *IndexBuffer) MaxIndex() int {
	return int(b.max)
}

// Indices reads the buffer contents back from the context.
func (b *IndexBuffer) Indices() ([]uint16, error) {
	if b.id == 0 {
		return nil, ErrReleased
	}
	out := make([]uint16, b.count)
	prev := b.s.vertexArray
	if prev != 0 {
		b.s.BindVertexArray(0)
	}
	b.s.BindBuffer(ElementArrayBuffer, b.id)
	b.s.ctx.GetBufferSubData(ElementArrayBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), 2*len(out)))
	b.s.BindBuffer(ElementArrayBuffer, 0)
	if prev != 0 {
		b.s.BindVertexArray(prev)
	}
	return out, nil
}

func (b *IndexBuffer) Release() {
	if b.id == 0 {
		return
	}
	b.s.ctx.DeleteBuffer(b.id)
	b.s.forget(b.id, bufferObject)
	b.id = 0
}

// Uint16Indices converts idxs to 16-bit indices, failing if any value does
// not fit.
func Uint16Indices(idxs []int) ([]uint16, error) {
	out := make([]uint16, len(idxs))
	for i, v := range idxs {
		if v < 0 || v > math.MaxUint16 {
			return nil, fmt.Errorf("%w: index %d is %d", ErrIndexRange, i, v)
		}
		out[i] = uint16(v)
	}
	return out, nil
}
