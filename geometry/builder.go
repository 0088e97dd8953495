package geometry

import (
	"fmt"

	"j4k.co/cube"
)

// Mesh is indexed triangle geometry with one float32 stream per vertex
// format, not interleaved.
type Mesh struct {
	Format  cube.VertexFormat
	Streams map[cube.VertexFormat][]float32
	Indices []uint16
}

// VertexCount returns the number of vertices, taken from the position stream.
func (m *Mesh) VertexCount() int {
	return len(m.Streams[cube.VertexPosition]) / cube.VertexPosition.Components()
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks that every stream covers the same vertices, that colors
// are in [0, 1], that the index list is made of whole triangles, and that
// every index names a vertex.
func (m *Mesh) Validate() error {
	if m.Format&cube.VertexPosition == 0 {
		return fmt.Errorf("geometry: mesh has no positions")
	}
	n := m.VertexCount()
	for i := cube.VertexFormat(1); i <= cube.MaxVertexFormat; i <<= 1 {
		if m.Format&i == 0 {
			continue
		}
		s := m.Streams[i]
		if len(s)%i.Components() != 0 || len(s)/i.Components() != n {
			return fmt.Errorf("geometry: %s stream has %d values, want %d", i, len(s), n*i.Components())
		}
	}
	if m.Format&cube.VertexColor != 0 {
		for i, v := range m.Streams[cube.VertexColor] {
			if !(v >= 0 && v <= 1) {
				return fmt.Errorf("geometry: color of vertex %d has channel %g outside [0, 1]", i/3, v)
			}
		}
	}
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		return fmt.Errorf("geometry: %d indices is not a whole number of triangles", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("geometry: index %d is %d, only %d vertices: %w", i, idx, n, cube.ErrIndexRange)
		}
	}
	return nil
}

// Builder accumulates vertices and triangles. A vertex is started by
// Position; other data set after it applies to that vertex. Data not set on
// a vertex is copied from the previous one.
type Builder struct {
	vf      cube.VertexFormat
	streams map[cube.VertexFormat][]float32
	curvf   cube.VertexFormat
	verts   int
	idxs    []uint16
	err     error
}

func NewBuilder(vf cube.VertexFormat) *Builder {
	return &Builder{
		vf:      vf | cube.VertexPosition,
		streams: make(map[cube.VertexFormat][]float32),
	}
}

// fillVertex completes the current vertex using the last set data from the
// previous vertex, or zeros for the first one.
func (b *Builder) fillVertex() {
	if b.verts == 0 {
		return
	}
	for i := cube.VertexFormat(1); i <= cube.MaxVertexFormat; i <<= 1 {
		if b.vf&i == 0 || b.curvf&i != 0 {
			continue
		}
		n := i.Components()
		s := b.streams[i]
		if len(s) >= n {
			s = append(s, s[len(s)-n:]...)
		} else {
			s = append(s, make([]float32, n)...)
		}
		b.streams[i] = s
	}
}

func (b *Builder) set(v cube.VertexFormat, data ...float32) *Builder {
	switch {
	case b.vf&v == 0:
		b.fail(fmt.Errorf("geometry: %s not in vertex format", v))
	case b.verts == 0:
		b.fail(fmt.Errorf("geometry: %s set before any position", v))
	case b.curvf&v != 0:
		b.fail(fmt.Errorf("geometry: %s set twice on vertex %d", v, b.verts-1))
	default:
		b.curvf |= v
		b.streams[v] = append(b.streams[v], data...)
	}
	return b
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Position starts a new vertex at x, y, z.
func (b *Builder) Position(x, y, z float32) *Builder {
	b.fillVertex()
	b.verts++
	b.curvf = 0
	return b.set(cube.VertexPosition, x, y, z)
}

// Color sets the RGB color of the current vertex, channels in [0, 1].
func (b *Builder) Color(red, green, blue float32) *Builder {
	for _, v := range [3]float32{red, green, blue} {
		if !(v >= 0 && v <= 1) {
			b.fail(fmt.Errorf("geometry: color channel %g outside [0, 1] on vertex %d", v, b.verts-1))
			return b
		}
	}
	return b.set(cube.VertexColor, red, green, blue)
}

func (b *Builder) Normal(x, y, z float32) *Builder {
	return b.set(cube.VertexNormal, x, y, z)
}

func (b *Builder) Texcoord(u, v float32) *Builder {
	return b.set(cube.VertexTexcoord, u, v)
}

// Triangle appends one triangle. Indices are absolute and should run
// counter-clockwise seen from the front.
func (b *Builder) Triangle(i0, i1, i2 uint16) *Builder {
	b.idxs = append(b.idxs, i0, i1, i2)
	return b
}

// VertexCount returns the number of vertices started so far.
func (b *Builder) VertexCount() int {
	return b.verts
}

// Mesh finishes the current vertex and returns the validated mesh.
func (b *Builder) Mesh() (*Mesh, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.fillVertex()
	b.curvf = b.vf
	m := &Mesh{
		Format:  b.vf,
		Streams: make(map[cube.VertexFormat][]float32, len(b.streams)),
		Indices: append([]uint16(nil), b.idxs...),
	}
	for k, s := range b.streams {
		m.Streams[k] = append([]float32(nil), s...)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Clear resets the builder to no vertices and no triangles.
func (b *Builder) Clear() {
	b.streams = make(map[cube.VertexFormat][]float32, len(b.streams))
	b.curvf = 0
	b.verts = 0
	b.idxs = b.idxs[:0]
	b.err = nil
}
