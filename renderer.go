package cube

import (
	"fmt"
	"log/slog"
)

// Renderer draws one frame: a clear followed by a single indexed draw.
type Renderer struct {
	s     *State
	clear Color
}

func NewRenderer(s *State, clear Color) *Renderer {
	return &Renderer{s: s, clear: clear}
}

// Viewport maps normalized device coordinates to the whole of sf.
func (r *Renderer) Viewport(sf Surface) {
	w, h := sf.Size()
	r.s.ctx.Viewport(0, 0, int32(w), int32(h))
}

// Draw binds p and va, clears the color buffer and draws every index of va
// as triangles.
func (r *Renderer) Draw(p *Program, va *VertexArray) error {
	if p == nil || p.id == 0 {
		return ErrReleased
	}
	if err := va.ready(); err != nil {
		return err
	}
	n := va.IndexCount()
	if n%3 != 0 {
		return fmt.Errorf("%w: %d indices do not form triangles", ErrIndexRange, n)
	}
	p.Use()
	if err := va.Bind(); err != nil {
		return err
	}
	ctx := r.s.ctx
	ctx.ClearColor(r.clear.R, r.clear.G, r.clear.B, r.clear.A)
	ctx.Clear(ColorBufferBit)
	ctx.DrawElements(Triangles, int32(n), UnsignedShort, 0)
	slog.Debug("drew frame", "program", p.id, "vertexArray", va.id, "indices", n)
	return nil
}
