package cube_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"j4k.co/cube"
	"j4k.co/cube/testgfx"
)

func TestDraw(t *testing.T) {
	s, ctx := newState()
	pl := setupCube(t, s)
	_, err := cube.SetupTransform(pl.program, defaultCamera, defaultProjection)
	require.NoError(t, err)

	// leave the context in some other state; Draw rebinds what it needs
	s.UseProgram(0)
	s.BindVertexArray(0)

	r := cube.NewRenderer(s, cube.Black)
	r.Viewport(surface{640, 480})
	require.NoError(t, r.Draw(pl.program, pl.va))

	draws := ctx.Draws()
	require.Len(t, draws, 1)
	d := draws[0]
	assert.Equal(t, cube.Triangles, d.Mode)
	assert.EqualValues(t, 36, d.Count)
	assert.Equal(t, cube.UnsignedShort, d.Type)
	assert.Zero(t, d.Offset)
	assert.Equal(t, s.Bindings().VertexArray, d.VertexArray)
	assert.Equal(t, s.Bindings().Program, d.Program)
	assert.Equal(t, s.Bindings().ElementArrayBuffer, d.Elements)

	clears := ctx.Clears()
	require.Len(t, clears, 1)
	assert.Equal(t, cube.ColorBufferBit, clears[0].Mask)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, clears[0].Color)

	calls := ctx.Calls()
	assert.Less(t, indexOf(calls, "Clear"), indexOf(calls, "DrawElements"))
	assert.Equal(t, [4]int32{0, 0, 640, 480}, ctx.ViewportRect())
	assert.Empty(t, ctx.Errors())
}

func TestDrawClearColor(t *testing.T) {
	s, ctx := newState()
	pl := setupCube(t, s)
	r := cube.NewRenderer(s, cube.Color{R: 0.2, G: 0.3, B: 0.4, A: 1})
	require.NoError(t, r.Draw(pl.program, pl.va))
	require.Len(t, ctx.Clears(), 1)
	assert.Equal(t, [4]float32{0.2, 0.3, 0.4, 1}, ctx.Clears()[0].Color)
}

func TestDrawUnrecorded(t *testing.T) {
	s, ctx := newState()
	p := mustProgram(t, s, testgfx.Vertex, testgfx.Fragment)
	va := cube.NewVertexArray(s)
	r := cube.NewRenderer(s, cube.Black)

	assert.ErrorIs(t, r.Draw(p, va), cube.ErrNotRecorded)
	assert.ErrorIs(t, r.Draw(p, nil), cube.ErrNotRecorded)
	assert.Empty(t, ctx.Draws())
	assert.Empty(t, ctx.Clears())
	assert.Zero(t, s.Bindings().Program, "a rejected draw leaves the current program alone")
	assert.Zero(t, ctx.CurrentProgram())

	p.Release()
	assert.ErrorIs(t, r.Draw(p, va), cube.ErrReleased)
}

func indexOf(calls []string, name string) int {
	for i, c := range calls {
		if c == name {
			return i
		}
	}
	return -1
}
