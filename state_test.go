package cube_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"j4k.co/cube"
)

func TestStateTracksElementsPerVertexArray(t *testing.T) {
	s, ctx := newState()
	a := ctx.CreateVertexArray()
	b := ctx.CreateVertexArray()
	buf := ctx.CreateBuffer()

	s.BindVertexArray(a)
	s.BindBuffer(cube.ElementArrayBuffer, buf)
	s.BindBuffer(cube.ArrayBuffer, buf)
	assert.Equal(t, cube.Bindings{VertexArray: a, ArrayBuffer: buf, ElementArrayBuffer: buf}, s.Bindings())

	s.BindVertexArray(b)
	assert.Equal(t, cube.Bindings{VertexArray: b, ArrayBuffer: buf}, s.Bindings())

	s.BindVertexArray(a)
	assert.Equal(t, buf, s.Bindings().ElementArrayBuffer)
	assert.Same(t, ctx, s.Context())
	assert.Empty(t, ctx.Errors())
}

// Deleting an index buffer unbinds it only from the vertex array that is
// bound at the time, as GL does.
func TestStateForgetsIndexBufferOnBoundArrayOnly(t *testing.T) {
	s, ctx := newState()
	a := cube.NewVertexArray(s)
	b := cube.NewVertexArray(s)
	ib, err := cube.NewIndexBuffer(s, []uint16{0, 0, 0}, cube.StaticDraw)
	require.NoError(t, err)
	for _, va := range []*cube.VertexArray{a, b} {
		require.NoError(t, va.Record(func(r *cube.Recorder) error { return r.Indices(ib) }))
	}

	require.NoError(t, a.Bind())
	ib.Release()
	assert.Zero(t, s.Bindings().ElementArrayBuffer)
	_, err = ctx.Elements()
	assert.Error(t, err)

	require.NoError(t, b.Bind())
	assert.NotZero(t, s.Bindings().ElementArrayBuffer, "b still names the deleted buffer")
	assert.Empty(t, ctx.Errors())
}
