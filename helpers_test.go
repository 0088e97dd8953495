package cube_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"j4k.co/cube"
	"j4k.co/cube/geometry"
	"j4k.co/cube/testgfx"
)

type surface struct {
	w, h int
}

func (s surface) Size() (int, int) {
	return s.w, s.h
}

func newState() (*cube.State, *testgfx.Context) {
	ctx := testgfx.New()
	return cube.NewState(ctx), ctx
}

func mustProgram(t *testing.T, s *cube.State, vsrc cube.VertexShader, fsrc cube.FragmentShader) *cube.Program {
	t.Helper()
	vs, err := cube.CompileShader(s, vsrc)
	require.NoError(t, err)
	fs, err := cube.CompileShader(s, fsrc)
	require.NoError(t, err)
	p, err := cube.LinkProgram(s, vs, fs)
	require.NoError(t, err)
	return p
}

type pipeline struct {
	s        *cube.State
	program  *cube.Program
	va       *cube.VertexArray
	pos, col *cube.VertexBuffer
	idx      *cube.IndexBuffer
	posSlot  cube.Attrib
	colSlot  cube.Attrib
}

// setupCube runs everything up to and including vertex array recording
// for the cube mesh.
func setupCube(t *testing.T, s *cube.State) pipeline {
	t.Helper()
	m := geometry.Cube()
	pl := pipeline{s: s}
	var err error
	pl.program = mustProgram(t, s, testgfx.Vertex, testgfx.Fragment)
	var ok bool
	pl.posSlot, ok = pl.program.AttribLocation("vertexPosition")
	require.True(t, ok)
	pl.colSlot, ok = pl.program.AttribLocation("vertexColor")
	require.True(t, ok)

	pl.pos, err = cube.NewVertexBuffer(s, m.Streams[cube.VertexPosition], cube.StaticDraw)
	require.NoError(t, err)
	pl.col, err = cube.NewVertexBuffer(s, m.Streams[cube.VertexColor], cube.StaticDraw)
	require.NoError(t, err)
	pl.idx, err = cube.NewIndexBuffer(s, m.Indices, cube.StaticDraw)
	require.NoError(t, err)

	pl.va = cube.NewVertexArray(s)
	err = pl.va.Record(func(r *cube.Recorder) error {
		if err := r.Enable(pl.posSlot); err != nil {
			return err
		}
		if err := r.Bind(pl.posSlot, 3, pl.pos); err != nil {
			return err
		}
		if err := r.Enable(pl.colSlot); err != nil {
			return err
		}
		if err := r.Bind(pl.colSlot, 3, pl.col); err != nil {
			return err
		}
		return r.Indices(pl.idx)
	})
	require.NoError(t, err)
	return pl
}
