package scene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"j4k.co/cube"
	"j4k.co/cube/geometry"
	"j4k.co/cube/shaders"
	"j4k.co/cube/testgfx"
)

type surface struct {
	w, h int
}

func (s surface) Size() (int, int) {
	return s.w, s.h
}

func cubeOptions() Options {
	return Options{
		Mesh:     geometry.Cube(),
		Vertex:   shaders.Vertex,
		Fragment: shaders.Fragment,
		Camera: cube.Camera{
			Eye:    mgl32.Vec3{3, 3, 5},
			Center: mgl32.Vec3{0, 0, 0},
			Up:     mgl32.Vec3{0, 1, 0},
		},
		FovY:       45,
		Near:       0.1,
		Far:        10,
		ClearColor: cube.Black,
	}
}

func TestSetupAndDraw(t *testing.T) {
	ctx := testgfx.New()
	s := cube.NewState(ctx)
	sc, err := Setup(s, surface{640, 480}, cubeOptions())
	require.NoError(t, err)
	assert.Equal(t, 5, ctx.Live(), "program, three buffers and a vertex array")
	assert.Empty(t, ctx.Draws(), "setup does not draw")

	require.NoError(t, sc.Draw())
	draws := ctx.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, testgfx.DrawCall{
		Mode:        cube.Triangles,
		Count:       36,
		Type:        cube.UnsignedShort,
		Offset:      0,
		Program:     draws[0].Program,
		VertexArray: draws[0].VertexArray,
		Elements:    draws[0].Elements,
	}, draws[0])
	assert.Equal(t, [4]int32{0, 0, 640, 480}, ctx.ViewportRect())

	view, ok := ctx.Uniform(draws[0].Program, "viewMatrix")
	require.True(t, ok)
	assert.Equal(t, sc.Transform.View[:], view)
	proj, ok := ctx.Uniform(draws[0].Program, "projectionMatrix")
	require.True(t, ok)
	want := mgl32.Perspective(mgl32.DegToRad(45), 640.0/480.0, 0.1, 10)
	assert.True(t, sc.Transform.Projection.ApproxEqual(want))
	assert.Equal(t, sc.Transform.Projection[:], proj)

	pos, err := ctx.FetchAttrib(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []float32{-1, 1, 1}, pos)
	col, err := ctx.FetchAttrib(1, 0)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 1}, col)

	sc.Release()
	assert.Zero(t, ctx.Live())
	assert.Empty(t, ctx.Errors())
}

func TestSetupFailures(t *testing.T) {
	tests := []struct {
		name   string
		modify func(o *Options)
		check  func(t *testing.T, err error)
	}{
		{"vertex shader", func(o *Options) { o.Vertex = testgfx.BrokenVertex }, func(t *testing.T, err error) {
			var cerr *cube.ShaderCompilationError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, cube.VertexStage, cerr.Stage)
		}},
		{"fragment shader", func(o *Options) { o.Fragment = testgfx.BrokenFragment }, func(t *testing.T, err error) {
			var cerr *cube.ShaderCompilationError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, cube.FragmentStage, cerr.Stage)
		}},
		{"link", func(o *Options) { o.Fragment = testgfx.UnwrittenVarying }, func(t *testing.T, err error) {
			var lerr *cube.ProgramLinkError
			assert.True(t, errors.As(err, &lerr))
		}},
		{"near plane", func(o *Options) { o.Near = 0 }, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, cube.ErrInvalidProjectionParameters)
		}},
		{"far plane", func(o *Options) { o.Far = o.Near }, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, cube.ErrInvalidProjectionParameters)
		}},
		{"camera", func(o *Options) { o.Camera.Eye = o.Camera.Center }, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, cube.ErrDegenerateCamera)
		}},
		{"mesh", func(o *Options) { o.Mesh = &geometry.Mesh{Format: cube.VertexPosition} }, func(t *testing.T, err error) {
			assert.ErrorContains(t, err, "whole number of triangles")
		}},
		{"clear color", func(o *Options) { o.ClearColor = cube.Color{R: 2, A: 1} }, func(t *testing.T, err error) {
			assert.ErrorContains(t, err, "clear color")
		}},
		{"no mesh", func(o *Options) { o.Mesh = nil }, func(t *testing.T, err error) {
			assert.ErrorContains(t, err, "no mesh")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testgfx.New()
			o := cubeOptions()
			tt.modify(&o)
			sc, err := Setup(cube.NewState(ctx), surface{640, 480}, o)
			assert.Nil(t, sc)
			require.Error(t, err)
			tt.check(t, err)
			assert.Zero(t, ctx.Live(), "everything created is released")
			assert.Empty(t, ctx.Draws())
			assert.Empty(t, ctx.Clears())
			assert.Empty(t, ctx.Errors())
		})
	}
}

func TestSetupZeroSurface(t *testing.T) {
	ctx := testgfx.New()
	_, err := Setup(cube.NewState(ctx), surface{0, 0}, cubeOptions())
	assert.ErrorIs(t, err, cube.ErrInvalidProjectionParameters)
	assert.Empty(t, ctx.Calls())
}

// Vertex data the program does not consume is left out of the vertex array
// instead of failing the setup.
func TestSetupInactiveAttribute(t *testing.T) {
	ctx := testgfx.New()
	o := cubeOptions()
	o.Vertex = cube.VertexShader(`
uniform mat4 viewMatrix;
uniform mat4 projectionMatrix;
attribute vec3 vertexPosition;
void main() {
	gl_Position = projectionMatrix * viewMatrix * vec4(vertexPosition, 1.0);
}`)
	o.Fragment = cube.FragmentShader(`void main() { gl_FragColor = vec4(1.0); }`)
	sc, err := Setup(cube.NewState(ctx), surface{100, 100}, o)
	require.NoError(t, err)
	assert.Equal(t, 4, ctx.Live(), "no color buffer")
	require.NoError(t, sc.Draw())
	assert.Len(t, ctx.Draws(), 1)
	sc.Release()
	assert.Empty(t, ctx.Errors())
}
