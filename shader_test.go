package cube_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"j4k.co/cube"
	"j4k.co/cube/shaders"
	"j4k.co/cube/testgfx"
)

func TestCompileShader(t *testing.T) {
	s, ctx := newState()
	for _, src := range []cube.ShaderSource{testgfx.Vertex, testgfx.Fragment, shaders.Vertex, shaders.Fragment} {
		sh, err := cube.CompileShader(s, src)
		require.NoError(t, err)
		assert.Equal(t, src.Stage(), sh.Stage())
	}
	assert.Empty(t, ctx.Errors())
	assert.Equal(t, 4, ctx.Live())
}

func TestCompileShaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   cube.ShaderSource
		stage cube.Stage
		log   string
	}{
		{"vertex", testgfx.BrokenVertex, cube.VertexStage, "unexpected end of file"},
		{"fragment", testgfx.BrokenFragment, cube.FragmentStage, "'main' : function not defined"},
		{"directive", cube.FragmentShader("#error nope\nvoid main() {}"), cube.FragmentStage, "'#error' : nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ctx := newState()
			sh, err := cube.CompileShader(s, tt.src)
			assert.Nil(t, sh)
			var cerr *cube.ShaderCompilationError
			require.True(t, errors.As(err, &cerr), "got %v", err)
			assert.Equal(t, tt.stage, cerr.Stage)
			assert.Contains(t, cerr.Log, tt.log)
			assert.Contains(t, err.Error(), tt.stage.String()+" shader compilation failed")
			assert.Zero(t, ctx.Live(), "failed shader should be deleted")
		})
	}
}

func TestShaderRelease(t *testing.T) {
	s, ctx := newState()
	sh, err := cube.CompileShader(s, testgfx.Vertex)
	require.NoError(t, err)
	sh.Release()
	sh.Release()
	assert.Zero(t, ctx.Live())
	assert.Empty(t, ctx.Errors())
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "vertex", cube.VertexStage.String())
	assert.Equal(t, "fragment", cube.FragmentStage.String())
	assert.Equal(t, "unknown", cube.Stage(7).String())
}
