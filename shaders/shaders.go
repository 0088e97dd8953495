// Package shaders packages the GLSL sources for the cube with the binary.
package shaders

import (
	_ "embed"
	"fmt"
	"os"

	"j4k.co/cube"
)

//go:embed cube.vert
var vertexSource string

//go:embed cube.frag
var fragmentSource string

var (
	Vertex   = cube.VertexShader(vertexSource)
	Fragment = cube.FragmentShader(fragmentSource)
)

// Load returns the embedded pair, with either stage replaced by the contents
// of a file when its path is non-empty.
func Load(vertexPath, fragmentPath string) (cube.VertexShader, cube.FragmentShader, error) {
	vs, fs := Vertex, Fragment
	if vertexPath != "" {
		b, err := os.ReadFile(vertexPath)
		if err != nil {
			return "", "", fmt.Errorf("shaders: vertex: %w", err)
		}
		vs = cube.VertexShader(b)
	}
	if fragmentPath != "" {
		b, err := os.ReadFile(fragmentPath)
		if err != nil {
			return "", "", fmt.Errorf("shaders: fragment: %w", err)
		}
		fs = cube.FragmentShader(b)
	}
	return vs, fs, nil
}
