package testgfx

import (
	"j4k.co/cube"
)

// Vertex and Fragment are a minimal valid pair with the attribute and
// uniform names the cube pipeline expects.
var Vertex cube.VertexShader = `
uniform mat4 viewMatrix;
uniform mat4 projectionMatrix;

attribute vec3 vertexPosition;
attribute vec3 vertexColor;

varying vec3 color;

void main() {
	color = vertexColor;
	gl_Position = projectionMatrix * viewMatrix * vec4(vertexPosition, 1.0);
}`

var Fragment cube.FragmentShader = `
varying vec3 color;

void main() {
	gl_FragColor = vec4(color, 1.0);
}`

// BrokenVertex is missing its closing brace.
var BrokenVertex cube.VertexShader = `
attribute vec3 vertexPosition;

void main() {
	gl_Position = vec4(vertexPosition, 1.0);
`

// BrokenFragment has no main function.
var BrokenFragment cube.FragmentShader = `
varying vec3 color;

void mian() {
	gl_FragColor = vec4(color, 1.0);
}`

// UnwrittenVarying compiles but reads a varying Vertex never writes, so
// linking it against Vertex fails.
var UnwrittenVarying cube.FragmentShader = `
varying vec3 normal;

void main() {
	gl_FragColor = vec4(normal, 1.0);
}`

// NoUniforms is a valid vertex shader without the camera uniforms.
var NoUniforms cube.VertexShader = `
attribute vec3 vertexPosition;
attribute vec3 vertexColor;

varying vec3 color;

void main() {
	color = vertexColor;
	gl_Position = vec4(vertexPosition, 1.0);
}`
