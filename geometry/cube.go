package geometry

import "j4k.co/cube"

// Cube returns a cube spanning [-1, 1] on every axis with a distinct color
// at each of its eight corners. Each face is two triangles wound
// counter-clockwise seen from outside. The data is fixed and always
// validates, so Cube never panics in practice; the panic only guards edits
// to the literal below.
func Cube() *Mesh {
	b := NewBuilder(cube.VertexPosition | cube.VertexColor)
	b.Position(-1, 1, 1).Color(1, 0, 1)
	b.Position(1, 1, 1).Color(1, 1, 1)
	b.Position(1, 1, -1).Color(0, 1, 1)
	b.Position(-1, 1, -1).Color(0, 0, 1)
	b.Position(-1, -1, 1).Color(1, 0, 0)
	b.Position(1, -1, 1).Color(1, 1, 0)
	b.Position(1, -1, -1).Color(0, 1, 0)
	b.Position(-1, -1, -1).Color(0, 0, 0)

	// top
	b.Triangle(0, 1, 3).Triangle(3, 1, 2)
	// bottom
	b.Triangle(7, 5, 4).Triangle(5, 7, 6)
	// left
	b.Triangle(3, 4, 0).Triangle(3, 7, 4)
	// right
	b.Triangle(5, 2, 1).Triangle(5, 6, 2)
	// front
	b.Triangle(4, 1, 0).Triangle(4, 5, 1)
	// back
	b.Triangle(6, 3, 2).Triangle(6, 7, 3)

	m, err := b.Mesh()
	if err != nil {
		panic(err)
	}
	return m
}
