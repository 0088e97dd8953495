package cube

// Surface is something that can be drawn to. Only its size is needed here.
type Surface interface {
	Size() (width, height int)
}

// Color is a linear RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

var Black = Color{0, 0, 0, 1}

func (c Color) Valid() bool {
	for _, v := range [4]float32{c.R, c.G, c.B, c.A} {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}
