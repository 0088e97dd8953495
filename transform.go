package cube

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera places the eye looking at Center, with Up giving the roll.
type Camera struct {
	Eye, Center, Up mgl32.Vec3
}

// ViewMatrix builds the world-to-eye transform. An eye sitting on its target
// or an up vector parallel to the viewing direction gives ErrDegenerateCamera.
func (c Camera) ViewMatrix() (mgl32.Mat4, error) {
	dir := c.Center.Sub(c.Eye)
	if dir.Len() == 0 {
		return mgl32.Mat4{}, fmt.Errorf("%w: eye equals center %v", ErrDegenerateCamera, c.Eye)
	}
	if c.Up.Len() == 0 || dir.Normalize().Cross(c.Up.Normalize()).Len() < 1e-6 {
		return mgl32.Mat4{}, fmt.Errorf("%w: up %v is parallel to view direction", ErrDegenerateCamera, c.Up)
	}
	return mgl32.LookAtV(c.Eye, c.Center, c.Up), nil
}

// Projection describes a symmetric perspective frustum. FovY is the vertical
// field of view in degrees.
type Projection struct {
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32
}

func (p Projection) Validate() error {
	switch {
	case !finite(p.FovY, p.Aspect, p.Near, p.Far):
		return fmt.Errorf("%w: non-finite value in %+v", ErrInvalidProjectionParameters, p)
	case !(p.FovY > 0 && p.FovY < 180):
		return fmt.Errorf("%w: fov %g outside (0, 180) degrees", ErrInvalidProjectionParameters, p.FovY)
	case !(p.Aspect > 0):
		return fmt.Errorf("%w: aspect %g", ErrInvalidProjectionParameters, p.Aspect)
	case !(p.Near > 0 && p.Near < p.Far):
		return fmt.Errorf("%w: want 0 < near < far, got near %g far %g", ErrInvalidProjectionParameters, p.Near, p.Far)
	}
	return nil
}

func (p Projection) Matrix() (mgl32.Mat4, error) {
	if err := p.Validate(); err != nil {
		return mgl32.Mat4{}, err
	}
	return mgl32.Perspective(mgl32.DegToRad(p.FovY), p.Aspect, p.Near, p.Far), nil
}

// AspectRatio returns width/height of a surface.
func AspectRatio(sf Surface) (float32, error) {
	w, h := sf.Size()
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("%w: surface size %dx%d", ErrInvalidProjectionParameters, w, h)
	}
	return float32(w) / float32(h), nil
}

// Transform holds the camera matrices as uploaded to the program.
type Transform struct {
	View       mgl32.Mat4 `uniform:"viewMatrix"`
	Projection mgl32.Mat4 `uniform:"projectionMatrix"`
}

// SetupTransform computes the view and projection matrices and uploads them
// to p, which is made current first.
func SetupTransform(p *Program, cam Camera, proj Projection) (Transform, error) {
	var t Transform
	var err error
	if t.Projection, err = proj.Matrix(); err != nil {
		return Transform{}, err
	}
	if t.View, err = cam.ViewMatrix(); err != nil {
		return Transform{}, err
	}
	if p == nil || p.id == 0 {
		return Transform{}, ErrReleased
	}
	p.Use()
	if err := p.SetUniforms(t); err != nil {
		return Transform{}, err
	}
	return t, nil
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
