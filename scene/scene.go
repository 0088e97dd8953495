// Package scene runs the whole pipeline setup for one mesh: shaders,
// program, buffers, vertex array and camera, ready for a single draw.
package scene

import (
	"fmt"
	"log/slog"

	"j4k.co/cube"
	"j4k.co/cube/geometry"
)

type Options struct {
	Mesh       *geometry.Mesh
	Vertex     cube.VertexShader
	Fragment   cube.FragmentShader
	Attributes cube.VertexAttributes

	Camera cube.Camera
	// FovY is the vertical field of view in degrees. The aspect ratio comes
	// from the surface.
	FovY, Near, Far float32

	ClearColor cube.Color
}

type Scene struct {
	s        *cube.State
	surface  cube.Surface
	scope    cube.Scope
	program  *cube.Program
	va       *cube.VertexArray
	renderer *cube.Renderer

	Transform cube.Transform
}

// Setup creates every GL object the scene needs, in dependency order. If any
// step fails, whatever was created so far is released and nothing is drawn.
func Setup(s *cube.State, sf cube.Surface, o Options) (_ *Scene, err error) {
	if o.Mesh == nil {
		return nil, fmt.Errorf("scene: no mesh")
	}
	if err := o.Mesh.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if !o.ClearColor.Valid() {
		return nil, fmt.Errorf("scene: clear color %v outside [0, 1]", o.ClearColor)
	}
	if o.Attributes == nil {
		o.Attributes = cube.DefaultVertexAttributes
	}
	aspect, err := cube.AspectRatio(sf)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	proj := cube.Projection{FovY: o.FovY, Aspect: aspect, Near: o.Near, Far: o.Far}
	if err := proj.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	sc := &Scene{s: s, surface: sf}
	defer func() {
		if err != nil {
			sc.scope.Release()
		}
	}()

	vs, err := cube.CompileShader(s, o.Vertex)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	fs, err := cube.CompileShader(s, o.Fragment)
	if err != nil {
		vs.Release()
		return nil, fmt.Errorf("scene: %w", err)
	}
	sc.program, err = cube.LinkProgram(s, vs, fs)
	// the program keeps working without its shader objects
	vs.Release()
	fs.Release()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	sc.scope.Add(sc.program)

	type stream struct {
		attrib     cube.Attrib
		components int
		buffer     *cube.VertexBuffer
	}
	var streams []stream
	for f := cube.VertexFormat(1); f <= cube.MaxVertexFormat; f <<= 1 {
		if o.Mesh.Format&f == 0 {
			continue
		}
		name, ok := o.Attributes[f]
		if !ok {
			slog.Debug("no attribute name for vertex data", "format", f)
			continue
		}
		a, ok := sc.program.AttribLocation(name)
		if !ok {
			slog.Warn("attribute not active in program", "name", name)
			continue
		}
		buf, err := cube.NewVertexBuffer(s, o.Mesh.Streams[f], cube.StaticDraw)
		if err != nil {
			return nil, fmt.Errorf("scene: %s: %w", f, err)
		}
		sc.scope.Add(buf)
		streams = append(streams, stream{attrib: a, components: f.Components(), buffer: buf})
	}

	ib, err := cube.NewIndexBuffer(s, o.Mesh.Indices, cube.StaticDraw)
	if err != nil {
		return nil, fmt.Errorf("scene: indices: %w", err)
	}
	sc.scope.Add(ib)

	sc.va = cube.NewVertexArray(s)
	sc.scope.Add(sc.va)
	err = sc.va.Record(func(r *cube.Recorder) error {
		for _, st := range streams {
			if err := r.Enable(st.attrib); err != nil {
				return err
			}
			if err := r.Bind(st.attrib, st.components, st.buffer); err != nil {
				return err
			}
		}
		return r.Indices(ib)
	})
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	sc.Transform, err = cube.SetupTransform(sc.program, o.Camera, proj)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	sc.renderer = cube.NewRenderer(s, o.ClearColor)
	slog.Info("scene ready", "vertices", o.Mesh.VertexCount(), "triangles", o.Mesh.TriangleCount())
	return sc, nil
}

// Draw renders the scene once over the whole surface.
func (sc *Scene) Draw() error {
	sc.renderer.Viewport(sc.surface)
	return sc.renderer.Draw(sc.program, sc.va)
}

// Release frees every GL object of the scene. It must run on the thread that
// owns the context.
func (sc *Scene) Release() {
	sc.scope.Release()
}
