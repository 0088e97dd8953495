package glctx

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"j4k.co/cube"
)

// Window is a GLFW window with a current OpenGL 4.1 core context. It must be
// opened, used and closed on one locked OS thread.
type Window struct {
	w *glfw.Window
}

var _ cube.Surface = (*Window)(nil)

// Open initializes GLFW, creates a fixed size window and makes its context
// current. Without a display ErrSurfaceNotFound is returned; if no 4.1 core
// context can be created or loaded ErrContextUnavailable is.
func Open(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", cube.ErrSurfaceNotFound, err)
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", cube.ErrContextUnavailable, err)
	}
	w.MakeContextCurrent()
	glfw.SwapInterval(1)
	if err := gl.Init(); err != nil {
		w.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", cube.ErrContextUnavailable, err)
	}
	slog.Info("opened window", "title", title, "width", width, "height", height,
		"gl", gl.GoStr(gl.GetString(gl.VERSION)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))
	return &Window{w: w}, nil
}

// Size returns the framebuffer size in pixels, which differs from the window
// size on high density displays.
func (win *Window) Size() (width, height int) {
	return win.w.GetFramebufferSize()
}

func (win *Window) SwapBuffers() {
	win.w.SwapBuffers()
}

// Wait blocks processing events until the window is asked to close.
func (win *Window) Wait() {
	for !win.w.ShouldClose() {
		glfw.WaitEvents()
	}
}

// Close destroys the window and shuts GLFW down.
func (win *Window) Close() {
	if win.w == nil {
		return
	}
	win.w.Destroy()
	win.w = nil
	glfw.Terminate()
}
