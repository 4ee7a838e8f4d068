package openglhelper

import (
	"fmt"
	"log"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-flycam/pkg/input"
)

// Window handles GLFW window creation and management.
// Input callbacks are plain closures bound per window.
type Window struct {
	glfwWindow    *glfw.Window
	width         int
	height        int
	title         string
	mouseCaptured bool

	onKey       func(key input.Key, action input.KeyAction)
	onCursorPos func(x, y float64)
	onScroll    func(xoffset, yoffset float64)
	onResize    func(width, height int)
}

// NewWindow creates a GLFW window with a 4.6 core context and makes it current.
// A debug context is requested when debug is set; see EnableDebugOutput.
func NewWindow(width, height int, title string, vsync, debug bool) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	glfwWindow, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	glfwWindow.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	w := &Window{
		glfwWindow: glfwWindow,
		title:      title,
	}
	// The framebuffer can differ from the requested size on HiDPI displays
	w.width, w.height = glfwWindow.GetFramebufferSize()
	gl.Viewport(0, 0, int32(w.width), int32(w.height))

	glfwWindow.SetKeyCallback(w.keyCallback)
	glfwWindow.SetCursorPosCallback(w.cursorPosCallback)
	glfwWindow.SetScrollCallback(w.scrollCallback)
	glfwWindow.SetFramebufferSizeCallback(w.framebufferSizeCallback)

	return w, nil
}

// EnableDebugOutput routes driver messages to the log. Needs a debug context.
func (w *Window) EnableDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		if severity == gl.DEBUG_SEVERITY_NOTIFICATION {
			return
		}
		log.Printf("GL debug [%s] id=%d source=0x%x type=0x%x: %s", severityName(severity), id, source, gltype, message)
	}, nil)
}

func severityName(severity uint32) string {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return "high"
	case gl.DEBUG_SEVERITY_MEDIUM:
		return "medium"
	case gl.DEBUG_SEVERITY_LOW:
		return "low"
	default:
		return "notification"
	}
}

// OnKey registers the key handler, replacing any previous one
func (w *Window) OnKey(fn func(key input.Key, action input.KeyAction)) {
	w.onKey = fn
}

// OnCursorPos registers the cursor movement handler
func (w *Window) OnCursorPos(fn func(x, y float64)) {
	w.onCursorPos = fn
}

// OnScroll registers the scroll wheel handler
func (w *Window) OnScroll(fn func(xoffset, yoffset float64)) {
	w.onScroll = fn
}

// OnResize registers a handler run after the viewport follows a framebuffer resize
func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if w.onKey != nil {
		w.onKey(input.Key(key), input.KeyAction(action))
	}
}

func (w *Window) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	if w.onCursorPos != nil {
		w.onCursorPos(xpos, ypos)
	}
}

func (w *Window) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	if w.onScroll != nil {
		w.onScroll(xoff, yoff)
	}
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	w.width = width
	w.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// Clear clears colour and depth
func (w *Window) Clear(color mgl32.Vec4) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), color.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SwapBuffers swaps the front and back buffers
func (w *Window) SwapBuffers() {
	w.glfwWindow.SwapBuffers()
}

// PollEvents processes pending events, running the registered callbacks
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose returns whether the window should close
func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

// SetShouldClose flags the window for closing at the end of the frame
func (w *Window) SetShouldClose(value bool) {
	w.glfwWindow.SetShouldClose(value)
}

// Close destroys the window and terminates GLFW
func (w *Window) Close() {
	w.glfwWindow.Destroy()
	glfw.Terminate()
}

// FramebufferSize returns the drawable size in pixels
func (w *Window) FramebufferSize() (width, height int) {
	return w.width, w.height
}

// CursorPos returns the cursor position in window coordinates
func (w *Window) CursorPos() (x, y float64) {
	return w.glfwWindow.GetCursorPos()
}

// SetTitle sets the window title
func (w *Window) SetTitle(title string) {
	w.title = title
	w.glfwWindow.SetTitle(title)
}

// SetMouseCaptured hides and confines the cursor, or releases it
func (w *Window) SetMouseCaptured(captured bool) {
	w.mouseCaptured = captured

	if captured {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			w.glfwWindow.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
	} else {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// IsMouseCaptured returns whether the mouse is currently captured
func (w *Window) IsMouseCaptured() bool {
	return w.mouseCaptured
}
