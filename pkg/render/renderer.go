// Package render drives the per-frame loop: timing, camera motion, cursor
// lock, uniform state and presentation. GPU work is delegated to a Scene and
// window work to a Surface, so nothing here needs a graphics context.
package render

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-flycam/pkg/input"
)

// Surface is the window and context the loop renders into
type Surface interface {
	ShouldClose() bool
	SetShouldClose(value bool)
	FramebufferSize() (width, height int)
	CursorPos() (x, y float64)
	SetMouseCaptured(captured bool)
	IsMouseCaptured() bool
	Clear(color mgl32.Vec4)
	SwapBuffers()
	PollEvents()
	Close()
}

// FrameState is the render state pushed to the scene every frame
type FrameState struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Model      mgl32.Mat4
	ViewPos    mgl32.Vec3
	Time       float32
	Lighting   Lighting
}

// Scene binds its GPU resources, pushes uniforms and issues draw calls
type Scene interface {
	Render(frame FrameState)
	Delete()
}

// Renderer handles the frame loop
type Renderer struct {
	surface Surface
	tracker *input.Tracker
	camera  *Camera
	scene   Scene

	clock      Clock
	clearColor mgl32.Vec4
	lighting   Lighting
	spinRate   float32

	// Timing
	timer     FrameTimer
	deltaTime float32
	totalTime float32

	isClosed bool
}

// Option configures a Renderer
type Option func(*Renderer)

// WithClock replaces the time source
func WithClock(clock Clock) Option {
	return func(r *Renderer) { r.clock = clock }
}

// WithClearColor sets the framebuffer clear colour
func WithClearColor(color mgl32.Vec4) Option {
	return func(r *Renderer) { r.clearColor = color }
}

// WithLighting sets the lights pushed every frame
func WithLighting(lighting Lighting) Option {
	return func(r *Renderer) { r.lighting = lighting }
}

// WithSpinRate sets how fast the model turns, in degrees per second. Zero
// leaves the model untransformed.
func WithSpinRate(degreesPerSecond float32) Option {
	return func(r *Renderer) { r.spinRate = degreesPerSecond }
}

// NewRenderer wires the camera to the tracker's look offsets and syncs the
// tracker's cursor mode with the surface.
func NewRenderer(surface Surface, tracker *input.Tracker, camera *Camera, scene Scene, opts ...Option) *Renderer {
	r := &Renderer{
		surface:    surface,
		tracker:    tracker,
		camera:     camera,
		scene:      scene,
		clearColor: DefaultClearColor,
		lighting:   DefaultLighting(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.clock == nil {
		r.clock = func() float64 { return 0 }
	}

	tracker.OnLookOffset(camera.OnLookOffset)

	if surface.IsMouseCaptured() {
		tracker.SetCursorMode(input.CursorLocked)
		tracker.ResetCursorAnchor(surface.CursorPos())
	} else {
		tracker.SetCursorMode(input.CursorFree)
	}

	return r
}

// Camera returns the camera driven by the loop
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// DeltaTime returns the duration of the last frame in seconds
func (r *Renderer) DeltaTime() float32 {
	return r.deltaTime
}

// Frame runs one iteration of the loop. The order matters: the cursor lock
// toggles after the camera moved and before any new cursor events arrive, so
// the anchor reset lands before the next offset is computed.
func (r *Renderer) Frame() {
	// Calculate delta time
	r.deltaTime = r.timer.Tick(r.clock())
	r.totalTime += r.deltaTime

	// Move camera from held actions
	r.camera.Update(r.tracker, r.deltaTime)

	if r.tracker.Clicked(input.ActionToggleMouse) {
		r.toggleCursorLock()
	}
	if r.tracker.Clicked(input.ActionQuit) {
		r.surface.SetShouldClose(true)
	}

	r.surface.Clear(r.clearColor)

	width, height := r.surface.FramebufferSize()
	r.scene.Render(FrameState{
		View:       r.camera.ViewMatrix(),
		Projection: r.camera.ProjectionMatrix(width, height),
		Model:      ModelMatrix(r.totalTime, r.spinRate),
		ViewPos:    r.camera.Position(),
		Time:       r.totalTime,
		Lighting:   r.lighting,
	})

	// Present; polling re-enters the tracker through the window callbacks
	r.surface.SwapBuffers()
	r.surface.PollEvents()
}

func (r *Renderer) toggleCursorLock() {
	if r.tracker.CursorMode() == input.CursorLocked {
		r.tracker.SetCursorMode(input.CursorFree)
		r.surface.SetMouseCaptured(false)
		return
	}

	r.surface.SetMouseCaptured(true)
	r.tracker.SetCursorMode(input.CursorLocked)
	r.tracker.ResetCursorAnchor(r.surface.CursorPos())
}

// Run starts the main rendering loop and cleans up once the surface asks to close
func (r *Renderer) Run() {
	r.timer.Reset(r.clock())

	for !r.surface.ShouldClose() {
		r.Frame()
	}

	r.Cleanup()
}

// Cleanup releases the scene, then the surface. Later calls do nothing.
func (r *Renderer) Cleanup() {
	if r.isClosed {
		return
	}
	r.isClosed = true

	log.Printf("shutting down after %.1fs", r.totalTime)

	r.scene.Delete()
	r.surface.Close()
}

// ModelMatrix returns the model transform at time t (seconds): tilted back
// 55 degrees and spinning about a skewed axis. A zero spin rate yields the
// identity.
func ModelMatrix(t, degreesPerSecond float32) mgl32.Mat4 {
	if degreesPerSecond == 0 {
		return mgl32.Ident4()
	}
	tilt := mgl32.HomogRotate3DX(mgl32.DegToRad(-55))
	spin := mgl32.HomogRotate3D(mgl32.DegToRad(t*degreesPerSecond), mgl32.Vec3{0.5, 1, 0}.Normalize())
	return tilt.Mul4(spin)
}
