package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-flycam/pkg/input"
)

// HeldQuerier answers level-triggered action queries. The camera only reads
// input state through it.
type HeldQuerier interface {
	Held(action string) bool
}

// Camera implements a free-flying 3D camera
type Camera struct {
	// Position and orientation
	position mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3

	// Euler angles in degrees
	yaw   float32
	pitch float32

	// Camera options
	fov         float32
	maxFOV      float32
	moveSpeed   float32
	sensitivity float32
}

// CameraOption configures a camera at construction
type CameraOption func(*Camera)

// WithFOV sets the vertical field of view in degrees. It is also the upper
// bound for Zoom.
func WithFOV(fov float32) CameraOption {
	return func(c *Camera) {
		c.fov = fov
		c.maxFOV = fov
	}
}

// WithMoveSpeed sets the movement speed in world units per second
func WithMoveSpeed(speed float32) CameraOption {
	return func(c *Camera) { c.moveSpeed = speed }
}

// WithSensitivity sets the look sensitivity in degrees per pixel of cursor travel
func WithSensitivity(sensitivity float32) CameraOption {
	return func(c *Camera) { c.sensitivity = sensitivity }
}

// NewCamera creates a new camera looking down -Z
func NewCamera(position mgl32.Vec3, opts ...CameraOption) *Camera {
	camera := &Camera{
		position:    position,
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		fov:         DefaultFOV,
		maxFOV:      DefaultFOV,
		moveSpeed:   DefaultMoveSpeed,
		sensitivity: DefaultSensitivity,
	}
	for _, opt := range opts {
		opt(camera)
	}

	camera.recomputeBasis()

	return camera
}

// recomputeBasis derives front/right/up from yaw and pitch. Every orientation
// change ends here so the basis is never stale.
func (c *Camera) recomputeBasis() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.front = front.Normalize()

	// up is always derived so the basis stays orthogonal
	c.right = c.front.Cross(WorldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

func clampPitch(pitch float32) float32 {
	return mgl32.Clamp(pitch, MinPitch, MaxPitch)
}

// OnLookOffset turns the camera by a cursor offset in pixels. Positive dy
// looks up.
func (c *Camera) OnLookOffset(dx, dy float64) {
	c.yaw += float32(dx) * c.sensitivity
	c.pitch = clampPitch(c.pitch + float32(dy)*c.sensitivity)

	c.recomputeBasis()
}

// Update moves the camera along every held direction. The summed direction is
// normalized so diagonal movement is no faster than straight movement.
func (c *Camera) Update(held HeldQuerier, deltaTime float32) {
	var move mgl32.Vec3

	// Forward/Backward
	if held.Held(input.ActionForward) {
		move = move.Add(c.front)
	}
	if held.Held(input.ActionBack) {
		move = move.Sub(c.front)
	}

	// Left/Right
	if held.Held(input.ActionLeft) {
		move = move.Sub(c.right)
	}
	if held.Held(input.ActionRight) {
		move = move.Add(c.right)
	}

	// Up/Down along the world axis
	if held.Held(input.ActionUp) {
		move = move.Add(WorldUp)
	}
	if held.Held(input.ActionDown) {
		move = move.Sub(WorldUp)
	}

	// a zero vector has no direction to normalize
	if move == (mgl32.Vec3{}) || deltaTime <= 0 {
		return
	}

	c.position = c.position.Add(move.Normalize().Mul(c.moveSpeed * deltaTime))
}

// ViewMatrix returns the current view matrix
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// ProjectionMatrix returns a perspective projection for a viewport of the
// given size. A minimized window reports 0x0, which is treated as 1x1.
func (c *Camera) ProjectionMatrix(width, height int) mgl32.Mat4 {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	aspect := float32(width) / float32(height)
	return mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, NearPlane, FarPlane)
}

// Position returns the current camera position
func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

// SetPosition sets the camera position
func (c *Camera) SetPosition(pos mgl32.Vec3) {
	c.position = pos
}

// Orientation returns the current camera orientation (yaw, pitch)
func (c *Camera) Orientation() (yaw, pitch float32) {
	return c.yaw, c.pitch
}

// SetRotation sets the camera rotation angles
func (c *Camera) SetRotation(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = clampPitch(pitch)

	c.recomputeBasis()
}

// LookAt makes the camera look at a specific point
func (c *Camera) LookAt(target mgl32.Vec3) {
	direction := target.Sub(c.position)
	if direction.Len() == 0 {
		return
	}
	direction = direction.Normalize()

	c.yaw = mgl32.RadToDeg(float32(math.Atan2(float64(direction.Z()), float64(direction.X()))))
	c.pitch = clampPitch(mgl32.RadToDeg(float32(math.Asin(float64(direction.Y())))))

	c.recomputeBasis()
}

// FOV returns the vertical field of view in degrees
func (c *Camera) FOV() float32 {
	return c.fov
}

// Zoom narrows or widens the field of view by a scroll offset
func (c *Camera) Zoom(yoffset float64) {
	c.fov = mgl32.Clamp(c.fov-float32(yoffset), MinFOV, c.maxFOV)
}

// FrontVector returns the camera's front direction vector
func (c *Camera) FrontVector() mgl32.Vec3 {
	return c.front
}

// RightVector returns the camera's right direction vector
func (c *Camera) RightVector() mgl32.Vec3 {
	return c.right
}

// UpVector returns the camera's up direction vector
func (c *Camera) UpVector() mgl32.Vec3 {
	return c.up
}
