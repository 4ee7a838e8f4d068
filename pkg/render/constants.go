package render

import "github.com/go-gl/mathgl/mgl32"

// Camera constants
const (
	// Movement speed in world units per second and look sensitivity in degrees per pixel
	DefaultMoveSpeed   = 10.0
	DefaultSensitivity = 0.1

	// Default orientation
	DefaultYaw   = -90.0 // Facing -Z direction
	DefaultPitch = 0.0

	// Field of view
	DefaultFOV = 45.0
	MinFOV     = 1.0

	// Constraints
	MaxPitch = 89.0
	MinPitch = -89.0

	// Clip planes
	NearPlane = 0.1
	FarPlane  = 100.0
)

// WorldUp is the fixed up axis of the Y-up coordinate system
var WorldUp = mgl32.Vec3{0, 1, 0}

// DefaultClearColor is the framebuffer clear colour
var DefaultClearColor = mgl32.Vec4{0, 0, 0, 1}
