package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformSink is the part of a shader program lights write into
type UniformSink interface {
	SetInt(name string, value int32)
	SetFloat(name string, value float32)
	SetVec3(name string, vec mgl32.Vec3)
}

// DirLight is a directional light with Phong terms
type DirLight struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
}

// Apply writes the light into the dir_light uniform struct
func (l DirLight) Apply(s UniformSink) {
	s.SetVec3("dir_light.direction", l.Direction)
	s.SetVec3("dir_light.ambient", l.Ambient)
	s.SetVec3("dir_light.diffuse", l.Diffuse)
	s.SetVec3("dir_light.specular", l.Specular)
}

// PointLight is a positional light with distance attenuation
// 1 / (constant + linear*d + quadratic*d^2)
type PointLight struct {
	Position mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3

	Constant  float32
	Linear    float32
	Quadratic float32
}

// Apply writes the light into point_lights[index]
func (l PointLight) Apply(index int, s UniformSink) {
	prefix := fmt.Sprintf("point_lights[%d].", index)
	s.SetVec3(prefix+"pos", l.Position)
	s.SetVec3(prefix+"ambient", l.Ambient)
	s.SetVec3(prefix+"diffuse", l.Diffuse)
	s.SetVec3(prefix+"specular", l.Specular)

	s.SetFloat(prefix+"constant", l.Constant)
	s.SetFloat(prefix+"linear", l.Linear)
	s.SetFloat(prefix+"quadratic", l.Quadratic)
}

// Lighting is the full light setup pushed each frame
type Lighting struct {
	Dir    DirLight
	Points []PointLight
}

// Apply writes every light plus the point light count
func (l Lighting) Apply(s UniformSink) {
	l.Dir.Apply(s)
	for i, p := range l.Points {
		p.Apply(i, s)
	}
	s.SetInt("point_light_count", int32(len(l.Points)))
}

// DefaultLighting is a white sun from above plus one warm point light near the origin
func DefaultLighting() Lighting {
	return Lighting{
		Dir: DirLight{
			Direction: mgl32.Vec3{-0.2, -1.0, -0.3},
			Ambient:   mgl32.Vec3{0.1, 0.1, 0.1},
			Diffuse:   mgl32.Vec3{0.6, 0.6, 0.6},
			Specular:  mgl32.Vec3{0.5, 0.5, 0.5},
		},
		Points: []PointLight{
			{
				Position:  mgl32.Vec3{1.2, 1.0, 2.0},
				Ambient:   mgl32.Vec3{0.05, 0.04, 0.03},
				Diffuse:   mgl32.Vec3{0.8, 0.7, 0.6},
				Specular:  mgl32.Vec3{1.0, 1.0, 1.0},
				Constant:  1.0,
				Linear:    0.09,
				Quadratic: 0.032,
			},
		},
	}
}
