package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type recordingSink struct {
	ints   map[string]int32
	floats map[string]float32
	vecs   map[string]mgl32.Vec3
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		ints:   make(map[string]int32),
		floats: make(map[string]float32),
		vecs:   make(map[string]mgl32.Vec3),
	}
}

func (s *recordingSink) SetInt(name string, value int32)     { s.ints[name] = value }
func (s *recordingSink) SetFloat(name string, value float32) { s.floats[name] = value }
func (s *recordingSink) SetVec3(name string, vec mgl32.Vec3) { s.vecs[name] = vec }

func TestDirLight_Apply(t *testing.T) {
	l := DirLight{
		Direction: mgl32.Vec3{0, -1, 0},
		Ambient:   mgl32.Vec3{0.1, 0.1, 0.1},
		Diffuse:   mgl32.Vec3{0.5, 0.5, 0.5},
		Specular:  mgl32.Vec3{1, 1, 1},
	}
	s := newRecordingSink()
	l.Apply(s)

	tests := map[string]mgl32.Vec3{
		"dir_light.direction": l.Direction,
		"dir_light.ambient":   l.Ambient,
		"dir_light.diffuse":   l.Diffuse,
		"dir_light.specular":  l.Specular,
	}
	for name, expected := range tests {
		if r, ok := s.vecs[name]; !ok || r != expected {
			t.Errorf("%s = %v (set %v), want %v", name, r, ok, expected)
		}
	}
}

func TestLighting_Apply(t *testing.T) {
	l := DefaultLighting()
	l.Points = append(l.Points, PointLight{Position: mgl32.Vec3{9, 8, 7}, Constant: 1, Linear: 0.5, Quadratic: 0.25})

	s := newRecordingSink()
	l.Apply(s)

	if s.ints["point_light_count"] != 2 {
		t.Errorf("point_light_count = %d, want 2", s.ints["point_light_count"])
	}
	if s.vecs["point_lights[1].pos"] != (mgl32.Vec3{9, 8, 7}) {
		t.Errorf("point_lights[1].pos = %v", s.vecs["point_lights[1].pos"])
	}
	if s.floats["point_lights[1].linear"] != 0.5 || s.floats["point_lights[1].quadratic"] != 0.25 {
		t.Errorf("attenuation = %v / %v", s.floats["point_lights[1].linear"], s.floats["point_lights[1].quadratic"])
	}
	if s.vecs["point_lights[0].pos"] != DefaultLighting().Points[0].Position {
		t.Errorf("point_lights[0].pos = %v", s.vecs["point_lights[0].pos"])
	}
	if _, ok := s.vecs["dir_light.diffuse"]; !ok {
		t.Error("directional light not written")
	}
}
