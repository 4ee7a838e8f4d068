package shaders

import (
	"fmt"
	"strings"
	"testing"
)

func TestSourcesDeclareUniforms(t *testing.T) {
	tests := []struct {
		stage    string
		source   string
		uniforms []string
	}{
		{"vertex", Vertex, []string{"model", "view", "projection", "normal_matrix"}},
		{"fragment", Fragment, []string{
			"texture_diffuse", "texture_specular", "diff_txt_number", "specular_txt_number",
			"base_color", "shininess", "view_pos", "dir_light", "point_lights", "point_light_count",
		}},
	}

	for _, c := range tests {
		t.Run(c.stage, func(t *testing.T) {
			if !strings.HasPrefix(c.source, "#version 460 core") {
				t.Errorf("%s stage does not start with a 4.6 core version line", c.stage)
			}
			for _, u := range c.uniforms {
				if !strings.Contains(c.source, " "+u) {
					t.Errorf("%s stage is missing uniform %q", c.stage, u)
				}
			}
		})
	}
}

func TestMaxPointLightsMatchesSource(t *testing.T) {
	define := fmt.Sprintf("#define MAX_POINT_LIGHTS %d", MaxPointLights)
	if !strings.Contains(Fragment, define) {
		t.Errorf("fragment stage does not contain %q", define)
	}
}
