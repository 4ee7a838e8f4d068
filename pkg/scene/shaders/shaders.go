// Package shaders holds the built-in GLSL program used when no shader
// files are configured.
package shaders

import _ "embed"

//go:embed flycam.vert
var Vertex string

//go:embed flycam.frag
var Fragment string

// MaxPointLights matches MAX_POINT_LIGHTS in the fragment stage
const MaxPointLights = 8
