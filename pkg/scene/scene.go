// Package scene uploads imported models to the GPU and draws them with
// the frame state the render loop hands over.
package scene

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-flycam/internal/openglhelper"
	"github.com/leterax/go-flycam/pkg/asset"
	"github.com/leterax/go-flycam/pkg/render"
	"github.com/leterax/go-flycam/pkg/scene/shaders"
)

// DefaultShininess is the Phong exponent used for every material
const DefaultShininess = 32.0

type drawable struct {
	mesh      *openglhelper.Mesh
	baseColor mgl32.Vec4
}

// GLScene owns a shader program plus the meshes and textures of one model
type GLScene struct {
	shader    *openglhelper.Shader
	textures  []*openglhelper.Texture
	drawables []drawable
	deleted   bool
}

var _ render.Scene = (*GLScene)(nil)

// Options selects the shader sources. Empty paths use the built-in program.
type Options struct {
	VertexShaderPath   string
	FragmentShaderPath string
}

// New compiles the shader and uploads every batch of the model.
// Images that fail to upload are logged and the batch draws without them.
func New(model *asset.Model, opts Options) (*GLScene, error) {
	if model == nil || len(model.Batches) == 0 {
		return nil, fmt.Errorf("model has nothing to draw")
	}

	shader, err := loadShader(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load shader: %w", err)
	}

	s := &GLScene{shader: shader}

	uploaded := make(map[*asset.Image]*openglhelper.Texture, len(model.Images))
	for _, img := range model.Images {
		tex, err := openglhelper.NewTexture(img)
		if err != nil {
			log.Printf("scene: skipping texture %q: %v", img.Name, err)
			continue
		}
		uploaded[img] = tex
		s.textures = append(s.textures, tex)
	}

	for _, b := range model.Batches {
		var textures []openglhelper.MeshTexture
		for _, ref := range b.Textures {
			if tex, ok := uploaded[ref.Image]; ok {
				textures = append(textures, openglhelper.MeshTexture{Kind: ref.Kind, Texture: tex})
			}
		}
		s.drawables = append(s.drawables, drawable{
			mesh:      openglhelper.NewMesh(b, textures),
			baseColor: b.BaseColor,
		})
	}

	log.Printf("scene: uploaded %d meshes and %d textures", len(s.drawables), len(s.textures))
	return s, nil
}

func loadShader(opts Options) (*openglhelper.Shader, error) {
	if opts.VertexShaderPath == "" && opts.FragmentShaderPath == "" {
		return openglhelper.NewShader(shaders.Vertex, shaders.Fragment)
	}
	if opts.VertexShaderPath == "" || opts.FragmentShaderPath == "" {
		return nil, fmt.Errorf("both vertex and fragment shader paths are required")
	}
	return openglhelper.LoadShaderFromFiles(opts.VertexShaderPath, opts.FragmentShaderPath)
}

// Render pushes the frame uniforms and draws every mesh
func (s *GLScene) Render(frame render.FrameState) {
	if s.deleted {
		return
	}

	s.shader.Use()
	s.shader.SetMat4("view", frame.View)
	s.shader.SetMat4("projection", frame.Projection)
	s.shader.SetMat4("model", frame.Model)
	s.shader.SetMat3("normal_matrix", frame.Model.Mat3().Inv().Transpose())
	s.shader.SetVec3("view_pos", frame.ViewPos)
	s.shader.SetFloat("shininess", DefaultShininess)

	lighting := frame.Lighting
	if len(lighting.Points) > shaders.MaxPointLights {
		lighting.Points = lighting.Points[:shaders.MaxPointLights]
	}
	lighting.Apply(s.shader)

	for _, d := range s.drawables {
		s.shader.SetVec4("base_color", d.baseColor)
		d.mesh.Draw(s.shader)
	}
}

// Delete releases meshes, then textures, then the shader. Safe to call twice.
func (s *GLScene) Delete() {
	if s.deleted {
		return
	}
	s.deleted = true

	for i := len(s.drawables) - 1; i >= 0; i-- {
		s.drawables[i].mesh.Delete()
	}
	for i := len(s.textures) - 1; i >= 0; i-- {
		s.textures[i].Delete()
	}
	s.shader.Delete()
}
