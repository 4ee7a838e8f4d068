// Package asset decodes models and textures into CPU-side draw batches.
// Nothing here touches the GPU; uploading is the scene's job.
package asset

import "github.com/go-gl/mathgl/mgl32"

// FloatsPerVertex is the interleaved vertex size: position, normal, texture coordinates
const FloatsPerVertex = 8

// Vertex represents a 3D vertex with position, normal, and texture coordinates
type Vertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	TexCoords mgl32.Vec2
}

// TextureKind names the sampler array a texture is bound to
type TextureKind string

const (
	TextureDiffuse  TextureKind = "texture_diffuse"
	TextureSpecular TextureKind = "texture_specular"
)

// TextureRef attaches an image to a batch under a sampler kind
type TextureRef struct {
	Kind  TextureKind
	Image *Image
}

// Batch is one drawable piece of a model: an indexed triangle list plus the
// textures it samples
type Batch struct {
	Name      string
	Vertices  []Vertex
	Indices   []uint32
	Textures  []TextureRef
	BaseColor mgl32.Vec4
}

// Interleaved flattens the vertices into the layout the GPU mesh expects
func (b *Batch) Interleaved() []float32 {
	out := make([]float32, 0, len(b.Vertices)*FloatsPerVertex)
	for _, v := range b.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.TexCoords[0], v.TexCoords[1],
		)
	}
	return out
}

// Model is everything loaded from one file
type Model struct {
	Batches []*Batch

	// Images lists each distinct image once, in first-use order
	Images []*Image
}

func (m *Model) addImage(img *Image) {
	for _, known := range m.Images {
		if known == img {
			return
		}
	}
	m.Images = append(m.Images, img)
}
