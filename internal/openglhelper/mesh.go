package openglhelper

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/leterax/go-flycam/pkg/asset"
)

const vertexStride = asset.FloatsPerVertex * 4

// MeshTexture binds a texture to the sampler array named by Kind
type MeshTexture struct {
	Kind    asset.TextureKind
	Texture *Texture
}

// Mesh is an indexed triangle list on the GPU with the textures it samples
type Mesh struct {
	vao        *VertexArrayObject
	vbo        *BufferObject
	ebo        *BufferObject
	indexCount int32
	textures   []MeshTexture
}

// NewMesh uploads a batch. Textures are borrowed, the mesh never deletes them.
func NewMesh(batch *asset.Batch, textures []MeshTexture) *Mesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(batch.Interleaved())
	ebo := NewEBO(batch.Indices)

	// Position attribute (3 floats)
	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, 0)
	// Normal attribute (3 floats)
	vao.SetVertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	// Texture coordinates attribute (2 floats)
	vao.SetVertexAttribPointer(2, 2, gl.FLOAT, false, vertexStride, 6*4)

	vao.Unbind()
	vbo.Unbind()

	return &Mesh{
		vao:        vao,
		vbo:        vbo,
		ebo:        ebo,
		indexCount: int32(len(batch.Indices)),
		textures:   textures,
	}
}

// Draw binds each texture to its own unit as texture_diffuse[n] or
// texture_specular[n], publishes the per-kind counts, then draws
func (m *Mesh) Draw(shader *Shader) {
	var diffuse, specular int32
	for i, t := range m.textures {
		var number int32
		switch t.Kind {
		case asset.TextureDiffuse:
			number = diffuse
			diffuse++
		case asset.TextureSpecular:
			number = specular
			specular++
		default:
			continue
		}
		t.Texture.Bind(uint32(i))
		shader.SetInt(fmt.Sprintf("%s[%d]", t.Kind, number), int32(i))
	}
	shader.SetInt("diff_txt_number", diffuse)
	shader.SetInt("specular_txt_number", specular)
	gl.ActiveTexture(gl.TEXTURE0)

	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	m.vao.Unbind()
}

// Delete releases the GPU buffers
func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}
