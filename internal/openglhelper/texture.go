package openglhelper

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/leterax/go-flycam/pkg/asset"
)

// Texture is a 2D RGBA8 texture living on the GPU
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// NewTexture uploads an image with repeat wrapping and trilinear filtering
func NewTexture(img *asset.Image) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	if img.Width <= 0 || img.Height <= 0 || len(img.Pixels) < img.Width*img.Height*4 {
		return nil, fmt.Errorf("image %q has no usable pixel data", img.Name)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Rows are tightly packed
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(img.Width),
		int32(img.Height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pixels),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{ID: id, Width: img.Width, Height: img.Height}, nil
}

// Bind makes the texture current on the given texture unit
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// Delete releases the texture
func (t *Texture) Delete() {
	if t.ID == 0 {
		return
	}
	gl.DeleteTextures(1, &t.ID)
	t.ID = 0
}
