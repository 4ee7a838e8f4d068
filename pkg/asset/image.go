package asset

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image holds CPU-side pixel data for a 2D texture.
// Pixels are RGBA8, row-major, 4 bytes per pixel.
type Image struct {
	Name   string
	Width  int
	Height int
	Pixels []byte
}

// LoadImage reads a PNG, JPEG, BMP, TIFF or WebP file and converts it to RGBA8.
// With flipY the first row of Pixels is the bottom row of the picture, which
// is what OpenGL expects for texture coordinates with V pointing up.
func LoadImage(path string, flipY bool) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %q: %w", path, err)
	}
	defer f.Close()

	img, err := DecodeImage(f, flipY)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %q: %w", path, err)
	}
	img.Name = path
	return img, nil
}

// DecodeImage decodes any registered image format into RGBA8
func DecodeImage(r io.Reader, flipY bool) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	if flipY {
		flipRows(rgba.Pix, rgba.Stride, bounds.Dy())
	}

	return &Image{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: rgba.Pix,
	}, nil
}

func flipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// SolidImage creates a 1x1 image of a single colour
func SolidImage(name string, r, g, b, a uint8) *Image {
	return &Image{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}
