package asset

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// twoRowPNG encodes a 1x2 picture: red on top, blue below
func twoRowPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	tests := []struct {
		name      string
		flipY     bool
		firstRow  []byte
		secondRow []byte
	}{
		{"as stored", false, []byte{255, 0, 0, 255}, []byte{0, 0, 255, 255}},
		{"flipped", true, []byte{0, 0, 255, 255}, []byte{255, 0, 0, 255}},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			img, err := DecodeImage(bytes.NewReader(twoRowPNG(t)), c.flipY)
			if err != nil {
				t.Fatalf("DecodeImage: %v", err)
			}
			if img.Width != 1 || img.Height != 2 {
				t.Fatalf("size = %dx%d, want 1x2", img.Width, img.Height)
			}
			if len(img.Pixels) != 8 {
				t.Fatalf("len(Pixels) = %d, want 8", len(img.Pixels))
			}
			if !bytes.Equal(img.Pixels[:4], c.firstRow) {
				t.Errorf("first row = %v, want %v", img.Pixels[:4], c.firstRow)
			}
			if !bytes.Equal(img.Pixels[4:], c.secondRow) {
				t.Errorf("second row = %v, want %v", img.Pixels[4:], c.secondRow)
			}
		})
	}
}

func TestDecodeImage_Garbage(t *testing.T) {
	if _, err := DecodeImage(bytes.NewReader([]byte("not an image")), false); err == nil {
		t.Error("expected an error for undecodable data")
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stripe.png")
	if err := os.WriteFile(path, twoRowPNG(t), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := LoadImage(path, false)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if img.Name != path {
		t.Errorf("Name = %q, want %q", img.Name, path)
	}

	if _, err := LoadImage(filepath.Join(dir, "missing.png"), false); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSolidImage(t *testing.T) {
	img := SolidImage("white", 255, 255, 255, 255)
	if img.Width != 1 || img.Height != 1 || !bytes.Equal(img.Pixels, []byte{255, 255, 255, 255}) {
		t.Errorf("SolidImage = %+v", img)
	}
}
