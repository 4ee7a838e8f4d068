package asset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func vecNearlyEquals(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-5
}

var quadPositions = [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

// writeQuad saves a single textured quad under a translated node and
// returns the file path
func writeQuad(t *testing.T, embedTexture bool) string {
	t.Helper()
	dir := t.TempDir()

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, quadPositions)
	nrm := modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 2, 3, 0})

	if embedTexture {
		img, err := modeler.WriteImage(doc, "stripe", "image/png", bytes.NewReader(twoRowPNG(t)))
		if err != nil {
			t.Fatalf("WriteImage: %v", err)
		}
		doc.Textures = []*gltf.Texture{{Source: gltf.Index(img)}}
	} else {
		if err := os.WriteFile(filepath.Join(dir, "stripe.png"), twoRowPNG(t), 0o644); err != nil {
			t.Fatal(err)
		}
		doc.Images = []*gltf.Image{{URI: "stripe.png"}}
		doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}}
	}

	doc.Materials = []*gltf.Material{{
		Name: "red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor:  &[4]float64{1, 0, 0, 1},
			BaseColorTexture: &gltf.TextureInfo{Index: 0},
		},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Indices:  gltf.Index(idx),
			Material: gltf.Index(0),
			Attributes: map[string]int{
				gltf.POSITION:   pos,
				gltf.NORMAL:     nrm,
				gltf.TEXCOORD_0: uv,
			},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "root", Mesh: gltf.Index(0), Translation: [3]float64{1, 2, 3}}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(dir, "quad.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	return path
}

func TestLoadModel(t *testing.T) {
	tests := []struct {
		name  string
		embed bool
	}{
		{"embedded texture", true},
		{"external texture", false},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			m, err := LoadModel(writeQuad(t, c.embed), false)
			if err != nil {
				t.Fatalf("LoadModel: %v", err)
			}
			if len(m.Batches) != 1 {
				t.Fatalf("len(Batches) = %d, want 1", len(m.Batches))
			}

			b := m.Batches[0]
			if len(b.Vertices) != 4 || len(b.Indices) != 6 {
				t.Fatalf("got %d vertices / %d indices, want 4 / 6", len(b.Vertices), len(b.Indices))
			}
			for i, p := range quadPositions {
				expected := mgl32.Vec3{p[0] + 1, p[1] + 2, p[2] + 3}
				if !vecNearlyEquals(b.Vertices[i].Position, expected) {
					t.Errorf("vertex %d at %v, want %v", i, b.Vertices[i].Position, expected)
				}
				if !vecNearlyEquals(b.Vertices[i].Normal, mgl32.Vec3{0, 0, 1}) {
					t.Errorf("vertex %d normal %v", i, b.Vertices[i].Normal)
				}
			}
			if b.Vertices[2].TexCoords != (mgl32.Vec2{1, 1}) {
				t.Errorf("vertex 2 uv = %v", b.Vertices[2].TexCoords)
			}
			if b.BaseColor != (mgl32.Vec4{1, 0, 0, 1}) {
				t.Errorf("BaseColor = %v", b.BaseColor)
			}

			if len(b.Textures) != 1 || b.Textures[0].Kind != TextureDiffuse {
				t.Fatalf("Textures = %+v, want one diffuse", b.Textures)
			}
			if len(m.Images) != 1 || m.Images[0] != b.Textures[0].Image {
				t.Errorf("Images = %v, want the batch's texture once", m.Images)
			}
			if img := m.Images[0]; img.Width != 1 || img.Height != 2 {
				t.Errorf("texture size = %dx%d, want 1x2", img.Width, img.Height)
			}
		})
	}
}

func TestLoadModel_RotatedNormals(t *testing.T) {
	dir := t.TempDir()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	nrm := modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	doc.Meshes = []*gltf.Mesh{{
		Primitives: []*gltf.Primitive{{Attributes: map[string]int{gltf.POSITION: pos, gltf.NORMAL: nrm}}},
	}}
	// 90 degrees about Y takes +Z to +X
	q := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	doc.Nodes = []*gltf.Node{{
		Mesh:     gltf.Index(0),
		Rotation: [4]float64{float64(q.V[0]), float64(q.V[1]), float64(q.V[2]), float64(q.W)},
	}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(dir, "tri.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}

	m, err := LoadModel(path, false)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	b := m.Batches[0]
	if len(b.Indices) != 3 || b.Indices[0] != 0 || b.Indices[2] != 2 {
		t.Errorf("generated indices = %v, want [0 1 2]", b.Indices)
	}
	if n := b.Vertices[0].Normal; !vecNearlyEquals(n, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("normal = %v, want +X", n)
	}
	if p := b.Vertices[1].Position; !vecNearlyEquals(p, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("position = %v, want (0, 0, -1)", p)
	}
	if len(b.Textures) != 0 || b.BaseColor != (mgl32.Vec4{1, 1, 1, 1}) {
		t.Errorf("untextured batch got textures %v / colour %v", b.Textures, b.BaseColor)
	}
}

// saveTriangle writes a one-triangle model after letting corrupt damage it
func saveTriangle(t *testing.T, dir, name string, corrupt func(doc *gltf.Document, prim *gltf.Primitive)) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	prim := &gltf.Primitive{Attributes: map[string]int{gltf.POSITION: pos}}
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	corrupt(doc, prim)

	path := filepath.Join(dir, name)
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	return path
}

func TestLoadModel_Errors(t *testing.T) {
	dir := t.TempDir()

	linesOnly := gltf.NewDocument()
	pos := modeler.WritePosition(linesOnly, [][3]float32{{0, 0, 0}, {1, 0, 0}})
	linesOnly.Meshes = []*gltf.Mesh{{
		Primitives: []*gltf.Primitive{{Mode: gltf.PrimitiveLines, Attributes: map[string]int{gltf.POSITION: pos}}},
	}}
	linesOnly.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	linesOnly.Scenes[0].Nodes = append(linesOnly.Scenes[0].Nodes, 0)
	linesPath := filepath.Join(dir, "lines.glb")
	if err := gltf.SaveBinary(linesOnly, linesPath); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}

	noPositions := gltf.NewDocument()
	nrm := modeler.WriteNormal(noPositions, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	noPositions.Meshes = []*gltf.Mesh{{
		Primitives: []*gltf.Primitive{{Attributes: map[string]int{gltf.NORMAL: nrm}}},
	}}
	noPositions.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	noPositions.Scenes[0].Nodes = append(noPositions.Scenes[0].Nodes, 0)
	noPosPath := filepath.Join(dir, "nopos.glb")
	if err := gltf.SaveBinary(noPositions, noPosPath); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.glb")},
		{"no triangle meshes", linesPath},
		{"no positions", noPosPath},
		{"accessor out of range", saveTriangle(t, dir, "acr.glb", func(doc *gltf.Document, prim *gltf.Primitive) {
			prim.Attributes[gltf.POSITION] = 7
		})},
		{"buffer view out of range", saveTriangle(t, dir, "bv.glb", func(doc *gltf.Document, prim *gltf.Primitive) {
			doc.Accessors[prim.Attributes[gltf.POSITION]].BufferView = gltf.Index(9)
		})},
		{"accessor longer than its view", saveTriangle(t, dir, "long.glb", func(doc *gltf.Document, prim *gltf.Primitive) {
			doc.Accessors[prim.Attributes[gltf.POSITION]].Count = 300
		})},
		{"index past the last vertex", saveTriangle(t, dir, "idx.glb", func(doc *gltf.Document, prim *gltf.Primitive) {
			prim.Indices = gltf.Index(modeler.WriteIndices(doc, []uint16{0, 1, 200}))
		})},
		{"index accessor out of range", saveTriangle(t, dir, "idxacr.glb", func(doc *gltf.Document, prim *gltf.Primitive) {
			prim.Indices = gltf.Index(42)
		})},
	}
	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			m, err := LoadModel(c.path, false)
			if err == nil {
				t.Errorf("expected an error, got %d batches", len(m.Batches))
			}
		})
	}
}

func TestBatch_Interleaved(t *testing.T) {
	b := &Batch{Vertices: []Vertex{
		{Position: mgl32.Vec3{1, 2, 3}, Normal: mgl32.Vec3{4, 5, 6}, TexCoords: mgl32.Vec2{7, 8}},
		{Position: mgl32.Vec3{9, 10, 11}, Normal: mgl32.Vec3{12, 13, 14}, TexCoords: mgl32.Vec2{15, 16}},
	}}

	r := b.Interleaved()
	if len(r) != 2*FloatsPerVertex {
		t.Fatalf("len = %d, want %d", len(r), 2*FloatsPerVertex)
	}
	for i, v := range r {
		if v != float32(i+1) {
			t.Fatalf("Interleaved()[%d] = %v, want %v", i, v, i+1)
		}
	}
}

func TestCube(t *testing.T) {
	diffuse := SolidImage("diffuse", 255, 255, 255, 255)
	specular := SolidImage("specular", 128, 128, 128, 255)

	m := Cube(diffuse, specular)
	if len(m.Batches) != 1 {
		t.Fatalf("len(Batches) = %d, want 1", len(m.Batches))
	}
	b := m.Batches[0]
	if len(b.Vertices) != 24 || len(b.Indices) != 36 {
		t.Fatalf("got %d vertices / %d indices, want 24 / 36", len(b.Vertices), len(b.Indices))
	}
	for _, idx := range b.Indices {
		if int(idx) >= len(b.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
	for i, v := range b.Vertices {
		// Each vertex lies on the face its normal points out of
		if d := v.Position.Dot(v.Normal); d != 0.5 {
			t.Errorf("vertex %d: position·normal = %v, want 0.5", i, d)
		}
	}
	if len(b.Textures) != 2 || b.Textures[0].Kind != TextureDiffuse || b.Textures[1].Kind != TextureSpecular {
		t.Errorf("Textures = %+v", b.Textures)
	}
	if len(m.Images) != 2 {
		t.Errorf("len(Images) = %d, want 2", len(m.Images))
	}

	if bare := Cube(nil, nil); len(bare.Batches[0].Textures) != 0 || len(bare.Images) != 0 {
		t.Error("untextured cube should carry no textures")
	}
}
