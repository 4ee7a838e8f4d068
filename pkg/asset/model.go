package asset

import (
	"bytes"
	"fmt"
	"log"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var identity16 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// modelLoader carries per-file state while walking a glTF document
type modelLoader struct {
	doc   *gltf.Document
	dir   string
	flipY bool
	model *Model

	images  map[int]*Image // by glTF image index
	visited map[int]bool   // nodes already walked
}

// LoadModel opens a .gltf or .glb file and flattens its default scene into
// draw batches, one per triangle primitive, with node transforms baked into
// the vertices. Textures that fail to load are logged and skipped; a
// primitive without positions fails the whole load.
func LoadModel(path string, flipY bool) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model %q: %w", path, err)
	}

	l := &modelLoader{
		doc:     doc,
		dir:     filepath.Dir(path),
		flipY:   flipY,
		model:   &Model{},
		images:  make(map[int]*Image),
		visited: make(map[int]bool),
	}

	for _, root := range l.roots() {
		if err := l.walk(root, mgl32.Ident4()); err != nil {
			return nil, fmt.Errorf("failed to load model %q: %w", path, err)
		}
	}
	if len(l.model.Batches) == 0 {
		return nil, fmt.Errorf("model %q contains no triangle meshes", path)
	}

	return l.model, nil
}

// roots returns the default scene's root nodes, or every parentless node
// when the file names no scene
func (l *modelLoader) roots() []int {
	doc := l.doc
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}

	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (l *modelLoader) walk(nodeIdx int, parent mgl32.Mat4) error {
	if nodeIdx < 0 || nodeIdx >= len(l.doc.Nodes) || l.visited[nodeIdx] {
		return nil
	}
	l.visited[nodeIdx] = true

	node := l.doc.Nodes[nodeIdx]
	world := parent.Mul4(nodeTransform(node))

	if node.Mesh != nil && *node.Mesh < len(l.doc.Meshes) {
		mesh := l.doc.Meshes[*node.Mesh]
		for i, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				log.Printf("gltf: mesh %q primitive %d: skipping non-triangle mode %v", mesh.Name, i, prim.Mode)
				continue
			}
			batch, err := l.loadPrimitive(mesh.Name, i, prim, world)
			if err != nil {
				return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
			}
			l.model.Batches = append(l.model.Batches, batch)
		}
	}

	for _, child := range node.Children {
		if err := l.walk(child, world); err != nil {
			return err
		}
	}
	return nil
}

func nodeTransform(n *gltf.Node) mgl32.Mat4 {
	if m := n.MatrixOrDefault(); m != identity16 {
		var out mgl32.Mat4
		for i, v := range m {
			out[i] = float32(v)
		}
		return out
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault() // x, y, z, w
	s := n.ScaleOrDefault()

	rotation := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rotation.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func (l *modelLoader) loadPrimitive(meshName string, primIdx int, prim *gltf.Primitive, world mgl32.Mat4) (*Batch, error) {
	doc := l.doc

	// Positions are required
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	acr, err := l.accessor(posIdx)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acr, err = l.accessor(idx); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
		if normals, err = modeler.ReadNormal(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err = l.accessor(idx); err != nil {
			return nil, fmt.Errorf("texture coordinates: %w", err)
		}
		if uvs, err = modeler.ReadTextureCoord(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("texture coordinates: %w", err)
		}
	}

	normalMatrix := world.Mat3()
	if normalMatrix.Det() != 0 {
		normalMatrix = normalMatrix.Inv().Transpose()
	}

	verts := make([]Vertex, len(positions))
	for i, p := range positions {
		v := Vertex{
			Position: world.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1}).Vec3(),
			Normal:   mgl32.Vec3{0, 1, 0},
		}
		if i < len(normals) {
			n := normalMatrix.Mul3x1(mgl32.Vec3(normals[i]))
			if n.Len() > 0 {
				v.Normal = n.Normalize()
			}
		}
		if i < len(uvs) {
			v.TexCoords = mgl32.Vec2(uvs[i])
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		if acr, err = l.accessor(*prim.Indices); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		if indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		for i, idx := range indices {
			if idx >= uint32(len(verts)) {
				return nil, fmt.Errorf("index %d at position %d exceeds %d vertices", idx, i, len(verts))
			}
		}
		if len(indices)%3 != 0 {
			return nil, fmt.Errorf("%d indices do not form whole triangles", len(indices))
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}
	batch := &Batch{
		Name:      name,
		Vertices:  verts,
		Indices:   indices,
		BaseColor: mgl32.Vec4{1, 1, 1, 1},
	}

	if prim.Material != nil && *prim.Material < len(doc.Materials) {
		l.applyMaterial(batch, doc.Materials[*prim.Material])
	}
	return batch, nil
}

// accessor returns accessor idx after checking that it, its buffer view and
// the byte range it reads all exist
func (l *modelLoader) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(l.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	acr := l.doc.Accessors[idx]
	if acr.BufferView == nil || acr.Count == 0 {
		return acr, nil
	}

	bv, err := l.bufferView(*acr.BufferView)
	if err != nil {
		return nil, fmt.Errorf("accessor %d: %w", idx, err)
	}
	elem := gltf.SizeOfElement(acr.ComponentType, acr.Type)
	stride := bv.ByteStride
	if stride == 0 {
		stride = elem
	}
	if end := acr.ByteOffset + stride*(acr.Count-1) + elem; end > bv.ByteLength {
		return nil, fmt.Errorf("accessor %d reads %d bytes past its %d-byte buffer view", idx, end-bv.ByteLength, bv.ByteLength)
	}
	return acr, nil
}

func (l *modelLoader) bufferView(idx int) (*gltf.BufferView, error) {
	if idx < 0 || idx >= len(l.doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", idx)
	}
	bv := l.doc.BufferViews[idx]
	if bv.Buffer < 0 || bv.Buffer >= len(l.doc.Buffers) {
		return nil, fmt.Errorf("buffer view %d: buffer %d out of range", idx, bv.Buffer)
	}
	if size := len(l.doc.Buffers[bv.Buffer].Data); bv.ByteOffset+bv.ByteLength > size {
		return nil, fmt.Errorf("buffer view %d ends past its %d-byte buffer", idx, size)
	}
	return bv, nil
}

func (l *modelLoader) applyMaterial(batch *Batch, mat *gltf.Material) {
	pbr := mat.PBRMetallicRoughness
	if pbr == nil {
		return
	}

	cf := pbr.BaseColorFactorOrDefault()
	batch.BaseColor = mgl32.Vec4{float32(cf[0]), float32(cf[1]), float32(cf[2]), float32(cf[3])}

	if pbr.BaseColorTexture != nil {
		if img := l.texture(pbr.BaseColorTexture.Index); img != nil {
			batch.Textures = append(batch.Textures, TextureRef{Kind: TextureDiffuse, Image: img})
			l.model.addImage(img)
		}
	}
}

// texture resolves a glTF texture index to a decoded image, caching by source
// image so shared textures are decoded once
func (l *modelLoader) texture(texIdx int) *Image {
	doc := l.doc
	if texIdx < 0 || texIdx >= len(doc.Textures) || doc.Textures[texIdx].Source == nil {
		return nil
	}
	srcIdx := *doc.Textures[texIdx].Source
	if img, ok := l.images[srcIdx]; ok {
		return img
	}
	if srcIdx >= len(doc.Images) {
		return nil
	}

	img, err := l.decodeImage(doc.Images[srcIdx])
	if err != nil {
		log.Printf("gltf: image %d: %v", srcIdx, err)
		img = nil
	}
	l.images[srcIdx] = img
	return img
}

func (l *modelLoader) decodeImage(gi *gltf.Image) (*Image, error) {
	name := gi.Name
	var raw []byte
	var err error

	switch {
	case gi.BufferView != nil:
		// Binary GLB: image data lives in a buffer view
		var bv *gltf.BufferView
		if bv, err = l.bufferView(*gi.BufferView); err != nil {
			return nil, err
		}
		raw, err = modeler.ReadBufferView(l.doc, bv)
	case gi.IsEmbeddedResource():
		raw, err = gi.MarshalData()
	case gi.URI != "":
		return LoadImage(filepath.Join(l.dir, gi.URI), l.flipY)
	default:
		return nil, fmt.Errorf("image has no source")
	}
	if err != nil {
		return nil, err
	}

	img, err := DecodeImage(bytes.NewReader(raw), l.flipY)
	if err != nil {
		return nil, err
	}
	img.Name = name
	return img, nil
}
