package asset

import "github.com/go-gl/mathgl/mgl32"

type cubeFace struct {
	normal  mgl32.Vec3
	corners [4]Vertex
}

func corner(x, y, z, u, v float32) Vertex {
	return Vertex{Position: mgl32.Vec3{x, y, z}, TexCoords: mgl32.Vec2{u, v}}
}

var cubeFaces = []cubeFace{
	{mgl32.Vec3{0, 0, 1}, [4]Vertex{ // front
		corner(-0.5, -0.5, 0.5, 0, 0),
		corner(0.5, -0.5, 0.5, 1, 0),
		corner(0.5, 0.5, 0.5, 1, 1),
		corner(-0.5, 0.5, 0.5, 0, 1),
	}},
	{mgl32.Vec3{0, 0, -1}, [4]Vertex{ // back
		corner(-0.5, -0.5, -0.5, 1, 0),
		corner(0.5, -0.5, -0.5, 0, 0),
		corner(0.5, 0.5, -0.5, 0, 1),
		corner(-0.5, 0.5, -0.5, 1, 1),
	}},
	{mgl32.Vec3{-1, 0, 0}, [4]Vertex{ // left
		corner(-0.5, 0.5, 0.5, 0, 1),
		corner(-0.5, 0.5, -0.5, 1, 1),
		corner(-0.5, -0.5, -0.5, 1, 0),
		corner(-0.5, -0.5, 0.5, 0, 0),
	}},
	{mgl32.Vec3{1, 0, 0}, [4]Vertex{ // right
		corner(0.5, 0.5, 0.5, 1, 1),
		corner(0.5, -0.5, 0.5, 1, 0),
		corner(0.5, -0.5, -0.5, 0, 0),
		corner(0.5, 0.5, -0.5, 0, 1),
	}},
	{mgl32.Vec3{0, 1, 0}, [4]Vertex{ // top
		corner(-0.5, 0.5, 0.5, 0, 0),
		corner(0.5, 0.5, 0.5, 1, 0),
		corner(0.5, 0.5, -0.5, 1, 1),
		corner(-0.5, 0.5, -0.5, 0, 1),
	}},
	{mgl32.Vec3{0, -1, 0}, [4]Vertex{ // bottom
		corner(-0.5, -0.5, 0.5, 0, 1),
		corner(0.5, -0.5, 0.5, 1, 1),
		corner(0.5, -0.5, -0.5, 1, 0),
		corner(-0.5, -0.5, -0.5, 0, 0),
	}},
}

// Cube builds a unit cube centred on the origin with four vertices per face,
// so every face carries its own normal and a full 0..1 texture square.
// diffuse and specular may be nil.
func Cube(diffuse, specular *Image) *Model {
	b := &Batch{
		Name:      "cube",
		Vertices:  make([]Vertex, 0, len(cubeFaces)*4),
		Indices:   make([]uint32, 0, len(cubeFaces)*6),
		BaseColor: mgl32.Vec4{1, 1, 1, 1},
	}

	for _, f := range cubeFaces {
		base := uint32(len(b.Vertices))
		for _, c := range f.corners {
			c.Normal = f.normal
			b.Vertices = append(b.Vertices, c)
		}
		b.Indices = append(b.Indices, base, base+1, base+2, base+2, base+3, base)
	}

	m := &Model{Batches: []*Batch{b}}
	if diffuse != nil {
		b.Textures = append(b.Textures, TextureRef{Kind: TextureDiffuse, Image: diffuse})
		m.addImage(diffuse)
	}
	if specular != nil {
		b.Textures = append(b.Textures, TextureRef{Kind: TextureSpecular, Image: specular})
		m.addImage(specular)
	}
	return m
}
