// Package mesh parses glTF model files into CPU-side mesh data.
//
// Node transforms are baked into the vertices so a model can be drawn with a
// single model matrix. Texture references are returned, not decoded.
package mesh

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var (
	ErrNotFound = errors.New("model file not found")
	ErrFormat   = errors.New("unparseable model file")
	ErrNoRoot   = errors.New("model has no root node")
)

// Texture kinds, used as sampler name prefixes by the draw code.
const (
	KindDiffuse = "texture_diffuse"
	KindNormal  = "texture_normal"
)

// Vertex is one interleaved vertex: position, normal, texture coordinate.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// VertexSize is the byte size of a Vertex.
const VertexSize = 8 * 4

// TextureRef points at a texture image, either by path or embedded data.
type TextureRef struct {
	Kind string
	// Path is relative to the file system the model was read from.
	Path string
	Data []byte
	// Image is the glTF image index.
	Image int
}

// Key identifies the texture for caching across models.
func (t TextureRef) Key(model string) string {
	if t.Path != "" {
		return t.Path
	}
	return fmt.Sprintf("%s#image%d", model, t.Image)
}

// Mesh is one drawable primitive.
type Mesh struct {
	Name      string
	Vertices  []Vertex
	Indices   []uint32
	Textures  []TextureRef
	BaseColor mgl32.Vec4
}

// Model is every mesh of a file.
type Model struct {
	Name   string
	Meshes []Mesh
}

// Counts returns total vertices and indices.
func (m *Model) Counts() (vertices, indices int) {
	for i := range m.Meshes {
		vertices += len(m.Meshes[i].Vertices)
		indices += len(m.Meshes[i].Indices)
	}
	return vertices, indices
}

// Parse reads the glTF or GLB file name from fsys. Buffers and images with
// relative URIs are resolved next to the file.
func Parse(fsys fs.FS, name string) (*Model, error) {
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	dir := path.Dir(name)
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}

	doc := new(gltf.Document)
	if err := gltf.NewDecoderFS(f, sub).Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, name, err)
	}
	return Build(doc, name)
}

// Build converts a decoded document. name is used for messages and to
// resolve image paths.
func Build(doc *gltf.Document, name string) (*Model, error) {
	roots := rootNodes(doc)
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRoot, name)
	}

	b := &builder{doc: doc, name: name, model: &Model{Name: name}, visited: make(map[int]bool)}
	for _, r := range roots {
		if err := b.node(r, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	if len(b.model.Meshes) == 0 {
		return nil, fmt.Errorf("%w: %s: no meshes", ErrFormat, name)
	}
	return b.model, nil
}

// rootNodes returns the nodes of the default scene, or every parentless node
// when the file has no scenes.
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		s := 0
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			s = int(*doc.Scene)
		}
		roots := make([]int, 0, len(doc.Scenes[s].Nodes))
		for _, n := range doc.Scenes[s].Nodes {
			roots = append(roots, int(n))
		}
		return roots
	}

	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[int(c)] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

type builder struct {
	doc     *gltf.Document
	name    string
	model   *Model
	visited map[int]bool
}

func (b *builder) node(i int, parent mgl32.Mat4) error {
	if i < 0 || i >= len(b.doc.Nodes) {
		return fmt.Errorf("%w: %s: node %d out of range", ErrFormat, b.name, i)
	}
	if b.visited[i] {
		return fmt.Errorf("%w: %s: node %d visited twice", ErrFormat, b.name, i)
	}
	b.visited[i] = true

	n := b.doc.Nodes[i]
	world := parent.Mul4(nodeLocal(n))

	if n.Mesh != nil {
		if int(*n.Mesh) >= len(b.doc.Meshes) {
			return fmt.Errorf("%w: %s: mesh %d out of range", ErrFormat, b.name, *n.Mesh)
		}
		m := b.doc.Meshes[*n.Mesh]
		for p, prim := range m.Primitives {
			out, err := b.primitive(prim, world)
			if err != nil {
				return fmt.Errorf("%w: %s: mesh %q primitive %d: %v", ErrFormat, b.name, m.Name, p, err)
			}
			out.Name = m.Name
			b.model.Meshes = append(b.model.Meshes, out)
		}
	}

	for _, c := range n.Children {
		if err := b.node(int(c), world); err != nil {
			return err
		}
	}
	return nil
}

func nodeLocal(n *gltf.Node) mgl32.Mat4 {
	if m := mgl32.Mat4(n.MatrixOrDefault()); m != mgl32.Ident4() {
		return m
	}

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func (b *builder) primitive(prim *gltf.Primitive, world mgl32.Mat4) (Mesh, error) {
	doc := b.doc
	var m Mesh

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return m, errors.New("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return m, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return m, fmt.Errorf("read normals: %w", err)
		}
	}

	var texCoords [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if texCoords, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return m, fmt.Errorf("read texture coordinates: %w", err)
		}
	}

	normalMat := world.Mat3().Inv().Transpose()
	m.Vertices = make([]Vertex, len(positions))
	for i, p := range positions {
		v := &m.Vertices[i]
		v.Position = mgl32.TransformCoordinate(mgl32.Vec3(p), world)
		v.Normal = mgl32.Vec3{0, 1, 0}
		if i < len(normals) {
			v.Normal = normalMat.Mul3x1(mgl32.Vec3(normals[i])).Normalize()
		}
		if i < len(texCoords) {
			v.TexCoord = mgl32.Vec2(texCoords[i])
		}
	}

	if prim.Indices != nil {
		if m.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return m, fmt.Errorf("read indices: %w", err)
		}
		for _, idx := range m.Indices {
			if int(idx) >= len(m.Vertices) {
				return m, fmt.Errorf("index %d out of range (%d vertices)", idx, len(m.Vertices))
			}
		}
	} else {
		m.Indices = make([]uint32, len(positions))
		for i := range m.Indices {
			m.Indices[i] = uint32(i)
		}
	}

	if len(normals) == 0 {
		FaceNormals(m.Vertices, m.Indices)
		SmoothNormals(m.Vertices)
	}

	m.BaseColor = mgl32.Vec4{1, 1, 1, 1}
	if prim.Material != nil && int(*prim.Material) < len(doc.Materials) {
		if err := b.material(doc.Materials[*prim.Material], &m); err != nil {
			return m, err
		}
	}
	return m, nil
}

func (b *builder) material(mat *gltf.Material, m *Mesh) error {
	if pbr := mat.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			f := *pbr.BaseColorFactor
			m.BaseColor = mgl32.Vec4{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
		}
		if pbr.BaseColorTexture != nil {
			ref, err := b.texture(int(pbr.BaseColorTexture.Index), KindDiffuse)
			if err != nil {
				return err
			}
			m.Textures = append(m.Textures, ref)
		}
	}
	if nt := mat.NormalTexture; nt != nil && nt.Index != nil {
		ref, err := b.texture(int(*nt.Index), KindNormal)
		if err != nil {
			return err
		}
		m.Textures = append(m.Textures, ref)
	}
	return nil
}

func (b *builder) texture(i int, kind string) (TextureRef, error) {
	doc := b.doc
	if i < 0 || i >= len(doc.Textures) || doc.Textures[i].Source == nil {
		return TextureRef{}, fmt.Errorf("texture %d has no image", i)
	}
	src := int(*doc.Textures[i].Source)
	if src >= len(doc.Images) {
		return TextureRef{}, fmt.Errorf("texture %d image %d out of range", i, src)
	}
	img := doc.Images[src]
	ref := TextureRef{Kind: kind, Image: src}

	switch {
	case img.BufferView != nil:
		data, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return ref, fmt.Errorf("image %d: %w", src, err)
		}
		ref.Data = data
	case img.IsEmbeddedResource():
		data, err := img.MarshalData()
		if err != nil {
			return ref, fmt.Errorf("image %d: %w", src, err)
		}
		ref.Data = data
	case img.URI != "":
		ref.Path = path.Join(path.Dir(b.name), img.URI)
	default:
		return ref, fmt.Errorf("image %d has no data", src)
	}
	return ref, nil
}
