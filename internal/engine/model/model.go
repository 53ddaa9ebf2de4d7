// Package model uploads parsed meshes to the GPU and draws them.
package model

import (
	"fmt"
	"image"
	"io/fs"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/wonderland/internal/engine/mesh"
	"github.com/Faultbox/wonderland/internal/engine/render"
	"github.com/Faultbox/wonderland/internal/engine/texture"
	"github.com/Faultbox/wonderland/internal/logger"
)

// Source is where models and their textures are read from.
type Source interface {
	fs.FS
	Load(name string) ([]byte, error)
}

// Texture is an uploaded 2D texture bound to a sampler kind.
type Texture struct {
	ID   uint32
	Kind string
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	textures      []Texture
}

// Model is an immutable drawable handle. It implements render.Drawable and
// may be shared by any number of scene entities.
type Model struct {
	Name   string
	Bounds mesh.Bounds
	meshes []gpuMesh
}

// Loader loads models and shares textures between them.
type Loader struct {
	src      Source
	textures map[string]uint32
	white    uint32
}

// NewLoader creates a loader reading from src. Needs a current GL context.
func NewLoader(src Source) *Loader {
	l := &Loader{
		src:      src,
		textures: make(map[string]uint32),
	}
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(white.Pix, []byte{255, 255, 255, 255})
	l.white = Upload(white)
	return l
}

// Load parses name and uploads every mesh. Texture failures are logged and the
// mesh falls back to plain white.
func (l *Loader) Load(name string) (*Model, error) {
	parsed, err := mesh.Parse(l.src, name)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}

	m := &Model{Name: name, Bounds: parsed.Bounds()}
	for i := range parsed.Meshes {
		if len(parsed.Meshes[i].Indices) == 0 {
			continue
		}
		m.meshes = append(m.meshes, l.upload(name, &parsed.Meshes[i]))
	}

	vertices, indices := parsed.Counts()
	logger.Debug("model loaded",
		zap.String("path", name),
		zap.Int("meshes", len(m.meshes)),
		zap.Int("vertices", vertices),
		zap.Int("indices", indices),
	)
	return m, nil
}

func (l *Loader) upload(name string, src *mesh.Mesh) gpuMesh {
	var g gpuMesh

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(src.Vertices)*mesh.VertexSize, gl.Ptr(src.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(src.Indices)*4, gl.Ptr(src.Indices), gl.STATIC_DRAW)
	g.indexCount = int32(len(src.Indices))

	// position, normal, texcoord
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, mesh.VertexSize, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, mesh.VertexSize, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, mesh.VertexSize, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	hasDiffuse := false
	for _, ref := range src.Textures {
		id, err := l.texture(name, ref)
		if err != nil {
			logger.Warn("texture load failed", zap.String("model", name), zap.String("kind", ref.Kind), zap.Error(err))
			continue
		}
		g.textures = append(g.textures, Texture{ID: id, Kind: ref.Kind})
		if ref.Kind == mesh.KindDiffuse {
			hasDiffuse = true
		}
	}
	if !hasDiffuse {
		g.textures = append(g.textures, Texture{ID: l.white, Kind: mesh.KindDiffuse})
	}
	return g
}

func (l *Loader) texture(model string, ref mesh.TextureRef) (uint32, error) {
	key := ref.Key(model)
	if id, ok := l.textures[key]; ok {
		return id, nil
	}

	data := ref.Data
	if data == nil {
		var err error
		if data, err = l.src.Load(ref.Path); err != nil {
			return 0, err
		}
	}
	img, err := texture.Decode(key, data)
	if err != nil {
		return 0, err
	}

	id := Upload(img)
	l.textures[key] = id
	return id, nil
}

// Close deletes every texture the loader uploaded.
func (l *Loader) Close() {
	for _, id := range l.textures {
		gl.DeleteTextures(1, &id)
	}
	l.textures = make(map[string]uint32)
	if l.white != 0 {
		gl.DeleteTextures(1, &l.white)
		l.white = 0
	}
}

// Upload creates a mipmapped, repeating 2D texture from img.
func Upload(img *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// Draw binds each mesh's textures as <kind>N samplers (N from 1) and draws it
// with p, which must be the bound program.
func (m *Model) Draw(p render.Program) {
	for i := range m.meshes {
		g := &m.meshes[i]

		counts := make(map[string]int, 2)
		for unit, tex := range g.textures {
			counts[tex.Kind]++
			gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
			p.Set(fmt.Sprintf("%s%d", tex.Kind, counts[tex.Kind]), int32(unit))
			gl.BindTexture(gl.TEXTURE_2D, tex.ID)
		}

		gl.BindVertexArray(g.vao)
		gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
		gl.BindVertexArray(0)
		gl.ActiveTexture(gl.TEXTURE0)
	}
}

// Size returns the extent of the model's bounding box.
func (m *Model) Size() mgl32.Vec3 {
	return m.Bounds.Max.Sub(m.Bounds.Min)
}

// Delete releases the model's buffers. Textures belong to the Loader.
func (m *Model) Delete() {
	for i := range m.meshes {
		g := &m.meshes[i]
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
	}
	m.meshes = nil
}
