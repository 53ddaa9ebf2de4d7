package mesh

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleBuffer packs positions, normals, uvs and uint16 indices for one triangle.
func triangleBuffer() []byte {
	var buf bytes.Buffer
	write := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }
	write([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	write([]float32{0, 0, 1, 0, 0, 1, 0, 0, 1})
	write([]float32{0, 0, 1, 0, 0, 1})
	write([]uint16{0, 1, 2, 0})
	return buf.Bytes()
}

const triangleGLTF = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [
    {"name": "body", "translation": [1, 2, 3], "children": [1]},
    {"name": "hat", "mesh": 0, "scale": [2, 2, 2]}
  ],
  "meshes": [{"name": "tri", "primitives": [{
    "attributes": {"POSITION": 0, "NORMAL": 1, "TEXCOORD_0": 2},
    "indices": 3,
    "material": 0
  }]}],
  "materials": [{
    "pbrMetallicRoughness": {"baseColorFactor": [1, 0.5, 0.25, 1], "baseColorTexture": {"index": 0}},
    "normalTexture": {"index": 1}
  }],
  "textures": [{"source": 0}, {"source": 1}],
  "images": [{"uri": "snow.png"}, {"uri": "textures/snow_n.png"}],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 2, "componentType": 5126, "count": 3, "type": "VEC2"},
    {"bufferView": 3, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 36},
    {"buffer": 0, "byteOffset": 72, "byteLength": 24},
    {"buffer": 0, "byteOffset": 96, "byteLength": 6}
  ],
  "buffers": [{"byteLength": 104, "uri": %q}]
}`

func TestParseTriangle(t *testing.T) {
	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(triangleBuffer())
	fsys := fstest.MapFS{
		"snowManMatt/snowman.gltf": {Data: []byte(fmt.Sprintf(triangleGLTF, uri))},
	}

	m, err := Parse(fsys, "snowManMatt/snowman.gltf")
	require.NoError(t, err)
	require.Len(t, m.Meshes, 1)

	tri := m.Meshes[0]
	assert.Equal(t, "tri", tri.Name)
	assert.Equal(t, []uint32{0, 1, 2}, tri.Indices)
	require.Len(t, tri.Vertices, 3)

	// Child scale 2 then parent translation (1,2,3) are baked into positions.
	assert.True(t, tri.Vertices[1].Position.ApproxEqual(mgl32.Vec3{3, 2, 3}), "got %v", tri.Vertices[1].Position)
	assert.True(t, tri.Vertices[2].Position.ApproxEqual(mgl32.Vec3{1, 4, 3}), "got %v", tri.Vertices[2].Position)
	assert.True(t, tri.Vertices[0].Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}))
	assert.Equal(t, mgl32.Vec2{1, 0}, tri.Vertices[1].TexCoord)

	assert.Equal(t, mgl32.Vec4{1, 0.5, 0.25, 1}, tri.BaseColor)
	require.Len(t, tri.Textures, 2)
	assert.Equal(t, TextureRef{Kind: KindDiffuse, Path: "snowManMatt/snow.png"}, tri.Textures[0])
	assert.Equal(t, TextureRef{Kind: KindNormal, Path: "snowManMatt/textures/snow_n.png", Image: 1}, tri.Textures[1])

	v, i := m.Counts()
	assert.Equal(t, 3, v)
	assert.Equal(t, 3, i)
}

func TestParseExternalBuffer(t *testing.T) {
	fsys := fstest.MapFS{
		"floorModel/ground.gltf": {Data: []byte(fmt.Sprintf(triangleGLTF, "ground.bin"))},
		"floorModel/ground.bin":  {Data: triangleBuffer()},
	}

	m, err := Parse(fsys, "floorModel/ground.gltf")
	require.NoError(t, err)
	require.Len(t, m.Meshes, 1)
	assert.Len(t, m.Meshes[0].Vertices, 3)
}

func TestParseErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"garbage.gltf": {Data: []byte("this is not a model")},
		"empty.gltf":   {Data: []byte(`{"asset": {"version": "2.0"}}`)},
		"nomesh.gltf":  {Data: []byte(`{"asset": {"version": "2.0"}, "nodes": [{"name": "root"}]}`)},
		"nopos.gltf": {Data: []byte(`{"asset": {"version": "2.0"}, "nodes": [{"mesh": 0}],
			"meshes": [{"primitives": [{"attributes": {}}]}]}`)},
	}

	tests := []struct {
		file string
		want error
	}{
		{"missing.gltf", ErrNotFound},
		{"garbage.gltf", ErrFormat},
		{"empty.gltf", ErrNoRoot},
		{"nomesh.gltf", ErrFormat},
		{"nopos.gltf", ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := Parse(fsys, tt.file)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestTextureRefKey(t *testing.T) {
	assert.Equal(t, "a/snow.png", TextureRef{Path: "a/snow.png", Image: 1}.Key("a/m.gltf"))
	assert.Equal(t, "a/m.gltf#image2", TextureRef{Data: []byte{1}, Image: 2}.Key("a/m.gltf"))
}

func TestNodeLocal(t *testing.T) {
	moved := mgl32.Translate3D(4, 5, 6)
	n := &gltf.Node{Matrix: [16]float32(moved)}
	assert.Equal(t, moved, nodeLocal(n))

	trs := &gltf.Node{
		Matrix:      [16]float32(mgl32.Ident4()),
		Translation: [3]float32{1, 2, 3},
		Rotation:    [4]float32{0, 0, 0, 1},
		Scale:       [3]float32{2, 2, 2},
	}
	want := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 2, 2))
	assert.True(t, nodeLocal(trs).ApproxEqual(want), "got %v", nodeLocal(trs))
}
