// Package skybox holds the geometry and view math of the cube-mapped sky.
// The GPU side lives in the model package.
package skybox

import "github.com/go-gl/mathgl/mgl32"

// Face order for cubemap uploads, matching GL_TEXTURE_CUBE_MAP_POSITIVE_X + i.
const (
	PosX = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
	FaceCount
)

// ViewRotation strips the translation from a view matrix so the sky stays
// centred on the viewer.
func ViewRotation(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}

// Vertices is a unit cube as 12 triangles, wound to be seen from inside.
var Vertices = [36 * 3]float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1,
	1, -1, -1, 1, 1, -1, -1, 1, -1,

	-1, -1, 1, -1, -1, -1, -1, 1, -1,
	-1, 1, -1, -1, 1, 1, -1, -1, 1,

	1, -1, -1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, -1, 1, -1, -1,

	-1, -1, 1, -1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, -1, 1, -1, -1, 1,

	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, 1, -1,

	-1, -1, -1, -1, -1, 1, 1, -1, -1,
	1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// VertexCount is the number of vertices drawn per frame.
const VertexCount = len(Vertices) / 3
