package model

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/wonderland/internal/engine/render"
	"github.com/Faultbox/wonderland/internal/engine/skybox"
	"github.com/Faultbox/wonderland/internal/engine/texture"
	"github.com/Faultbox/wonderland/internal/logger"
)

// Skybox owns the cube VAO and the cubemap texture. It implements
// render.Drawable.
type Skybox struct {
	vao, vbo uint32
	cubemap  uint32
	loaded   int
}

// NewSkybox uploads the cube and the six faces in +X, -X, +Y, -Y, +Z, -Z
// order. A face that fails to load is logged and left empty.
func NewSkybox(faces [skybox.FaceCount]string, src Source) *Skybox {
	s := &Skybox{}

	gl.GenVertexArrays(1, &s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(skybox.Vertices)*4, gl.Ptr(&skybox.Vertices[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	gl.GenTextures(1, &s.cubemap)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.cubemap)
	for i := 0; i < skybox.FaceCount; i++ {
		img, err := loadFace(src, faces[i])
		if err != nil {
			logger.Warn("cubemap face failed to load", zap.String("path", faces[i]), zap.Error(err))
			continue
		}
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		s.loaded++
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	logger.Debug("skybox ready", zap.Int("faces", s.loaded))
	return s
}

func loadFace(src Source, name string) (*image.RGBA, error) {
	data, err := src.Load(name)
	if err != nil {
		return nil, err
	}
	return texture.Decode(name, data)
}

// Faces returns how many faces were uploaded.
func (s *Skybox) Faces() int {
	return s.loaded
}

// Draw binds the cubemap on unit 0 and draws the cube with p.
func (s *Skybox) Draw(p render.Program) {
	p.Set("skybox", int32(0))
	gl.BindVertexArray(s.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.cubemap)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(skybox.VertexCount))
	gl.BindVertexArray(0)
}

// Delete releases the GL objects.
func (s *Skybox) Delete() {
	gl.DeleteVertexArrays(1, &s.vao)
	gl.DeleteBuffers(1, &s.vbo)
	gl.DeleteTextures(1, &s.cubemap)
}
