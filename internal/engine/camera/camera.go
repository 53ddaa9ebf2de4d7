// Package camera provides the free-fly camera used to walk through the scene.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a requested movement direction.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

// Pitch limits keep the up vector well defined.
const (
	MinPitch = -89.0
	MaxPitch = 89.0
)

// Config holds the initial camera state.
type Config struct {
	Position    mgl32.Vec3
	Yaw         float32 // degrees
	Pitch       float32 // degrees
	Speed       float32 // units per second
	Sensitivity float32 // degrees per mouse unit
	Zoom        float32 // vertical field of view, degrees
	MinZoom     float32
	MaxZoom     float32
}

// DefaultConfig returns the starting camera of the scene.
func DefaultConfig() Config {
	return Config{
		Position:    mgl32.Vec3{0, 2, 3},
		Yaw:         -90,
		Pitch:       0,
		Speed:       3,
		Sensitivity: 0.15,
		Zoom:        45,
		MinZoom:     1,
		MaxZoom:     45,
	}
}

// Camera is a yaw/pitch camera with a perspective lens.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3

	// Euler angles in degrees
	Yaw   float32
	Pitch float32

	Speed       float32
	Sensitivity float32

	// Field of view in degrees, kept within [MinZoom, MaxZoom]
	Zoom    float32
	MinZoom float32
	MaxZoom float32
}

// New creates a camera from cfg.
func New(cfg Config) *Camera {
	c := &Camera{
		Position:    cfg.Position,
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Yaw:         cfg.Yaw,
		Pitch:       clamp(cfg.Pitch, MinPitch, MaxPitch),
		Speed:       cfg.Speed,
		Sensitivity: cfg.Sensitivity,
		MinZoom:     cfg.MinZoom,
		MaxZoom:     cfg.MaxZoom,
	}
	if c.MaxZoom < c.MinZoom {
		c.MinZoom, c.MaxZoom = c.MaxZoom, c.MinZoom
	}
	c.Zoom = clamp(cfg.Zoom, c.MinZoom, c.MaxZoom)
	c.updateVectors()
	return c
}

// UpdateOrientation applies a mouse delta. dy is positive when the mouse moves up.
func (c *Camera) UpdateOrientation(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch = clamp(c.Pitch+dy*c.Sensitivity, MinPitch, MaxPitch)
	c.updateVectors()
}

// UpdatePosition moves the camera by Speed*dt along the requested direction.
// Strafing uses the right vector, so it never changes height on its own.
func (c *Camera) UpdatePosition(dir Movement, dt float32) {
	step := c.Speed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(step))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(step))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(step))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(step))
	}
}

// UpdateZoom narrows the field of view by delta degrees (scroll up zooms in).
func (c *Camera) UpdateZoom(delta float32) {
	c.Zoom = clamp(c.Zoom-delta, c.MinZoom, c.MaxZoom)
}

// ViewMatrix returns the look-at matrix for the current position and basis.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// Projection returns the perspective matrix for the current zoom.
func (c *Camera) Projection(aspect, near, far float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, near, far)
}

func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)

	c.Front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
