package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDefaultBasis(t *testing.T) {
	c := New(DefaultConfig())

	assert.InDelta(t, 0, c.Front[0], 1e-6)
	assert.InDelta(t, 0, c.Front[1], 1e-6)
	assert.InDelta(t, -1, c.Front[2], 1e-6)
	assert.InDelta(t, 1, c.Right[0], 1e-6)
	assert.InDelta(t, 1, c.Up[1], 1e-6)
}

func TestZeroOrientationIsNoOp(t *testing.T) {
	c := New(DefaultConfig())
	before := c.ViewMatrix()

	c.UpdateOrientation(0, 0)

	assert.Equal(t, before, c.ViewMatrix())
}

func TestForwardMove(t *testing.T) {
	c := New(DefaultConfig())
	c.UpdatePosition(Forward, 1.0)

	assert.InDelta(t, 0, c.Position[0], 1e-5)
	assert.InDelta(t, 2, c.Position[1], 1e-5)
	assert.InDelta(t, 0, c.Position[2], 1e-5)
}

func TestStrafeKeepsHeight(t *testing.T) {
	c := New(DefaultConfig())
	c.UpdateOrientation(300, 200) // look up and to the side
	y := c.Position[1]

	c.UpdatePosition(Left, 0.5)
	c.UpdatePosition(Right, 0.25)

	assert.InDelta(t, y, c.Position[1], 1e-5)
}

func TestMovementRoundTrip(t *testing.T) {
	c := New(DefaultConfig())
	start := c.Position
	for _, pair := range [][2]Movement{{Forward, Backward}, {Left, Right}} {
		c.UpdatePosition(pair[0], 0.3)
		c.UpdatePosition(pair[1], 0.3)
	}
	assert.True(t, start.ApproxEqualThreshold(c.Position, 1e-5))
}

func TestPitchClamp(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float32
		want   float32
	}{
		{"single large up", []float32{1e6}, MaxPitch},
		{"single large down", []float32{-1e6}, MinPitch},
		{"repeated up", []float32{1000, 1000, 1000}, MaxPitch},
		{"up then down", []float32{1e6, -1e6}, MinPitch},
		{"small", []float32{10}, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(DefaultConfig())
			for _, d := range tt.deltas {
				c.UpdateOrientation(0, d)
				assert.GreaterOrEqual(t, c.Pitch, float32(MinPitch))
				assert.LessOrEqual(t, c.Pitch, float32(MaxPitch))
			}
			assert.InDelta(t, tt.want, c.Pitch, 1e-4)
		})
	}
}

func TestBasisStaysOrthonormal(t *testing.T) {
	c := New(DefaultConfig())
	c.UpdateOrientation(1234, 1e6)

	assert.InDelta(t, 1, c.Front.Len(), 1e-5)
	assert.InDelta(t, 1, c.Up.Len(), 1e-5)
	assert.InDelta(t, 0, c.Front.Dot(c.Right), 1e-5)
	assert.InDelta(t, 0, c.Front.Dot(c.Up), 1e-5)
}

func TestZoomClamp(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float32
		want   float32
	}{
		{"zoom in saturates", []float32{1e9}, 1},
		{"zoom out saturates", []float32{-1e9}, 45},
		{"step", []float32{5}, 40},
		{"in then out", []float32{100, -3}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(DefaultConfig())
			for _, d := range tt.deltas {
				c.UpdateZoom(d)
			}
			assert.Equal(t, tt.want, c.Zoom)
		})
	}
}

func TestNewClampsConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pitch = 120
	cfg.Zoom = 90
	cfg.MinZoom, cfg.MaxZoom = 60, 10

	c := New(cfg)
	assert.Equal(t, float32(MaxPitch), c.Pitch)
	assert.Equal(t, float32(10), c.MinZoom)
	assert.Equal(t, float32(60), c.Zoom)
}

func TestProjectionUsesZoom(t *testing.T) {
	c := New(DefaultConfig())
	want := mgl32.Perspective(mgl32.DegToRad(45), 900.0/500.0, 0.1, 100)
	assert.Equal(t, want, c.Projection(900.0/500.0, 0.1, 100))

	// A zero aspect (minimized window) falls back to square.
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100), c.Projection(0, 0.1, 100))
}
