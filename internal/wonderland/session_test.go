package wonderland

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/wonderland/internal/config"
	"github.com/Faultbox/wonderland/internal/engine/input"
	"github.com/Faultbox/wonderland/internal/engine/lighting"
)

type fakeSounds struct {
	played   []string
	listener mgl32.Vec3
	facing   mgl32.Vec3
	fail     bool
}

func (f *fakeSounds) PlayOnce(name string) error {
	f.played = append(f.played, name)
	if f.fail {
		return errors.New("no device")
	}
	return nil
}

func (f *fakeSounds) SetListener(pos, facing mgl32.Vec3) {
	f.listener = pos
	f.facing = facing
}

func press(keys ...input.Key) input.Frame {
	tr := input.NewTracker()
	for _, k := range keys {
		tr.KeyDown(k, false)
	}
	return tr.Frame()
}

func TestNewSessionFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Lighting.Fog = true
	cfg.Camera.Position = [3]float32{1, 2, 3}

	sounds := &fakeSounds{}
	s, err := NewSession(cfg, sounds)
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, s.Camera.Position)
	assert.Len(t, s.Lights.Points, 4)
	assert.True(t, s.Lights.Fog)
	assert.Equal(t, float32(0.1), s.Near)
	assert.Equal(t, float32(100), s.Far)

	// the spot light and the listener start on the camera
	assert.Equal(t, s.Camera.Position, s.Lights.Spot.Position)
	assert.Equal(t, s.Camera.Front, s.Lights.Spot.Direction)
	assert.Equal(t, s.Camera.Position, sounds.listener)
}

func TestUpdateMovesCamera(t *testing.T) {
	s := testSession(t)
	f := press(input.KeyW)

	s.Update(&f, 1)

	assert.InDeltaSlice(t, []float32{0, 2, 0}, s.Camera.Position[:], 1e-5)
	assert.Equal(t, s.Camera.Position, s.Lights.Spot.Position)
	assert.Equal(t, float32(1), s.Elapsed())
}

func TestUpdateIdleFrame(t *testing.T) {
	s := testSession(t)
	before := *s.Camera
	var f input.Frame

	ev := s.Update(&f, 0.016)

	assert.Equal(t, before, *s.Camera)
	assert.Equal(t, Events{}, ev)
	assert.InDelta(t, 0.016, s.Elapsed(), 1e-7)
}

func TestUpdateMouseAndScroll(t *testing.T) {
	s := testSession(t)
	tr := input.NewTracker()
	tr.MouseMotion(0, -100) // mouse up
	tr.Wheel(50)
	f := tr.Frame()

	s.Update(&f, 0.01)

	assert.InDelta(t, 15, s.Camera.Pitch, 1e-4)
	assert.Equal(t, s.Camera.MinZoom, s.Camera.Zoom)
	assert.Equal(t, s.Camera.Front, s.Lights.Spot.Direction)
}

func TestUpdateFogPlaysSound(t *testing.T) {
	sounds := &fakeSounds{}
	s, err := NewSession(config.Default(), sounds)
	require.NoError(t, err)

	f := press(input.KeyF)
	ev := s.Update(&f, 0.01)
	assert.True(t, ev.FogToggled)
	assert.True(t, s.Lights.Fog)
	assert.Equal(t, []string{"music/beep.mp3"}, sounds.played)

	// a failing sound does not stop the toggle
	sounds.fail = true
	f = press(input.KeyF)
	s.Update(&f, 0.01)
	assert.False(t, s.Lights.Fog)
	assert.Len(t, sounds.played, 2)
}

func TestUpdateFogHeldTogglesOnce(t *testing.T) {
	s := testSession(t)
	tr := input.NewTracker()

	tr.KeyDown(input.KeyF, false)
	f := tr.Frame()
	s.Update(&f, 0.01)
	for i := 0; i < 5; i++ {
		tr.KeyDown(input.KeyF, true)
		f = tr.Frame()
		s.Update(&f, 0.01)
	}
	assert.True(t, s.Lights.Fog)
}

func TestUpdateLightSliders(t *testing.T) {
	s := testSession(t)

	f := press(input.Key2, input.KeyMinus)
	s.Update(&f, 0.01)
	assert.Equal(t, lighting.Diffuse, s.Lights.Channel)
	for _, p := range s.Lights.Points {
		assert.InDelta(t, 0.75, p.Diffuse[0], 1e-6)
	}

	f = press(input.KeyTab)
	s.Update(&f, 0.01)
	assert.Equal(t, lighting.TargetSpot, s.Lights.Target)

	spot := s.Lights.Spot.Diffuse
	f = press(input.KeyEquals)
	s.Update(&f, 0.01)
	assert.InDelta(t, 1, s.Lights.Spot.Diffuse[0], 1e-6)
	assert.InDelta(t, spot[1]+0.05, s.Lights.Spot.Diffuse[1], 1e-6)
	assert.InDelta(t, 0.75, s.Lights.Points[0].Diffuse[0], 1e-6)
}

func TestUpdateEvents(t *testing.T) {
	s := testSession(t)

	f := press(input.KeyF12)
	assert.True(t, s.Update(&f, 0).Screenshot)

	f = press(input.KeyEscape)
	assert.True(t, s.Update(&f, 0).Quit)

	tr := input.NewTracker()
	tr.RequestQuit()
	f = tr.Frame()
	assert.True(t, s.Update(&f, 0).Quit)
}
