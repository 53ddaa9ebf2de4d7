package wonderland

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/wonderland/internal/config"
	"github.com/Faultbox/wonderland/internal/engine/camera"
	"github.com/Faultbox/wonderland/internal/engine/input"
	"github.com/Faultbox/wonderland/internal/engine/lighting"
	"github.com/Faultbox/wonderland/internal/logger"
)

// Sounds is the audio the session triggers. *audio.Manager satisfies it.
type Sounds interface {
	PlayOnce(name string) error
	SetListener(pos, facing mgl32.Vec3)
}

// Events reports what an update asked the frame loop to do.
type Events struct {
	FogToggled bool
	Screenshot bool
	Quit       bool
}

// Session is the state that survives between frames: the camera, the lights
// and the fog flag, plus the elapsed time that drives every animation.
type Session struct {
	Camera *camera.Camera
	Lights *lighting.State
	Scene  *Scene

	Near float32
	Far  float32

	elapsed     float32
	sounds      Sounds
	toggleSound string
}

// NewSession creates the session from cfg. sounds may be nil when audio is off.
func NewSession(cfg *config.Config, sounds Sounds) (*Session, error) {
	sc, err := NewScene()
	if err != nil {
		return nil, err
	}

	cc := cfg.Camera
	cam := camera.New(camera.Config{
		Position:    mgl32.Vec3(cc.Position),
		Yaw:         cc.Yaw,
		Pitch:       cc.Pitch,
		Speed:       cc.Speed,
		Sensitivity: cc.Sensitivity,
		Zoom:        cc.Zoom,
		MinZoom:     cc.MinZoom,
		MaxZoom:     cc.MaxZoom,
	})

	positions := make([]mgl32.Vec3, len(cfg.Lighting.PointPositions))
	for i, p := range cfg.Lighting.PointPositions {
		positions[i] = mgl32.Vec3(p)
	}
	lights := lighting.New(lighting.Config{
		PointPositions: positions,
		Fog:            cfg.Lighting.Fog,
		Step:           cfg.Lighting.Step,
		Max:            cfg.Lighting.Max,
	})
	if len(positions) > len(lights.Points) {
		logger.Warn("too many point lights, extra ones ignored",
			zap.Int("configured", len(positions)),
			zap.Int("max", lighting.MaxPointLights))
	}

	s := &Session{
		Camera:      cam,
		Lights:      lights,
		Scene:       sc,
		Near:        cc.Near,
		Far:         cc.Far,
		sounds:      sounds,
		toggleSound: cfg.Audio.ToggleSound,
	}
	s.follow()
	return s, nil
}

// Elapsed returns the animation time in seconds.
func (s *Session) Elapsed() float32 {
	return s.elapsed
}

// Update applies one frame of input, dt seconds long.
func (s *Session) Update(f *input.Frame, dt float32) Events {
	var ev Events
	if dt > 0 {
		s.elapsed += dt
	}

	if f.Quit {
		ev.Quit = true
	}

	moves := [...]struct {
		action input.Action
		dir    camera.Movement
	}{
		{input.ActionForward, camera.Forward},
		{input.ActionBackward, camera.Backward},
		{input.ActionLeft, camera.Left},
		{input.ActionRight, camera.Right},
	}
	for _, m := range moves {
		if f.Held(m.action) {
			s.Camera.UpdatePosition(m.dir, dt)
		}
	}

	if f.MouseDX != 0 || f.MouseDY != 0 {
		s.Camera.UpdateOrientation(f.MouseDX, f.MouseDY)
	}
	if f.Scroll != 0 {
		s.Camera.UpdateZoom(f.Scroll)
	}

	s.updateLights(f)

	if f.Pressed(input.ActionToggleFog) {
		fog := s.Lights.ToggleFog()
		ev.FogToggled = true
		logger.Debug("fog toggled", zap.Bool("fog", fog))
		if s.sounds != nil && s.toggleSound != "" {
			if err := s.sounds.PlayOnce(s.toggleSound); err != nil {
				logger.Warn("toggle sound failed", zap.String("path", s.toggleSound), zap.Error(err))
			}
		}
	}

	if f.Pressed(input.ActionScreenshot) {
		ev.Screenshot = true
	}

	s.follow()
	return ev
}

func (s *Session) updateLights(f *input.Frame) {
	l := s.Lights
	if f.Pressed(input.ActionCycleLight) {
		logger.Debug("light target", zap.Stringer("target", l.CycleTarget()))
	}

	channels := [...]struct {
		action  input.Action
		channel lighting.Channel
	}{
		{input.ActionChannelAmbient, lighting.Ambient},
		{input.ActionChannelDiffuse, lighting.Diffuse},
		{input.ActionChannelSpecular, lighting.Specular},
	}
	for _, c := range channels {
		if f.Pressed(c.action) {
			l.SelectChannel(c.channel)
			logger.Debug("light channel", zap.Stringer("channel", c.channel))
		}
	}

	if f.Pressed(input.ActionLightUp) {
		l.Adjust(1)
	}
	if f.Pressed(input.ActionLightDown) {
		l.Adjust(-1)
	}
}

// follow keeps the spot light and the audio listener on the camera.
func (s *Session) follow() {
	s.Lights.TrackCamera(s.Camera.Position, s.Camera.Front)
	if s.sounds != nil {
		s.sounds.SetListener(s.Camera.Position, s.Camera.Front)
	}
}
