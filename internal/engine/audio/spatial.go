package audio

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// Listener is the ear position. Right points out of the listener's right ear.
type Listener struct {
	Position mgl32.Vec3
	Right    mgl32.Vec3
}

// NewListener derives the right vector from a facing direction and world up.
// A vertical or zero facing keeps +X as right.
func NewListener(pos, facing mgl32.Vec3) Listener {
	l := Listener{Position: pos, Right: mgl32.Vec3{1, 0, 0}}
	right := facing.Cross(mgl32.Vec3{0, 1, 0})
	if right.Len() > 1e-6 {
		l.Right = right.Normalize()
	}
	return l
}

// Spatialize returns the gain and stereo pan of a source heard by l.
// Gain is 1 inside minDistance and falls off as minDistance/distance beyond
// it. Pan is -1 (left) to 1 (right).
func (l Listener) Spatialize(source mgl32.Vec3, minDistance float32) (gain, pan float64) {
	if minDistance <= 0 {
		minDistance = 1
	}
	offset := source.Sub(l.Position)
	dist := offset.Len()
	if dist <= minDistance {
		gain = 1
	} else {
		gain = float64(minDistance / dist)
	}
	if dist > 1e-6 {
		pan = float64(offset.Normalize().Dot(l.Right))
	}
	return gain, clamp(pan, -1, 1)
}

// Sound is a looping source placed in the world.
type Sound struct {
	manager *Manager

	Position    mgl32.Vec3
	minDistance float32
	volume      float64

	gain *effects.Volume
	pan  *effects.Pan
}

// SetVolume sets the sound's own level (0.0 to 1.0).
func (s *Sound) SetVolume(vol float64) {
	s.manager.mu.Lock()
	defer s.manager.mu.Unlock()
	s.volume = clamp(vol, 0, 1)
	s.apply()
}

// SetMinDistance sets the radius inside which the sound plays at full gain.
// Non-positive values are ignored.
func (s *Sound) SetMinDistance(d float32) {
	if d <= 0 {
		return
	}
	s.manager.mu.Lock()
	defer s.manager.mu.Unlock()
	s.minDistance = d
	s.apply()
}

// MinDistance returns the full-gain radius.
func (s *Sound) MinDistance() float32 {
	s.manager.mu.RLock()
	defer s.manager.mu.RUnlock()
	return s.minDistance
}

// Volume returns the sound's own level.
func (s *Sound) Volume() float64 {
	s.manager.mu.RLock()
	defer s.manager.mu.RUnlock()
	return s.volume
}

func (s *Sound) apply() {
	m := s.manager
	speaker.Lock()
	s.update(m.listener, m.masterVolume*m.sfxLevel)
	speaker.Unlock()
}

// update recomputes gain and pan. Callers hold the speaker lock.
func (s *Sound) update(l Listener, level float64) {
	gain, pan := l.Spatialize(s.Position, s.minDistance)
	setGain(s.gain, gain*level*s.volume)
	s.pan.Pan = pan
}
