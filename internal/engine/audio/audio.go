// Package audio provides background music, one-shot effects and positional
// ambient sounds.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"github.com/Faultbox/wonderland/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

var (
	// ErrNotInitialized is returned when playing before Init.
	ErrNotInitialized = errors.New("audio not initialized")
	// ErrUnsupported is returned for data that is neither WAV nor MP3.
	ErrUnsupported = errors.New("unsupported audio format")
)

// Loader reads a sound file by name.
type Loader interface {
	Load(name string) ([]byte, error)
}

// Settings holds the mixer levels, each in [0, 1].
type Settings struct {
	Master float64
	Music  float64
	SFX    float64
}

// DefaultSettings returns the levels used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{Master: 1.0, Music: 0.7, SFX: 1.0}
}

// Manager plays sounds through the shared speaker. The speaker streams on its
// own goroutine, so state it reads is changed under speaker.Lock.
type Manager struct {
	mu sync.RWMutex

	src         Loader
	initialized bool
	sampleRate  beep.SampleRate

	masterVolume float64
	musicLevel   float64
	sfxLevel     float64

	mixer  *beep.Mixer
	music  *effects.Volume
	closer []beep.StreamSeekCloser

	listener Listener
	sounds   []*Sound
}

// New creates a manager reading files from src.
func New(src Loader, s Settings) *Manager {
	return &Manager{
		src:          src,
		masterVolume: clamp(s.Master, 0, 1),
		musicLevel:   clamp(s.Music, 0, 1),
		sfxLevel:     clamp(s.SFX, 0, 1),
		mixer:        &beep.Mixer{},
		listener:     Listener{Right: mgl32.Vec3{1, 0, 0}},
	}
}

// Init opens the audio device and starts the mixer.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	logger.Info("audio initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close stops playback and releases decoders.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	for _, c := range m.closer {
		c.Close()
	}
	m.closer = nil
	m.sounds = nil
	m.music = nil
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.refresh()
}

// SetMusicVolume sets the music volume (0.0 to 1.0).
func (m *Manager) SetMusicVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.musicLevel = clamp(vol, 0, 1)
	m.refresh()
}

// SetSFXVolume sets the effect volume (0.0 to 1.0). Positional sounds count
// as effects.
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxLevel = clamp(vol, 0, 1)
	m.refresh()
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// MusicVolume returns the music volume.
func (m *Manager) MusicVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.musicLevel
}

// SFXVolume returns the effect volume.
func (m *Manager) SFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxLevel
}

// PlayLooping starts name as background music, looping forever. Any previous
// music keeps playing.
func (m *Manager) PlayLooping(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	stream, err := m.open(name)
	if err != nil {
		return err
	}

	m.music = &effects.Volume{Streamer: stream, Base: 10}
	setGain(m.music, m.masterVolume*m.musicLevel)

	speaker.Lock()
	m.mixer.Add(m.music)
	speaker.Unlock()

	logger.Debug("music started", zap.String("path", name))
	return nil
}

// PlayOnce plays name a single time at effect volume.
func (m *Manager) PlayOnce(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	streamer, format, err := m.decode(name)
	if err != nil {
		return err
	}
	vol := &effects.Volume{Streamer: m.resample(format, streamer), Base: 10}
	setGain(vol, m.masterVolume*m.sfxLevel)

	speaker.Lock()
	m.mixer.Add(beep.Seq(vol, beep.Callback(func() {
		streamer.Close()
	})))
	speaker.Unlock()
	return nil
}

// PlayPositional loops name at pos. Its gain and pan follow the listener.
func (m *Manager) PlayPositional(name string, pos mgl32.Vec3) (*Sound, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil, ErrNotInitialized
	}

	stream, err := m.open(name)
	if err != nil {
		return nil, err
	}

	s := &Sound{
		manager:     m,
		Position:    pos,
		minDistance: 1,
		volume:      1,
		gain:        &effects.Volume{Streamer: stream, Base: 10},
	}
	s.pan = &effects.Pan{Streamer: s.gain}
	s.update(m.listener, m.masterVolume*m.sfxLevel)
	m.sounds = append(m.sounds, s)

	speaker.Lock()
	m.mixer.Add(s.pan)
	speaker.Unlock()

	logger.Debug("positional sound started", zap.String("path", name),
		zap.Float32("x", pos[0]), zap.Float32("y", pos[1]), zap.Float32("z", pos[2]))
	return s, nil
}

// SetListener moves the listener. facing need not be normalized.
func (m *Manager) SetListener(pos, facing mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listener = NewListener(pos, facing)
	m.refresh()
}

// refresh recomputes every gain. Callers hold m.mu.
func (m *Manager) refresh() {
	if !m.initialized {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()

	if m.music != nil {
		setGain(m.music, m.masterVolume*m.musicLevel)
	}
	for _, s := range m.sounds {
		s.update(m.listener, m.masterVolume*m.sfxLevel)
	}
}

// open decodes name into a resampled, endlessly looping stream.
func (m *Manager) open(name string) (beep.Streamer, error) {
	streamer, format, err := m.decode(name)
	if err != nil {
		return nil, err
	}
	m.closer = append(m.closer, streamer)
	return &loopStreamer{
		streamer:  streamer,
		resampled: m.resample(format, streamer),
	}, nil
}

func (m *Manager) decode(name string) (beep.StreamSeekCloser, beep.Format, error) {
	data, err := m.src.Load(name)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("loading %s: %w", name, err)
	}
	streamer, format, err := Decode(name, data)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decoding %s: %w", name, err)
	}
	return streamer, format, nil
}

func (m *Manager) resample(format beep.Format, s beep.Streamer) beep.Streamer {
	if format.SampleRate == m.sampleRate {
		return s
	}
	return beep.Resample(4, format.SampleRate, m.sampleRate, s)
}

// Decode picks the WAV or MP3 decoder from the content, falling back to the
// file extension.
func Decode(name string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	rc := io.NopCloser(bytes.NewReader(data))
	switch detect(name, data) {
	case "wav":
		return wav.Decode(rc)
	case "mp3":
		return mp3.Decode(rc)
	default:
		return nil, beep.Format{}, ErrUnsupported
	}
}

func detect(name string, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		switch kind.Extension {
		case "wav", "mp3":
			return kind.Extension
		}
	}
	return strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
}

// gainExponent converts a linear gain to an effects.Volume exponent with base 10.
func gainExponent(gain float64) float64 {
	return math.Log10(gain)
}

func setGain(v *effects.Volume, gain float64) {
	v.Silent = gain <= 0
	if !v.Silent {
		v.Volume = gainExponent(gain)
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// loopStreamer restarts the source whenever it runs dry.
type loopStreamer struct {
	streamer  beep.StreamSeekCloser
	resampled beep.Streamer
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	rewound := false
	for filled < len(samples) {
		n, ok := l.resampled.Stream(samples[filled:])
		filled += n
		if ok || n > 0 {
			rewound = false
		}
		if !ok {
			// A source that yields nothing right after a rewind is empty
			if rewound {
				return filled, filled > 0
			}
			if err := l.streamer.Seek(0); err != nil {
				return filled, filled > 0
			}
			rewound = true
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}
