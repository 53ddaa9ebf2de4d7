package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wonderland/internal/engine/render"
)

// Uniform is an alias so the light types read naturally here.
type Uniform = render.Uniform

// Setter receives uniform uploads; render.Program satisfies it.
type Setter interface {
	Set(name string, value any)
}

// Target selects which lights the sliders adjust.
type Target int

const (
	TargetPoint Target = iota
	TargetSpot
)

func (t Target) String() string {
	if t == TargetSpot {
		return "spot"
	}
	return "point"
}

// Channel selects which intensity the sliders adjust.
type Channel int

const (
	Ambient Channel = iota
	Diffuse
	Specular
)

func (c Channel) String() string {
	switch c {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	default:
		return "ambient"
	}
}

// Config holds the runtime-tunable part of the lighting.
type Config struct {
	PointPositions []mgl32.Vec3
	Fog            bool
	Step           float32
	Max            float32
}

// State is every light in the scene plus the fog flag.
type State struct {
	Directional Directional
	Points      []Point
	Spot        Spot

	Fog bool

	// Slider settings: every adjusted component stays within [0, Max].
	Step    float32
	Max     float32
	Target  Target
	Channel Channel
}

// New creates the scene lighting.
func New(cfg Config) *State {
	s := &State{
		Directional: DefaultDirectional(),
		Points:      PointsAt(cfg.PointPositions),
		Spot:        DefaultSpot(),
		Fog:         cfg.Fog,
		Step:        cfg.Step,
		Max:         cfg.Max,
	}
	if s.Step <= 0 {
		s.Step = 0.05
	}
	if s.Max <= 0 {
		s.Max = 1
	}
	return s
}

// TrackCamera binds the spot light to the viewer.
func (s *State) TrackCamera(pos, front mgl32.Vec3) {
	s.Spot.Position = pos
	s.Spot.Direction = front
}

// Uniforms returns every light field by its shader name.
func (s *State) Uniforms() []Uniform {
	out := make([]Uniform, 0, 6+7*len(s.Points)+11)

	d := &s.Directional
	out = append(out,
		Uniform{Name: "dirLight.direction", Value: d.Direction},
		Uniform{Name: "dirLight.ambient", Value: d.Ambient},
		Uniform{Name: "dirLight.diffuse", Value: d.Diffuse},
		Uniform{Name: "dirLight.specular", Value: d.Specular},
	)

	for i := range s.Points {
		out = s.Points[i].uniforms(i, out)
	}
	out = append(out, Uniform{Name: "pointLightCount", Value: int32(len(s.Points))})

	sp := &s.Spot
	out = append(out,
		Uniform{Name: "spotLight.position", Value: sp.Position},
		Uniform{Name: "spotLight.direction", Value: sp.Direction},
		Uniform{Name: "spotLight.ambient", Value: sp.Ambient},
		Uniform{Name: "spotLight.diffuse", Value: sp.Diffuse},
		Uniform{Name: "spotLight.specular", Value: sp.Specular},
		Uniform{Name: "spotLight.constant", Value: sp.Constant},
		Uniform{Name: "spotLight.linear", Value: sp.Linear},
		Uniform{Name: "spotLight.quadratic", Value: sp.Quadratic},
		Uniform{Name: "spotLight.cutOff", Value: cosDeg(sp.CutOff)},
		Uniform{Name: "spotLight.outerCutOff", Value: cosDeg(sp.OuterCutOff)},
		Uniform{Name: "fog", Value: s.Fog},
	)
	return out
}

// Apply uploads every light field to set.
func (s *State) Apply(set Setter) {
	for _, u := range s.Uniforms() {
		set.Set(u.Name, u.Value)
	}
}

// MaterialLightUniforms returns the single light used by the material shader.
// It sits at the sun's direction vector and shares its colors, with full specular.
func (s *State) MaterialLightUniforms() []Uniform {
	d := &s.Directional
	return []Uniform{
		{Name: "light.position", Value: d.Direction},
		{Name: "light.ambient", Value: d.Ambient},
		{Name: "light.diffuse", Value: d.Diffuse},
		{Name: "light.specular", Value: mgl32.Vec3{1, 1, 1}},
		{Name: "fog", Value: s.Fog},
	}
}

// SelectTarget chooses the lights the sliders act on.
func (s *State) SelectTarget(t Target) { s.Target = t }

// CycleTarget switches between point and spot lights.
func (s *State) CycleTarget() Target {
	if s.Target == TargetPoint {
		s.Target = TargetSpot
	} else {
		s.Target = TargetPoint
	}
	return s.Target
}

// SelectChannel chooses the intensity the sliders act on.
func (s *State) SelectChannel(c Channel) { s.Channel = c }

// Adjust moves the selected channel of every selected light by sign*Step,
// clamping each component to [0, Max].
func (s *State) Adjust(sign int) {
	if sign == 0 {
		return
	}
	delta := s.Step
	if sign < 0 {
		delta = -delta
	}

	switch s.Target {
	case TargetSpot:
		s.adjust(&s.Spot.Colors, delta)
	default:
		for i := range s.Points {
			s.adjust(&s.Points[i].Colors, delta)
		}
	}
}

func (s *State) adjust(c *Colors, delta float32) {
	var v *mgl32.Vec3
	switch s.Channel {
	case Diffuse:
		v = &c.Diffuse
	case Specular:
		v = &c.Specular
	default:
		v = &c.Ambient
	}
	for i := range v {
		v[i] = clamp(v[i]+delta, 0, s.Max)
	}
}

// ToggleFog flips fog and returns the new value.
func (s *State) ToggleFog() bool {
	s.Fog = !s.Fog
	return s.Fog
}

// SRGB reports whether framebuffer gamma correction is on. It is on exactly
// when fog is off: the fogged scene is rendered without correction to look darker.
func (s *State) SRGB() bool {
	return !s.Fog
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
