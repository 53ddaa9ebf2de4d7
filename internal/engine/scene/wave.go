package scene

import "github.com/chewxy/math32"

// WaveKind selects the periodic function of a Wave.
type WaveKind int

const (
	Const WaveKind = iota
	Sin
	Cos
)

// Wave is a periodic function of elapsed time: Amplitude * f(Frequency*t + Phase).
// The zero Wave is constant 0.
type Wave struct {
	Kind      WaveKind
	Amplitude float32
	Frequency float32
	Phase     float32
}

// SinWave returns amplitude*sin(t).
func SinWave(amplitude float32) Wave {
	return Wave{Kind: Sin, Amplitude: amplitude, Frequency: 1}
}

// CosWave returns amplitude*cos(t).
func CosWave(amplitude float32) Wave {
	return Wave{Kind: Cos, Amplitude: amplitude, Frequency: 1}
}

// ConstWave returns a wave that always evaluates to v.
func ConstWave(v float32) Wave {
	return Wave{Kind: Const, Amplitude: v}
}

// Eval evaluates the wave at time t (seconds). t is used as-is, never wrapped.
func (w Wave) Eval(t float32) float32 {
	switch w.Kind {
	case Sin:
		return w.Amplitude * math32.Sin(w.Frequency*t+w.Phase)
	case Cos:
		return w.Amplitude * math32.Cos(w.Frequency*t+w.Phase)
	default:
		return w.Amplitude
	}
}

// IsZero reports whether the wave is constant 0.
func (w Wave) IsZero() bool {
	return w.Amplitude == 0
}
