package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Directional is the sun: parallel rays from Direction.
type Directional struct {
	Direction mgl32.Vec3
	Colors
}

// DefaultDirectional returns a white sun at half strength, with ambient a fifth of diffuse.
func DefaultDirectional() Directional {
	diffuse := mgl32.Vec3{1, 1, 1}.Mul(0.5)
	return Directional{
		Direction: mgl32.Vec3{1.2, 3, 2},
		Colors: Colors{
			Ambient:  diffuse.Mul(0.2),
			Diffuse:  diffuse,
			Specular: mgl32.Vec3{0.5, 0.5, 0.5},
		},
	}
}

// Spot is a cone light. Cutoff angles are in degrees.
type Spot struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Colors
	Attenuation
	CutOff      float32
	OuterCutOff float32
}

// DefaultSpot returns the headlamp carried by the viewer.
func DefaultSpot() Spot {
	return Spot{
		Colors: Colors{
			Ambient:  mgl32.Vec3{0.5, 0.5, 0.5},
			Diffuse:  mgl32.Vec3{1, 0.9, 0.9},
			Specular: mgl32.Vec3{1, 1, 1},
		},
		Attenuation: Attenuation{Constant: 1, Linear: 0.08, Quadratic: 0.04},
		CutOff:      12,
		OuterCutOff: 14,
	}
}

// cosine of an angle in degrees, as the shader compares against dot products.
func cosDeg(deg float32) float32 {
	return math32.Cos(mgl32.DegToRad(deg))
}
