// Package lighting holds the scene's light sources and their runtime sliders.
package lighting

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointLights is the size of the point light array in the lit shader.
const MaxPointLights = 8

// Colors are the three Phong intensities of a light.
type Colors struct {
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// Attenuation coefficients: 1 / (Constant + Linear*d + Quadratic*d²).
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// Point is an omnidirectional light with distance falloff.
type Point struct {
	Position mgl32.Vec3
	Colors
	Attenuation
}

// DefaultPoint returns a dim white point light at pos.
func DefaultPoint(pos mgl32.Vec3) Point {
	return Point{
		Position: pos,
		Colors: Colors{
			Ambient:  mgl32.Vec3{0.05, 0.05, 0.05},
			Diffuse:  mgl32.Vec3{0.8, 0.8, 0.8},
			Specular: mgl32.Vec3{1, 1, 1},
		},
		Attenuation: Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032},
	}
}

// PointsAt creates default point lights at the given positions.
// Truncates to MaxPointLights if necessary.
func PointsAt(positions []mgl32.Vec3) []Point {
	count := len(positions)
	if count > MaxPointLights {
		count = MaxPointLights
	}
	lights := make([]Point, 0, count)
	for _, p := range positions[:count] {
		lights = append(lights, DefaultPoint(p))
	}
	return lights
}

func (p *Point) uniforms(i int, out []Uniform) []Uniform {
	prefix := fmt.Sprintf("pointLights[%d].", i)
	return append(out,
		Uniform{Name: prefix + "position", Value: p.Position},
		Uniform{Name: prefix + "ambient", Value: p.Ambient},
		Uniform{Name: prefix + "diffuse", Value: p.Diffuse},
		Uniform{Name: prefix + "specular", Value: p.Specular},
		Uniform{Name: prefix + "constant", Value: p.Constant},
		Uniform{Name: prefix + "linear", Value: p.Linear},
		Uniform{Name: prefix + "quadratic", Value: p.Quadratic},
	)
}
