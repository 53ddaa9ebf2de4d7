// Package material defines Phong surface materials for the material shader.
package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wonderland/internal/engine/render"
)

// Material is a Phong surface. Shininess is a fraction; the shader scales it by 128.
type Material struct {
	Name      string
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

// Uniforms returns the full material block. Every draw that uses a material
// uploads all four fields so nothing leaks from the previous draw.
func (m Material) Uniforms() []render.Uniform {
	return []render.Uniform{
		{Name: "material.ambient", Value: m.Ambient},
		{Name: "material.diffuse", Value: m.Diffuse},
		{Name: "material.specular", Value: m.Specular},
		{Name: "material.shininess", Value: m.Shininess},
	}
}

// Presets shown on the presents.
var (
	Gold = Material{
		Name:      "gold",
		Ambient:   mgl32.Vec3{0.24725, 0.1995, 0.0745},
		Diffuse:   mgl32.Vec3{0.75164, 0.60648, 0.22648},
		Specular:  mgl32.Vec3{0.628281, 0.555802, 0.366065},
		Shininess: 0.4,
	}
	Ruby = Material{
		Name:      "ruby",
		Ambient:   mgl32.Vec3{0.1745, 0.01175, 0.01175},
		Diffuse:   mgl32.Vec3{0.61424, 0.04136, 0.04136},
		Specular:  mgl32.Vec3{0.727811, 0.626959, 0.626959},
		Shininess: 0.6,
	}
	Emerald = Material{
		Name:      "emerald",
		Ambient:   mgl32.Vec3{0.0215, 0.1745, 0.0215},
		Diffuse:   mgl32.Vec3{0.07568, 0.61424, 0.07568},
		Specular:  mgl32.Vec3{0.633, 0.727811, 0.633},
		Shininess: 0.6,
	}
	// Jade keeps the grey values the scene has always used for its fourth present.
	Jade = Material{
		Name:      "jade",
		Ambient:   mgl32.Vec3{0.19225, 0.19225, 0.19225},
		Diffuse:   mgl32.Vec3{0.50754, 0.50754, 0.50754},
		Specular:  mgl32.Vec3{0.508273, 0.508273, 0.508273},
		Shininess: 0.4,
	}
	Bronze = Material{
		Name:      "bronze",
		Ambient:   mgl32.Vec3{0.2125, 0.1275, 0.054},
		Diffuse:   mgl32.Vec3{0.714, 0.4284, 0.18144},
		Specular:  mgl32.Vec3{0.393548, 0.271906, 0.166721},
		Shininess: 0.2,
	}
)

// Presets lists the showcase materials in display order.
func Presets() []Material {
	return []Material{Gold, Ruby, Emerald, Jade, Bronze}
}

// ByName returns the preset called name.
func ByName(name string) (Material, bool) {
	for _, m := range Presets() {
		if m.Name == name {
			return m, true
		}
	}
	return Material{}, false
}
