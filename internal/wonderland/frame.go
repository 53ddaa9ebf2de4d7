package wonderland

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wonderland/internal/engine/render"
	"github.com/Faultbox/wonderland/internal/engine/skybox"
)

// ClearColor is the background behind the sky.
var ClearColor = mgl32.Vec4{0.5, 0.5, 0.5, 1}

// litShininess is the specular exponent of every textured model.
const litShininess float32 = 32

// Assets are the GPU resources a frame draws with. A model missing from
// Models (it failed to load) leaves its entities undrawn.
type Assets struct {
	Lit      render.Program
	Material render.Program
	Sky      render.Program

	Models map[string]render.Drawable
	Skybox render.Drawable
}

func (a *Assets) program(s Shading) render.Program {
	if s == ShadingMaterial {
		return a.Material
	}
	return a.Lit
}

// BuildFrame describes the frame at time t: the floor, the five presents
// each with its own material, the snowmen with their arms, then the sky.
func BuildFrame(s *Session, a *Assets, t, aspect float32) *render.List {
	view := s.Camera.ViewMatrix()
	projection := s.Camera.Projection(aspect, s.Near, s.Far)
	viewPos := s.Camera.Position

	lit := append(s.Lights.Uniforms(),
		render.Uniform{Name: "material.shininess", Value: litShininess},
		render.Uniform{Name: "viewPos", Value: viewPos},
		render.Uniform{Name: "view", Value: view},
		render.Uniform{Name: "projection", Value: projection},
	)
	mat := append(s.Lights.MaterialLightUniforms(),
		render.Uniform{Name: "viewPos", Value: viewPos},
		render.Uniform{Name: "view", Value: view},
		render.Uniform{Name: "projection", Value: projection},
	)

	world := s.Scene.Compose(t)
	list := &render.List{
		Clear:    ClearColor,
		Commands: make([]render.Command, 0, len(s.Scene.Entities)+1),
		SRGB:     s.Lights.SRGB(),
	}

	for i := range s.Scene.Entities {
		e := &s.Scene.Entities[i]

		cmd := render.Command{
			Label:    s.Scene.Name(i),
			Program:  a.program(e.Program),
			Drawable: a.Models[e.Model],
			Uniforms: []render.Uniform{{Name: "model", Value: world[e.Node]}},
		}
		if e.Program == ShadingMaterial {
			cmd.Shared = mat
		} else {
			cmd.Shared = lit
		}
		if e.Material != nil {
			cmd.Uniforms = append(cmd.Uniforms, e.Material.Uniforms()...)
		}
		list.Add(cmd)
	}

	list.Add(render.Command{
		Label:   "skybox",
		Program: a.Sky,
		Uniforms: []render.Uniform{
			{Name: "view", Value: skybox.ViewRotation(view)},
			{Name: "projection", Value: projection},
		},
		Drawable: a.Skybox,
		Depth:    render.DepthLEqual,
	})
	return list
}
