// Package render turns an ordered list of draw commands into backend calls.
//
// A frame is described as data: each Command names the program to bind, the
// uniforms to upload and the drawable to draw with that same program. Execute
// walks the list once, in order, and never relies on program or uniform state
// left behind by a previous command.
package render

import "github.com/go-gl/mathgl/mgl32"

// Uniform is a named shader parameter value.
// Value is one of bool, int, int32, float32, float64, mgl32.Vec2/3/4 or mgl32.Mat2/3/4.
type Uniform struct {
	Name  string
	Value any
}

// Program is a linked shader program.
type Program interface {
	Bind()
	// Set uploads a uniform on the bound program. Unknown names are ignored.
	Set(name string, value any)
	Name() string
}

// Drawable is anything that can issue draw calls against a bound program.
type Drawable interface {
	Draw(p Program)
}

// DepthFunc selects the depth comparison used by a command.
type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLEqual
)

func (d DepthFunc) String() string {
	switch d {
	case DepthLess:
		return "less"
	case DepthLEqual:
		return "lequal"
	default:
		return "unknown"
	}
}

// Backend is the rasterization state a command list needs outside of programs.
type Backend interface {
	Clear(color mgl32.Vec4)
	SetDepthFunc(fn DepthFunc)
	SetFramebufferSRGB(enabled bool)
}

// Command is one draw submission.
type Command struct {
	Label   string
	Program Program
	// Shared uniforms are uploaded before the per-command ones. Commands of one
	// program usually share a single frame block (lights, view, projection).
	Shared   []Uniform
	Uniforms []Uniform
	Drawable Drawable
	Depth    DepthFunc
}

// List is an ordered frame.
type List struct {
	Clear    mgl32.Vec4
	Commands []Command
	SRGB     bool
}

// Add appends a command and returns the list for chaining.
func (l *List) Add(cmd Command) *List {
	l.Commands = append(l.Commands, cmd)
	return l
}

// Stats counts what Execute did.
type Stats struct {
	Draws   int
	Skipped int
	Binds   int
}

// Execute submits list to b in order.
//
// For every command the depth function is switched if it differs from the
// current one, the program is bound, shared then own uniforms are uploaded, and
// the drawable is drawn with that program. Commands with a nil program or
// drawable are skipped. Depth is restored to DepthLess afterwards and the
// framebuffer sRGB mode is set from the list.
func Execute(b Backend, list *List) Stats {
	var stats Stats

	b.Clear(list.Clear)

	depth := DepthLess
	for i := range list.Commands {
		cmd := &list.Commands[i]
		if cmd.Program == nil || cmd.Drawable == nil {
			stats.Skipped++
			continue
		}

		if cmd.Depth != depth {
			b.SetDepthFunc(cmd.Depth)
			depth = cmd.Depth
		}

		cmd.Program.Bind()
		stats.Binds++
		upload(cmd.Program, cmd.Shared)
		upload(cmd.Program, cmd.Uniforms)

		cmd.Drawable.Draw(cmd.Program)
		stats.Draws++
	}

	if depth != DepthLess {
		b.SetDepthFunc(DepthLess)
	}
	b.SetFramebufferSRGB(list.SRGB)

	return stats
}

func upload(p Program, uniforms []Uniform) {
	for _, u := range uniforms {
		p.Set(u.Name, u.Value)
	}
}
