// Package input turns raw window events into per-frame input state.
//
// Keys are SDL scancode numbers so the window package can forward events
// without translation, but nothing here depends on SDL.
package input

// Key is a physical key (SDL scancode value).
type Key int32

const (
	KeyA      Key = 4
	KeyD      Key = 7
	KeyF      Key = 9
	KeyS      Key = 22
	KeyW      Key = 26
	Key1      Key = 30
	Key2      Key = 31
	Key3      Key = 32
	KeyEscape Key = 41
	KeyTab    Key = 43
	KeyMinus  Key = 45
	KeyEquals Key = 46
	KeyF12    Key = 69
	KeyDown   Key = 81
	KeyUp     Key = 82
)

// Action is a bound command.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionLeft
	ActionRight
	ActionToggleFog
	ActionCycleLight
	ActionChannelAmbient
	ActionChannelDiffuse
	ActionChannelSpecular
	ActionLightDown
	ActionLightUp
	ActionScreenshot
	ActionQuit
	actionCount
)

// DefaultBindings maps keys to actions.
func DefaultBindings() map[Key]Action {
	return map[Key]Action{
		KeyW:      ActionForward,
		KeyUp:     ActionForward,
		KeyS:      ActionBackward,
		KeyDown:   ActionBackward,
		KeyA:      ActionLeft,
		KeyD:      ActionRight,
		KeyF:      ActionToggleFog,
		KeyTab:    ActionCycleLight,
		Key1:      ActionChannelAmbient,
		Key2:      ActionChannelDiffuse,
		Key3:      ActionChannelSpecular,
		KeyMinus:  ActionLightDown,
		KeyEquals: ActionLightUp,
		KeyF12:    ActionScreenshot,
		KeyEscape: ActionQuit,
	}
}

// Frame is the input collected since the previous frame.
type Frame struct {
	held    [actionCount]bool
	pressed [actionCount]bool

	// Mouse motion; DY is positive when the mouse moves up.
	MouseDX float32
	MouseDY float32
	Scroll  float32

	Resized bool
	Width   int
	Height  int

	Quit bool
}

// Held reports whether the action's key is down.
func (f *Frame) Held(a Action) bool { return f.held[a] }

// Pressed reports whether the action's key went down during this frame.
// Key repeat does not count.
func (f *Frame) Pressed(a Action) bool { return f.pressed[a] }

// Tracker accumulates events between frames.
type Tracker struct {
	bindings map[Key]Action
	down     map[Key]bool
	frame    Frame
}

// NewTracker creates a tracker with the default bindings.
func NewTracker() *Tracker {
	return &Tracker{
		bindings: DefaultBindings(),
		down:     make(map[Key]bool),
	}
}

// Bind maps key to action, replacing any previous binding. Unknown actions are ignored.
func (t *Tracker) Bind(key Key, a Action) {
	if a < 0 || a >= actionCount {
		return
	}
	t.bindings[key] = a
}

// KeyDown records a key press. Repeats keep the key held without a new press.
func (t *Tracker) KeyDown(key Key, repeat bool) {
	wasDown := t.down[key]
	t.down[key] = true
	if a, ok := t.bindings[key]; ok && !repeat && !wasDown {
		t.frame.pressed[a] = true
	}
}

// KeyUp records a key release.
func (t *Tracker) KeyUp(key Key) {
	delete(t.down, key)
}

// MouseMotion records relative mouse motion in window coordinates (y down).
func (t *Tracker) MouseMotion(dx, dy float32) {
	t.frame.MouseDX += dx
	t.frame.MouseDY -= dy
}

// Wheel records a scroll; positive is away from the user.
func (t *Tracker) Wheel(dy float32) {
	t.frame.Scroll += dy
}

// Resize records a new drawable size.
func (t *Tracker) Resize(width, height int) {
	t.frame.Resized = true
	t.frame.Width = width
	t.frame.Height = height
}

// RequestQuit records a close request.
func (t *Tracker) RequestQuit() {
	t.frame.Quit = true
}

// Frame returns the collected input and starts a new frame.
func (t *Tracker) Frame() Frame {
	f := t.frame
	for key := range t.down {
		if a, ok := t.bindings[key]; ok {
			f.held[a] = true
		}
	}
	if f.pressed[ActionQuit] {
		f.Quit = true
	}
	t.frame = Frame{}
	return f
}
