package input

import (
	"testing"
)

func TestPressedIsEdgeTriggered(t *testing.T) {
	tr := NewTracker()

	tr.KeyDown(KeyF, false)
	f := tr.Frame()
	if !f.Pressed(ActionToggleFog) || !f.Held(ActionToggleFog) {
		t.Fatal("expected fog toggle pressed and held on first frame")
	}

	// Still held, with OS key repeat.
	tr.KeyDown(KeyF, true)
	f = tr.Frame()
	if f.Pressed(ActionToggleFog) {
		t.Error("repeat must not count as a new press")
	}
	if !f.Held(ActionToggleFog) {
		t.Error("key should still be held")
	}

	tr.KeyUp(KeyF)
	f = tr.Frame()
	if f.Held(ActionToggleFog) || f.Pressed(ActionToggleFog) {
		t.Error("released key should be neither held nor pressed")
	}

	tr.KeyDown(KeyF, false)
	if f = tr.Frame(); !f.Pressed(ActionToggleFog) {
		t.Error("second press should register")
	}
}

func TestTapWithinFrame(t *testing.T) {
	tr := NewTracker()
	tr.KeyDown(KeyMinus, false)
	tr.KeyUp(KeyMinus)

	f := tr.Frame()
	if !f.Pressed(ActionLightDown) {
		t.Error("a tap inside one frame should still be pressed")
	}
	if f.Held(ActionLightDown) {
		t.Error("a tap inside one frame should not be held")
	}
}

func TestMovementBindings(t *testing.T) {
	tests := []struct {
		key    Key
		action Action
	}{
		{KeyW, ActionForward},
		{KeyUp, ActionForward},
		{KeyS, ActionBackward},
		{KeyA, ActionLeft},
		{KeyD, ActionRight},
	}

	for _, tt := range tests {
		tr := NewTracker()
		tr.KeyDown(tt.key, false)
		f := tr.Frame()
		if !f.Held(tt.action) {
			t.Errorf("key %d: expected action %d held", tt.key, tt.action)
		}
	}
}

func TestMouseAccumulates(t *testing.T) {
	tr := NewTracker()
	tr.MouseMotion(3, 4)
	tr.MouseMotion(2, -10)
	tr.Wheel(1)
	tr.Wheel(0.5)

	f := tr.Frame()
	if f.MouseDX != 5 {
		t.Errorf("MouseDX = %f, want 5", f.MouseDX)
	}
	// y is reversed: moving the mouse down (positive) looks down.
	if f.MouseDY != 6 {
		t.Errorf("MouseDY = %f, want 6", f.MouseDY)
	}
	if f.Scroll != 1.5 {
		t.Errorf("Scroll = %f, want 1.5", f.Scroll)
	}

	f = tr.Frame()
	if f.MouseDX != 0 || f.MouseDY != 0 || f.Scroll != 0 {
		t.Error("motion should reset every frame")
	}
}

func TestQuitAndResize(t *testing.T) {
	tr := NewTracker()
	tr.Resize(1280, 720)
	f := tr.Frame()
	if !f.Resized || f.Width != 1280 || f.Height != 720 {
		t.Errorf("unexpected resize state %+v", f)
	}
	if f.Quit {
		t.Error("unexpected quit")
	}

	tr.KeyDown(KeyEscape, false)
	if f = tr.Frame(); !f.Quit {
		t.Error("escape should request quit")
	}

	tr.RequestQuit()
	if f = tr.Frame(); !f.Quit {
		t.Error("window close should request quit")
	}
}

func TestRebind(t *testing.T) {
	tr := NewTracker()
	tr.Bind(KeyF, ActionScreenshot)
	tr.KeyDown(KeyF, false)
	f := tr.Frame()
	if f.Pressed(ActionToggleFog) || !f.Pressed(ActionScreenshot) {
		t.Error("rebinding should replace the previous action")
	}
}

func TestBindIgnoresUnknownAction(t *testing.T) {
	tr := NewTracker()
	tr.Bind(KeyF, actionCount)
	tr.Bind(KeyF, Action(-1))
	tr.KeyDown(KeyF, false)
	f := tr.Frame()
	if !f.Pressed(ActionToggleFog) {
		t.Error("unknown action should leave the existing binding in place")
	}
}
