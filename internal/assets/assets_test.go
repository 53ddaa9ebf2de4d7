package assets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestLoadPriority(t *testing.T) {
	m := NewManager()
	m.AddFS("base", fstest.MapFS{
		"sky/right.jpg":          {Data: []byte("base-right")},
		"floorModel/ground.gltf": {Data: []byte("base-ground")},
	})
	m.AddFS("override", fstest.MapFS{
		"sky/right.jpg": {Data: []byte("override-right")},
	})

	data, err := m.Load("sky/right.jpg")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "override-right" {
		t.Errorf("expected later root to win, got %q", data)
	}

	data, err = m.Load("floorModel/ground.gltf")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "base-ground" {
		t.Errorf("expected fallback to base root, got %q", data)
	}
}

func TestLoadNotFound(t *testing.T) {
	m := NewManager()
	m.AddFS("base", fstest.MapFS{})

	_, err := m.Load("music/missing.mp3")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadCaches(t *testing.T) {
	m := NewManager()
	m.AddFS("base", fstest.MapFS{"a.txt": {Data: []byte("abc")}})

	for i := 0; i < 3; i++ {
		if _, err := m.Load("./a.txt"); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}
	hits, misses, size := m.Cache().Stats()
	if hits != 2 || misses != 1 || size != 3 {
		t.Errorf("stats = %d hits, %d misses, %d bytes; want 2, 1, 3", hits, misses, size)
	}
}

func TestAddDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "music"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "music", "beep.mp3"), []byte("beep"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatalf("AddDir failed: %v", err)
	}
	if !m.Exists("music/beep.mp3") {
		t.Error("expected music/beep.mp3 to exist")
	}
	if m.Exists("music/wind.wav") {
		t.Error("unexpected music/wind.wav")
	}

	if err := m.AddDir(filepath.Join(dir, "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
	if err := m.AddDir(filepath.Join(dir, "music", "beep.mp3")); err == nil {
		t.Error("expected error for file root")
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sky/right.jpg", "sky/right.jpg"},
		{"./sky/right.jpg", "sky/right.jpg"},
		{"sky\\right.jpg", "sky/right.jpg"},
		{"/sky/../sky/right.jpg", "sky/right.jpg"},
		{"../../etc/passwd", "etc/passwd"},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSibling(t *testing.T) {
	if got := Sibling("snowManMatt/snowmanBasic.gltf", "snow.png"); got != "snowManMatt/snow.png" {
		t.Errorf("Sibling = %q", got)
	}
	if got := Sibling("model.gltf", "textures/a.png"); got != "textures/a.png" {
		t.Errorf("Sibling = %q", got)
	}
}

func TestManagerIsFS(t *testing.T) {
	m := NewManager()
	m.AddFS("base", fstest.MapFS{
		"snowManMatt/snowmanBasic.gltf": {Data: []byte("{}")},
		"snowManMatt/snow.png":          {Data: []byte("png")},
	})
	m.AddFS("override", fstest.MapFS{
		"snowManMatt/snow.png": {Data: []byte("better png")},
	})

	sub, err := fs.Sub(m, "snowManMatt")
	if err != nil {
		t.Fatal(err)
	}
	data, err := fs.ReadFile(sub, "snow.png")
	if err != nil {
		t.Fatalf("ReadFile through sub FS: %v", err)
	}
	if string(data) != "better png" {
		t.Errorf("got %q", data)
	}

	if _, err := m.Open("snowManMatt/none.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
	if _, err := m.Open("../escape"); err == nil {
		t.Error("expected invalid path error")
	}
}
