package material

import (
	"testing"
)

func TestUniformsComplete(t *testing.T) {
	u := Ruby.Uniforms()
	want := []string{"material.ambient", "material.diffuse", "material.specular", "material.shininess"}
	if len(u) != len(want) {
		t.Fatalf("got %d uniforms, want %d", len(u), len(want))
	}
	for i, name := range want {
		if u[i].Name != name {
			t.Errorf("uniform %d = %s, want %s", i, u[i].Name, name)
		}
	}
	if u[3].Value != float32(0.6) {
		t.Errorf("ruby shininess = %v, want 0.6", u[3].Value)
	}
}

func TestPresetsOrder(t *testing.T) {
	names := []string{"gold", "ruby", "emerald", "jade", "bronze"}
	presets := Presets()
	for i, name := range names {
		if presets[i].Name != name {
			t.Errorf("preset %d = %s, want %s", i, presets[i].Name, name)
		}
		m, ok := ByName(name)
		if !ok || m != presets[i] {
			t.Errorf("ByName(%q) did not return the preset", name)
		}
	}
	if _, ok := ByName("silver"); ok {
		t.Error("ByName should not find unknown materials")
	}
}

func TestPresetsInRange(t *testing.T) {
	for _, m := range Presets() {
		for _, v := range [][3]float32{m.Ambient, m.Diffuse, m.Specular} {
			for _, c := range v {
				if c < 0 || c > 1 {
					t.Errorf("%s has component %f outside [0,1]", m.Name, c)
				}
			}
		}
		if m.Shininess <= 0 || m.Shininess > 1 {
			t.Errorf("%s shininess %f outside (0,1]", m.Name, m.Shininess)
		}
	}
}
