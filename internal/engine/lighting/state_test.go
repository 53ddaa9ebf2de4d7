package lighting

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenePositions() []mgl32.Vec3 {
	return []mgl32.Vec3{
		{-24.21, 5.19, 0.9},
		{2.3, 3.3, -4},
		{-4, 2, -12},
		{10, 4, -3},
	}
}

type setRecorder map[string]any

func (r setRecorder) Set(name string, value any) { r[name] = value }

func TestNewDefaults(t *testing.T) {
	s := New(Config{PointPositions: scenePositions()})

	require.Len(t, s.Points, 4)
	assert.Equal(t, mgl32.Vec3{2.3, 3.3, -4}, s.Points[1].Position)
	assert.Equal(t, float32(0.09), s.Points[0].Linear)
	assert.Equal(t, float32(0.05), s.Step)
	assert.Equal(t, float32(1), s.Max)
	assert.True(t, s.SRGB())

	assert.InDelta(t, 0.1, s.Directional.Ambient[0], 1e-6)
	assert.InDelta(t, 0.5, s.Directional.Diffuse[0], 1e-6)
}

func TestPointsTruncated(t *testing.T) {
	positions := make([]mgl32.Vec3, MaxPointLights+3)
	assert.Len(t, PointsAt(positions), MaxPointLights)
}

func TestUniformsNames(t *testing.T) {
	s := New(Config{PointPositions: scenePositions()})
	s.TrackCamera(mgl32.Vec3{0, 2, 3}, mgl32.Vec3{0, 0, -1})

	rec := setRecorder{}
	s.Apply(rec)

	assert.Equal(t, mgl32.Vec3{-4, 2, -12}, rec["pointLights[2].position"])
	assert.Equal(t, float32(0.032), rec["pointLights[3].quadratic"])
	assert.Equal(t, int32(4), rec["pointLightCount"])
	assert.Equal(t, mgl32.Vec3{0, 2, 3}, rec["spotLight.position"])
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, rec["spotLight.direction"])
	assert.Equal(t, mgl32.Vec3{1.2, 3, 2}, rec["dirLight.direction"])
	assert.Equal(t, false, rec["fog"])
	assert.NotContains(t, rec, "pointLights[4].position")

	assert.InDelta(t, math32.Cos(12*math32.Pi/180), rec["spotLight.cutOff"], 1e-6)
	assert.InDelta(t, math32.Cos(14*math32.Pi/180), rec["spotLight.outerCutOff"], 1e-6)

	// 4 sun + 7 per point + count + 10 spot + fog
	assert.Len(t, s.Uniforms(), 4+7*4+1+10+1)
}

func TestMaterialLight(t *testing.T) {
	s := New(Config{})
	rec := setRecorder{}
	for _, u := range s.MaterialLightUniforms() {
		rec.Set(u.Name, u.Value)
	}
	assert.Equal(t, mgl32.Vec3{1.2, 3, 2}, rec["light.position"])
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, rec["light.specular"])
	assert.Equal(t, s.Directional.Diffuse, rec["light.diffuse"])
}

func TestAdjustClamps(t *testing.T) {
	tests := []struct {
		name    string
		target  Target
		channel Channel
		sign    int
		steps   int
		want    float32
	}{
		{"point ambient down saturates at zero", TargetPoint, Ambient, -1, 10, 0},
		{"point diffuse up saturates at max", TargetPoint, Diffuse, 1, 100, 1},
		{"point ambient one step up", TargetPoint, Ambient, 1, 1, 0.1},
		{"spot specular down", TargetSpot, Specular, -1, 2, 0.9},
		{"spot ambient up saturates", TargetSpot, Ambient, 1, 1000, 1},
		{"zero sign is no-op", TargetPoint, Specular, 0, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Config{PointPositions: scenePositions()})
			s.SelectTarget(tt.target)
			s.SelectChannel(tt.channel)
			for i := 0; i < tt.steps; i++ {
				s.Adjust(tt.sign)
			}

			var colors []Colors
			if tt.target == TargetSpot {
				colors = []Colors{s.Spot.Colors}
			} else {
				for _, p := range s.Points {
					colors = append(colors, p.Colors)
				}
			}
			for _, c := range colors {
				v := map[Channel]mgl32.Vec3{Ambient: c.Ambient, Diffuse: c.Diffuse, Specular: c.Specular}[tt.channel]
				assert.InDelta(t, tt.want, v[0], 1e-5)
				for _, comp := range v {
					assert.GreaterOrEqual(t, comp, float32(0))
					assert.LessOrEqual(t, comp, s.Max)
				}
			}
		})
	}
}

func TestAdjustLeavesOtherTarget(t *testing.T) {
	s := New(Config{PointPositions: scenePositions()})
	spot := s.Spot

	s.SelectTarget(TargetPoint)
	s.Adjust(-1)
	assert.Equal(t, spot, s.Spot)

	assert.Equal(t, TargetSpot, s.CycleTarget())
	assert.Equal(t, TargetPoint, s.CycleTarget())
}

func TestFogToggleIdempotent(t *testing.T) {
	for _, start := range []bool{false, true} {
		s := New(Config{PointPositions: scenePositions(), Fog: start})
		before := s.Uniforms()
		srgb := s.SRGB()

		for i := 0; i < 4; i++ {
			s.ToggleFog()
			assert.NotEqual(t, s.Fog, s.SRGB(), "fog and sRGB must stay paired")
			if i%2 == 1 {
				assert.Equal(t, before, s.Uniforms())
				assert.Equal(t, srgb, s.SRGB())
			}
		}
	}
}
