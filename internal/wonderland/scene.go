// Package wonderland wires the winter scene: its node tree, the per-frame
// session state and the command list drawn every frame.
package wonderland

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wonderland/internal/config"
	"github.com/Faultbox/wonderland/internal/engine/material"
	"github.com/Faultbox/wonderland/internal/engine/scene"
)

// Model keys. Every entity names the model it draws by one of these.
const (
	ModelFloor         = "floor"
	ModelPresent       = "present"
	ModelSnowmanBody   = "snowman_body"
	ModelArmLeft       = "arm_left"
	ModelArmRight      = "arm_right"
	ModelCrowdArmLeft  = "crowd_arm_left"
	ModelCrowdArmRight = "crowd_arm_right"
)

// ModelPaths maps every model key to its file.
func ModelPaths(p config.ModelPaths) map[string]string {
	return map[string]string{
		ModelFloor:         p.Floor,
		ModelPresent:       p.Present,
		ModelSnowmanBody:   p.SnowmanBody,
		ModelArmLeft:       p.ArmLeft,
		ModelArmRight:      p.ArmRight,
		ModelCrowdArmLeft:  p.CrowdArmLeft,
		ModelCrowdArmRight: p.CrowdArmRight,
	}
}

// Shading selects the program an entity is drawn with.
type Shading int

const (
	// ShadingLit uses the textured multi-light program.
	ShadingLit Shading = iota
	// ShadingMaterial uses the single-light Phong material program.
	ShadingMaterial
)

func (s Shading) String() string {
	if s == ShadingMaterial {
		return "material"
	}
	return "lit"
}

// Entity is a drawn node.
type Entity struct {
	Node     int
	Model    string
	Program  Shading
	Material *material.Material
}

// Scene is the node tree plus the entities in draw order.
type Scene struct {
	Graph    *scene.Graph
	Entities []Entity

	world []mgl32.Mat4
}

var (
	xAxis    = mgl32.Vec3{1, 0, 0}
	bodyAxis = mgl32.Vec3{1, 0, 1}

	leftArmOffset  = mgl32.Vec3{-0.2, 0, 0.5}
	rightArmOffset = mgl32.Vec3{0.2, 0, 0}
)

type present struct {
	offset mgl32.Vec3
	scale  mgl32.Vec3
	mat    material.Material
}

var presents = []present{
	{mgl32.Vec3{0, 0, 0}, scene.Uniform(0.25), material.Gold},
	{mgl32.Vec3{0, 0.02, 0.3}, scene.Uniform(0.25), material.Ruby},
	{mgl32.Vec3{-0.1, 0, 0.3}, mgl32.Vec3{0.3, 0.25, 0.3}, material.Emerald},
	{mgl32.Vec3{0.05, 0.08, 0.2}, mgl32.Vec3{0.25, 0.25, 0.3}, material.Jade},
	{mgl32.Vec3{0.1, 0, 0}, mgl32.Vec3{0.3, 0.25, 0.3}, material.Bronze},
}

// crowdMember is a snowman attached to the lead snowman's body. Its arms use
// the given models and swing with the given wave.
type crowdMember struct {
	offset            mgl32.Vec3
	armLeft, armRight string
	swing             scene.Wave
}

var crowd = []crowdMember{
	{mgl32.Vec3{10, 0, 1}, ModelArmLeft, ModelArmRight, scene.CosWave(1.0 / 3)},
	{mgl32.Vec3{20, 0, 0}, ModelArmLeft, ModelArmRight, scene.CosWave(1.0 / 3)},
	{mgl32.Vec3{15, -0.6, -10}, ModelCrowdArmLeft, ModelCrowdArmRight, scene.SinWave(1.0 / 3)},
	{mgl32.Vec3{5, -0.7, -10}, ModelCrowdArmLeft, ModelCrowdArmRight, scene.SinWave(1.0 / 3)},
}

// NewScene builds the winter scene: the floor, five material presents and a
// snowman whose body carries its own arms and a crowd of four more snowmen.
func NewScene() (*Scene, error) {
	s := &Scene{Graph: scene.NewGraph()}
	b := builder{s: s}

	b.add("", "floor", scene.Pose{Scale: scene.Uniform(0.25)}, ModelFloor, ShadingLit, nil)

	for i := range presents {
		p := &presents[i]
		b.add("", fmt.Sprintf("present%d", i+1), scene.Pose{Offset: p.offset, Scale: p.scale},
			ModelPresent, ShadingMaterial, &p.mat)
	}

	body := scene.Pose{
		Offset: mgl32.Vec3{0, -0.3, 0},
		Motion: [3]scene.Wave{{}, {}, scene.CosWave(2)},
		Axis:   bodyAxis,
		Angle:  scene.CosWave(1.0 / 8),
		Scale:  scene.Uniform(0.1),
	}
	b.add("", "snowman1", body, ModelSnowmanBody, ShadingLit, nil)
	b.add("snowman1", "snowman1/arm_right",
		scene.Pose{Offset: rightArmOffset, Axis: xAxis, Angle: scene.CosWave(1.0 / 3)},
		ModelArmRight, ShadingLit, nil)
	b.add("snowman1", "snowman1/arm_left",
		scene.Pose{Offset: leftArmOffset, Axis: xAxis, Angle: scene.SinWave(1.0 / 3)},
		ModelArmLeft, ShadingLit, nil)

	for i, c := range crowd {
		name := fmt.Sprintf("snowman%d", i+2)
		b.add("snowman1", name, scene.Pose{Offset: c.offset}, ModelSnowmanBody, ShadingLit, nil)
		b.add(name, name+"/arm_left",
			scene.Pose{Offset: leftArmOffset, Axis: xAxis, Angle: c.swing},
			c.armLeft, ShadingLit, nil)
		b.add(name, name+"/arm_right",
			scene.Pose{Offset: rightArmOffset, Axis: xAxis, Angle: c.swing},
			c.armRight, ShadingLit, nil)
	}

	if b.err != nil {
		return nil, fmt.Errorf("building scene: %w", b.err)
	}
	if err := s.Graph.Validate(); err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}
	return s, nil
}

type builder struct {
	s   *Scene
	err error
}

func (b *builder) add(parent, name string, pose scene.Pose, model string, shading Shading, mat *material.Material) {
	if b.err != nil {
		return
	}
	idx, err := b.s.Graph.AddChild(parent, name, pose)
	if err != nil {
		b.err = err
		return
	}
	b.s.Entities = append(b.s.Entities, Entity{Node: idx, Model: model, Program: shading, Material: mat})
}

// Compose returns the world transform of every node at t. The slice is reused
// by the next call.
func (s *Scene) Compose(t float32) []mgl32.Mat4 {
	s.world = s.Graph.Compose(t, s.world)
	return s.world
}

// Name returns the node name of entity i.
func (s *Scene) Name(i int) string {
	return s.Graph.Node(s.Entities[i].Node).Name
}
