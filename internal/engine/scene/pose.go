package scene

import "github.com/go-gl/mathgl/mgl32"

// Pose is a node's local transform as a function of time:
//
//	Translate(Offset + Motion(t)) * Rotate(Angle(t), Axis) * Scale(Scale)
//
// Angle is in radians. A zero Axis or a zero Angle wave skips the rotation.
// A zero Scale component is treated as 1 so the zero Pose is the identity.
type Pose struct {
	Offset mgl32.Vec3
	Motion [3]Wave
	Axis   mgl32.Vec3
	Angle  Wave
	Scale  mgl32.Vec3
}

// Translation returns the translation part of the pose at t.
func (p Pose) Translation(t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		p.Offset[0] + p.Motion[0].Eval(t),
		p.Offset[1] + p.Motion[1].Eval(t),
		p.Offset[2] + p.Motion[2].Eval(t),
	}
}

// Rotation returns the rotation part of the pose at t.
func (p Pose) Rotation(t float32) mgl32.Mat4 {
	if p.Angle.IsZero() || p.Axis.Len() == 0 {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3D(p.Angle.Eval(t), p.Axis.Normalize())
}

func (p Pose) scale() mgl32.Vec3 {
	s := p.Scale
	for i := range s {
		if s[i] == 0 {
			s[i] = 1
		}
	}
	return s
}

// Local returns T * R * S at time t.
func (p Pose) Local(t float32) mgl32.Mat4 {
	tr := p.Translation(t)
	s := p.scale()
	return mgl32.Translate3D(tr[0], tr[1], tr[2]).
		Mul4(p.Rotation(t)).
		Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

// Uniform returns a scale vector with all components set to s.
func Uniform(s float32) mgl32.Vec3 {
	return mgl32.Vec3{s, s, s}
}
