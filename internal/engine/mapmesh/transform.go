package mapmesh

import "github.com/go-gl/mathgl/mgl32"

// Transform places an object in the world: scale, then rotate, then translate.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// Identity returns a transform that leaves points unchanged.
func Identity() Transform {
	return Transform{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// FromTranslation returns an unrotated, unscaled transform at t.
func FromTranslation(t mgl32.Vec3) Transform {
	tr := Identity()
	tr.Translation = t
	return tr
}

// WithRotation returns a copy with rotation q.
func (t Transform) WithRotation(q mgl32.Quat) Transform {
	t.Rotation = q
	return t
}

// WithScale returns a copy uniformly scaled by s.
func (t Transform) WithScale(s float32) Transform {
	t.Scale = mgl32.Vec3{s, s, s}
	return t
}

// Mat4 returns the column-major model matrix.
func (t Transform) Mat4() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Apply transforms a point.
func (t Transform) Apply(p mgl32.Vec3) mgl32.Vec3 {
	scaled := mgl32.Vec3{p.X() * t.Scale.X(), p.Y() * t.Scale.Y(), p.Z() * t.Scale.Z()}
	return t.Rotation.Rotate(scaled).Add(t.Translation)
}
