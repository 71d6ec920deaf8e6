package geom

// Pose is a rigid transform: rotate, then translate.
type Pose struct {
	Translation Vec3
	Rotation    Quat
}

// IdentityPose returns the pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Rotation: Identity()}
}

// Compose returns the pose of child expressed in p's parent frame, where
// child is given relative to p.
func (p Pose) Compose(child Pose) Pose {
	return Pose{
		Translation: p.Translation.Add(p.Rotation.Rotate(child.Translation)),
		Rotation:    p.Rotation.Mul(child.Rotation).Normalize(),
	}
}
