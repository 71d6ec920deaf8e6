package geom

import "github.com/go-gl/mathgl/mgl64"

// Quat is a rotation quaternion. Mul is the Hamilton product q*r, which
// applies r first.
type Quat = mgl64.Quat

// Identity returns the no-op rotation.
func Identity() Quat {
	return mgl64.QuatIdent()
}

// AxisAngle returns a rotation of angle radians about axis. The axis does not
// need to be normalized; a zero axis yields the identity.
func AxisAngle(axis Vec3, angle float64) Quat {
	if axis.Len() == 0 {
		return Identity()
	}
	return mgl64.QuatRotate(angle, axis.Normalize())
}
