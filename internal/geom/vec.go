package geom

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is a 3D vector in meters.
type Vec3 = mgl64.Vec3

// Zero returns the zero vector.
func Zero() Vec3 {
	return Vec3{}
}

// UnitX returns the unit vector along +X (viewer's right).
func UnitX() Vec3 {
	return Vec3{1, 0, 0}
}
