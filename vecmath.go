package cm3

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a three-component vector of finite 64-bit floats.
//
// The underlying arithmetic is github.com/go-gl/mathgl/mgl64's Vec3; Vec3
// is a defined type over it so the spec's named operations (Add, Sub,
// Scale, Dot, Cross, Length, Normalize, ...) read the way call sites in
// this package expect, rather than mgl64's generic matrix/vector API.
type Vec3 mgl64.Vec3

// NewVec3 builds a vector from its components.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

func (a Vec3) mgl() mgl64.Vec3 { return mgl64.Vec3(a) }

func (a Vec3) X() float64 { return a[0] }
func (a Vec3) Y() float64 { return a[1] }
func (a Vec3) Z() float64 { return a[2] }

func (a Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", a[0], a[1], a[2])
}

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3(a.mgl().Add(b.mgl()))
}

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3(a.mgl().Sub(b.mgl()))
}

// Scale returns a scaled by s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3(a.mgl().Mul(s))
}

// Neg returns -a.
func (a Vec3) Neg() Vec3 {
	return a.Scale(-1)
}

// Dot returns a . b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.mgl().Dot(b.mgl())
}

// Cross returns a x b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3(a.mgl().Cross(b.mgl()))
}

// Length returns the Euclidean length of a.
func (a Vec3) Length() float64 {
	return a.mgl().Len()
}

// LengthSquared returns the squared Euclidean length of a, avoiding the
// square root.
func (a Vec3) LengthSquared() float64 {
	return a.mgl().LenSqr()
}

// Normalize returns a unit vector in the direction of a.
//
// Undefined for a zero-length vector; callers must avoid calling it on one
// (e.g. by checking Distance first), matching the spec's VectorMath
// contract.
func (a Vec3) Normalize() Vec3 {
	return Vec3(a.mgl().Normalize())
}

// Distance returns the Euclidean distance between a and b.
func (a Vec3) Distance(b Vec3) float64 {
	return a.Sub(b).Length()
}

// Direction returns the unit vector pointing from b toward a.
//
// Unspecified when a == b; callers must short-circuit via a distance check
// (see spec.md §4.1).
func (a Vec3) Direction(b Vec3) Vec3 {
	return a.Sub(b).Normalize()
}

// Equal reports whether a and b are identical component-wise.
func (a Vec3) Equal(b Vec3) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}

var (
	zeroVec3 = Vec3{0, 0, 0}
	unitX    = Vec3{1, 0, 0}
	unitY    = Vec3{0, 1, 0}
	unitZ    = Vec3{0, 0, 1}
)

// Quaternion is a unit quaternion (x, y, z, w) used to transform a vector
// from local to world frame.
type Quaternion mgl64.Quat

// IdentityQuaternion returns the identity rotation.
func IdentityQuaternion() Quaternion {
	return Quaternion(mgl64.QuatIdent())
}

// NewQuaternion builds a quaternion from its x, y, z, w components.
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion(mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}})
}

func (q Quaternion) mgl() mgl64.Quat { return mgl64.Quat(q) }

func (q Quaternion) X() float64 { return q.V[0] }
func (q Quaternion) Y() float64 { return q.V[1] }
func (q Quaternion) Z() float64 { return q.V[2] }

// Rotate transforms v from local to world frame: rotate(q, v) -> v'.
func (q Quaternion) Rotate(v Vec3) Vec3 {
	return Vec3(q.mgl().Rotate(v.mgl()))
}

// Transform is a rigid transform: a rotation followed by a translation.
type Transform struct {
	Position   Vec3
	Quaternion Quaternion
}

// IdentityTransform returns the identity rigid transform.
func IdentityTransform() Transform {
	return Transform{Position: zeroVec3, Quaternion: IdentityQuaternion()}
}

// PointToWorldFrame maps a point p from the transform's local frame to
// world space: pointToWorldFrame(t, p) = rotate(t.quaternion, p) + t.position.
func (t Transform) PointToWorldFrame(p Vec3) Vec3 {
	return t.Quaternion.Rotate(p).Add(t.Position)
}

// VectorToWorldFrame rotates a direction vector from local to world frame,
// without translating it. Useful for face/edge normals, which are
// directions, not points.
func (t Transform) VectorToWorldFrame(v Vec3) Vec3 {
	return t.Quaternion.Rotate(v)
}

// Compose returns the transform that first applies inner, then outer —
// used to compose a shape's body-local transform with its body's world
// transform (spec.md §3: "the shape's world transform equals the body's
// transform composed with the shape-within-body transform").
func Compose(outer, inner Transform) Transform {
	return Transform{
		Position:   outer.PointToWorldFrame(inner.Position),
		Quaternion: Quaternion(outer.Quaternion.mgl().Mul(inner.Quaternion.mgl())),
	}
}
