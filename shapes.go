package cm3

import "fmt"

// ShapeKind tags the variant a Shape holds. Go has no closed sum type, so
// this core follows the box2d/Bullet convention of a kind tag plus
// variant-specific fields, rather than the teacher's open IShape interface
// — spec.md §4.3/§9 require an exhaustive 9-way match over shape-pair
// kinds, which an interface can't guarantee at compile time the way a
// closed switch over an enum can be reviewed for completeness.
type ShapeKind uint8

const (
	// ShapePlane is an implicit half-space; its local-frame outward normal
	// is +Z, so its world normal is rotate(t.quaternion, (0,0,1)).
	ShapePlane ShapeKind = iota
	// ShapeSphere is centered at the shape-transform origin.
	ShapeSphere
	// ShapeConvex wraps a ConvexPolyhedron.
	ShapeConvex
)

func (k ShapeKind) String() string {
	switch k {
	case ShapePlane:
		return "Plane"
	case ShapeSphere:
		return "Sphere"
	case ShapeConvex:
		return "Convex"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// Shape is a tagged variant over exactly the three kinds spec.md §3 names.
type Shape struct {
	Kind ShapeKind
	// Radius is valid when Kind == ShapeSphere. Must be > 0.
	Radius float64
	// Hull is valid when Kind == ShapeConvex.
	Hull *ConvexPolyhedron
}

// NewPlaneShape returns a Plane shape.
func NewPlaneShape() Shape {
	return Shape{Kind: ShapePlane}
}

// NewSphereShape returns a Sphere shape of the given radius, centered at
// the shape transform's origin. Panics if radius is not positive, matching
// the data model's invariant (spec.md §3: "radius: Float>0").
func NewSphereShape(radius float64) Shape {
	if radius <= 0 {
		panic("cm3: sphere radius must be > 0")
	}
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// NewConvexShape wraps a ConvexPolyhedron as a Shape.
func NewConvexShape(hull *ConvexPolyhedron) Shape {
	return Shape{Kind: ShapeConvex, Hull: hull}
}

// NewBoxShape returns a Convex shape built from fromBox(halfExtents).
func NewBoxShape(halfExtents Vec3) Shape {
	return NewConvexShape(fromBox(halfExtents))
}

// worldPlaneNormal returns a plane shape's outward normal in world space.
func worldPlaneNormal(t Transform) Vec3 {
	return t.VectorToWorldFrame(unitZ)
}
