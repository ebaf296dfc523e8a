package cm3

import "fmt"

// BodyId identifies a rigid body within a World. Comparable so it can key
// a map and be compared for equality in tests.
type BodyId int

func (id BodyId) String() string { return fmt.Sprintf("Body#%d", int(id)) }

// ShapeId identifies a shape within the body that owns it.
type ShapeId int

func (id ShapeId) String() string { return fmt.Sprintf("Shape#%d", int(id)) }

// ShapeSlot pairs a shape with its identity inside a body's ordered shape
// list. A slice, rather than a map[ShapeId]Shape, so that iterating a
// body's shapes has a fixed, caller-controlled order — required for
// GetContacts's output order to be a pure function of world construction
// order (spec.md §4.4, §8).
type ShapeSlot struct {
	ID    ShapeId
	Shape Shape
}

// Body is a rigid body: a world transform plus an ordered list of shapes,
// each with its own transform relative to the body.
type Body struct {
	Transform Transform
	// Shapes is iterated in index order by GetContacts.
	Shapes []ShapeSlot
	// ShapeTransforms gives each shape's transform within the body's local
	// frame. A shape's world transform is Compose(Body.Transform,
	// ShapeTransforms[id]). Looked up only by key (never iterated), so a
	// map here does not introduce nondeterminism.
	ShapeTransforms map[ShapeId]Transform
}

// NewBody returns an empty body at the given world transform.
func NewBody(t Transform) Body {
	return Body{
		Transform:       t,
		ShapeTransforms: make(map[ShapeId]Transform),
	}
}

// AddShape appends shape to the body under id, with the given
// shape-local transform. The shape's index in Shapes is its append order.
func (b *Body) AddShape(id ShapeId, shape Shape, localTransform Transform) {
	b.Shapes = append(b.Shapes, ShapeSlot{ID: id, Shape: shape})
	b.ShapeTransforms[id] = localTransform
}

// worldTransform returns the world transform of the shape at slot index i.
func (b Body) worldTransform(i int) Transform {
	slot := b.Shapes[i]
	return Compose(b.Transform, b.ShapeTransforms[slot.ID])
}

// BodyIdPair names an ordered pair of bodies to test against each other.
type BodyIdPair struct {
	First, Second BodyId
}

// World holds every body and the fixed list of body pairs GetContacts
// walks. Pairs, not all-pairs-of-Bodies, because broad-phase pair
// selection is out of this core's scope (spec.md Non-goals) — callers
// supply the candidate pairs themselves.
type World struct {
	Bodies map[BodyId]Body
	Pairs  []BodyIdPair
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{Bodies: make(map[BodyId]Body)}
}

// ContactEquation describes one point of contact between two bodies.
type ContactEquation struct {
	BodyId1, BodyId2 BodyId
	// Ni is the unit contact normal, in world space. Its direction depends
	// on the generator: the plane's normal for Plane-Sphere and
	// Plane-Convex (body1 toward body2); unit(c1 - c2) for Sphere-Sphere
	// (body2's center toward body1's); from the sphere's center toward the
	// contact point for Sphere-Convex (body1 toward body2); the negated
	// separating axis for Convex-Convex (body2 toward body1). Reversed-order
	// pairs carry the negated normal, so the body1/body2 sense above holds.
	Ni Vec3
	// Ri, Rj are the contact point expressed relative to Body1's and
	// Body2's world positions respectively.
	Ri, Rj Vec3
	// Restitution is left at zero by every generator in this core; it
	// exists so a caller's constraint solver has somewhere to write a
	// per-pair value before consuming the equation.
	Restitution float64
}

func (c ContactEquation) String() string {
	return fmt.Sprintf("Contact{%s<->%s, ni=%s, ri=%s, rj=%s}", c.BodyId1, c.BodyId2, c.Ni, c.Ri, c.Rj)
}

// GetContacts walks world.Pairs in order and, for each pair whose bodies
// both exist, walks body1.Shapes x body2.Shapes in index order, dispatching
// each shape pair and appending its contacts to the result in dispatch
// order. A pair naming a body id absent from world.Bodies is silently
// skipped (spec.md §7: no panics, no errors, for missing-body pairs —
// the core simply has nothing to report for them).
func GetContacts(world *World) []ContactEquation {
	var contacts []ContactEquation
	for _, pair := range world.Pairs {
		body1, ok1 := world.Bodies[pair.First]
		body2, ok2 := world.Bodies[pair.Second]
		if !ok1 || !ok2 {
			continue
		}
		for i := range body1.Shapes {
			t1 := body1.worldTransform(i)
			shape1 := body1.Shapes[i].Shape
			for j := range body2.Shapes {
				t2 := body2.worldTransform(j)
				shape2 := body2.Shapes[j].Shape
				contacts = Dispatch(pair.First, shape1, t1, body1.Transform.Position, pair.Second, shape2, t2, body2.Transform.Position, contacts)
			}
		}
	}
	return contacts
}
