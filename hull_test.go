package cm3_test

import (
	"testing"

	"github.com/setanarut/cm3"
)

func TestFromBoxFaceCount(t *testing.T) {
	box := cm3.NewBoxShape(cm3.NewVec3(0.5, 0.5, 0.5))
	if box.Hull == nil {
		t.Fatal("expected a convex hull")
	}
	if len(box.Hull.Faces) != 6 {
		t.Errorf("got %d faces, want 6", len(box.Hull.Faces))
	}
	if len(box.Hull.Vertices) != 8 {
		t.Errorf("got %d vertices, want 8", len(box.Hull.Vertices))
	}
}

// Property 4 (spec §8): separation on any axis implies convex-convex
// emits no contacts.
func TestConvexConvexSeparated(t *testing.T) {
	boxA := cm3.NewBoxShape(cm3.NewVec3(0.5, 0.5, 0.5))
	boxB := cm3.NewBoxShape(cm3.NewVec3(0.5, 0.5, 0.5))

	world := cm3.NewWorld()
	bodyA := cm3.NewBody(cm3.IdentityTransform())
	bodyA.AddShape(0, boxA, cm3.IdentityTransform())
	bodyB := cm3.NewBody(cm3.Transform{Position: cm3.NewVec3(10, 0, 0), Quaternion: cm3.IdentityQuaternion()})
	bodyB.AddShape(0, boxB, cm3.IdentityTransform())

	world.Bodies[1] = bodyA
	world.Bodies[2] = bodyB
	world.Pairs = []cm3.BodyIdPair{{First: 1, Second: 2}}

	contacts := cm3.GetContacts(world)
	if len(contacts) != 0 {
		t.Errorf("got %d contacts, want 0 for separated boxes", len(contacts))
	}
}

// S4: two axis-aligned unit boxes overlapping 0.1 along X produce 4
// clipped contacts, each with ni = (-1, 0, 0).
func TestConvexConvexOverlapS4(t *testing.T) {
	boxA := cm3.NewBoxShape(cm3.NewVec3(0.5, 0.5, 0.5))
	boxB := cm3.NewBoxShape(cm3.NewVec3(0.5, 0.5, 0.5))

	world := cm3.NewWorld()
	bodyA := cm3.NewBody(cm3.IdentityTransform())
	bodyA.AddShape(0, boxA, cm3.IdentityTransform())
	bodyB := cm3.NewBody(cm3.Transform{Position: cm3.NewVec3(0.9, 0, 0), Quaternion: cm3.IdentityQuaternion()})
	bodyB.AddShape(0, boxB, cm3.IdentityTransform())

	world.Bodies[1] = bodyA
	world.Bodies[2] = bodyB
	world.Pairs = []cm3.BodyIdPair{{First: 1, Second: 2}}

	contacts := cm3.GetContacts(world)
	if len(contacts) != 4 {
		t.Fatalf("got %d contacts, want 4", len(contacts))
	}
	for _, c := range contacts {
		want := cm3.NewVec3(-1, 0, 0)
		if c.Ni.Distance(want) > 1e-9 {
			t.Errorf("got ni %v, want %v", c.Ni, want)
		}
	}
}

// S3: a unit box 0.45 above a ground plane produces 4 contacts, one per
// bottom vertex, each at depth 0.05.
func TestPlaneConvexS3(t *testing.T) {
	plane := cm3.NewPlaneShape()
	box := cm3.NewBoxShape(cm3.NewVec3(0.5, 0.5, 0.5))

	world := cm3.NewWorld()
	ground := cm3.NewBody(cm3.IdentityTransform())
	ground.AddShape(0, plane, cm3.IdentityTransform())
	falling := cm3.NewBody(cm3.Transform{Position: cm3.NewVec3(0, 0, 0.45), Quaternion: cm3.IdentityQuaternion()})
	falling.AddShape(0, box, cm3.IdentityTransform())

	world.Bodies[1] = ground
	world.Bodies[2] = falling
	world.Pairs = []cm3.BodyIdPair{{First: 1, Second: 2}}

	contacts := cm3.GetContacts(world)
	if len(contacts) != 4 {
		t.Fatalf("got %d contacts, want 4", len(contacts))
	}
	// Property 7 (spec §8): body1.position+ri and body2.position+rj differ
	// by depth·ni; S3 (spec §8) fixes that depth at 0.05.
	for _, c := range contacts {
		worldPointOnPlane := ground.Transform.Position.Add(c.Ri)
		worldPointOnBox := falling.Transform.Position.Add(c.Rj)
		depth := worldPointOnPlane.Sub(worldPointOnBox).Dot(c.Ni)
		if depth < 0.05-1e-9 || depth > 0.05+1e-9 {
			t.Errorf("got depth %v, want 0.05", depth)
		}
	}
}
