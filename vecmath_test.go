package cm3_test

import (
	"math"
	"testing"

	"github.com/setanarut/cm3"
)

func TestVec3AddSub(t *testing.T) {
	a := cm3.NewVec3(1, 2, 3)
	b := cm3.NewVec3(4, 5, 6)
	sum := a.Add(b)
	if sum.X() != 5 || sum.Y() != 7 || sum.Z() != 9 {
		t.Errorf("got %v, want (5, 7, 9)", sum)
	}
	if !sum.Sub(b).Equal(a) {
		t.Errorf("Sub did not invert Add: got %v", sum.Sub(b))
	}
}

func TestVec3DotCross(t *testing.T) {
	x := cm3.NewVec3(1, 0, 0)
	y := cm3.NewVec3(0, 1, 0)
	if x.Dot(y) != 0 {
		t.Errorf("orthogonal dot: got %v, want 0", x.Dot(y))
	}
	z := x.Cross(y)
	if !z.Equal(cm3.NewVec3(0, 0, 1)) {
		t.Errorf("cross: got %v, want (0, 0, 1)", z)
	}
}

func TestVec3Length(t *testing.T) {
	v := cm3.NewVec3(3, 4, 0)
	if v.Length() != 5 {
		t.Errorf("got %v, want 5", v.Length())
	}
	if v.LengthSquared() != 25 {
		t.Errorf("got %v, want 25", v.LengthSquared())
	}
}

func TestVec3Direction(t *testing.T) {
	a := cm3.NewVec3(5, 0, 0)
	b := cm3.NewVec3(0, 0, 0)
	d := a.Direction(b)
	if !d.Equal(cm3.NewVec3(1, 0, 0)) {
		t.Errorf("got %v, want (1, 0, 0)", d)
	}
}

func TestQuaternionIdentityRotate(t *testing.T) {
	q := cm3.IdentityQuaternion()
	v := cm3.NewVec3(1, 2, 3)
	if !q.Rotate(v).Equal(v) {
		t.Errorf("identity rotation changed v: got %v", q.Rotate(v))
	}
}

func TestQuaternionRotate90AboutZ(t *testing.T) {
	half := math.Pi / 4
	q := cm3.NewQuaternion(0, 0, math.Sin(half), math.Cos(half))
	v := cm3.NewVec3(1, 0, 0)
	got := q.Rotate(v)
	want := cm3.NewVec3(0, 1, 0)
	if got.Distance(want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTransformPointToWorldFrame(t *testing.T) {
	tr := cm3.Transform{Position: cm3.NewVec3(10, 0, 0), Quaternion: cm3.IdentityQuaternion()}
	p := cm3.NewVec3(1, 2, 3)
	got := tr.PointToWorldFrame(p)
	want := cm3.NewVec3(11, 2, 3)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComposeTransforms(t *testing.T) {
	outer := cm3.Transform{Position: cm3.NewVec3(10, 0, 0), Quaternion: cm3.IdentityQuaternion()}
	inner := cm3.Transform{Position: cm3.NewVec3(0, 5, 0), Quaternion: cm3.IdentityQuaternion()}
	composed := cm3.Compose(outer, inner)
	want := cm3.NewVec3(10, 5, 0)
	if !composed.Position.Equal(want) {
		t.Errorf("got %v, want %v", composed.Position, want)
	}
}
