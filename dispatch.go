package cm3

// clipMinDist/clipMaxDist bound clipAgainstHull's kept-vertex depth range
// for Convex-Convex contacts. Spec.md §4.3 names -100/+100 as the
// generator's fixed call values; there is no per-call tuning surface.
const (
	clipMinDist = -100.0
	clipMaxDist = 100.0
)

// Dispatch computes the contact equations for one shape pair, appending
// them to out and returning the extended slice.
//
// shape1/t1/body1Pos and shape2/t2/body2Pos are exactly as the caller
// passed them: for non-symmetric pairs, Dispatch swaps arguments internally
// to reach a canonical generator, then swaps the result back, so that
// normals and contact vectors are reported in terms of the caller's own
// (1, 2) order (spec.md §4.3).
func Dispatch(bodyId1 BodyId, shape1 Shape, t1 Transform, body1Pos Vec3, bodyId2 BodyId, shape2 Shape, t2 Transform, body2Pos Vec3, out []ContactEquation) []ContactEquation {
	switch shape1.Kind {
	case ShapePlane:
		switch shape2.Kind {
		case ShapePlane:
			return out // Plane-Plane: explicitly emits nothing.
		case ShapeSphere:
			return dispatchPlaneSphere(bodyId1, t1, body1Pos, bodyId2, t2, body2Pos, shape2.Radius, out)
		case ShapeConvex:
			return dispatchPlaneConvex(bodyId1, t1, body1Pos, bodyId2, t2, body2Pos, shape2.Hull, out)
		}
	case ShapeSphere:
		switch shape2.Kind {
		case ShapePlane:
			return swapped(dispatchPlaneSphere(bodyId2, t2, body2Pos, bodyId1, t1, body1Pos, shape1.Radius, nil), out)
		case ShapeSphere:
			return dispatchSphereSphere(bodyId1, t1, shape1.Radius, bodyId2, t2, shape2.Radius, out)
		case ShapeConvex:
			return dispatchSphereConvex(bodyId1, t1, body1Pos, shape1.Radius, bodyId2, t2, body2Pos, shape2.Hull, out)
		}
	case ShapeConvex:
		switch shape2.Kind {
		case ShapePlane:
			return swapped(dispatchPlaneConvex(bodyId2, t2, body2Pos, bodyId1, t1, body1Pos, shape1.Hull, nil), out)
		case ShapeSphere:
			return swapped(dispatchSphereConvex(bodyId2, t2, body2Pos, shape2.Radius, bodyId1, t1, body1Pos, shape1.Hull, nil), out)
		case ShapeConvex:
			return dispatchConvexConvex(bodyId1, t1, shape1.Hull, body1Pos, bodyId2, t2, shape2.Hull, body2Pos, out)
		}
	}
	return out
}

// swapped negates the normal and swaps ri/rj of each contact produced by a
// canonical generator called with its two sides exchanged, then appends
// the corrected contacts to out. Used by Dispatch to handle the three
// non-symmetric reversed-order pairs (Sphere-Plane, Convex-Plane,
// Convex-Sphere) without duplicating each generator's formula.
func swapped(reversed []ContactEquation, out []ContactEquation) []ContactEquation {
	for _, c := range reversed {
		out = append(out, ContactEquation{
			BodyId1:     c.BodyId2,
			BodyId2:     c.BodyId1,
			Ni:          c.Ni.Neg(),
			Ri:          c.Rj,
			Rj:          c.Ri,
			Restitution: 0,
		})
	}
	return out
}

// dispatchPlaneConvex implements Plane-Convex (spec.md §4.3): a contact
// for every hull vertex penetrating the plane's half-space.
func dispatchPlaneConvex(bodyId1 BodyId, tPlane Transform, planePos Vec3, bodyId2 BodyId, tConvex Transform, convexPos Vec3, hull *ConvexPolyhedron, out []ContactEquation) []ContactEquation {
	n := worldPlaneNormal(tPlane)
	for _, v := range hull.Vertices {
		w := tConvex.PointToWorldFrame(v)
		d := n.Dot(w.Sub(tPlane.Position))
		if d > 0 {
			continue
		}
		out = append(out, ContactEquation{
			BodyId1: bodyId1,
			BodyId2: bodyId2,
			Ni:      n,
			Ri:      w.Sub(n.Scale(d)).Sub(planePos),
			Rj:      w.Sub(convexPos),
		})
	}
	return out
}

// dispatchPlaneSphere implements Plane-Sphere (spec.md §4.3).
func dispatchPlaneSphere(bodyId1 BodyId, tPlane Transform, planePos Vec3, bodyId2 BodyId, tSphere Transform, spherePos Vec3, radius float64, out []ContactEquation) []ContactEquation {
	n := worldPlaneNormal(tPlane)
	w := tSphere.Position.Sub(n.Scale(radius))
	d := n.Dot(w.Sub(tPlane.Position))
	if d > 0 {
		return out
	}
	return append(out, ContactEquation{
		BodyId1: bodyId1,
		BodyId2: bodyId2,
		Ni:      n,
		Ri:      w.Sub(n.Scale(d)).Sub(planePos),
		Rj:      w.Sub(spherePos),
	})
}

// dispatchSphereSphere implements Sphere-Sphere (spec.md §4.3).
func dispatchSphereSphere(bodyId1 BodyId, t1 Transform, r1 float64, bodyId2 BodyId, t2 Transform, r2 float64, out []ContactEquation) []ContactEquation {
	c1, c2 := t1.Position, t2.Position
	dist := c1.Distance(c2)
	if dist > r1+r2 || dist == 0 {
		return out
	}
	ni := c1.Direction(c2)
	return append(out, ContactEquation{
		BodyId1: bodyId1,
		BodyId2: bodyId2,
		Ni:      ni,
		Ri:      ni.Scale(r1),
		Rj:      ni.Scale(-r2),
	})
}

// dispatchSphereConvex implements Sphere-Convex (spec.md §4.3): a
// three-stage vertex/face/edge search maintaining a running best
// penetration, executed strictly in iteration order since ties favor the
// later candidate.
func dispatchSphereConvex(bodyId1 BodyId, tSphere Transform, spherePos Vec3, radius float64, bodyId2 BodyId, tConvex Transform, convexPos Vec3, hull *ConvexPolyhedron, out []ContactEquation) []ContactEquation {
	c := tSphere.Position

	haveBest := false
	var bestPoint Vec3
	bestPenetration := 0.0

	// Stage 1: vertices.
	for _, v := range hull.Vertices {
		w := tConvex.PointToWorldFrame(v)
		pen := radius - w.Distance(c)
		if pen >= bestPenetration {
			bestPenetration = pen
			bestPoint = w
			haveBest = true
		}
	}

	// Stage 2 (faces) and stage 3 (edges, only on face-test rejection).
	for _, f := range hull.Faces {
		// A face with fewer than three vertices gets no face contact:
		// pointInPolygon rejects it and the edge stage below runs instead.
		if len(f.VertexIndices) == 0 {
			continue // no vertex to anchor the face plane
		}
		degenerate := false
		worldVerts := make([]Vec3, len(f.VertexIndices))
		for i, idx := range f.VertexIndices {
			if idx < 0 || idx >= len(hull.Vertices) {
				degenerate = true
				break
			}
			worldVerts[i] = tConvex.PointToWorldFrame(hull.Vertices[idx])
		}
		if degenerate {
			continue
		}

		nf := tConvex.VectorToWorldFrame(f.Normal)
		p := worldVerts[0]
		pen := nf.Dot(c.Sub(nf.Scale(radius)).Sub(p))
		side := nf.Dot(c.Sub(p))

		if side > 0 && pen >= bestPenetration {
			if pointInPolygon(worldVerts, nf, c) {
				worldContact := c.Add(nf.Scale(pen - radius))
				bestPenetration = pen
				bestPoint = worldContact
				haveBest = true
				continue
			}

			// Stage 3: edges of this face's ring.
			n := len(worldVerts)
			for i := 0; i < n; i++ {
				prev := worldVerts[(i-1+n)%n]
				curr := worldVerts[i]
				e := curr.Sub(prev)
				elen := e.Length()
				if elen == 0 {
					continue
				}
				u := e.Scale(1 / elen)
				s := c.Sub(prev).Dot(u)
				if s > 0 && s*s < e.LengthSquared() {
					q := prev.Add(u.Scale(s))
					epen := radius - q.Distance(c)
					if epen >= bestPenetration {
						bestPenetration = epen
						bestPoint = q
						haveBest = true
					}
				}
			}
		}
	}

	if !haveBest {
		return out
	}
	if bestPoint.Distance(c) == 0 {
		return out
	}
	ni := bestPoint.Direction(c)
	return append(out, ContactEquation{
		BodyId1: bodyId1,
		BodyId2: bodyId2,
		Ni:      ni,
		Ri:      bestPoint.Sub(c).Add(ni.Scale(bestPenetration)),
		Rj:      bestPoint.Sub(convexPos),
	})
}

// pointInPolygon reports whether p, assumed to already lie in the plane of
// the ring (vertices, normal), lies within the ring (spec.md §4.3.1).
func pointInPolygon(vertices []Vec3, normal Vec3, p Vec3) bool {
	if len(vertices) < 3 {
		return false
	}
	n := len(vertices)
	var sign float64
	for i := 0; i < n; i++ {
		v := vertices[i]
		prev := vertices[(i-1+n)%n]
		edge := v.Sub(prev)
		s := edge.Cross(normal).Dot(p.Sub(prev))
		if i == 0 {
			sign = s
			continue
		}
		if sign > 0 && s <= 0 {
			return false
		}
		if sign <= 0 && s > 0 {
			return false
		}
	}
	return true
}

// dispatchConvexConvex implements Convex-Convex (spec.md §4.3): SAT
// followed by Sutherland-Hodgman clipping.
func dispatchConvexConvex(bodyId1 BodyId, t1 Transform, hullA *ConvexPolyhedron, body1Pos Vec3, bodyId2 BodyId, t2 Transform, hullB *ConvexPolyhedron, body2Pos Vec3, out []ContactEquation) []ContactEquation {
	sepAxis, ok := findSeparatingAxis(t1, hullA, t2, hullB)
	if !ok {
		return out
	}
	clipped := clipAgainstHull(t1, hullA, t2, hullB, sepAxis, clipMinDist, clipMaxDist)
	ni := sepAxis.Neg()
	for _, cp := range clipped {
		q := cp.Normal.Scale(-cp.Depth)
		out = append(out, ContactEquation{
			BodyId1: bodyId1,
			BodyId2: bodyId2,
			Ni:      ni,
			Ri:      cp.Point.Add(q).Sub(body1Pos),
			Rj:      cp.Point.Sub(body2Pos),
		})
	}
	return out
}
