package cm3

import "math"

// edgeCrossEpsilon is the minimum magnitude an edge-edge cross product must
// have before its normalized direction is trusted as a SAT candidate axis.
// Below this, the two edges are treated as parallel and the candidate is
// skipped rather than risk blowing up Normalize on a near-zero vector.
const edgeCrossEpsilon = 1e-6

// parallelEpsilon is how close abs(dot) must be to 1 for two unit
// directions to be treated as duplicates when deduping edge directions or
// SAT candidate axes.
const parallelEpsilon = 1e-9

// Face is a planar, convex, outward-wound ring of a ConvexPolyhedron.
type Face struct {
	VertexIndices []int
	Normal        Vec3
}

// ConvexPolyhedron is an immutable convex polyhedron in local (body- or
// shape-) frame: vertices, outward-wound faces, and a de-duplicated list of
// unique edge directions used by SAT (spec.md §3, §9 "edge enumeration for
// SAT").
type ConvexPolyhedron struct {
	Vertices []Vec3
	Faces    []Face
	edges    []Vec3 // unique unit edge directions, precomputed once
	centroid Vec3
}

// NewConvexPolyhedron builds a ConvexPolyhedron from an explicit vertex
// list and face set, precomputing the unique edge-direction list SAT needs.
//
// Supplements spec.md's sole named constructor (fromBox) with a general one:
// the data model in §3 is already general convex polyhedra, and nothing
// about fromBox's box-specific construction generalizes usefully to other
// shapes, so arbitrary hulls need their own entry point (grounded on
// polyshape.go's NewPolyShapeRaw/SetVerts).
func NewConvexPolyhedron(vertices []Vec3, faces []Face) *ConvexPolyhedron {
	h := &ConvexPolyhedron{Vertices: vertices, Faces: faces}
	h.centroid = computeCentroid(vertices)
	h.edges = computeUniqueEdges(faces, vertices)
	return h
}

func computeCentroid(vertices []Vec3) Vec3 {
	if len(vertices) == 0 {
		return zeroVec3
	}
	sum := zeroVec3
	for _, v := range vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(1.0 / float64(len(vertices)))
}

func computeUniqueEdges(faces []Face, vertices []Vec3) []Vec3 {
	var edges []Vec3
	for _, f := range faces {
		n := len(f.VertexIndices)
		for i := 0; i < n; i++ {
			a := vertices[f.VertexIndices[i]]
			b := vertices[f.VertexIndices[(i+1)%n]]
			delta := b.Sub(a)
			if delta.LengthSquared() < edgeCrossEpsilon*edgeCrossEpsilon {
				continue
			}
			dir := delta.Normalize()
			if !containsParallelDirection(edges, dir) {
				edges = append(edges, dir)
			}
		}
	}
	return edges
}

func containsParallelDirection(dirs []Vec3, d Vec3) bool {
	for _, existing := range dirs {
		if math.Abs(existing.Dot(d)) > 1-parallelEpsilon {
			return true
		}
	}
	return false
}

// fromBox constructs a six-faced axis-aligned box of the given half-extents
// centered at the origin. Face normals are the six unit axis directions.
func fromBox(halfExtents Vec3) *ConvexPolyhedron {
	hx, hy, hz := halfExtents.X(), halfExtents.Y(), halfExtents.Z()

	// Vertex order: the bottom ring (z = -hz), counter-clockwise seen from
	// +Z starting at (-x, -y), then the top ring (z = +hz) in the same order.
	vertices := []Vec3{
		NewVec3(-hx, -hy, -hz), // 0
		NewVec3(hx, -hy, -hz),  // 1
		NewVec3(hx, hy, -hz),   // 2
		NewVec3(-hx, hy, -hz),  // 3
		NewVec3(-hx, -hy, hz),  // 4
		NewVec3(hx, -hy, hz),   // 5
		NewVec3(hx, hy, hz),    // 6
		NewVec3(-hx, hy, hz),   // 7
	}

	faces := []Face{
		{VertexIndices: []int{1, 2, 6, 5}, Normal: unitX},       // +X
		{VertexIndices: []int{0, 4, 7, 3}, Normal: unitX.Neg()}, // -X
		{VertexIndices: []int{3, 7, 6, 2}, Normal: unitY},       // +Y
		{VertexIndices: []int{0, 1, 5, 4}, Normal: unitY.Neg()}, // -Y
		{VertexIndices: []int{4, 5, 6, 7}, Normal: unitZ},       // +Z
		{VertexIndices: []int{0, 3, 2, 1}, Normal: unitZ.Neg()}, // -Z
	}

	return NewConvexPolyhedron(vertices, faces)
}

// foldFaceNormals iterates a hull's faces in stored order, applying
// visitor(acc, worldNormal, worldVertexOfFace, faceIndex) to accumulate a
// result. Exposed for callers (e.g. benchmarks) that need a reference
// vertex per face without re-deriving the SAT/clip machinery.
func foldFaceNormals[T any](t Transform, hull *ConvexPolyhedron, seed T, visitor func(acc T, worldNormal, worldVertex Vec3, faceIndex int) T) T {
	acc := seed
	for i, f := range hull.Faces {
		worldNormal := t.VectorToWorldFrame(f.Normal)
		worldVertex := t.PointToWorldFrame(hull.Vertices[f.VertexIndices[0]])
		acc = visitor(acc, worldNormal, worldVertex, i)
	}
	return acc
}

// project returns [min, max] of a hull's world-space vertices projected
// onto axis n.
func project(t Transform, hull *ConvexPolyhedron, n Vec3) (min, max float64) {
	min = math.MaxFloat64
	max = -math.MaxFloat64
	for _, v := range hull.Vertices {
		d := t.PointToWorldFrame(v).Dot(n)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return
}

// overlapOnAxis computes o(n) = min(projMaxA - projMinB, projMaxB - projMinA)
// for the two hulls projected onto axis n (spec.md §4.2).
func overlapOnAxis(tA Transform, hullA *ConvexPolyhedron, tB Transform, hullB *ConvexPolyhedron, n Vec3) float64 {
	minA, maxA := project(tA, hullA, n)
	minB, maxB := project(tB, hullB, n)
	o1 := maxA - minB
	o2 := maxB - minA
	return math.Min(o1, o2)
}

// findSeparatingAxis searches for a single axis separating hullA and
// hullB. Returns (axis, true) when the hulls overlap on every candidate
// axis — the axis with the smallest positive overlap, oriented from hullA
// toward hullB. Returns (zero, false) when any candidate axis separates
// them.
//
// Candidate order (ties broken by this order, per spec.md §4.2): hullA's
// world face normals, then hullB's, then every edgeA x edgeB direction
// (skipping near-zero crosses and duplicate directions).
func findSeparatingAxis(tA Transform, hullA *ConvexPolyhedron, tB Transform, hullB *ConvexPolyhedron) (Vec3, bool) {
	bestOverlap := math.MaxFloat64
	var bestAxis Vec3
	found := false

	centroidA := tA.PointToWorldFrame(hullA.centroid)
	centroidB := tB.PointToWorldFrame(hullB.centroid)

	consider := func(n Vec3) bool {
		nn := n.Normalize()
		overlap := overlapOnAxis(tA, hullA, tB, hullB, nn)
		if overlap <= 0 {
			return false
		}
		if overlap < bestOverlap {
			bestOverlap = overlap
			if nn.Dot(centroidB.Sub(centroidA)) < 0 {
				nn = nn.Neg()
			}
			bestAxis = nn
			found = true
		}
		return true
	}

	for _, f := range hullA.Faces {
		if !consider(tA.VectorToWorldFrame(f.Normal)) {
			return zeroVec3, false
		}
	}
	for _, f := range hullB.Faces {
		if !consider(tB.VectorToWorldFrame(f.Normal)) {
			return zeroVec3, false
		}
	}

	var seenAxes []Vec3
	for _, eA := range hullA.edges {
		worldEdgeA := tA.VectorToWorldFrame(eA)
		for _, eB := range hullB.edges {
			worldEdgeB := tB.VectorToWorldFrame(eB)
			cross := worldEdgeA.Cross(worldEdgeB)
			if cross.LengthSquared() < edgeCrossEpsilon*edgeCrossEpsilon {
				continue
			}
			axis := cross.Normalize()
			if containsParallelDirection(seenAxes, axis) {
				continue
			}
			seenAxes = append(seenAxes, axis)
			if !consider(axis) {
				return zeroVec3, false
			}
		}
	}

	return bestAxis, found
}

// ClippedPoint is one vertex produced by clipAgainstHull/clipFaceAgainstHull.
type ClippedPoint struct {
	Point  Vec3
	Normal Vec3
	Depth  float64
}

// facesAdjacent reports whether faces i and j of hull share an edge (a
// consecutive vertex-index pair appearing, in either order, in both rings).
func facesAdjacent(hull *ConvexPolyhedron, i, j int) bool {
	if i == j {
		return false
	}
	fi := hull.Faces[i].VertexIndices
	fj := hull.Faces[j].VertexIndices
	for a := 0; a < len(fi); a++ {
		a0, a1 := fi[a], fi[(a+1)%len(fi)]
		for b := 0; b < len(fj); b++ {
			b0, b1 := fj[b], fj[(b+1)%len(fj)]
			if (a0 == b0 && a1 == b1) || (a0 == b1 && a1 == b0) {
				return true
			}
		}
	}
	return false
}

// clipSidePlane runs one Sutherland-Hodgman pass of polygon P against a
// single half-space (outward normal n, a point p on the plane). Points
// with signed distance <= 0 are inside and kept; edges crossing the plane
// contribute their intersection point.
func clipSidePlane(P []Vec3, n, p Vec3) []Vec3 {
	if len(P) == 0 {
		return P
	}
	var out []Vec3
	prev := P[len(P)-1]
	prevDist := n.Dot(prev.Sub(p))
	for _, curr := range P {
		currDist := n.Dot(curr.Sub(p))
		prevInside := prevDist <= 0
		currInside := currDist <= 0
		if currInside {
			if !prevInside {
				t := prevDist / (prevDist - currDist)
				out = append(out, prev.Add(curr.Sub(prev).Scale(t)))
			}
			out = append(out, curr)
		} else if prevInside {
			t := prevDist / (prevDist - currDist)
			out = append(out, prev.Add(curr.Sub(prev).Scale(t)))
		}
		prev = curr
		prevDist = currDist
	}
	return out
}

// clipAgainstHull selects hullB's incident face (the one facing most
// directly opposite sepAxis), clips it against the side planes of hullA's
// reference face (the one facing most directly along sepAxis), then keeps
// only vertices within [minDist, maxDist] of the reference plane
// (spec.md §4.2).
func clipAgainstHull(tA Transform, hullA *ConvexPolyhedron, tB Transform, hullB *ConvexPolyhedron, sepAxis Vec3, minDist, maxDist float64) []ClippedPoint {
	incident := -1
	mostNegative := math.MaxFloat64
	for i, f := range hullB.Faces {
		d := tB.VectorToWorldFrame(f.Normal).Dot(sepAxis)
		if d < mostNegative {
			mostNegative = d
			incident = i
		}
	}
	if incident < 0 {
		return nil
	}

	P := make([]Vec3, len(hullB.Faces[incident].VertexIndices))
	for i, idx := range hullB.Faces[incident].VertexIndices {
		P[i] = tB.PointToWorldFrame(hullB.Vertices[idx])
	}

	reference := -1
	largest := -math.MaxFloat64
	for i, f := range hullA.Faces {
		d := tA.VectorToWorldFrame(f.Normal).Dot(sepAxis)
		if d > largest {
			largest = d
			reference = i
		}
	}
	if reference < 0 {
		return nil
	}

	return clipFaceAgainstHull(tA, hullA, reference, P, minDist, maxDist)
}

// clipFaceAgainstHull is clipAgainstHull's core, exposed directly for
// benchmarking with a caller-supplied incident polygon P (spec.md §4.2,
// "clipFaceAgainstHull").
func clipFaceAgainstHull(tA Transform, hullA *ConvexPolyhedron, referenceFace int, P []Vec3, minDist, maxDist float64) []ClippedPoint {
	refNormal := tA.VectorToWorldFrame(hullA.Faces[referenceFace].Normal)
	refPoint := tA.PointToWorldFrame(hullA.Vertices[hullA.Faces[referenceFace].VertexIndices[0]])

	clipped := P
	for i := range hullA.Faces {
		if !facesAdjacent(hullA, referenceFace, i) {
			continue
		}
		n := tA.VectorToWorldFrame(hullA.Faces[i].Normal)
		p := tA.PointToWorldFrame(hullA.Vertices[hullA.Faces[i].VertexIndices[0]])
		clipped = clipSidePlane(clipped, n, p)
		if len(clipped) == 0 {
			return nil
		}
	}

	var results []ClippedPoint
	for _, v := range clipped {
		d := refNormal.Dot(v.Sub(refPoint))
		if d < minDist || d > maxDist {
			continue
		}
		point := v.Sub(refNormal.Scale(d))
		results = append(results, ClippedPoint{Point: point, Normal: refNormal, Depth: -d})
	}
	return results
}
