package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Intersects reports whether two polygon rings share any area or boundary
// point. Both rings are in internal (lat, lng) ordering by construction of
// the Ring type, so the operands always agree on axis order.
//
// The test is planar in degree space and uses exact arithmetic throughout:
// bounding boxes first, then edge-pair segment crossing, then a vertex
// touch test (inside or on the boundary) in both directions. The touch
// test catches one ring containing the other as well as rings meeting only
// along a shared edge or at a single corner.
//
// Because the test is planar, a ring crossing the antimeridian is read the
// long way around in degree space. The covering stage bounds such rings
// correctly, so candidates stay near the seam, but the filter may keep
// extra cells there for non-rectangular seam-crossing polygons.
func Intersects(a, b Ring) bool {
	pa := orb.Polygon{a.Orb()}
	pb := orb.Polygon{b.Orb()}

	if !pa.Bound().Intersects(pb.Bound()) {
		return false
	}
	if ringsCross(pa[0], pb[0]) {
		return true
	}
	return ringTouches(pa, pb[0]) || ringTouches(pb, pa[0])
}

// ringsCross reports whether any edge of r1 crosses any edge of r2.
func ringsCross(r1, r2 orb.Ring) bool {
	for i := 0; i < len(r1)-1; i++ {
		for j := 0; j < len(r2)-1; j++ {
			if segmentsCross(r1[i], r1[i+1], r2[j], r2[j+1]) {
				return true
			}
		}
	}
	return false
}

// segmentsCross reports whether segments a1-a2 and b1-b2 cross in their
// interiors. Parallel and collinear segments do not cross.
func segmentsCross(a1, a2, b1, b2 orb.Point) bool {
	det := (a2[0]-a1[0])*(b2[1]-b1[1]) - (b2[0]-b1[0])*(a2[1]-a1[1])
	if det == 0 {
		return false
	}
	lambda := ((b2[1]-b1[1])*(b2[0]-a1[0]) + (b1[0]-b2[0])*(b2[1]-a1[1])) / det
	gamma := ((a1[1]-a2[1])*(b2[0]-a1[0]) + (a2[0]-a1[0])*(b2[1]-a1[1])) / det
	return 0 < lambda && lambda < 1 && 0 < gamma && gamma < 1
}

// ringTouches reports whether any vertex of r lies inside p or on its
// outer ring. Two rings whose boundaries overlap without crossing always
// place a vertex of one on an edge of the other (collinear segments that
// overlap share at least one endpoint of the overlap, and endpoints are
// vertices), so this closes every contact case the crossing test misses.
func ringTouches(p orb.Polygon, r orb.Ring) bool {
	for _, v := range r[:len(r)-1] {
		if pointOnRing(p[0], v) || planar.PolygonContains(p, v) {
			return true
		}
	}
	return false
}

// pointOnRing reports whether v lies on one of r's edges.
func pointOnRing(r orb.Ring, v orb.Point) bool {
	for i := 0; i < len(r)-1; i++ {
		if pointOnSegment(v, r[i], r[i+1]) {
			return true
		}
	}
	return false
}

// pointOnSegment reports whether p lies on the closed segment a-b.
func pointOnSegment(p, a, b orb.Point) bool {
	if (b[0]-a[0])*(p[1]-a[1]) != (b[1]-a[1])*(p[0]-a[0]) {
		return false
	}
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}
