package geoprim

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// PolygonContains reports whether pt lies inside poly (exterior ring minus
// holes), via github.com/golang/geo's spherical polygon containment. s2 is
// kept from the teacher (there used to key graph nodes by cell id) and
// repurposed here for point-in-polygon tests, per SPEC_FULL.md §11.
func PolygonContains(poly orb.Polygon, pt Coordinate) bool {
	if len(poly) == 0 {
		return false
	}
	loops := make([]*s2.Loop, len(poly))
	for i, ring := range poly {
		loops[i] = ringToLoop(ring)
	}
	s2poly := s2.PolygonFromLoops(loops)
	return s2poly.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(pt.Lat, pt.Lon)))
}

func ringToLoop(ring orb.Ring) *s2.Loop {
	points := ring
	if len(points) > 1 && points[0] == points[len(points)-1] {
		points = points[:len(points)-1]
	}
	s2points := make([]s2.Point, len(points))
	for i, p := range points {
		s2points[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(p[1], p[0]))
	}
	loop := s2.LoopFromPoints(s2points)
	return loop
}
