package geoprim

import "github.com/umahmood/haversine"

// GeodesicLength returns the length of ls in meters: the sum of the
// spherical haversine distance across consecutive coordinate pairs. It
// measures on a sphere, not on the WGS-84 ellipsoid.
// A LineString of fewer than 2 points has zero length. Reversing ls yields
// the same length (invariant 8 of the testable properties).
func GeodesicLength(ls LineString) float64 {
	var total float64
	for i := 1; i < len(ls); i++ {
		total += DistanceMeters(ls[i-1], ls[i])
	}
	return total
}

// DistanceMeters is the geodesic distance between two coordinates, in
// meters. Grounded on the teacher's graph.go:DistanceMeters, generalized
// from s2.CellID inputs to geoprim.Coordinate.
func DistanceMeters(a, b Coordinate) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Lat, Lon: a.Lon},
		haversine.Coord{Lat: b.Lat, Lon: b.Lon},
	)
	return km * 1000
}
