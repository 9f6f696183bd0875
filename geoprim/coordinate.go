// Package geoprim holds the geometry primitives everything else in osmgt is
// built on: coordinates, geodesic length, projection, midpoint-refinement
// interpolation and concave/convex hulls.
package geoprim

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb"
)

// Coordinate is an ordered (lon, lat) pair in EPSG:4326. Raw OSM coordinates
// are stored verbatim; interpolated midpoints are produced deterministically
// by Refine. Equality is exact float64 equality, relied on by the topology
// builder's intersection detection.
type Coordinate struct {
	Lon float64
	Lat float64
}

// Point converts c to an orb.Point ({X: lon, Y: lat}).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// FromPoint builds a Coordinate from an orb.Point.
func FromPoint(p orb.Point) Coordinate {
	return Coordinate{Lon: p[0], Lat: p[1]}
}

// WKT renders c as a WKT POINT literal. This is used verbatim as a graph
// vertex name, so its formatting must be stable across calls for the same
// coordinate (it is: strconv.FormatFloat with -1 precision round-trips the
// float64 bit pattern).
func (c Coordinate) WKT() string {
	return fmt.Sprintf("POINT (%s %s)", formatFloat(c.Lon), formatFloat(c.Lat))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// LineString is an ordered sequence of Coordinates with at least 2 points.
type LineString []Coordinate

// ToOrb converts ls to an orb.LineString.
func (ls LineString) ToOrb() orb.LineString {
	out := make(orb.LineString, len(ls))
	for i, c := range ls {
		out[i] = c.Point()
	}
	return out
}

// LineStringFromOrb converts an orb.LineString to a geoprim.LineString.
func LineStringFromOrb(ls orb.LineString) LineString {
	out := make(LineString, len(ls))
	for i, p := range ls {
		out[i] = FromPoint(p)
	}
	return out
}

// First returns the first coordinate of ls.
func (ls LineString) First() Coordinate { return ls[0] }

// Last returns the last coordinate of ls.
func (ls LineString) Last() Coordinate { return ls[len(ls)-1] }

// Reversed returns a new LineString with coordinate order reversed.
func (ls LineString) Reversed() LineString {
	out := make(LineString, len(ls))
	for i, c := range ls {
		out[len(ls)-1-i] = c
	}
	return out
}

// Bound returns the axis-aligned bounding box of ls.
func (ls LineString) Bound() orb.Bound {
	return ls.ToOrb().Bound()
}
