package geoprim

import "math"

// Vector is a small 2D Euclidean vector, kept and adapted from the
// teacher's vector.go (there an N-dimensional generic vector used for
// KD-tree nearest-neighbor queries; here specialized to 2D for the concave
// hull's circumradius test).
type Vector struct {
	X, Y float64
}

func VectorOf(c Coordinate) Vector { return Vector{X: c.Lon, Y: c.Lat} }

func (v Vector) Subtract(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }
func (v Vector) Dot(o Vector) float64     { return v.X*o.X + v.Y*o.Y }
func (v Vector) Magnitude() float64       { return math.Sqrt(v.Dot(v)) }

// Distance is the Euclidean distance between two coordinates, in degrees.
// Used only for planar pre-filtering (nearest-line candidate selection,
// KD-tree queries) where the spec calls for "Euclidean-in-degrees distance"
// explicitly (spec.md §4.3 Phase A).
func Distance(a, b Coordinate) float64 {
	return VectorOf(a).Subtract(VectorOf(b)).Magnitude()
}

func DistanceSquared(a, b Coordinate) float64 {
	d := VectorOf(a).Subtract(VectorOf(b))
	return d.Dot(d)
}
