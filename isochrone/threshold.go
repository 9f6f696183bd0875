// Package isochrone implements multi-threshold reachability, polygon
// synthesis and ring differencing (spec.md §4.6), grounded on
// original_source/osmgt/processing/isochrone.py and isochrones.py.
package isochrone

import "math"

// Threshold is one (time, distance) reachability request. Exactly one of
// the inputs is caller-supplied per run; the other is derived via the
// speed conversion in spec.md §4.6 "Inputs".
type Threshold struct {
	TimeMinutes    float64
	DistanceMeters float64
}

// speedMetersPerSecond converts a km/h trip speed to m/s (spec.md §4.6:
// "Speed-in-m/s = speed_kmh / 3.6").
func speedMetersPerSecond(speedKmh float64) float64 {
	return speedKmh / 3.6
}

// ThresholdsFromTimes derives a distance for each time (minutes), grounded
// on original_source's _prepare_isochrone_values_from_times:
// distance = ceil(t * 60 * speed_mps).
func ThresholdsFromTimes(times []float64, speedKmh float64) []Threshold {
	speed := speedMetersPerSecond(speedKmh)
	out := make([]Threshold, len(times))
	for i, t := range times {
		out[i] = Threshold{
			TimeMinutes:    t,
			DistanceMeters: math.Ceil(t * 60 * speed),
		}
	}
	return out
}

// ThresholdsFromDistances derives a time for each distance (meters),
// grounded on original_source's _prepare_isochrone_values_from_distances:
// time = d / speed_mps / 60.
func ThresholdsFromDistances(distances []float64, speedKmh float64) []Threshold {
	speed := speedMetersPerSecond(speedKmh)
	out := make([]Threshold, len(distances))
	for i, d := range distances {
		out[i] = Threshold{
			TimeMinutes:    d / speed / 60,
			DistanceMeters: d,
		}
	}
	return out
}

// minTimeMinutes and minDistanceMeters are the IsochroneLimit bounds
// (spec.md §4.6 Failure, §7 "IsochroneLimit").
const (
	minTimeMinutes   = 1.0
	minDistanceMeters = 20.0
)

// Invalid reports whether t falls below the IsochroneLimit floor.
func (t Threshold) Invalid() bool {
	return t.TimeMinutes < minTimeMinutes || t.DistanceMeters < minDistanceMeters
}
