package isochrone

import (
	"fmt"

	"github.com/paulmach/orb"
)

// ring is one threshold's final, differenced polygon (still EPSG:3857 at
// this stage).
type ring struct {
	threshold Threshold
	geometry  orb.Geometry
}

// differenceRings implements spec.md §4.6 "Ring differencing ('nesting
// dolls')", grounded on isochrone.py's __clean_isochrones/__improve_isochrone:
//
//   - Thresholds are sorted by distance descending.
//   - The largest threshold's polygon is emitted as-is (no larger ring
//     exists to subtract).
//   - Every other threshold's ring starts as polygon(this) minus the
//     previous (next-larger) threshold's polygon, except the smallest
//     threshold, whose starting ring is polygon(this) minus the union of
//     every ring already emitted ("receives the complement").
//   - Every non-largest ring is then improved: the threshold's own buffered
//     road union is added back (keeps roads inside their own ring), the
//     water mask is subtracted, and the ring is differenced once more
//     against the accumulator (belt-and-braces against overlap with
//     already-emitted outer rings).
//   - The improved ring is appended to both the output and the accumulator.
func differenceRings(gc *geosContext, polys []rawPolygon, water orb.Geometry) ([]ring, error) {
	sortByDistanceDescending(polys)

	var accumulator orb.Geometry
	out := make([]ring, 0, len(polys))

	for i, rp := range polys {
		thisUnion, err := unionParts(gc, rp)
		if err != nil {
			return nil, fmt.Errorf("isochrone: union parts for threshold %v: %w", rp.threshold, err)
		}

		var carved orb.Geometry
		switch {
		case i == 0:
			carved = thisUnion
		case i == len(polys)-1:
			carved, err = subtract(gc, thisUnion, accumulator)
		default:
			prevUnion, uerr := unionParts(gc, polys[i-1])
			if uerr != nil {
				return nil, fmt.Errorf("isochrone: union parts for previous-larger: %w", uerr)
			}
			carved, err = subtract(gc, thisUnion, prevUnion)
		}
		if err != nil {
			return nil, fmt.Errorf("isochrone: carve ring for threshold %v: %w", rp.threshold, err)
		}

		if i > 0 {
			if rp.roadsUnion != nil {
				carved, err = gc.unionSingle(carved, rp.roadsUnion)
				if err != nil {
					return nil, fmt.Errorf("isochrone: improve ring (add back roads): %w", err)
				}
			}
			carved, err = subtract(gc, carved, water)
			if err != nil {
				return nil, fmt.Errorf("isochrone: subtract water mask: %w", err)
			}
			carved, err = subtract(gc, carved, accumulator)
			if err != nil {
				return nil, fmt.Errorf("isochrone: difference against accumulator: %w", err)
			}
		}

		out = append(out, ring{threshold: rp.threshold, geometry: carved})

		accumulator, err = gc.unionSingle(accumulator, carved)
		if err != nil {
			return nil, fmt.Errorf("isochrone: extend accumulator: %w", err)
		}
	}

	return out, nil
}

// subtract differences a - b, treating a nil b as an empty set (no-op).
func subtract(gc *geosContext, a, b orb.Geometry) (orb.Geometry, error) {
	if b == nil {
		return a, nil
	}
	return gc.difference(a, b)
}

// unionSingle unions a and b, treating either nil input as the identity.
func (g *geosContext) unionSingle(a, b orb.Geometry) (orb.Geometry, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	default:
		return g.unionAll([]orb.Geometry{a, b})
	}
}
