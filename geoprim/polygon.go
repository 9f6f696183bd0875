package geoprim

import (
	"fmt"

	"github.com/paulmach/orb"
)

// ConvertToPolygon normalizes geom to a slice of polygon parts: a Polygon
// becomes a single-element slice, a MultiPolygon is split into its parts.
// Any other geometry type is a fatal contract violation (spec.md §4.1,
// error kind UnsupportedGeometry, spec.md §7).
func ConvertToPolygon(geom orb.Geometry) ([]orb.Polygon, error) {
	switch g := geom.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}, nil
	case orb.MultiPolygon:
		return []orb.Polygon(g), nil
	default:
		return nil, fmt.Errorf("geoprim: unsupported geometry type %T, want Polygon or MultiPolygon", geom)
	}
}
