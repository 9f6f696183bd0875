package isochrone

import (
	"github.com/paulmach/orb"

	"osmgt/geoprim"
)

// waterMask unary-unions the fetched water polygons into a single
// EPSG:3857 geometry, grounded on isochrone.py's
// __get_water_area_from_osm (spec.md §4.6 "water-area subtraction").
// A nil/empty input yields a nil mask (subtract treats nil as empty).
func waterMask(gc *geosContext, water []orb.Polygon) (orb.Geometry, error) {
	if len(water) == 0 {
		return nil, nil
	}
	geoms := make([]orb.Geometry, len(water))
	for i, p := range water {
		geoms[i] = reprojectGeometry(p, geoprim.EPSG4326, geoprim.EPSG3857)
	}
	return gc.unionAll(geoms)
}
