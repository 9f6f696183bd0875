package facade

import "osmgt/internal/osmapi"

// bbox is [minLon, minLat, maxLon, maxLat] (west, south, east, north),
// the ordering callers pass to facade entry points and isochrone.OriginsBBox
// returns. Overpass QL's bbox filter wants (south, west, north, east), so
// overpassBBoxString reorders before delegating to osmapi.BBoxString.
func overpassBBoxString(bbox [4]float64) string {
	west, south, east, north := bbox[0], bbox[1], bbox[2], bbox[3]
	return osmapi.BBoxString([4]float64{south, west, north, east})
}
