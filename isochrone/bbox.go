package isochrone

import (
	"github.com/paulmach/orb"

	"osmgt/geoprim"
	"osmgt/internal/config"
)

// OriginsBBox implements spec.md §4.6 "Setup": "Build the bbox = union of
// origins, buffered in meters by max_distance · 1.3, reprojected back to
// geographic." Returns [minLon, minLat, maxLon, maxLat].
func OriginsBBox(origins []geoprim.Coordinate, maxDistanceMeters float64, cfg config.Config) ([4]float64, error) {
	var bbox [4]float64
	if len(origins) == 0 {
		return bbox, nil
	}
	gc := newGeosContext(cfg)

	mp := make(orb.MultiPoint, len(origins))
	for i, o := range origins {
		mp[i] = o.Point()
	}
	projected := reprojectGeometry(mp, geoprim.EPSG4326, geoprim.EPSG3857)

	buffered, err := gc.bufferMeters(projected, maxDistanceMeters*1.3)
	if err != nil {
		return bbox, err
	}

	back := reprojectGeometry(buffered, geoprim.EPSG3857, geoprim.EPSG4326)
	bound := orb.Bound{Min: orb.Point{1e18, 1e18}, Max: orb.Point{-1e18, -1e18}}
	bound = extendBound(bound, back)

	bbox = [4]float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]}
	return bbox, nil
}

func extendBound(b orb.Bound, geom orb.Geometry) orb.Bound {
	gb := geom.Bound()
	if gb.Min[0] < b.Min[0] {
		b.Min[0] = gb.Min[0]
	}
	if gb.Min[1] < b.Min[1] {
		b.Min[1] = gb.Min[1]
	}
	if gb.Max[0] > b.Max[0] {
		b.Max[0] = gb.Max[0]
	}
	if gb.Max[1] > b.Max[1] {
		b.Max[1] = gb.Max[1]
	}
	return b
}
