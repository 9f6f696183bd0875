package isochrone

import (
	"github.com/paulmach/orb"

	"osmgt/geoprim"
)

// reprojectGeometry applies geoprim.Reproject coordinate-wise to every
// point, ring or line that makes up geom. GEOS buffer/dilate/erode
// operations need metric units, so isochrone polygon synthesis always
// reprojects to EPSG:3857 first and the final output back to EPSG:4326
// (spec.md §4.1: "used only to compute metric buffers for the isochrone
// bounding box, not on the routing graph itself").
func reprojectGeometry(geom orb.Geometry, from, to int) orb.Geometry {
	switch g := geom.(type) {
	case orb.Point:
		return reprojectPoint(g, from, to)
	case orb.MultiPoint:
		out := make(orb.MultiPoint, len(g))
		for i, p := range g {
			out[i] = reprojectPoint(p, from, to)
		}
		return out
	case orb.LineString:
		return reprojectLineString(g, from, to)
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(g))
		for i, ls := range g {
			out[i] = reprojectLineString(ls, from, to)
		}
		return out
	case orb.Ring:
		return orb.Ring(reprojectLineString(orb.LineString(g), from, to))
	case orb.Polygon:
		return reprojectPolygon(g, from, to)
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, p := range g {
			out[i] = reprojectPolygon(p, from, to)
		}
		return out
	default:
		return geom
	}
}

func reprojectPoint(p orb.Point, from, to int) orb.Point {
	c := geoprim.Reproject(geoprim.FromPoint(p), from, to)
	return c.Point()
}

func reprojectLineString(ls orb.LineString, from, to int) orb.LineString {
	out := make(orb.LineString, len(ls))
	for i, p := range ls {
		out[i] = reprojectPoint(p, from, to)
	}
	return out
}

func reprojectPolygon(poly orb.Polygon, from, to int) orb.Polygon {
	out := make(orb.Polygon, len(poly))
	for i, ring := range poly {
		out[i] = orb.Ring(reprojectLineString(orb.LineString(ring), from, to))
	}
	return out
}
