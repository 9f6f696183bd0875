package isochrone

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"

	"osmgt/geoprim"
	"osmgt/graph"
	"osmgt/internal/config"
)

// rawPolygon is one threshold's synthesized polygon parts, in EPSG:3857
// (metric), before ring differencing. Reprojection to EPSG:4326 happens
// once, at final output.
type rawPolygon struct {
	threshold  Threshold
	parts      []orb.Polygon // exterior rings only, one per disjoint subnetwork component, EPSG:3857
	roadsUnion orb.Geometry  // buffered union of this threshold's roads, EPSG:3857 (used by ring differencing's "improve" step)
}

// synthesizePolygons implements spec.md §4.6 "Polygon synthesis": buffer
// the reached sub-network, union it, split into disjoint parts, then
// morphologically close (dilate then erode) each part and keep its
// exterior ring.
func synthesizePolygons(gc *geosContext, g *graph.Graph, networks []reachedNetwork, cfg config.Config) ([]rawPolygon, error) {
	out := make([]rawPolygon, 0, len(networks))
	for _, n := range networks {
		roadLines := make([]orb.Geometry, 0, len(n.edgeNames))
		for name := range n.edgeNames {
			e, ok := g.FindEdge(name)
			if !ok {
				continue
			}
			proj := reprojectGeometry(e.Record.Geometry.ToOrb(), geoprim.EPSG4326, geoprim.EPSG3857)
			roadLines = append(roadLines, proj)
		}

		if len(roadLines) == 0 {
			out = append(out, rawPolygon{threshold: n.threshold})
			continue
		}

		pathBuffered, err := gc.unionAll(bufferEach(gc, roadLines, cfg.PathBufferMeters))
		if err != nil {
			return nil, fmt.Errorf("isochrone: buffer/union roads: %w", err)
		}

		var rings []orb.Polygon
		for _, part := range splitParts(pathBuffered) {
			dilated, err := gc.bufferMeters(part, cfg.DilatationMeters)
			if err != nil {
				return nil, fmt.Errorf("isochrone: dilate: %w", err)
			}
			closed, err := gc.bufferMeters(dilated, -cfg.ErosionMeters)
			if err != nil {
				return nil, fmt.Errorf("isochrone: erode: %w", err)
			}
			for _, p := range splitParts(closed) {
				rings = append(rings, exteriorRing(p))
			}
		}

		out = append(out, rawPolygon{
			threshold:  n.threshold,
			parts:      rings,
			roadsUnion: pathBuffered,
		})
	}
	return out, nil
}

func bufferEach(gc *geosContext, geoms []orb.Geometry, width float64) []orb.Geometry {
	out := make([]orb.Geometry, 0, len(geoms))
	for _, geom := range geoms {
		b, err := gc.bufferMeters(geom, width)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	return out
}

// unionParts unions rp's polygon parts into a single EPSG:3857 geometry,
// or returns an empty MultiPolygon if rp has no parts (no roads reached).
func unionParts(gc *geosContext, rp rawPolygon) (orb.Geometry, error) {
	if len(rp.parts) == 0 {
		return orb.MultiPolygon{}, nil
	}
	geoms := make([]orb.Geometry, len(rp.parts))
	for i, p := range rp.parts {
		geoms[i] = p
	}
	return gc.unionAll(geoms)
}

// sortByDistanceDescending orders thresholds as spec.md §4.6 "Ring
// differencing" requires: "Sort thresholds by distance descending."
func sortByDistanceDescending(polys []rawPolygon) {
	sort.Slice(polys, func(i, j int) bool {
		return polys[i].threshold.DistanceMeters > polys[j].threshold.DistanceMeters
	})
}
