package facade

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"

	"osmgt/internal/osmapi"
)

// decodeAdminBoundary turns a Nominatim match's GeoJSON geometry into an
// orb.Geometry, grounded on spec.md §6: "each has osm_id and geojson (a
// Polygon describing the administrative boundary)" — MultiPolygon is
// handled too since Nominatim returns it for discontiguous boundaries.
func decodeAdminBoundary(match osmapi.NominatimMatch) (orb.Geometry, error) {
	switch match.GeoJSON.Type {
	case "Polygon":
		var rings [][][2]float64
		if err := json.Unmarshal(match.GeoJSON.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("facade: decode Polygon geojson: %w", err)
		}
		return polygonFromRings(rings), nil
	case "MultiPolygon":
		var polys [][][][2]float64
		if err := json.Unmarshal(match.GeoJSON.Coordinates, &polys); err != nil {
			return nil, fmt.Errorf("facade: decode MultiPolygon geojson: %w", err)
		}
		mp := make(orb.MultiPolygon, len(polys))
		for i, rings := range polys {
			mp[i] = polygonFromRings(rings)
		}
		return mp, nil
	default:
		return nil, fmt.Errorf("facade: unsupported admin boundary geometry type %q", match.GeoJSON.Type)
	}
}

func polygonFromRings(rings [][][2]float64) orb.Polygon {
	poly := make(orb.Polygon, len(rings))
	for i, ring := range rings {
		r := make(orb.Ring, len(ring))
		for j, pt := range ring {
			r[j] = orb.Point{pt[0], pt[1]}
		}
		poly[i] = r
	}
	return poly
}
