package facade

import (
	"context"

	"github.com/paulmach/orb"

	"osmgt/geoprim"
	"osmgt/internal/errs"
	"osmgt/internal/osmapi"
)

// resolvedLocation carries a location query's Overpass area id and its
// administrative-boundary polygons, used to validate additional nodes
// (spec.md §4.3, error kind AdditionalNodeOutsideArea).
type resolvedLocation struct {
	AreaID      int64
	WorkingArea []orb.Polygon
}

// resolveLocation looks up query via Nominatim, grounded on
// original_source/osmgt/compoments/core.py's OsmGtCore.from_location
// (Nominatim search -> first match -> area id = osm_id + 3_600_000_000).
// Zero matches is fatal (errs.LocationUnresolved).
func (f *Facade) resolveLocation(ctx context.Context, query string) (resolvedLocation, error) {
	matches, err := f.Nominatim.Search(ctx, query, 1)
	if err != nil {
		return resolvedLocation{}, err
	}
	if len(matches) == 0 {
		return resolvedLocation{}, &errs.LocationUnresolved{Query: query}
	}

	match := matches[0]
	geom, err := decodeAdminBoundary(match)
	if err != nil {
		return resolvedLocation{}, err
	}
	polys, err := geoprim.ConvertToPolygon(geom)
	if err != nil {
		return resolvedLocation{}, err
	}

	return resolvedLocation{
		AreaID:      osmapi.LocationAreaID(match.OsmID),
		WorkingArea: polys,
	}, nil
}

// containsFunc builds the geoprim.PolygonContains-backed predicate
// TopologyBuilder's Phase A uses to validate additional nodes.
func (rl resolvedLocation) containsFunc() func(geoprim.Coordinate) bool {
	return func(c geoprim.Coordinate) bool {
		for _, poly := range rl.WorkingArea {
			if geoprim.PolygonContains(poly, c) {
				return true
			}
		}
		return false
	}
}
