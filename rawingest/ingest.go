// Package rawingest normalizes OSM elements — from either the Overpass-JSON
// or the PBF ingestion path — into model.LineRecord/model.PointRecord,
// grounded on original_source/osmgt/compoments/roads.py's
// __rebuild_network_data and core.py's _build_feature_from_osm.
package rawingest

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb"

	"osmgt/geoprim"
	"osmgt/internal/errs"
	"osmgt/internal/osmapi"
	"osmgt/model"
)

// Result is the normalized output of one ingestion pass: road lines and
// water-area polygons for the isochrone mask. POI points come back in a
// PointResult instead.
type Result struct {
	Lines []model.LineRecord
	Water []orb.Polygon
}

// PointResult is the normalized output of a POI or additional-node
// ingestion pass.
type PointResult struct {
	Points []model.PointRecord
}

func isWaterElement(tags map[string]string) bool {
	if tags["natural"] == "water" {
		return true
	}
	if _, ok := tags["waterway"]; ok {
		return true
	}
	if tags["landuse"] == "reservoir" {
		return true
	}
	return false
}

// FromOverpass normalizes a decoded Overpass response's way elements into
// LineRecords (roads) and water elements into polygons for the isochrone
// mask (SPEC_FULL.md §4.2). An empty elements list is fatal (spec.md §4.2,
// error kind EmptyOsmData).
func FromOverpass(resp osmapi.Response) (Result, error) {
	if len(resp.Elements) == 0 {
		return Result{}, &errs.EmptyOsmData{}
	}

	var out Result
	uuidCounter := 1
	for _, el := range resp.Elements {
		if el.Type != "way" {
			continue
		}
		if len(el.Geometry) < 2 {
			continue
		}

		coords := make(geoprim.LineString, len(el.Geometry))
		for i, ll := range el.Geometry {
			coords[i] = geoprim.Coordinate{Lon: ll.Lon, Lat: ll.Lat}
		}

		if isWaterElement(el.Tags) {
			if poly, ok := wayToPolygon(coords); ok {
				out.Water = append(out.Water, poly)
			}
			continue
		}

		tags := cloneTags(el.Tags)
		tags["osm_id"] = strconv.FormatInt(el.ID, 10)

		rec := model.LineRecord{
			ID:       strconv.FormatInt(el.ID, 10),
			Geometry: coords,
			Tags:     tags,
			Topology: model.TopologyUnchanged,
			TopoUUID: strconv.Itoa(uuidCounter),
		}
		out.Lines = append(out.Lines, rec)
		uuidCounter++
	}

	for _, el := range resp.Elements {
		if el.Type != "relation" || !isWaterElement(el.Tags) {
			continue
		}
		if poly, ok := relationToPolygon(el); ok {
			out.Water = append(out.Water, poly)
		}
	}

	if len(out.Lines) == 0 {
		return Result{}, &errs.EmptyOsmData{}
	}
	return out, nil
}

// FromOverpassWater turns every closed way (4+ points) and every relation
// with outer way members in an Overpass response into a polygon, used by
// the isochrone facade's bbox-scoped water fetch. Elements are not filtered
// by tag: the response is taken to hold water features only. Unlike
// FromOverpass, an empty result is not fatal: a bbox with no water
// features is a normal outcome.
func FromOverpassWater(resp osmapi.Response) ([]orb.Polygon, error) {
	var water []orb.Polygon
	for _, el := range resp.Elements {
		switch el.Type {
		case "way":
			if len(el.Geometry) < 2 {
				continue
			}
			coords := make(geoprim.LineString, len(el.Geometry))
			for i, ll := range el.Geometry {
				coords[i] = geoprim.Coordinate{Lon: ll.Lon, Lat: ll.Lat}
			}
			if poly, ok := wayToPolygon(coords); ok {
				water = append(water, poly)
			}
		case "relation":
			if poly, ok := relationToPolygon(el); ok {
				water = append(water, poly)
			}
		}
	}
	return water, nil
}

// FromOverpassPOIs normalizes node elements (POIs or caller-provided
// additional nodes fetched from Overpass) into PointRecords.
func FromOverpassPOIs(resp osmapi.Response) (PointResult, error) {
	if len(resp.Elements) == 0 {
		return PointResult{}, &errs.EmptyOsmData{}
	}
	var out PointResult
	for _, el := range resp.Elements {
		if el.Type != "node" {
			continue
		}
		tags := cloneTags(el.Tags)
		tags["osm_id"] = strconv.FormatInt(el.ID, 10)
		out.Points = append(out.Points, model.PointRecord{
			ID:       strconv.FormatInt(el.ID, 10),
			Geometry: geoprim.Coordinate{Lon: el.Lon, Lat: el.Lat},
			Tags:     tags,
			TopoUUID: fmt.Sprintf("poi_%d", el.ID),
		})
	}
	if len(out.Points) == 0 {
		return PointResult{}, &errs.EmptyOsmData{}
	}
	return out, nil
}

func cloneTags(in map[string]string) model.Tags {
	out := make(model.Tags, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func wayToPolygon(coords geoprim.LineString) (orb.Polygon, bool) {
	if len(coords) < 4 || coords.First() != coords.Last() {
		return nil, false
	}
	ring := make(orb.Ring, len(coords))
	for i, c := range coords {
		ring[i] = c.Point()
	}
	return orb.Polygon{ring}, true
}

func relationToPolygon(el osmapi.Element) (orb.Polygon, bool) {
	var poly orb.Polygon
	for _, m := range el.Members {
		if m.Type != "way" || m.Role != "outer" || len(m.Geom) < 4 {
			continue
		}
		ring := make(orb.Ring, len(m.Geom))
		for i, ll := range m.Geom {
			ring[i] = orb.Point{ll.Lon, ll.Lat}
		}
		poly = append(poly, ring)
	}
	if len(poly) == 0 {
		return nil, false
	}
	return poly, true
}
