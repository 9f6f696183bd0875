package rawingest

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/qedus/osmpbf"

	"osmgt/geoprim"
	"osmgt/internal/errs"
	"osmgt/model"
)

// validHighways mirrors the same highway allowlist osmapi's Overpass query
// filters by, so both ingestion paths (Overpass-JSON and PBF) feed
// TopologyBuilder the same class of roads (SPEC_FULL.md §4.2).
var validHighways = map[string]bool{
	"motorway": true, "trunk": true, "primary": true, "secondary": true,
	"tertiary": true, "unclassified": true, "residential": true,
	"pedestrian": true, "motorway_link": true, "trunk_link": true,
	"primary_link": true, "secondary_link": true, "tertiary_link": true,
	"living_street": true, "service": true, "track": true,
	"bus_guideway": true, "escape": true, "raceway": true, "road": true,
	"bridleway": true, "corridor": true, "path": true, "cycleway": true,
	"footway": true, "steps": true,
}

// FromPBF decodes a local .osm.pbf extract into the same Result type
// FromOverpass produces, kept and adapted from the teacher's pbf.go
// (buildNode/buildWay/openAndDecodePBF), generalized from building a Graph
// directly to emitting model.LineRecords so it can feed the same
// TopologyBuilder as the Overpass path. Only highway ways are emitted:
// nodes serve to resolve way geometry, and no POI points or water polygons
// are produced.
func FromPBF(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("rawingest: open pbf: %w", err)
	}
	defer f.Close()

	decoder := osmpbf.NewDecoder(f)
	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return Result{}, fmt.Errorf("rawingest: start pbf decode: %w", err)
	}

	nodes := make(map[int64]geoprim.Coordinate)
	var out Result
	uuidCounter := 1

	for {
		v, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("rawingest: decode pbf: %w", err)
		}

		switch e := v.(type) {
		case *osmpbf.Node:
			nodes[e.ID] = geoprim.Coordinate{Lon: e.Lon, Lat: e.Lat}

		case *osmpbf.Way:
			highway, ok := e.Tags["highway"]
			if !ok || !validHighways[highway] {
				continue
			}
			coords := make(geoprim.LineString, 0, len(e.NodeIDs))
			for _, id := range e.NodeIDs {
				c, ok := nodes[id]
				if !ok {
					continue
				}
				coords = append(coords, c)
			}
			if len(coords) < 2 {
				continue
			}

			tags := cloneTags(e.Tags)
			tags["osm_id"] = strconv.FormatInt(e.ID, 10)

			out.Lines = append(out.Lines, model.LineRecord{
				ID:       strconv.FormatInt(e.ID, 10),
				Geometry: coords,
				Tags:     tags,
				Topology: model.TopologyUnchanged,
				TopoUUID: strconv.Itoa(uuidCounter),
			})
			uuidCounter++
		}
	}

	if len(out.Lines) == 0 {
		return Result{}, &errs.EmptyOsmData{}
	}
	return out, nil
}
