// Package topology implements TopologyBuilder (spec.md §4.3): the hardest
// part of osmgt. It splices caller-supplied additional nodes into the road
// network (Phase A), detects intersections (Phase B), splits lines there
// (Phase C), expands directions per transport mode (Phase D), and
// optionally refines fragment shapes for isochrone buffering (Phase E).
package topology

import (
	"osmgt/geoprim"
	"osmgt/internal/config"
	"osmgt/internal/errs"
	"osmgt/model"
)

// Input bundles TopologyBuilder's parameters (spec.md §4.3 "Inputs").
type Input struct {
	Lines            []model.LineRecord
	AdditionalNodes  []model.AdditionalNode
	Mode             model.TransportMode
	InterpolateLines bool
	// WorkingAreaContains, if non-nil, is used to validate additional nodes
	// lie inside the resolved working-area polygon.
	WorkingAreaContains func(geoprim.Coordinate) bool
}

// Stats reports Phase A's splice counters.
type Stats struct {
	ToAdd   int
	ToSplit int
}

// Run executes all five phases and returns the final emitted LineRecords,
// with guaranteed unique TopoUUID (spec.md §4.3 "Outputs").
func Run(in Input, cfg config.Config) ([]model.LineRecord, Stats, error) {
	if len(in.Lines) == 0 {
		return nil, Stats{}, &errs.EmptyOsmData{}
	}
	if !in.Mode.Valid() {
		return nil, Stats{}, &errs.TransportModeInvalid{Mode: string(in.Mode)}
	}

	lines := append([]model.LineRecord(nil), in.Lines...)

	splice, err := spliceAdditionalNodes(lines, in.AdditionalNodes, cfg, in.WorkingAreaContains)
	if err != nil {
		return nil, Stats{}, err
	}
	for idx, geom := range splice.Updated {
		lines[idx].Geometry = geom
	}

	combined := append(lines, splice.Connectors...)

	counts := countCoordinates(combined)
	fragments := splitAtIntersections(combined, counts)
	expanded := expandDirections(fragments, in.Mode)

	if in.InterpolateLines {
		expanded = refineShapes(expanded, cfg.LineRefineLevel)
	}

	return expanded, Stats{ToAdd: splice.Stats.ToAdd, ToSplit: splice.Stats.ToSplit}, nil
}
