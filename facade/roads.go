package facade

import (
	"context"

	"go.uber.org/zap"

	"osmgt/geoprim"
	"osmgt/graph"
	"osmgt/internal/osmapi"
	"osmgt/model"
	"osmgt/rawingest"
	"osmgt/topology"
)

// RoadsResult is the output of RoadsFromLocation/RoadsFromBBox: the final
// topology-built edge records plus the Graph built from them (spec.md §2
// "Data flow").
type RoadsResult struct {
	Lines []model.LineRecord
	Graph *graph.Graph
	Stats topology.Stats
}

// RoadsFromLocation implements spec.md §6's roads_from_location, grounded
// on roads.py's OsmGtRoads.from_location.
func (f *Facade) RoadsFromLocation(ctx context.Context, locationQuery string, mode model.TransportMode, additionalNodes []model.AdditionalNode) (RoadsResult, error) {
	logger, requestID := f.requestLogger()
	logger.Info("roads_from_location", zap.String("query", locationQuery), zap.String("mode", string(mode)))

	loc, err := f.resolveLocation(ctx, locationQuery)
	if err != nil {
		return RoadsResult{}, err
	}

	query, err := osmapi.QueryForMode(mode, "area.searchArea")
	if err != nil {
		return RoadsResult{}, err
	}

	resp, err := f.Overpass.Query(ctx, osmapi.FromLocationQueryBuilder(loc.AreaID, query))
	if err != nil {
		return RoadsResult{}, err
	}

	return f.buildRoads(resp, mode, additionalNodes, loc.containsFunc(), false, logger, requestID)
}

// RoadsFromBBox implements spec.md §6's roads_from_bbox, grounded on
// roads.py's OsmGtRoads.from_bbox. bbox is [minLon, minLat, maxLon, maxLat].
func (f *Facade) RoadsFromBBox(ctx context.Context, bbox [4]float64, mode model.TransportMode, additionalNodes []model.AdditionalNode) (RoadsResult, error) {
	logger, requestID := f.requestLogger()
	logger.Info("roads_from_bbox", zap.String("mode", string(mode)))

	query, err := osmapi.QueryForMode(mode, overpassBBoxString(bbox))
	if err != nil {
		return RoadsResult{}, err
	}

	resp, err := f.Overpass.Query(ctx, osmapi.FromBBoxQueryBuilder(query))
	if err != nil {
		return RoadsResult{}, err
	}

	return f.buildRoads(resp, mode, additionalNodes, nil, false, logger, requestID)
}

func (f *Facade) buildRoads(resp osmapi.Response, mode model.TransportMode, additionalNodes []model.AdditionalNode, contains func(geoprim.Coordinate) bool, interpolate bool, logger *zap.Logger, requestID string) (RoadsResult, error) {
	ingested, err := rawingest.FromOverpass(resp)
	if err != nil {
		return RoadsResult{}, err
	}

	built, stats, err := topology.Run(topology.Input{
		Lines:               ingested.Lines,
		AdditionalNodes:     additionalNodes,
		Mode:                mode,
		InterpolateLines:    interpolate,
		WorkingAreaContains: contains,
	}, f.Config)
	if err != nil {
		return RoadsResult{}, err
	}

	g, duplicates := graph.BuildFromRecords(built, mode == model.Vehicle)
	if len(duplicates) > 0 {
		logger.Warn("roads: duplicate topo_uuid skipped",
			zap.String("request_id", requestID), zap.Int("count", len(duplicates)))
	}

	logger.Info("roads built",
		zap.String("request_id", requestID),
		zap.Int("lines", len(built)),
		zap.Int("to_add", stats.ToAdd),
		zap.Int("to_split", stats.ToSplit))

	return RoadsResult{Lines: built, Graph: g, Stats: stats}, nil
}
