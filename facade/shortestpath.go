package facade

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"osmgt/geoprim"
	"osmgt/model"
	"osmgt/shortestpath"
)

// ShortestPathFromLocation implements spec.md §6's
// shortest_path_from_location: fetches the road network for locationQuery
// (splicing every pair's source/target coordinates in as additional nodes
// so they become routable graph vertices), then dispatches Dijkstra across
// pairs.
func (f *Facade) ShortestPathFromLocation(ctx context.Context, locationQuery string, mode model.TransportMode, pairs []shortestpath.Pair) ([]shortestpath.Result, error) {
	logger, _ := f.requestLogger()
	logger.Info("shortest_path_from_location", zap.String("query", locationQuery), zap.Int("pairs", len(pairs)))

	roads, err := f.RoadsFromLocation(ctx, locationQuery, mode, pairOriginsAsNodes(pairs))
	if err != nil {
		return nil, err
	}
	return shortestpath.ComputeAll(roads.Graph, pairs, f.Config, logger), nil
}

// ShortestPathFromBBox implements spec.md §6's shortest_path_from_bbox.
// bbox is [minLon, minLat, maxLon, maxLat].
func (f *Facade) ShortestPathFromBBox(ctx context.Context, bbox [4]float64, mode model.TransportMode, pairs []shortestpath.Pair) ([]shortestpath.Result, error) {
	logger, _ := f.requestLogger()
	logger.Info("shortest_path_from_bbox", zap.Int("pairs", len(pairs)))

	roads, err := f.RoadsFromBBox(ctx, bbox, mode, pairOriginsAsNodes(pairs))
	if err != nil {
		return nil, err
	}
	return shortestpath.ComputeAll(roads.Graph, pairs, f.Config, logger), nil
}

// pairOriginsAsNodes collects every distinct source/target coordinate
// across pairs and turns it into an AdditionalNode, so TopologyBuilder's
// Phase A snaps it onto the nearest road as a routable vertex.
func pairOriginsAsNodes(pairs []shortestpath.Pair) []model.AdditionalNode {
	seen := make(map[string]bool)
	var out []model.AdditionalNode
	add := func(c geoprim.Coordinate) {
		w := c.WKT()
		if seen[w] {
			return
		}
		seen[w] = true
		out = append(out, model.AdditionalNode{
			ID:       fmt.Sprintf("sp_%d", len(out)),
			Geometry: c,
			Tags:     model.Tags{},
		})
	}
	for _, p := range pairs {
		add(p.Source)
		add(p.Target)
	}
	return out
}
