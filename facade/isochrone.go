package facade

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"osmgt/geoprim"
	"osmgt/graph"
	"osmgt/internal/errs"
	"osmgt/internal/osmapi"
	"osmgt/isochrone"
	"osmgt/model"
	"osmgt/rawingest"
	"osmgt/topology"
)

// IsochroneTimesFromNodes implements spec.md §6's
// isochrone_times_from_nodes.
func (f *Facade) IsochroneTimesFromNodes(ctx context.Context, origins []geoprim.Coordinate, times []float64, speedKmh float64, mode model.TransportMode) (isochrone.Result, error) {
	return f.computeIsochrone(ctx, origins, isochrone.ThresholdsFromTimes(times, speedKmh), mode)
}

// IsochroneDistancesFromNodes implements spec.md §6's
// isochrone_distances_from_nodes.
func (f *Facade) IsochroneDistancesFromNodes(ctx context.Context, origins []geoprim.Coordinate, distances []float64, speedKmh float64, mode model.TransportMode) (isochrone.Result, error) {
	return f.computeIsochrone(ctx, origins, isochrone.ThresholdsFromDistances(distances, speedKmh), mode)
}

// computeIsochrone implements spec.md §4.6's "Setup": build the bbox from
// the buffered union of origins, fetch the road network (with
// interpolate_lines=true, origins spliced in as AdditionalNodes), fetch
// water-area polygons for the same bbox, then hand off to isochrone.Compute.
func (f *Facade) computeIsochrone(ctx context.Context, origins []geoprim.Coordinate, thresholds []isochrone.Threshold, mode model.TransportMode) (isochrone.Result, error) {
	logger, requestID := f.requestLogger()
	logger.Info("isochrone", zap.String("request_id", requestID), zap.Int("thresholds", len(thresholds)), zap.Int("origins", len(origins)))

	for _, th := range thresholds {
		if th.Invalid() {
			return isochrone.Result{}, &errs.IsochroneLimit{Detail: fmt.Sprintf("time=%.2fmin distance=%.2fm", th.TimeMinutes, th.DistanceMeters)}
		}
	}

	maxDist := 0.0
	for _, th := range thresholds {
		if th.DistanceMeters > maxDist {
			maxDist = th.DistanceMeters
		}
	}

	bbox, err := isochrone.OriginsBBox(origins, maxDist, f.Config)
	if err != nil {
		return isochrone.Result{}, err
	}
	bboxFilter := overpassBBoxString(bbox)

	roadsQuery, err := osmapi.QueryForMode(mode, bboxFilter)
	if err != nil {
		return isochrone.Result{}, err
	}
	roadsResp, err := f.Overpass.Query(ctx, osmapi.FromBBoxQueryBuilder(roadsQuery))
	if err != nil {
		return isochrone.Result{}, err
	}
	ingested, err := rawingest.FromOverpass(roadsResp)
	if err != nil {
		return isochrone.Result{}, err
	}

	// Sequential, per spec.md §5: HTTP fetches are invoked once per request
	// before any parallel stage begins.
	waterResp, err := f.Overpass.Query(ctx, osmapi.FromBBoxQueryBuilder(osmapi.WaterQuery(bboxFilter)))
	if err != nil {
		return isochrone.Result{}, err
	}
	water, err := rawingest.FromOverpassWater(waterResp)
	if err != nil {
		return isochrone.Result{}, err
	}

	originNodes := make([]model.AdditionalNode, len(origins))
	for i, o := range origins {
		originNodes[i] = model.AdditionalNode{ID: fmt.Sprintf("iso_origin_%d", i), Geometry: o, Tags: model.Tags{}}
	}

	built, _, err := topology.Run(topology.Input{
		Lines:            ingested.Lines,
		AdditionalNodes:  originNodes,
		Mode:             mode,
		InterpolateLines: true,
	}, f.Config)
	if err != nil {
		return isochrone.Result{}, err
	}

	g, _ := graph.BuildFromRecords(built, mode == model.Vehicle)

	return isochrone.Compute(g, origins, thresholds, water, f.Config, logger)
}
