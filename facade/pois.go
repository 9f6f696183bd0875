package facade

import (
	"context"

	"go.uber.org/zap"

	"osmgt/internal/osmapi"
	"osmgt/model"
	"osmgt/rawingest"
)

// POIsFromLocation implements spec.md §6's pois_from_location.
func (f *Facade) POIsFromLocation(ctx context.Context, locationQuery string) ([]model.PointRecord, error) {
	logger, requestID := f.requestLogger()
	logger.Info("pois_from_location", zap.String("query", locationQuery))

	loc, err := f.resolveLocation(ctx, locationQuery)
	if err != nil {
		return nil, err
	}

	resp, err := f.Overpass.Query(ctx, osmapi.FromLocationQueryBuilder(loc.AreaID, osmapi.POIQuery("area.searchArea")))
	if err != nil {
		return nil, err
	}

	pts, err := rawingest.FromOverpassPOIs(resp)
	if err != nil {
		return nil, err
	}
	logger.Info("pois found", zap.String("request_id", requestID), zap.Int("count", len(pts.Points)))
	return pts.Points, nil
}

// POIsFromBBox implements spec.md §6's pois_from_bbox. bbox is
// [minLon, minLat, maxLon, maxLat].
func (f *Facade) POIsFromBBox(ctx context.Context, bbox [4]float64) ([]model.PointRecord, error) {
	logger, requestID := f.requestLogger()
	logger.Info("pois_from_bbox")

	resp, err := f.Overpass.Query(ctx, osmapi.FromBBoxQueryBuilder(osmapi.POIQuery(overpassBBoxString(bbox))))
	if err != nil {
		return nil, err
	}

	pts, err := rawingest.FromOverpassPOIs(resp)
	if err != nil {
		return nil, err
	}
	logger.Info("pois found", zap.String("request_id", requestID), zap.Int("count", len(pts.Points)))
	return pts.Points, nil
}
