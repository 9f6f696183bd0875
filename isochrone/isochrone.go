package isochrone

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"osmgt/geoprim"
	"osmgt/graph"
	"osmgt/internal/config"
	"osmgt/internal/errs"
	"osmgt/model"
)

// PolygonRow is one row of the "Polygons" output table (spec.md §4.6
// "Output": "one row per polygon-part per threshold").
type PolygonRow struct {
	IsoName      float64 // time in minutes
	IsoDistance  float64 // meters
	TimeUnit     string
	DistanceUnit string
	Geometry     orb.Polygon
}

// Result is the full isochrone computation output.
type Result struct {
	Polygons []PolygonRow
	Lines    []model.LineRecord
}

// Compute implements spec.md §4.6 end to end: per-threshold bounded
// reachability, polygon synthesis, ring differencing, water masking, and
// the two output tables. g must already contain origins as vertices (the
// facade splices them in as AdditionalNodes via TopologyBuilder before
// calling here, per spec.md §4.6 "Setup").
func Compute(g *graph.Graph, origins []geoprim.Coordinate, thresholds []Threshold, water []orb.Polygon, cfg config.Config, logger *zap.Logger) (Result, error) {
	for _, th := range thresholds {
		if th.Invalid() {
			return Result{}, &errs.IsochroneLimit{Detail: fmt.Sprintf("time=%.2fmin distance=%.2fm", th.TimeMinutes, th.DistanceMeters)}
		}
	}
	if g.EdgeCount() == 0 {
		return Result{}, &errs.EmptyOsmData{}
	}

	originNames := make([]string, len(origins))
	for i, o := range origins {
		originNames[i] = o.WKT()
	}

	networks := computeReachedNetworks(g, originNames, thresholds, cfg)

	gc := newGeosContext(cfg)

	rawPolys, err := synthesizePolygons(gc, g, networks, cfg)
	if err != nil {
		return Result{}, err
	}

	mask, err := waterMask(gc, water)
	if err != nil {
		return Result{}, err
	}

	rings, err := differenceRings(gc, rawPolys, mask)
	if err != nil {
		return Result{}, err
	}

	polygons := buildPolygonRows(rings)
	lines := buildLineRows(g, networks)

	logger.Info("isochrone computed",
		zap.Int("thresholds", len(thresholds)),
		zap.Int("polygon_rows", len(polygons)),
		zap.Int("line_rows", len(lines)))

	return Result{Polygons: polygons, Lines: lines}, nil
}

func buildPolygonRows(rings []ring) []PolygonRow {
	var out []PolygonRow
	for _, r := range rings {
		back := reprojectGeometry(r.geometry, geoprim.EPSG3857, geoprim.EPSG4326)
		for _, part := range splitParts(back) {
			out = append(out, PolygonRow{
				IsoName:      r.threshold.TimeMinutes,
				IsoDistance:  r.threshold.DistanceMeters,
				TimeUnit:     "minutes",
				DistanceUnit: "meters",
				Geometry:     part,
			})
		}
	}
	return out
}

// buildLineRows implements spec.md §4.6 "Output": "Lines: the marked
// sub-network rows, dissolved by (base_topo_uuid, iso_name), split back
// from MultiLineStrings into LineStrings." TopologyBuilder's Phase B/C
// already split the network at every intersection, so the edges making up
// one base way are already disjoint LineString fragments; "dissolve then
// split back" is therefore treated as a no-op on geometry: each reached
// edge's record is emitted as its own row, sorted by edge name within a
// threshold and tagged with that threshold.
func buildLineRows(g *graph.Graph, networks []reachedNetwork) []model.LineRecord {
	var out []model.LineRecord
	for _, n := range networks {
		names := make([]string, 0, len(n.edgeNames))
		for name := range n.edgeNames {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			e, ok := g.FindEdge(name)
			if !ok {
				continue
			}
			rec := e.Record
			timeMinutes := n.threshold.TimeMinutes
			distMeters := n.threshold.DistanceMeters
			rec.IsoName = &timeMinutes
			rec.IsoDist = &distMeters
			out = append(out, rec)
		}
	}
	return out
}
