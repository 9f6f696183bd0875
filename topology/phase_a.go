package topology

import (
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"
	"golang.org/x/sync/errgroup"

	"osmgt/geoprim"
	"osmgt/internal/config"
	"osmgt/internal/errs"
	"osmgt/model"
)

// spliceStats tracks the counters spec.md §4.3 Phase A names.
type spliceStats struct {
	ToAdd   int
	ToSplit int
}

// spliceResult is Phase A's output: connector records, line geometry
// updates keyed by line index, and statistics.
type spliceResult struct {
	Connectors []model.LineRecord
	Updated    map[int]geoprim.LineString
	Stats      spliceStats
}

// spliceAdditionalNodes implements spec.md §4.3 Phase A. workingArea, if
// non-nil, causes any node outside it to fail the whole request with
// AdditionalNodeOutsideArea (spec.md §3 AdditionalNode, §7).
func spliceAdditionalNodes(
	lines []model.LineRecord,
	nodes []model.AdditionalNode,
	cfg config.Config,
	workingArea containsFunc,
) (spliceResult, error) {
	if len(nodes) == 0 {
		return spliceResult{Updated: map[int]geoprim.LineString{}}, nil
	}

	if workingArea != nil {
		var outside []string
		for _, n := range nodes {
			if !workingArea(n.Geometry) {
				outside = append(outside, n.Geometry.WKT())
			}
		}
		if len(outside) > 0 {
			return spliceResult{}, &errs.AdditionalNodeOutsideArea{WKTs: outside}
		}
	}

	rt, err := buildLineIndex(lines)
	if err != nil {
		return spliceResult{}, err
	}

	groups := make(map[int][]model.AdditionalNode)
	for _, n := range nodes {
		lineIdx := chooseLine(rt, lines, n.Geometry, cfg.RTreeNearestK)
		groups[lineIdx] = append(groups[lineIdx], n)
	}

	// Deterministic processing order: sort line indices. Within the bounded
	// worker pool (spec.md §5 point 1: "one task per (line, node-group)"),
	// distinct lines' states do not alias, so this is safe to parallelize.
	lineIdxs := make([]int, 0, len(groups))
	for idx := range groups {
		lineIdxs = append(lineIdxs, idx)
	}
	sort.Ints(lineIdxs)

	var mu sync.Mutex
	result := spliceResult{Updated: make(map[int]geoprim.LineString, len(groups))}

	g := new(errgroup.Group)
	g.SetLimit(cfg.WorkerPoolLimit)

	for _, idx := range lineIdxs {
		idx := idx
		group := groups[idx]
		g.Go(func() error {
			connectors, updatedGeom, stats := spliceLineGroup(lines[idx], group, cfg)

			mu.Lock()
			result.Connectors = append(result.Connectors, connectors...)
			result.Updated[idx] = updatedGeom
			result.Stats.ToAdd += stats.ToAdd
			result.Stats.ToSplit += stats.ToSplit
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

type containsFunc func(geoprim.Coordinate) bool

// chooseLine picks the single line minimizing Euclidean-in-degrees distance
// from point to the line's geometry, ties broken by line id order. R-tree
// nearest-k prefilters candidates; a zero-distance match short-circuits the
// search (spec.md §4.3 Phase A).
func chooseLine(rt *rtreego.Rtree, lines []model.LineRecord, point geoprim.Coordinate, k int) int {
	candidates := nearestLineCandidates(rt, point, k)
	if len(candidates) == 0 {
		return closestOf(lines, point, allIndices(len(lines)))
	}
	return closestOf(lines, point, candidates)
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func closestOf(lines []model.LineRecord, point geoprim.Coordinate, candidates []int) int {
	best := candidates[0]
	bestDist := distanceToLine(lines[best].Geometry, point)
	for _, idx := range candidates[1:] {
		d := distanceToLine(lines[idx].Geometry, point)
		if d == 0 {
			return idx // short-circuit: line passes through the point
		}
		if d < bestDist || (d == bestDist && lines[idx].ID < lines[best].ID) {
			best = idx
			bestDist = d
		}
	}
	if bestDist == 0 {
		return best
	}
	return best
}

// distanceToLine is the minimum Euclidean-in-degrees distance from point to
// any segment of ls.
func distanceToLine(ls geoprim.LineString, point geoprim.Coordinate) float64 {
	best := geoprim.Distance(ls[0], point)
	for i := 1; i < len(ls); i++ {
		d := distanceToSegment(ls[i-1], ls[i], point)
		if d < best {
			best = d
		}
	}
	return best
}

func distanceToSegment(a, b, p geoprim.Coordinate) float64 {
	ab := geoprim.VectorOf(b).Subtract(geoprim.VectorOf(a))
	ap := geoprim.VectorOf(p).Subtract(geoprim.VectorOf(a))
	abLenSq := ab.Dot(ab)
	if abLenSq == 0 {
		return geoprim.Distance(a, p)
	}
	t := ap.Dot(ab) / abLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := geoprim.Coordinate{Lon: a.Lon + t*ab.X, Lat: a.Lat + t*ab.Y}
	return geoprim.Distance(proj, p)
}

func spliceLineGroup(line model.LineRecord, group []model.AdditionalNode, cfg config.Config) ([]model.LineRecord, geoprim.LineString, spliceStats) {
	refined := geoprim.Refine(line.Geometry, cfg.SnapRefineLevel)
	tree := buildKDTree(refined)

	var stats spliceStats
	var connectors []model.LineRecord
	newVertices := make(map[geoprim.Coordinate]bool)

	for _, n := range group {
		stats.ToAdd++
		q, _ := tree.nearest(n.Geometry)
		if geoprim.Distance(n.Geometry, q) == 0 {
			// n coincides with an existing vertex of the line: no connector,
			// no new vertex to insert (spec.md S1: nodes 4 and 5).
			continue
		}
		connectors = append(connectors, model.LineRecord{
			ID:       "added_" + n.ID,
			Geometry: geoprim.LineString{n.Geometry, q},
			Tags:     model.Tags{},
			Topology: model.TopologyAdded,
			TopoUUID: "added_" + n.ID,
		})
		newVertices[q] = true
		stats.ToSplit++
	}

	if len(newVertices) == 0 {
		return connectors, line.Geometry, stats
	}

	original := make(map[geoprim.Coordinate]bool, len(line.Geometry))
	for _, c := range line.Geometry {
		original[c] = true
	}

	out := make(geoprim.LineString, 0, len(refined))
	for _, c := range refined {
		if original[c] || newVertices[c] {
			out = append(out, c)
		}
	}
	return connectors, out, stats
}
