package isochrone

import (
	"golang.org/x/sync/errgroup"

	"osmgt/graph"
	"osmgt/internal/config"
	"osmgt/shortestpath"
)

// reachedNetwork is one threshold's result: the threshold and the set of
// edge names that qualify as reached (spec.md §4.6 step 2), from which the
// per-threshold sub-network for polygon synthesis is built.
type reachedNetwork struct {
	threshold Threshold
	edgeNames map[string]bool
}

// computeReachedNetworks runs bounded Dijkstra from every origin for every
// threshold, dispatched concurrently across thresholds (spec.md §5 point 3,
// grounded on isochrones.py's ThreadPoolExecutor().map(self._compute_isochrone, ...)).
func computeReachedNetworks(g *graph.Graph, origins []string, thresholds []Threshold, cfg config.Config) []reachedNetwork {
	out := make([]reachedNetwork, len(thresholds))

	eg := new(errgroup.Group)
	eg.SetLimit(cfg.WorkerPoolLimit)

	for i, th := range thresholds {
		i, th := i, th
		eg.Go(func() error {
			out[i] = reachedNetwork{
				threshold: th,
				edgeNames: reachedEdgesForThreshold(g, origins, th),
			}
			return nil
		})
	}
	_ = eg.Wait()

	return out
}

// reachedEdgesForThreshold implements spec.md §4.6 "Per-threshold
// reachability" steps 1-2: union the vertices reached from every origin,
// then keep an edge only if more than one of its endpoints was reached
// (grounded verbatim on isochrones.py:_compute_isochrone's
// Counter(...).items() filtered by x[1] > 1 — this resolves the "both
// endpoints reached" Open Question by direct reference to source).
func reachedEdgesForThreshold(g *graph.Graph, origins []string, th Threshold) map[string]bool {
	reachedVertices := make(map[string]bool)

	// Origins are walked sequentially: spec.md §5 names exactly three
	// concurrency points (TopologyBuilder Phase A, ShortestPath dispatch,
	// Isochrone per-threshold dispatch); per-origin fan-out within a single
	// threshold is not one of them.
	for _, origin := range origins {
		costs := shortestpath.BoundedReachable(g, origin, th.DistanceMeters)
		for v := range costs {
			reachedVertices[v] = true
		}
	}

	edgeNames := make(map[string]bool)
	candidates := make(map[string]int)
	for v := range reachedVertices {
		for _, name := range g.IncidentEdgeNames(v) {
			candidates[name]++
		}
	}
	for name, count := range candidates {
		if count > 1 {
			edgeNames[name] = true
		}
	}
	return edgeNames
}
