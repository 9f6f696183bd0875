package shortestpath

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"osmgt/geoprim"
	"osmgt/graph"
	"osmgt/internal/config"
)

// Pair is a (source, target) coordinate request.
type Pair struct {
	Source geoprim.Coordinate
	Target geoprim.Coordinate
}

// ComputeAll dedups pairs by WKT equality, skips source==target pairs with
// a log message, and dispatches the remainder concurrently across a
// bounded worker pool (spec.md §4.5, §5 point 2). Each Dijkstra run reads
// the shared graph without mutation.
func ComputeAll(g *graph.Graph, pairs []Pair, cfg config.Config, logger *zap.Logger) []Result {
	type key struct{ s, t string }
	seen := make(map[key]bool)
	var dedup []Pair
	for _, p := range pairs {
		k := key{p.Source.WKT(), p.Target.WKT()}
		if seen[k] {
			continue
		}
		seen[k] = true
		if k.s == k.t {
			logger.Warn("shortestpath: source equals target, skipping", zap.String("node", k.s))
			continue
		}
		dedup = append(dedup, p)
	}

	results := make([]*Result, len(dedup))
	var mu sync.Mutex

	g2 := new(errgroup.Group)
	g2.SetLimit(cfg.WorkerPoolLimit)

	for i, p := range dedup {
		i, p := i, p
		g2.Go(func() error {
			res, ok := Compute(g, p.Source.WKT(), p.Target.WKT())
			if !ok {
				logger.Warn("shortestpath: no path found",
					zap.String("source", p.Source.WKT()), zap.String("target", p.Target.WKT()))
				return nil
			}
			mu.Lock()
			results[i] = &res
			mu.Unlock()
			return nil
		})
	}
	_ = g2.Wait()

	var out []Result
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}
