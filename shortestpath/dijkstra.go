// Package shortestpath implements bounded and unbounded Dijkstra, path
// reconstruction, and concurrent dispatch across (source, target) pairs
// (spec.md §4.5), grounded on the teacher's dijkstra.go/heap.go
// (Criteria/PathCost/Relax/isFinished), generalized from the teacher's
// fixed-size [150][150]PathCost array to per-request pair handling.
package shortestpath

import (
	"math"

	"osmgt/graph"
)

// reached is the result of one Dijkstra run: tentative costs and the
// predecessor edge used to reach each vertex.
type reached struct {
	Costs    map[string]float64
	Previous map[string]hNode
}

// runDijkstra runs single-source Dijkstra from source, stopping early if
// target is reached (target == "" disables early stop) or once the
// frontier's minimum cost exceeds maxDist (maxDist == +Inf disables the
// bound). This one function serves both ShortestPath (target set, maxDist
// infinite) and Isochrone's bounded reachability (target unset, maxDist
// finite), grounded on the teacher's Relax/isFinished and on
// original_source's shortest_distance(..., max_dist=...).
func runDijkstra(g *graph.Graph, source, target string, maxDist float64) reached {
	h := newHeap()
	costs := map[string]float64{source: 0}
	previous := map[string]hNode{}
	visited := map[string]bool{}

	h.Insert(hNode{Vertex: source, Cost: 0})

	for !h.IsEmpty() {
		cur, _ := h.DeleteMin()
		if visited[cur.Vertex] {
			continue
		}
		if cur.Cost > maxDist {
			break // the heap pops minimum cost first: nothing left can be in bound
		}
		visited[cur.Vertex] = true

		if target != "" && cur.Vertex == target {
			break
		}

		for _, nb := range g.Neighbors(cur.Vertex) {
			if visited[nb.Other] {
				continue
			}
			newCost := cur.Cost + nb.Edge.Weight
			if newCost > maxDist {
				continue
			}
			if existing, ok := costs[nb.Other]; !ok || newCost < existing {
				costs[nb.Other] = newCost
				previous[nb.Other] = hNode{Vertex: nb.Other, Cost: newCost, ViaEdge: nb.Edge.Name, Previous: cur.Vertex}
				h.Insert(hNode{Vertex: nb.Other, Cost: newCost})
			}
		}
	}

	return reached{Costs: costs, Previous: previous}
}

// BoundedReachable runs Dijkstra from source up to maxDist, returning every
// reached vertex name. Used by the isochrone package for per-threshold
// reachability (spec.md §4.6 step 1).
func BoundedReachable(g *graph.Graph, source string, maxDist float64) map[string]float64 {
	r := runDijkstra(g, source, "", maxDist)
	return r.Costs
}

// Unbounded runs Dijkstra from source with no distance cap, returning every
// reachable vertex's cost (used when a caller needs full reachability, e.g.
// tests asserting connectivity).
func Unbounded(g *graph.Graph, source string) map[string]float64 {
	return BoundedReachable(g, source, math.Inf(1))
}
