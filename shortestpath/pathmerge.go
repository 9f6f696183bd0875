package shortestpath

import (
	"sort"
	"strings"

	"osmgt/geoprim"
	"osmgt/graph"
)

// Result is one shortest-path output record (spec.md §4.5 "Output
// records").
type Result struct {
	SourceNode string
	TargetNode string
	OsmIDs     string
	OsmURLs    string
	Geometry   geoprim.LineString
}

// Compute runs Dijkstra from source to target and reconstructs the path
// geometry, grounded on the teacher's PathCoord (backward reconstruction
// via predecessor edges) and original_source's _compute_shortest_path
// (linemerge, reverse-if-start-mismatch).
//
// ok is false if source/target aren't in the graph or are disconnected
// (spec.md §4.5 Failure: "omit the pair with a warning").
func Compute(g *graph.Graph, sourceWKT, targetWKT string) (Result, bool) {
	if sourceWKT == targetWKT {
		return Result{}, false
	}
	if _, ok := g.FindVertex(sourceWKT); !ok {
		return Result{}, false
	}
	if _, ok := g.FindVertex(targetWKT); !ok {
		return Result{}, false
	}

	r := runDijkstra(g, sourceWKT, targetWKT, pathInfinite)
	edges, ok := reconstructEdges(g, sourceWKT, targetWKT, r.Previous)
	if !ok {
		return Result{}, false
	}

	geometry := mergeGeometry(sourceWKT, edges)
	return Result{
		SourceNode: sourceWKT,
		TargetNode: targetWKT,
		OsmIDs:     distinctField(edges, "osm_id"),
		OsmURLs:    osmURLs(edges),
		Geometry:   geometry,
	}, true
}

const pathInfinite = 1e18

func reconstructEdges(g *graph.Graph, source, target string, previous map[string]hNode) ([]*graph.Edge, bool) {
	var chain []*graph.Edge
	cur := target
	seen := map[string]bool{cur: true}
	for cur != source {
		prev, ok := previous[cur]
		if !ok {
			return nil, false
		}
		edge, _ := g.FindEdge(prev.ViaEdge)
		chain = append(chain, edge)
		cur = prev.Previous
		if seen[cur] {
			return nil, false
		}
		seen[cur] = true
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, true
}

// mergeGeometry line-merges the path's edge geometries in traversal order,
// orienting each to start where the previous one ended, grounded on
// original_source's linemerge + reverse-if-start-mismatch.
func mergeGeometry(source string, edges []*graph.Edge) geoprim.LineString {
	if len(edges) == 0 {
		return nil
	}

	var merged geoprim.LineString
	current := source
	for _, e := range edges {
		geom := e.Record.Geometry
		if e.From != current {
			geom = geom.Reversed()
		}
		if len(merged) > 0 {
			geom = geom[1:] // drop duplicate join vertex
		}
		merged = append(merged, geom...)

		if e.From == current {
			current = e.To
		} else {
			current = e.From
		}
	}
	return merged
}

func distinctField(edges []*graph.Edge, tagKey string) string {
	seen := map[string]bool{}
	var ids []string
	for _, e := range edges {
		v, ok := e.Record.Tags[tagKey]
		if !ok || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		ids = append(ids, v)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

func osmURLs(edges []*graph.Edge) string {
	seen := map[string]bool{}
	var urls []string
	for _, e := range edges {
		u := e.Record.OsmURL()
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return strings.Join(urls, ",")
}
