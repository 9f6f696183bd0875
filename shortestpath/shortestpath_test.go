package shortestpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osmgt/geoprim"
	"osmgt/graph"
	"osmgt/internal/config"
	"osmgt/internal/logging"
	"osmgt/model"
)

func edge(uuid string, a, b geoprim.Coordinate, tags model.Tags) model.LineRecord {
	if tags == nil {
		tags = model.Tags{}
	}
	return model.LineRecord{TopoUUID: uuid, Geometry: geoprim.LineString{a, b}, Tags: tags}
}

// buildSixNodeGraph mirrors the teacher's dijkstra_test.go fixture shape
// (a 6-node bidirectional graph), generalized to named coordinate vertices.
func buildSixNodeGraph(t *testing.T) (*graph.Graph, map[string]geoprim.Coordinate) {
	t.Helper()
	coords := map[string]geoprim.Coordinate{
		"a": {Lon: 0, Lat: 0},
		"b": {Lon: 0, Lat: 1},
		"c": {Lon: 1, Lat: 0},
		"d": {Lon: 1, Lat: 1},
		"e": {Lon: 2, Lat: 0},
		"f": {Lon: 2, Lat: 1},
	}
	g := graph.New(false)
	weighted := []struct {
		id   string
		a, b string
	}{
		{"ab", "a", "b"}, {"ac", "a", "c"}, {"bd", "b", "d"},
		{"cd", "c", "d"}, {"de", "d", "e"}, {"ef", "e", "f"}, {"cf", "c", "f"},
	}
	for _, w := range weighted {
		g.AddEdge(edge(w.id, coords[w.a], coords[w.b], nil))
	}
	return g, coords
}

func TestComputeFindsShortestPath(t *testing.T) {
	g, coords := buildSixNodeGraph(t)
	res, ok := Compute(g, coords["a"].WKT(), coords["f"].WKT())
	require.True(t, ok)
	assert.Equal(t, coords["a"].WKT(), res.SourceNode)
	assert.Equal(t, coords["f"].WKT(), res.TargetNode)
	assert.Equal(t, coords["a"], res.Geometry.First())
	assert.Equal(t, coords["f"], res.Geometry.Last())
}

func TestComputeReturnsFalseForSameSourceAndTarget(t *testing.T) {
	g, coords := buildSixNodeGraph(t)
	_, ok := Compute(g, coords["a"].WKT(), coords["a"].WKT())
	assert.False(t, ok)
}

func TestComputeReturnsFalseWhenVertexMissing(t *testing.T) {
	g, coords := buildSixNodeGraph(t)
	_, ok := Compute(g, coords["a"].WKT(), geoprim.Coordinate{Lon: 99, Lat: 99}.WKT())
	assert.False(t, ok)
}

func TestComputeAllDedupsPairs(t *testing.T) {
	g, coords := buildSixNodeGraph(t)
	logger, _ := logging.NewDevelopment()
	pairs := []Pair{
		{Source: coords["a"], Target: coords["f"]},
		{Source: coords["a"], Target: coords["f"]}, // duplicate
	}
	out := ComputeAll(g, pairs, config.Default(), logger)
	require.Len(t, out, 1)
}

func TestBoundedReachableRespectsMaxDist(t *testing.T) {
	g, coords := buildSixNodeGraph(t)
	// Weights are geodesic meters: each axis-aligned edge is ~111 km, so
	// 150 km reaches a, b and c only, while 1000 km reaches every vertex.
	near := BoundedReachable(g, coords["a"].WKT(), 150_000)
	far := BoundedReachable(g, coords["a"].WKT(), 1_000_000)

	assert.Less(t, len(near), len(far))
	for v := range near {
		_, ok := far[v]
		assert.True(t, ok, "near-reachable set must be a subset of far-reachable")
	}
}
