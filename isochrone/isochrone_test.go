package isochrone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osmgt/geoprim"
	"osmgt/graph"
	"osmgt/model"
)

func TestThresholdsFromTimesDerivesDistance(t *testing.T) {
	ths := ThresholdsFromTimes([]float64{10}, 5) // 5 km/h walking speed
	require.Len(t, ths, 1)
	// speed_mps = 5/3.6 ~= 1.3889; distance = ceil(10*60*1.3889) = 834
	assert.InDelta(t, 834, ths[0].DistanceMeters, 1)
}

func TestThresholdsFromDistancesDerivesTime(t *testing.T) {
	ths := ThresholdsFromDistances([]float64{1000}, 5)
	require.Len(t, ths, 1)
	assert.InDelta(t, 12.0, ths[0].TimeMinutes, 0.1)
}

func TestThresholdInvalidBelowFloor(t *testing.T) {
	assert.True(t, Threshold{TimeMinutes: 0.5, DistanceMeters: 100}.Invalid())
	assert.True(t, Threshold{TimeMinutes: 5, DistanceMeters: 10}.Invalid())
	assert.False(t, Threshold{TimeMinutes: 5, DistanceMeters: 100}.Invalid())
}

func line(uuid string, a, b geoprim.Coordinate) model.LineRecord {
	return model.LineRecord{TopoUUID: uuid, Geometry: geoprim.LineString{a, b}, Tags: model.Tags{}}
}

// TestReachedEdgesForThresholdExcludesFringeEdges mirrors
// isochrones.py:_compute_isochrone's Counter(...).items() x[1] > 1 filter:
// an edge with only one endpoint reached is a fringe edge and must be
// excluded.
func TestReachedEdgesForThresholdExcludesFringeEdges(t *testing.T) {
	a := geoprim.Coordinate{Lon: 0, Lat: 0}
	b := geoprim.Coordinate{Lon: 0, Lat: 0.0005} // ~55m away
	c := geoprim.Coordinate{Lon: 0, Lat: 0.01}   // ~1100m away from b

	g := graph.New(false)
	g.AddEdge(line("ab", a, b))
	g.AddEdge(line("bc", b, c))

	edges := reachedEdgesForThreshold(g, []string{a.WKT()}, Threshold{DistanceMeters: 100})

	assert.True(t, edges["ab"], "ab has both endpoints within 100m of a")
	assert.False(t, edges["bc"], "bc's far endpoint c is unreached: fringe edge")
}

func TestReachedEdgesForThresholdGrowsWithDistance(t *testing.T) {
	a := geoprim.Coordinate{Lon: 0, Lat: 0}
	b := geoprim.Coordinate{Lon: 0, Lat: 0.0005}
	c := geoprim.Coordinate{Lon: 0, Lat: 0.001}

	g := graph.New(false)
	g.AddEdge(line("ab", a, b))
	g.AddEdge(line("bc", b, c))

	near := reachedEdgesForThreshold(g, []string{a.WKT()}, Threshold{DistanceMeters: 60})
	far := reachedEdgesForThreshold(g, []string{a.WKT()}, Threshold{DistanceMeters: 10000})

	assert.LessOrEqual(t, len(near), len(far))
	assert.True(t, far["ab"])
	assert.True(t, far["bc"])
}

func TestBuildLineRowsTagsIsoFields(t *testing.T) {
	a := geoprim.Coordinate{Lon: 0, Lat: 0}
	b := geoprim.Coordinate{Lon: 0, Lat: 0.001}
	g := graph.New(false)
	g.AddEdge(line("ab", a, b))

	networks := []reachedNetwork{
		{threshold: Threshold{TimeMinutes: 5, DistanceMeters: 400}, edgeNames: map[string]bool{"ab": true}},
	}

	rows := buildLineRows(g, networks)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].IsoName)
	require.NotNil(t, rows[0].IsoDist)
	assert.Equal(t, 5.0, *rows[0].IsoName)
	assert.Equal(t, 400.0, *rows[0].IsoDist)
}
