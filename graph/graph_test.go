package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osmgt/geoprim"
	"osmgt/model"
)

func line(uuid string, a, b geoprim.Coordinate) model.LineRecord {
	return model.LineRecord{
		TopoUUID: uuid,
		Geometry: geoprim.LineString{a, b},
		Tags:     model.Tags{},
	}
}

func TestAddEdgeCreatesVerticesOnDemand(t *testing.T) {
	g := New(true)
	a := geoprim.Coordinate{Lon: 0, Lat: 0}
	b := geoprim.Coordinate{Lon: 1, Lat: 1}

	ok := g.AddEdge(line("e1", a, b))
	require.True(t, ok)
	assert.Equal(t, 2, g.VertexCount())
	assert.Equal(t, 1, g.EdgeCount())

	_, foundA := g.FindVertex(a.WKT())
	_, foundB := g.FindVertex(b.WKT())
	assert.True(t, foundA)
	assert.True(t, foundB)
}

func TestAddEdgeDuplicateNameIsNoOp(t *testing.T) {
	g := New(true)
	a := geoprim.Coordinate{Lon: 0, Lat: 0}
	b := geoprim.Coordinate{Lon: 1, Lat: 1}

	require.True(t, g.AddEdge(line("e1", a, b)))
	require.False(t, g.AddEdge(line("e1", b, a)))
	assert.Equal(t, 1, g.EdgeCount())
}

func TestIncidentEdgeNamesReturnsBothDirections(t *testing.T) {
	g := New(true)
	a := geoprim.Coordinate{Lon: 0, Lat: 0}
	b := geoprim.Coordinate{Lon: 1, Lat: 1}
	c := geoprim.Coordinate{Lon: 2, Lat: 2}

	g.AddEdge(line("e1", a, b))
	g.AddEdge(line("e2", b, c))

	names := g.IncidentEdgeNames(b.WKT())
	assert.ElementsMatch(t, []string{"e1", "e2"}, names)
}

func TestNeighborsRespectsDirectedness(t *testing.T) {
	g := New(true)
	a := geoprim.Coordinate{Lon: 0, Lat: 0}
	b := geoprim.Coordinate{Lon: 1, Lat: 1}
	g.AddEdge(line("e1", a, b))

	assert.Len(t, g.Neighbors(a.WKT()), 1)
	assert.Len(t, g.Neighbors(b.WKT()), 0) // directed: no reverse traversal
}

func TestNeighborsUndirectedBothWays(t *testing.T) {
	g := New(false)
	a := geoprim.Coordinate{Lon: 0, Lat: 0}
	b := geoprim.Coordinate{Lon: 1, Lat: 1}
	g.AddEdge(line("e1", a, b))

	assert.Len(t, g.Neighbors(a.WKT()), 1)
	assert.Len(t, g.Neighbors(b.WKT()), 1)
}

func TestBuildFromRecordsCollectsDuplicates(t *testing.T) {
	a := geoprim.Coordinate{Lon: 0, Lat: 0}
	b := geoprim.Coordinate{Lon: 1, Lat: 1}
	records := []model.LineRecord{line("e1", a, b), line("e1", b, a)}

	g, dups := BuildFromRecords(records, true)
	assert.Equal(t, 1, g.EdgeCount())
	assert.Len(t, dups, 1)
}
