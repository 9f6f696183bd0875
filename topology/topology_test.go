package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osmgt/geoprim"
	"osmgt/internal/config"
	"osmgt/internal/errs"
	"osmgt/model"
)

func lr(id string, coords ...geoprim.Coordinate) model.LineRecord {
	return model.LineRecord{
		ID:       id,
		Geometry: coords,
		Tags:     model.Tags{},
		Topology: model.TopologyUnchanged,
		TopoUUID: id,
	}
}

func TestSplitAtIntersectionsDetectsSharedInteriorVertex(t *testing.T) {
	shared := geoprim.Coordinate{Lon: 1, Lat: 1}
	l1 := lr("1", geoprim.Coordinate{Lon: 0, Lat: 0}, shared, geoprim.Coordinate{Lon: 2, Lat: 2})
	l2 := lr("2", shared, geoprim.Coordinate{Lon: 1, Lat: 3})

	lines := []model.LineRecord{l1, l2}
	counts := countCoordinates(lines)
	assert.Equal(t, 2, counts[shared])

	out := splitAtIntersections(lines, counts)

	var uuids []string
	for _, r := range out {
		uuids = append(uuids, r.TopoUUID)
	}
	assert.Contains(t, uuids, "1_0")
	assert.Contains(t, uuids, "1_1")
	// l2's shared coordinate is an endpoint, not interior, so l2 is
	// unaffected and emitted unchanged.
	assert.Contains(t, uuids, "2")
}

func TestSplitAtIntersectionsPreservesGeometryConcatenation(t *testing.T) {
	a := geoprim.Coordinate{Lon: 0, Lat: 0}
	mid := geoprim.Coordinate{Lon: 1, Lat: 0}
	b := geoprim.Coordinate{Lon: 2, Lat: 0}
	other := lr("x", mid, geoprim.Coordinate{Lon: 1, Lat: 5})

	l := lr("1", a, mid, b)
	counts := countCoordinates([]model.LineRecord{l, other})
	segments := splitLineAtIntersections(l.Geometry, counts)

	require.Len(t, segments, 2)
	// invariant 2: concatenating split segments in order yields the
	// original geometry (each segment shares its boundary vertex).
	assert.Equal(t, a, segments[0][0])
	assert.Equal(t, mid, segments[0][len(segments[0])-1])
	assert.Equal(t, mid, segments[1][0])
	assert.Equal(t, b, segments[1][len(segments[1])-1])
}

func TestExpandDirectionsVehicleProducesForwardAndBackward(t *testing.T) {
	l := lr("1_0", geoprim.Coordinate{Lon: 0, Lat: 0}, geoprim.Coordinate{Lon: 1, Lat: 1})
	out := expandDirections([]model.LineRecord{l}, model.Vehicle)

	require.Len(t, out, 2)
	assert.Equal(t, "1_0_forward", out[0].TopoUUID)
	assert.Equal(t, "1_0_backward", out[1].TopoUUID)
	assert.Equal(t, l.Geometry.Reversed(), out[1].Geometry)
}

func TestExpandDirectionsOneWayStopsAtForward(t *testing.T) {
	l := lr("1_0", geoprim.Coordinate{Lon: 0, Lat: 0}, geoprim.Coordinate{Lon: 1, Lat: 1})
	l.Tags = model.Tags{"oneway": "yes"}
	out := expandDirections([]model.LineRecord{l}, model.Vehicle)

	require.Len(t, out, 1)
	assert.Equal(t, "1_0_forward", out[0].TopoUUID)
}

func TestExpandDirectionsRoundaboutStopsAtForward(t *testing.T) {
	l := lr("1_0", geoprim.Coordinate{Lon: 0, Lat: 0}, geoprim.Coordinate{Lon: 1, Lat: 1})
	l.Tags = model.Tags{"junction": "roundabout"}
	out := expandDirections([]model.LineRecord{l}, model.Vehicle)
	require.Len(t, out, 1)
}

func TestExpandDirectionsPedestrianPassesThrough(t *testing.T) {
	l := lr("1_0", geoprim.Coordinate{Lon: 0, Lat: 0}, geoprim.Coordinate{Lon: 1, Lat: 1})
	out := expandDirections([]model.LineRecord{l}, model.Pedestrian)
	require.Len(t, out, 1)
	assert.Equal(t, "1_0", out[0].TopoUUID)
}

func TestSpliceAdditionalNodeSkippedWhenCoincidentWithVertex(t *testing.T) {
	line := lr("10", geoprim.Coordinate{Lon: 4.071149, Lat: 46.037603},
		geoprim.Coordinate{Lon: 4.070917, Lat: 46.036995},
		geoprim.Coordinate{Lon: 4.070796, Lat: 46.036609})

	node := model.AdditionalNode{
		ID:       "4",
		Geometry: geoprim.Coordinate{Lon: 4.071149, Lat: 46.037603},
	}

	cfg := config.Default()
	result, err := spliceAdditionalNodes([]model.LineRecord{line}, []model.AdditionalNode{node}, cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Connectors)
	assert.Equal(t, 1, result.Stats.ToAdd)
	assert.Equal(t, 0, result.Stats.ToSplit)
}

func TestSpliceAdditionalNodeCreatesConnector(t *testing.T) {
	line := lr("10", geoprim.Coordinate{Lon: 0, Lat: 0}, geoprim.Coordinate{Lon: 10, Lat: 0})
	node := model.AdditionalNode{ID: "1", Geometry: geoprim.Coordinate{Lon: 5, Lat: 1}}

	cfg := config.Default()
	result, err := spliceAdditionalNodes([]model.LineRecord{line}, []model.AdditionalNode{node}, cfg, nil)
	require.NoError(t, err)
	require.Len(t, result.Connectors, 1)
	assert.Equal(t, "added_1", result.Connectors[0].TopoUUID)
	assert.Equal(t, model.TopologyAdded, result.Connectors[0].Topology)
	assert.Equal(t, node.Geometry, result.Connectors[0].Geometry.First())
}

func TestSpliceAdditionalNodeOutsideAreaRejectsAll(t *testing.T) {
	line := lr("10", geoprim.Coordinate{Lon: 0, Lat: 0}, geoprim.Coordinate{Lon: 10, Lat: 0})
	inside := model.AdditionalNode{ID: "1", Geometry: geoprim.Coordinate{Lon: 5, Lat: 1}}
	outside := model.AdditionalNode{ID: "2", Geometry: geoprim.Coordinate{Lon: 50, Lat: 50}}

	// workingArea rejects everything past Lon=20, mirroring spec.md §8
	// scenario S5: one additional node (C) resolves outside Roanne's
	// working-area polygon.
	workingArea := func(c geoprim.Coordinate) bool { return c.Lon < 20 }

	cfg := config.Default()
	_, err := spliceAdditionalNodes([]model.LineRecord{line}, []model.AdditionalNode{inside, outside}, cfg, workingArea)
	require.Error(t, err)

	var outsideErr *errs.AdditionalNodeOutsideArea
	require.ErrorAs(t, err, &outsideErr)
	assert.Equal(t, []string{outside.Geometry.WKT()}, outsideErr.WKTs)
}

func TestRunRejectsAdditionalNodeOutsideWorkingArea(t *testing.T) {
	line := lr("1", geoprim.Coordinate{Lon: 0, Lat: 0}, geoprim.Coordinate{Lon: 10, Lat: 0})
	node := model.AdditionalNode{ID: "c", Geometry: geoprim.Coordinate{Lon: 50, Lat: 50}}
	workingArea := func(c geoprim.Coordinate) bool { return c.Lon < 20 }

	_, _, err := Run(Input{
		Lines:               []model.LineRecord{line},
		AdditionalNodes:     []model.AdditionalNode{node},
		Mode:                model.Vehicle,
		WorkingAreaContains: workingArea,
	}, config.Default())

	var outsideErr *errs.AdditionalNodeOutsideArea
	require.ErrorAs(t, err, &outsideErr)
	assert.Equal(t, []string{node.Geometry.WKT()}, outsideErr.WKTs)
}

func TestRunRejectsInvalidTransportMode(t *testing.T) {
	line := lr("1", geoprim.Coordinate{Lon: 0, Lat: 0}, geoprim.Coordinate{Lon: 1, Lat: 1})
	_, _, err := Run(Input{Lines: []model.LineRecord{line}, Mode: "car"}, config.Default())
	require.Error(t, err)
}

func TestRunEmitsUniqueTopoUUIDs(t *testing.T) {
	l1 := lr("1", geoprim.Coordinate{Lon: 0, Lat: 0}, geoprim.Coordinate{Lon: 1, Lat: 1})
	l2 := lr("2", geoprim.Coordinate{Lon: 1, Lat: 1}, geoprim.Coordinate{Lon: 2, Lat: 2})

	out, _, err := Run(Input{Lines: []model.LineRecord{l1, l2}, Mode: model.Vehicle}, config.Default())
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, r := range out {
		assert.False(t, seen[r.TopoUUID], "duplicate topo_uuid %s", r.TopoUUID)
		seen[r.TopoUUID] = true
	}
}
