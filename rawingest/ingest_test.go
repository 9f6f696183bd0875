package rawingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osmgt/geoprim"
	"osmgt/internal/errs"
	"osmgt/internal/osmapi"
)

func TestFromOverpassBuildsLineRecords(t *testing.T) {
	resp := osmapi.Response{Elements: []osmapi.Element{
		{
			Type:     "way",
			ID:       1,
			Tags:     map[string]string{"highway": "residential"},
			Geometry: []osmapi.LonLat{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}},
		},
	}}

	out, err := FromOverpass(resp)
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, "1", out.Lines[0].Tags["osm_id"])
	assert.Equal(t, geoprim.Coordinate{Lon: 0, Lat: 0}, out.Lines[0].Geometry[0])
	assert.Equal(t, geoprim.Coordinate{Lon: 1, Lat: 1}, out.Lines[0].Geometry[1])
}

func TestFromOverpassRejectsEmptyElements(t *testing.T) {
	_, err := FromOverpass(osmapi.Response{})
	var emptyErr *errs.EmptyOsmData
	require.ErrorAs(t, err, &emptyErr)
}

func TestFromOverpassRejectsAllWaterNoRoads(t *testing.T) {
	resp := osmapi.Response{Elements: []osmapi.Element{
		{
			Type: "way", ID: 1,
			Tags: map[string]string{"natural": "water"},
			Geometry: []osmapi.LonLat{
				{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 0},
			},
		},
	}}
	_, err := FromOverpass(resp)
	var emptyErr *errs.EmptyOsmData
	require.ErrorAs(t, err, &emptyErr)
}

func TestFromOverpassPartitionsWaterWaysIntoPolygons(t *testing.T) {
	resp := osmapi.Response{Elements: []osmapi.Element{
		{
			Type: "way", ID: 1,
			Tags: map[string]string{"highway": "residential"},
			Geometry: []osmapi.LonLat{
				{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1},
			},
		},
		{
			Type: "way", ID: 2,
			Tags: map[string]string{"natural": "water"},
			Geometry: []osmapi.LonLat{
				{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 0},
			},
		},
	}}

	out, err := FromOverpass(resp)
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	require.Len(t, out.Water, 1)
}

func TestIsWaterElement(t *testing.T) {
	assert.True(t, isWaterElement(map[string]string{"natural": "water"}))
	assert.True(t, isWaterElement(map[string]string{"waterway": "river"}))
	assert.True(t, isWaterElement(map[string]string{"landuse": "reservoir"}))
	assert.False(t, isWaterElement(map[string]string{"highway": "residential"}))
}

func TestWayToPolygonRequiresClosedRing(t *testing.T) {
	open := geoprim.LineString{
		{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1},
	}
	_, ok := wayToPolygon(open)
	assert.False(t, ok)

	closed := geoprim.LineString{
		{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 0},
	}
	poly, ok := wayToPolygon(closed)
	require.True(t, ok)
	require.Len(t, poly, 1)
	assert.Len(t, poly[0], 4)
}

func TestRelationToPolygonUsesOuterMembersOnly(t *testing.T) {
	el := osmapi.Element{
		Type: "relation",
		Tags: map[string]string{"natural": "water"},
		Members: []osmapi.Member{
			{
				Type: "way", Role: "outer",
				Geom: []osmapi.LonLat{
					{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 0},
				},
			},
			{
				Type: "way", Role: "inner",
				Geom: []osmapi.LonLat{
					{Lon: 0.4, Lat: 0.1}, {Lon: 0.6, Lat: 0.1}, {Lon: 0.5, Lat: 0.3}, {Lon: 0.4, Lat: 0.1},
				},
			},
		},
	}

	poly, ok := relationToPolygon(el)
	require.True(t, ok)
	require.Len(t, poly, 1, "only the outer member contributes a ring")
}

func TestRelationToPolygonRejectsNoOuterMember(t *testing.T) {
	el := osmapi.Element{Type: "relation", Members: []osmapi.Member{
		{Type: "way", Role: "inner", Geom: []osmapi.LonLat{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}}},
	}}
	_, ok := relationToPolygon(el)
	assert.False(t, ok)
}

func TestFromOverpassPOIsReturnsNodes(t *testing.T) {
	resp := osmapi.Response{Elements: []osmapi.Element{
		{Type: "node", ID: 42, Tags: map[string]string{"amenity": "cafe"}, Lon: 1.5, Lat: 2.5},
		{Type: "way", ID: 1, Geometry: []osmapi.LonLat{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}}},
	}}

	out, err := FromOverpassPOIs(resp)
	require.NoError(t, err)
	require.Len(t, out.Points, 1)
	assert.Equal(t, "42", out.Points[0].ID)
	assert.Equal(t, geoprim.Coordinate{Lon: 1.5, Lat: 2.5}, out.Points[0].Geometry)
}

func TestFromOverpassPOIsRejectsEmpty(t *testing.T) {
	_, err := FromOverpassPOIs(osmapi.Response{})
	var emptyErr *errs.EmptyOsmData
	require.ErrorAs(t, err, &emptyErr)
}

func TestFromOverpassWaterIsNotFatalWhenEmpty(t *testing.T) {
	water, err := FromOverpassWater(osmapi.Response{Elements: []osmapi.Element{
		{Type: "way", ID: 1, Tags: map[string]string{"highway": "residential"},
			Geometry: []osmapi.LonLat{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}}},
	}})
	require.NoError(t, err)
	assert.Empty(t, water)
}

func TestFromOverpassWaterCollectsWaysAndRelations(t *testing.T) {
	resp := osmapi.Response{Elements: []osmapi.Element{
		{
			Type: "way", ID: 1,
			Geometry: []osmapi.LonLat{
				{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 0},
			},
		},
		{
			Type: "relation",
			Members: []osmapi.Member{
				{Type: "way", Role: "outer", Geom: []osmapi.LonLat{
					{Lon: 2, Lat: 2}, {Lon: 3, Lat: 2}, {Lon: 3, Lat: 3}, {Lon: 2, Lat: 2},
				}},
			},
		},
	}}

	water, err := FromOverpassWater(resp)
	require.NoError(t, err)
	assert.Len(t, water, 2)
}
