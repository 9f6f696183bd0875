package geoprim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefinePreservesOriginalAsSubsequence(t *testing.T) {
	coords := LineString{{0, 0}, {1, 0}, {1, 1}}

	for n := 0; n <= 3; n++ {
		refined := Refine(coords, n)

		want := 1
		for i := 0; i < n; i++ {
			want *= 2
		}
		want = want*(len(coords)-1) + 1
		require.Len(t, refined, want)

		// original coordinates appear, in order, as a subsequence
		idx := 0
		for _, c := range refined {
			if idx < len(coords) && c == coords[idx] {
				idx++
			}
		}
		assert.Equal(t, len(coords), idx)
	}
}

func TestRefineIsDeterministic(t *testing.T) {
	coords := LineString{{4.071149, 46.037603}, {4.070917, 46.036995}}
	a := Refine(coords, 4)
	b := Refine(coords, 4)
	assert.Equal(t, a, b)
}

func TestGeodesicLengthIsOrderInvariant(t *testing.T) {
	ls := LineString{{4.071149, 46.037603}, {4.070917, 46.036995}, {4.070796, 46.036609}}
	forward := GeodesicLength(ls)
	backward := GeodesicLength(ls.Reversed())
	assert.InDelta(t, forward, backward, 1e-9)
}

func TestReprojectIdentity(t *testing.T) {
	c := Coordinate{Lon: 4.07, Lat: 46.03}
	assert.Equal(t, c, Reproject(c, EPSG4326, EPSG4326))
}

func TestReprojectRoundTrip(t *testing.T) {
	c := Coordinate{Lon: 4.07, Lat: 46.03}
	projected := Reproject(c, EPSG4326, EPSG3857)
	back := Reproject(projected, EPSG3857, EPSG4326)
	assert.InDelta(t, c.Lon, back.Lon, 1e-6)
	assert.InDelta(t, c.Lat, back.Lat, 1e-6)
}

func TestConcaveHullFallsBackToConvexHullUnderFourPoints(t *testing.T) {
	points := []Coordinate{{0, 0}, {1, 0}, {0, 1}}
	hull := ConcaveHull(points, 1)
	require.NotNil(t, hull)
}

func TestWKTStable(t *testing.T) {
	c := Coordinate{Lon: 4.071149, Lat: 46.037603}
	assert.Equal(t, c.WKT(), c.WKT())
}
