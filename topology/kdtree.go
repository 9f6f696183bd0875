package topology

import (
	"math"
	"sort"

	"osmgt/geoprim"
)

// kdTree is a 2D k-d tree over geoprim.Coordinates, kept and adapted from
// the teacher's kdtree.go (there an N-dimensional generic structure over
// Vector.Components; here specialized to 2 dimensions since every query
// here is over lon/lat pairs). Used by Phase A step 3 ("query its nearest
// R-point", spec.md §4.3).
type kdTree struct {
	root *kdNode
}

type kdNode struct {
	coord geoprim.Coordinate
	index int
	l, r  *kdNode
}

func buildKDTree(coords []geoprim.Coordinate) *kdTree {
	type indexed struct {
		c geoprim.Coordinate
		i int
	}
	items := make([]indexed, len(coords))
	for i, c := range coords {
		items[i] = indexed{c, i}
	}
	var build func(items []indexed, depth int) *kdNode
	build = func(items []indexed, depth int) *kdNode {
		if len(items) == 0 {
			return nil
		}
		axis := depth % 2
		sort.Slice(items, func(i, j int) bool {
			if axis == 0 {
				return items[i].c.Lon < items[j].c.Lon
			}
			return items[i].c.Lat < items[j].c.Lat
		})
		mid := len(items) / 2
		return &kdNode{
			coord: items[mid].c,
			index: items[mid].i,
			l:     build(items[:mid], depth+1),
			r:     build(items[mid+1:], depth+1),
		}
	}
	return &kdTree{root: build(items, 0)}
}

// nearest returns the coordinate in the tree closest to target, and its
// original index in the slice the tree was built from.
func (t *kdTree) nearest(target geoprim.Coordinate) (geoprim.Coordinate, int) {
	best, _ := nearestSearch(t.root, target, 0, nil, math.MaxFloat64)
	return best.coord, best.index
}

func nearestSearch(n *kdNode, target geoprim.Coordinate, depth int, best *kdNode, bestDist float64) (*kdNode, float64) {
	if n == nil {
		return best, bestDist
	}
	axis := depth % 2

	dist := geoprim.DistanceSquared(n.coord, target)
	if dist < bestDist {
		bestDist = dist
		best = n
	}

	var next, other *kdNode
	var targetAxis, nodeAxis float64
	if axis == 0 {
		targetAxis, nodeAxis = target.Lon, n.coord.Lon
	} else {
		targetAxis, nodeAxis = target.Lat, n.coord.Lat
	}
	if targetAxis < nodeAxis {
		next, other = n.l, n.r
	} else {
		next, other = n.r, n.l
	}

	best, bestDist = nearestSearch(next, target, depth+1, best, bestDist)
	if math.Abs(nodeAxis-targetAxis) < math.Sqrt(bestDist) {
		best, bestDist = nearestSearch(other, target, depth+1, best, bestDist)
	}
	return best, bestDist
}
