package topology

import (
	"github.com/dhconnelly/rtreego"

	"osmgt/geoprim"
	"osmgt/model"
)

// lineBox is an rtreego.Spatial wrapping one candidate LineRecord's
// bounding box, keyed by its index into the builder's line slice. Grounded
// on spec.md §4.3 Phase A: "Candidates are pre-filtered by R-tree
// nearest-k (k=10) on the line bounding boxes".
type lineBox struct {
	index int
	rect  rtreego.Rect
}

func (b *lineBox) Bounds() rtreego.Rect { return b.rect }

func boundingRect(ls geoprim.LineString) (rtreego.Rect, error) {
	bound := ls.Bound()
	const epsilon = 1e-9
	width := bound.Max[0] - bound.Min[0]
	height := bound.Max[1] - bound.Min[1]
	if width <= 0 {
		width = epsilon
	}
	if height <= 0 {
		height = epsilon
	}
	return rtreego.NewRect(
		rtreego.Point{bound.Min[0], bound.Min[1]},
		[]float64{width, height},
	)
}

// buildLineIndex builds an R-tree over every line's bounding box.
func buildLineIndex(lines []model.LineRecord) (*rtreego.Rtree, error) {
	rt := rtreego.NewTree(2, 5, 20)
	for i, l := range lines {
		rect, err := boundingRect(l.Geometry)
		if err != nil {
			return nil, err
		}
		rt.Insert(&lineBox{index: i, rect: rect})
	}
	return rt, nil
}

// nearestLineCandidates returns up to k candidate line indices nearest to
// point, per spec.md §4.3 Phase A's "R-tree nearest-k (k=10)".
func nearestLineCandidates(rt *rtreego.Rtree, point geoprim.Coordinate, k int) []int {
	p := rtreego.Point{point.Lon, point.Lat}
	results := rt.NearestNeighbors(k, p)
	out := make([]int, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		out = append(out, r.(*lineBox).index)
	}
	return out
}
