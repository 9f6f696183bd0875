package geoprim

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/convexhull"
)

// triangle is a Delaunay triangle referencing points by index.
type triangle struct {
	a, b, c int
}

// ConcaveHull computes the alpha-shape concave hull of points: the union of
// Delaunay triangles whose circumradius is < 1/alpha. With fewer than 4
// points it falls back to the convex hull. Grounded on
// original_source/osmgt/geometry/geom_helpers.py's ConcaveHull class.
func ConcaveHull(points []Coordinate, alpha float64) orb.Geometry {
	if len(points) < 4 {
		return convexHull(points)
	}

	tris := delaunay(points)
	maxRadius := math.Inf(1)
	if alpha > 0 {
		maxRadius = 1 / alpha
	}

	var kept []triangle
	for _, t := range tris {
		if circumradius(points[t.a], points[t.b], points[t.c]) < maxRadius {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return convexHull(points)
	}

	rings := boundaryRings(kept, points)
	if len(rings) == 0 {
		return convexHull(points)
	}
	if len(rings) == 1 {
		return orb.Polygon{rings[0]}
	}
	mp := make(orb.MultiPolygon, len(rings))
	for i, r := range rings {
		mp[i] = orb.Polygon{r}
	}
	return mp
}

// boundaryRings polygonizes the kept triangles: an edge shared by two kept
// triangles is interior and cancels out (count == 2), leaving only the
// edges on the union's outer boundary (count == 1); those are then walked
// into closed rings, one per boundary loop. Grounded on
// geom_helpers.py's ConcaveHull, which builds a MultiLineString of the kept
// triangles' edges and runs shapely polygonize + unary_union over it.
func boundaryRings(tris []triangle, points []Coordinate) []orb.Ring {
	boundary := edgeBoundary(tris)
	if len(boundary) == 0 {
		return nil
	}

	adjacency := map[int][]int{}
	for _, e := range boundary {
		adjacency[e[0]] = append(adjacency[e[0]], e[1])
		adjacency[e[1]] = append(adjacency[e[1]], e[0])
	}

	visited := map[edge]bool{}
	var rings []orb.Ring
	for _, start := range boundary {
		if visited[start] {
			continue
		}
		if ring, closed := walkRing(start, adjacency, visited, points); closed {
			rings = append(rings, ring)
		}
	}
	return rings
}

// walkRing follows boundary edges from start until it returns to its first
// vertex, marking each consumed edge visited so the caller can find the
// next disjoint loop.
func walkRing(start edge, adjacency map[int][]int, visited map[edge]bool, points []Coordinate) (orb.Ring, bool) {
	norm := func(a, b int) edge {
		if a > b {
			return edge{b, a}
		}
		return edge{a, b}
	}

	visited[norm(start[0], start[1])] = true
	ring := orb.Ring{points[start[0]].Point()}
	cur := start[1]
	for {
		ring = append(ring, points[cur].Point())
		if cur == start[0] {
			return ring, true
		}
		next := -1
		for _, n := range adjacency[cur] {
			if visited[norm(cur, n)] {
				continue
			}
			next = n
			break
		}
		if next == -1 {
			return ring, false
		}
		visited[norm(cur, next)] = true
		cur = next
	}
}

func convexHull(points []Coordinate) orb.Geometry {
	mp := make(orb.MultiPoint, len(points))
	for i, p := range points {
		mp[i] = p.Point()
	}
	return convexhull.Scan(mp)
}

// circumradius computes the circumradius of the triangle (a, b, c) via
// Heron's formula, grounded on geom_helpers.py's ConcaveHull.
func circumradius(a, b, c Coordinate) float64 {
	ab := Distance(a, b)
	bc := Distance(b, c)
	ca := Distance(c, a)
	s := (ab + bc + ca) / 2
	area := math.Sqrt(math.Max(s*(s-ab)*(s-bc)*(s-ca), 0))
	if area == 0 {
		return math.Inf(1)
	}
	return (ab * bc * ca) / (4 * area)
}

// delaunay computes a Delaunay triangulation of points via the
// Bowyer-Watson algorithm. No pack repo or ecosystem library ships a 2D
// Delaunay triangulation (see DESIGN.md); this is the one
// standard-library-only piece of geoprim.
func delaunay(points []Coordinate) []triangle {
	n := len(points)
	if n < 3 {
		return nil
	}

	minX, minY := points[0].Lon, points[0].Lat
	maxX, maxY := points[0].Lon, points[0].Lat
	for _, p := range points {
		minX = math.Min(minX, p.Lon)
		minY = math.Min(minY, p.Lat)
		maxX = math.Max(maxX, p.Lon)
		maxY = math.Max(maxY, p.Lat)
	}
	dx, dy := maxX-minX, maxY-minY
	deltaMax := math.Max(dx, dy) * 20
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	pts := append([]Coordinate(nil), points...)
	superA := len(pts)
	superB := superA + 1
	superC := superA + 2
	pts = append(pts,
		Coordinate{Lon: midX - deltaMax, Lat: midY - deltaMax},
		Coordinate{Lon: midX, Lat: midY + deltaMax},
		Coordinate{Lon: midX + deltaMax, Lat: midY - deltaMax},
	)

	tris := []triangle{{superA, superB, superC}}

	for i := 0; i < n; i++ {
		p := pts[i]
		var badTriangles []triangle
		for _, t := range tris {
			if inCircumcircle(p, pts[t.a], pts[t.b], pts[t.c]) {
				badTriangles = append(badTriangles, t)
			}
		}

		polygon := edgeBoundary(badTriangles)

		remaining := tris[:0]
		for _, t := range tris {
			if !containsTriangle(badTriangles, t) {
				remaining = append(remaining, t)
			}
		}
		tris = remaining

		for _, e := range polygon {
			tris = append(tris, triangle{e[0], e[1], i})
		}
	}

	var out []triangle
	for _, t := range tris {
		if t.a == superA || t.a == superB || t.a == superC ||
			t.b == superA || t.b == superB || t.b == superC ||
			t.c == superA || t.c == superB || t.c == superC {
			continue
		}
		out = append(out, t)
	}
	return out
}

type edge [2]int

func edgeBoundary(tris []triangle) []edge {
	count := map[edge]int{}
	order := []edge{}
	add := func(a, b int) {
		e := edge{a, b}
		if a > b {
			e = edge{b, a}
		}
		if _, ok := count[e]; !ok {
			order = append(order, e)
		}
		count[e]++
	}
	for _, t := range tris {
		add(t.a, t.b)
		add(t.b, t.c)
		add(t.c, t.a)
	}
	var boundary []edge
	for _, e := range order {
		if count[e] == 1 {
			boundary = append(boundary, e)
		}
	}
	sort.Slice(boundary, func(i, j int) bool { return boundary[i][0] < boundary[j][0] })
	return boundary
}

func containsTriangle(set []triangle, t triangle) bool {
	for _, s := range set {
		if s == t {
			return true
		}
	}
	return false
}

func inCircumcircle(p, a, b, c Coordinate) bool {
	ax, ay := a.Lon-p.Lon, a.Lat-p.Lat
	bx, by := b.Lon-p.Lon, b.Lat-p.Lat
	cx, cy := c.Lon-p.Lon, c.Lat-p.Lat

	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)

	orientation := (b.Lon-a.Lon)*(c.Lat-a.Lat) - (c.Lon-a.Lon)*(b.Lat-a.Lat)
	if orientation > 0 {
		return det > 0
	}
	return det < 0
}
