// Package graph implements the named weighted multigraph from spec.md
// §4.4, grounded on the teacher's graph.go (AddNode/RelateNodes/
// IncomingEdges/OutgoingEdges) and original_source/osmgt/network/gt_helper.py's
// GraphHelpers (vertex-name/edge-name indices, add_edge no-op-on-duplicate,
// add_vertex error-on-duplicate, find_edges_from_vertex), generalized from
// int32 node ids to string vertex/edge names.
package graph

import (
	"fmt"

	"osmgt/geoprim"
	"osmgt/model"
)

// VertexName is the WKT of a Coordinate; EdgeName is a LineRecord's
// TopoUUID (spec.md §3).
type VertexName = string
type EdgeName = string

// Edge carries a unique name, a weight (geodesic length of the owning
// LineRecord), and endpoints by vertex name.
type Edge struct {
	Name     EdgeName
	Weight   float64
	From, To VertexName
	Record   model.LineRecord
}

// Vertex carries a unique string name (the WKT of a Coordinate).
type Vertex struct {
	Name VertexName
	Coord geoprim.Coordinate
}

// Graph is directed when the transport mode is "vehicle", undirected when
// "pedestrian" (spec.md §4.4); direction expansion already happened in
// TopologyBuilder, so Graph itself only needs to know whether Neighbors may
// traverse an edge from To back to From. The incident-edge index ignores
// direction either way.
type Graph struct {
	Directed bool

	vertices map[VertexName]*Vertex
	edges    map[EdgeName]*Edge
	incident map[VertexName][]EdgeName
}

// New creates an empty graph. directed should be true for vehicle mode,
// false for pedestrian.
func New(directed bool) *Graph {
	return &Graph{
		Directed: directed,
		vertices: make(map[VertexName]*Vertex),
		edges:    make(map[EdgeName]*Edge),
		incident: make(map[VertexName][]EdgeName),
	}
}

// AddVertex adds the vertex for coord. Adding a vertex whose name already exists is an error
// (spec.md §4.4).
func (g *Graph) AddVertex(coord geoprim.Coordinate) (*Vertex, error) {
	name := coord.WKT()
	if _, exists := g.vertices[name]; exists {
		return nil, fmt.Errorf("graph: vertex %q already exists", name)
	}
	v := &Vertex{Name: name, Coord: coord}
	g.vertices[name] = v
	return v, nil
}

// ensureVertex returns the existing vertex for coord, or creates it
// ("Vertices are created on demand", spec.md §4.4).
func (g *Graph) ensureVertex(coord geoprim.Coordinate) *Vertex {
	name := coord.WKT()
	if v, ok := g.vertices[name]; ok {
		return v
	}
	v := &Vertex{Name: name, Coord: coord}
	g.vertices[name] = v
	return v
}

// AddEdge adds an edge from rec's first coordinate to its last, weighted by
// geodesic length. Adding an edge whose name already exists is a no-op
// (spec.md §4.4), returned as ok=false so callers can log it.
func (g *Graph) AddEdge(rec model.LineRecord) (ok bool) {
	if _, exists := g.edges[rec.TopoUUID]; exists {
		return false
	}

	from := g.ensureVertex(rec.Geometry.First())
	to := g.ensureVertex(rec.Geometry.Last())

	e := &Edge{
		Name:   rec.TopoUUID,
		Weight: geoprim.GeodesicLength(rec.Geometry),
		From:   from.Name,
		To:     to.Name,
		Record: rec,
	}
	g.edges[rec.TopoUUID] = e

	g.incident[from.Name] = append(g.incident[from.Name], e.Name)
	if to.Name != from.Name {
		g.incident[to.Name] = append(g.incident[to.Name], e.Name)
	}
	return true
}

// FindVertex returns the vertex named name, if any.
func (g *Graph) FindVertex(name VertexName) (*Vertex, bool) {
	v, ok := g.vertices[name]
	return v, ok
}

// FindEdge returns the edge named name, if any.
func (g *Graph) FindEdge(name EdgeName) (*Edge, bool) {
	e, ok := g.edges[name]
	return e, ok
}

// IncidentEdgeNames returns all edges touching vertex, regardless of
// direction (spec.md §4.4: "for the pedestrian-style or vehicle-style graph
// alike").
func (g *Graph) IncidentEdgeNames(vertex VertexName) []EdgeName {
	return g.incident[vertex]
}

// EdgeEndpoints returns e's (from, to) vertex names.
func EdgeEndpoints(e *Edge) (VertexName, VertexName) {
	return e.From, e.To
}

// Neighbors returns, for a vertex, the (edge, otherVertex) pairs reachable
// directly from it. For a directed graph, only edges where vertex == From
// are traversable (plus, in the undirected/pedestrian case, both
// directions); this is what ShortestPath and Isochrone's Dijkstra variants
// walk.
func (g *Graph) Neighbors(vertex VertexName) []struct {
	Edge  *Edge
	Other VertexName
} {
	var out []struct {
		Edge  *Edge
		Other VertexName
	}
	for _, name := range g.incident[vertex] {
		e := g.edges[name]
		if e.From == vertex {
			out = append(out, struct {
				Edge  *Edge
				Other VertexName
			}{e, e.To})
		} else if !g.Directed {
			out = append(out, struct {
				Edge  *Edge
				Other VertexName
			}{e, e.From})
		}
	}
	return out
}

// VertexCount and EdgeCount report graph size, used by tests and facade
// summaries.
func (g *Graph) VertexCount() int { return len(g.vertices) }
func (g *Graph) EdgeCount() int   { return len(g.edges) }

// BuildFromRecords constructs a Graph from a TopologyBuilder output,
// per spec.md §4.4's construction rule.
func BuildFromRecords(records []model.LineRecord, directed bool) (*Graph, []model.LineRecord) {
	g := New(directed)
	var duplicates []model.LineRecord
	for _, rec := range records {
		if !g.AddEdge(rec) {
			duplicates = append(duplicates, rec)
		}
	}
	return g, duplicates
}
