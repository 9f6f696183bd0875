// Package model holds the data types shared across osmgt's pipeline stages:
// LineRecord, PointRecord, AdditionalNode and their supporting enums, as
// specified in spec.md §3 DATA MODEL.
package model

import (
	"fmt"
	"strings"

	"osmgt/geoprim"
)

// Tags is an OSM tag map (string -> string).
type Tags map[string]string

// TransportMode selects the routing semantics for TopologyBuilder and Graph.
type TransportMode string

const (
	Vehicle    TransportMode = "vehicle"
	Pedestrian TransportMode = "pedestrian"
)

// Valid reports whether m is one of the two supported transport modes.
func (m TransportMode) Valid() bool {
	return m == Vehicle || m == Pedestrian
}

// Topology tags an emitted LineRecord with how it came to exist.
type Topology string

const (
	TopologyUnchanged Topology = "unchanged"
	TopologySplit     Topology = "split"
	TopologyAdded     Topology = "added"
)

// LineRecord is a routable road segment, at any stage between raw ingestion
// and final topology output. Invariants (spec.md §3): first != last for
// non-loops; TopoUUID is unique across all records emitted by one run;
// Topology == added iff the record is an additional-node connector.
type LineRecord struct {
	ID        string
	Geometry  geoprim.LineString
	Tags      Tags
	Topology  Topology
	TopoUUID  string
	IsoName   *float64
	IsoDist   *float64
}

// OsmURL derives the canonical OSM way URL from Tags["osm_id"]. Ingested
// ways carry their numeric way id there, and split, directional and refined
// fragments inherit it from their parent; added connectors have none and
// return "".
func (l LineRecord) OsmURL() string {
	id, ok := l.Tags["osm_id"]
	if !ok || id == "" {
		return ""
	}
	return fmt.Sprintf("https://www.openstreetmap.org/way/%s", id)
}

// BaseTopoUUID keeps the part of TopoUUID before its first "_", which for
// split/direction fragments of an ingested way is the originating way's
// identifier (for added connectors it is just "added").
func (l LineRecord) BaseTopoUUID() string {
	return baseUUID(l.TopoUUID)
}

func baseUUID(uuid string) string {
	parts := strings.Split(uuid, "_")
	if len(parts) == 0 {
		return uuid
	}
	return parts[0]
}

// PointRecord is a single-coordinate OSM element: a POI or a caller-supplied
// additional node.
type PointRecord struct {
	ID       string
	Geometry geoprim.Coordinate
	Tags     Tags
	TopoUUID string
}

func (p PointRecord) OsmURL() string {
	id, ok := p.Tags["osm_id"]
	if !ok || id == "" {
		return ""
	}
	return fmt.Sprintf("https://www.openstreetmap.org/node/%s", id)
}

// AdditionalNode is a PointRecord the caller wants spliced into the road
// network as a first-class vertex (spec.md §3).
type AdditionalNode = PointRecord
